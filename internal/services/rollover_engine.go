package services

import (
	"github.com/fbraintech-stack/weekboard/internal/models"
	"github.com/fbraintech-stack/weekboard/internal/week"
)

// ComputeRollover decides how each of the previous week's tasks
// transitions into targetWeek. It is a pure function: no I/O, no
// clock, same output for same input.
//
// Scheduled tasks are date-pinned and skipped entirely. Recurrent
// tasks always come back with fresh completion state. One-off tasks
// come back flagged as carry-over unless every assigned day was
// completed, in which case they are dropped. Completion state never
// survives a week boundary; a one-off done on 2 of 3 days re-offers
// all 3 days fresh.
func ComputeRollover(prevTasks []models.Task, targetWeek string) ([]models.TaskDraft, models.RolloverSummary) {
	drafts := []models.TaskDraft{}
	var summary models.RolloverSummary

	for i := range prevTasks {
		t := &prevTasks[i]
		switch t.Type {
		case models.TypeScheduled:
			continue
		case models.TypeRecurrent:
			drafts = append(drafts, redraft(t, targetWeek, false))
			summary.RecurrentReset++
		case models.TypeOneOff:
			if t.FullyCompleted() {
				summary.Removed++
				continue
			}
			drafts = append(drafts, redraft(t, targetWeek, true))
			summary.CarryOver++
		}
	}

	return drafts, summary
}

func redraft(t *models.Task, targetWeek string, carryOver bool) models.TaskDraft {
	days := make([]week.DayOfWeek, len(t.Days))
	copy(days, t.Days)
	return models.TaskDraft{
		UserID:        t.UserID,
		CategoryID:    t.CategoryID,
		Title:         t.Title,
		Type:          t.Type,
		Days:          days,
		CompletedDays: []week.DayOfWeek{},
		WeekYear:      targetWeek,
		CarryOver:     carryOver,
		StartTime:     t.StartTime,
		EndTime:       t.EndTime,
	}
}
