package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/fbraintech-stack/weekboard/internal/models"
	"github.com/fbraintech-stack/weekboard/internal/week"
)

func makeTask(taskType models.TaskType, days, completed []week.DayOfWeek) models.Task {
	return models.Task{
		ID:            primitive.NewObjectID(),
		UserID:        primitive.NewObjectID(),
		Title:         "test task",
		Type:          taskType,
		Days:          days,
		CompletedDays: completed,
		WeekYear:      "2026-W09",
	}
}

func TestComputeRolloverRecurrent(t *testing.T) {
	categoryID := primitive.NewObjectID()
	task := makeTask(models.TypeRecurrent,
		[]week.DayOfWeek{week.Monday, week.Wednesday},
		[]week.DayOfWeek{week.Monday, week.Wednesday})
	task.CategoryID = &categoryID
	task.StartTime = "09:00"
	task.EndTime = "09:30"

	drafts, summary := ComputeRollover([]models.Task{task}, "2026-W10")

	require.Len(t, drafts, 1)
	assert.Equal(t, models.RolloverSummary{RecurrentReset: 1}, summary)

	d := drafts[0]
	assert.Equal(t, task.UserID, d.UserID)
	assert.Equal(t, task.Title, d.Title)
	assert.Equal(t, task.Days, d.Days)
	assert.Empty(t, d.CompletedDays, "completion state carries nothing across weeks")
	assert.Equal(t, "2026-W10", d.WeekYear)
	assert.False(t, d.CarryOver)
	assert.Equal(t, &categoryID, d.CategoryID)
	assert.Equal(t, "09:00", d.StartTime)
	assert.Equal(t, "09:30", d.EndTime)
}

func TestComputeRolloverOneOffFullyCompleted(t *testing.T) {
	task := makeTask(models.TypeOneOff,
		[]week.DayOfWeek{week.Monday, week.Wednesday, week.Friday},
		[]week.DayOfWeek{week.Monday, week.Wednesday, week.Friday})

	drafts, summary := ComputeRollover([]models.Task{task}, "2026-W10")

	assert.Empty(t, drafts)
	assert.Equal(t, models.RolloverSummary{Removed: 1}, summary)
}

func TestComputeRolloverOneOffPartiallyCompleted(t *testing.T) {
	task := makeTask(models.TypeOneOff,
		[]week.DayOfWeek{week.Monday, week.Wednesday, week.Friday},
		[]week.DayOfWeek{week.Monday, week.Wednesday})

	drafts, summary := ComputeRollover([]models.Task{task}, "2026-W10")

	require.Len(t, drafts, 1)
	assert.Equal(t, models.RolloverSummary{CarryOver: 1}, summary)

	// The whole original day set is re-offered, not just the incomplete part.
	d := drafts[0]
	assert.Equal(t, []week.DayOfWeek{week.Monday, week.Wednesday, week.Friday}, d.Days)
	assert.Empty(t, d.CompletedDays)
	assert.True(t, d.CarryOver)
}

func TestComputeRolloverOneOffUntouched(t *testing.T) {
	task := makeTask(models.TypeOneOff, []week.DayOfWeek{week.Tuesday}, nil)

	drafts, summary := ComputeRollover([]models.Task{task}, "2026-W10")

	require.Len(t, drafts, 1)
	assert.True(t, drafts[0].CarryOver)
	assert.Equal(t, models.RolloverSummary{CarryOver: 1}, summary)
}

func TestComputeRolloverOneOffEmptyDaysIsNeverComplete(t *testing.T) {
	// Malformed day set: vacuous truth must not drop the task.
	task := makeTask(models.TypeOneOff, nil, nil)

	drafts, summary := ComputeRollover([]models.Task{task}, "2026-W10")

	require.Len(t, drafts, 1)
	assert.True(t, drafts[0].CarryOver)
	assert.Equal(t, models.RolloverSummary{CarryOver: 1}, summary)
}

func TestComputeRolloverScheduledExcluded(t *testing.T) {
	date := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	task := makeTask(models.TypeScheduled, []week.DayOfWeek{week.Tuesday}, nil)
	task.ScheduledDate = &date

	drafts, summary := ComputeRollover([]models.Task{task}, "2026-W10")

	assert.Empty(t, drafts)
	assert.Equal(t, models.RolloverSummary{}, summary)
}

func TestComputeRolloverMixedWeek(t *testing.T) {
	date := time.Date(2026, time.March, 12, 0, 0, 0, 0, time.UTC)
	scheduled := makeTask(models.TypeScheduled, []week.DayOfWeek{week.Thursday}, nil)
	scheduled.ScheduledDate = &date

	prev := []models.Task{
		makeTask(models.TypeRecurrent,
			[]week.DayOfWeek{week.Monday, week.Tuesday, week.Wednesday, week.Thursday, week.Friday}, nil),
		makeTask(models.TypeOneOff, []week.DayOfWeek{week.Tuesday}, []week.DayOfWeek{week.Tuesday}),
		makeTask(models.TypeOneOff,
			[]week.DayOfWeek{week.Monday, week.Tuesday}, []week.DayOfWeek{week.Monday}),
		scheduled,
	}

	drafts, summary := ComputeRollover(prev, "2026-W10")

	assert.Len(t, drafts, 2)
	assert.Equal(t, models.RolloverSummary{RecurrentReset: 1, CarryOver: 1, Removed: 1}, summary)
	for _, d := range drafts {
		assert.NotEqual(t, models.TypeScheduled, d.Type)
		assert.Equal(t, "2026-W10", d.WeekYear)
		assert.Empty(t, d.CompletedDays)
	}
}

func TestComputeRolloverEmptyInput(t *testing.T) {
	drafts, summary := ComputeRollover(nil, "2026-W10")

	assert.Empty(t, drafts)
	assert.Equal(t, models.RolloverSummary{}, summary)
}

func TestComputeRolloverIsDeterministic(t *testing.T) {
	prev := []models.Task{
		makeTask(models.TypeRecurrent, []week.DayOfWeek{week.Monday}, nil),
		makeTask(models.TypeOneOff, []week.DayOfWeek{week.Friday}, nil),
	}

	drafts1, summary1 := ComputeRollover(prev, "2026-W10")
	drafts2, summary2 := ComputeRollover(prev, "2026-W10")

	assert.Equal(t, drafts1, drafts2)
	assert.Equal(t, summary1, summary2)
}

func TestComputeRolloverDoesNotMutateInput(t *testing.T) {
	task := makeTask(models.TypeOneOff,
		[]week.DayOfWeek{week.Monday, week.Friday}, []week.DayOfWeek{week.Monday})
	prev := []models.Task{task}

	drafts, _ := ComputeRollover(prev, "2026-W10")
	require.Len(t, drafts, 1)
	drafts[0].Days[0] = week.Sunday

	assert.Equal(t, week.Monday, prev[0].Days[0])
	assert.Equal(t, []week.DayOfWeek{week.Monday}, prev[0].CompletedDays)
}
