package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/fbraintech-stack/weekboard/internal/week"
)

// TaskType distinguishes how a task participates in the weekly cycle
type TaskType string

const (
	// TypeRecurrent repeats every week on its assigned days until deleted
	TypeRecurrent TaskType = "recurrent"
	// TypeOneOff lives in a single week cycle; unfinished instances are
	// carried over into the next week by the rollover engine
	TypeOneOff TaskType = "oneoff"
	// TypeScheduled is pinned to one calendar date and never rolls over
	TypeScheduled TaskType = "scheduled"
)

// Task represents a single board entry owned by a user
type Task struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty" json:"id,omitempty"`
	UserID        primitive.ObjectID  `bson:"user_id" json:"user_id"`
	CategoryID    *primitive.ObjectID `bson:"category_id,omitempty" json:"category_id,omitempty"` // weak reference, may dangle after category deletion
	Title         string              `bson:"title" json:"title" validate:"required,max=100"`
	Type          TaskType            `bson:"type" json:"type" validate:"required,oneof=recurrent oneoff scheduled"`
	Days          []week.DayOfWeek    `bson:"days" json:"days"`
	CompletedDays []week.DayOfWeek    `bson:"completed_days" json:"completed_days"`
	WeekYear      string              `bson:"week_year" json:"week_year"` // "2026-W10"; ignored for scheduled tasks
	CarryOver     bool                `bson:"carry_over" json:"carry_over"`
	ScheduledDate *time.Time          `bson:"scheduled_date,omitempty" json:"scheduled_date,omitempty"`
	StartTime     string              `bson:"start_time,omitempty" json:"start_time,omitempty"` // "HH:MM", display only
	EndTime       string              `bson:"end_time,omitempty" json:"end_time,omitempty"`
	CreatedAt     time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time           `bson:"updated_at" json:"updated_at"`
}

// HasDay reports whether d is one of the task's assigned days
func (t *Task) HasDay(d week.DayOfWeek) bool {
	for _, day := range t.Days {
		if day == d {
			return true
		}
	}
	return false
}

// DayCompleted reports whether d has been marked done in this cycle
func (t *Task) DayCompleted(d week.DayOfWeek) bool {
	for _, day := range t.CompletedDays {
		if day == d {
			return true
		}
	}
	return false
}

// FullyCompleted reports whether every assigned day has been marked
// done. A task with no assigned days is never fully completed, so a
// malformed one-off falls on the carry-over side of the rollover
// decision rather than being silently dropped.
func (t *Task) FullyCompleted() bool {
	if len(t.Days) == 0 {
		return false
	}
	for _, d := range t.Days {
		if !t.DayCompleted(d) {
			return false
		}
	}
	return true
}

// TaskDraft is a task without identity or timestamps, produced by the
// rollover engine and by create requests; the store assigns ids and
// timestamps on insert.
type TaskDraft struct {
	UserID        primitive.ObjectID  `bson:"user_id"`
	CategoryID    *primitive.ObjectID `bson:"category_id,omitempty"`
	Title         string              `bson:"title"`
	Type          TaskType            `bson:"type"`
	Days          []week.DayOfWeek    `bson:"days"`
	CompletedDays []week.DayOfWeek    `bson:"completed_days"`
	WeekYear      string              `bson:"week_year"`
	CarryOver     bool                `bson:"carry_over"`
	ScheduledDate *time.Time          `bson:"scheduled_date,omitempty"`
	StartTime     string              `bson:"start_time,omitempty"`
	EndTime       string              `bson:"end_time,omitempty"`
}

// CreateTaskRequest is for creating a new task
type CreateTaskRequest struct {
	Title         string           `json:"title" validate:"required,max=100"`
	Type          string           `json:"type" validate:"required,oneof=recurrent oneoff scheduled"`
	Days          []week.DayOfWeek `json:"days" validate:"omitempty,max=7,dive,min=1,max=7"`
	CategoryID    *string          `json:"category_id,omitempty"`
	ScheduledDate *string          `json:"scheduled_date,omitempty"` // "2006-01-02"
	StartTime     string           `json:"start_time,omitempty" validate:"omitempty,len=5"`
	EndTime       string           `json:"end_time,omitempty" validate:"omitempty,len=5"`
}

// UpdateTaskRequest is for partial updates of an existing task
type UpdateTaskRequest struct {
	Title         *string           `json:"title,omitempty" validate:"omitempty,max=100"` // non-empty enforced in the service; omitempty skips length rules for ""
	Type          *string           `json:"type,omitempty" validate:"omitempty,oneof=recurrent oneoff scheduled"`
	Days          *[]week.DayOfWeek `json:"days,omitempty" validate:"omitempty,max=7,dive,min=1,max=7"`
	CategoryID    *string           `json:"category_id,omitempty"` // empty string clears the reference
	ScheduledDate *string           `json:"scheduled_date,omitempty"`
	StartTime     *string           `json:"start_time,omitempty" validate:"omitempty,len=5"`
	EndTime       *string           `json:"end_time,omitempty" validate:"omitempty,len=5"`
}

// ToggleCompletionRequest marks one day of a task done or not done
type ToggleCompletionRequest struct {
	Day       week.DayOfWeek `json:"day" validate:"required,min=1,max=7"`
	Completed bool           `json:"completed"`
}

// ReassignDayRequest moves a one-off task from one board column to another
type ReassignDayRequest struct {
	From week.DayOfWeek `json:"from" validate:"required,min=1,max=7"`
	To   week.DayOfWeek `json:"to" validate:"required,min=1,max=7"`
}

// TaskListResponse holds the board read path result
type TaskListResponse struct {
	WeekYear string `json:"week_year"`
	Tasks    []Task `json:"tasks"`
}
