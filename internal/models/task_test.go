package models

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fbraintech-stack/weekboard/internal/week"
)

func TestTaskFullyCompleted(t *testing.T) {
	tests := []struct {
		name      string
		days      []week.DayOfWeek
		completed []week.DayOfWeek
		want      bool
	}{
		{"all days done", []week.DayOfWeek{1, 3, 5}, []week.DayOfWeek{1, 3, 5}, true},
		{"order does not matter", []week.DayOfWeek{1, 3}, []week.DayOfWeek{3, 1}, true},
		{"partially done", []week.DayOfWeek{1, 3, 5}, []week.DayOfWeek{1, 3}, false},
		{"nothing done", []week.DayOfWeek{2}, nil, false},
		{"empty day set is never complete", nil, nil, false},
		{"stray completion marks do not count", []week.DayOfWeek{1, 2}, []week.DayOfWeek{6, 7}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := Task{Days: tt.days, CompletedDays: tt.completed}
			assert.Equal(t, tt.want, task.FullyCompleted())
		})
	}
}

func TestTaskHasDay(t *testing.T) {
	task := Task{Days: []week.DayOfWeek{week.Monday, week.Friday}}
	assert.True(t, task.HasDay(week.Monday))
	assert.True(t, task.HasDay(week.Friday))
	assert.False(t, task.HasDay(week.Sunday))
}

func TestTaskDayCompleted(t *testing.T) {
	task := Task{
		Days:          []week.DayOfWeek{week.Monday, week.Friday},
		CompletedDays: []week.DayOfWeek{week.Friday},
	}
	assert.False(t, task.DayCompleted(week.Monday))
	assert.True(t, task.DayCompleted(week.Friday))
}
