package models

// RolloverSummary counts what the weekly rollover did to the previous
// week's tasks. It is rendered by the UI as a dismissible notification.
type RolloverSummary struct {
	RecurrentReset int `json:"recurrent_reset"` // recurrent tasks re-created with fresh completion state
	CarryOver      int `json:"carry_over"`      // unfinished one-offs re-created in the new week
	Removed        int `json:"removed"`         // fully completed one-offs dropped
}

// WeekInfo exposes the calendar helpers to the UI in one payload
type WeekInfo struct {
	WeekYear     string `json:"week_year"`
	PreviousWeek string `json:"previous_week"`
	Day          int    `json:"day"`    // 1=Monday .. 7=Sunday
	Monday       string `json:"monday"` // "2006-01-02"
	RangeLabel   string `json:"range_label"`
}

// WeekSummary aggregates one week of the board for the stats endpoint
type WeekSummary struct {
	WeekYear       string `json:"week_year"`
	TotalTasks     int64  `json:"total_tasks"`
	Recurrent      int64  `json:"recurrent"`
	OneOff         int64  `json:"oneoff"`
	Scheduled      int64  `json:"scheduled"`
	CarriedOver    int64  `json:"carried_over"`
	FullyCompleted int64  `json:"fully_completed"`
}
