package model

import "time"

// DateFormat is the wire format for day-granularity dates
const DateFormat = "2006-01-02"

// TimeEntry represents hours logged against a project on a single calendar day
type TimeEntry struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"project_id"`
	TaskID      string    `json:"task_id,omitempty"`
	Date        time.Time `json:"date"`
	Hours       float64   `json:"hours"`
	Description string    `json:"description,omitempty"`
	Approved    bool      `json:"approved"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewTimeEntry creates a new entry with defaults, truncating the date to day granularity
func NewTimeEntry(id, projectID string, date time.Time, hours float64) TimeEntry {
	now := time.Now()
	return TimeEntry{
		ID:        id,
		ProjectID: projectID,
		Date:      DayOf(date),
		Hours:     hours,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// DayOf truncates a time to the start of its calendar day
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether two times fall on the same calendar day
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DayKey returns the map key for a day-granularity date
func DayKey(t time.Time) string {
	return t.Format(DateFormat)
}
