package timesheet

import (
	"fmt"
	"time"

	"github.com/existflow/tempo/internal/model"
)

// Grid projects a week of time entries into the day x project hours matrix.
// All totals are computed from raw durations; rounding happens only when a
// value is formatted for display, so totals never compound rounding error.
type Grid struct {
	Week     WeekWindow
	Projects []model.Project
	store    *EntryStore
}

// NewGrid creates a grid over the given window, project rows and fetched entries
func NewGrid(week WeekWindow, projects []model.Project, store *EntryStore) Grid {
	return Grid{Week: week, Projects: projects, store: store}
}

// HoursAt returns the logged hours for a (project, day) cell, or 0 if no entry exists
func (g Grid) HoursAt(projectID string, day time.Time) float64 {
	e, ok := g.store.Find(projectID, day)
	if !ok {
		return 0
	}
	return e.Hours
}

// DailyTotal sums the hours of every project row for one day
func (g Grid) DailyTotal(day time.Time) float64 {
	var total float64
	for _, p := range g.Projects {
		total += g.HoursAt(p.ID, day)
	}
	return total
}

// ProjectTotal sums the hours of one project row across the seven days
func (g Grid) ProjectTotal(projectID string) float64 {
	var total float64
	for _, day := range g.Week.Days() {
		total += g.HoursAt(projectID, day)
	}
	return total
}

// WeekTotal sums every entry in scope
func (g Grid) WeekTotal() float64 {
	var total float64
	for _, e := range g.store.All() {
		total += e.Hours
	}
	return total
}

// FormatHours renders a duration for display, rounded to one decimal place
func FormatHours(h float64) string {
	if h == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f", h)
}
