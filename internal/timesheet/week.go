package timesheet

import (
	"fmt"
	"time"

	"github.com/existflow/tempo/internal/model"
)

// WeekWindow is the seven consecutive calendar days shown in the weekly grid.
// Start is always truncated to the first day of the window.
type WeekWindow struct {
	Start time.Time
}

// WeekOf returns the window containing t, anchored to the given start-of-week day.
func WeekOf(t time.Time, start time.Weekday) WeekWindow {
	day := model.DayOf(t)
	offset := (int(day.Weekday()) - int(start) + 7) % 7
	return WeekWindow{Start: day.AddDate(0, 0, -offset)}
}

// Days returns the seven ordered dates of the window
func (w WeekWindow) Days() [7]time.Time {
	var days [7]time.Time
	for i := range days {
		days[i] = w.Start.AddDate(0, 0, i)
	}
	return days
}

// End returns the last day of the window
func (w WeekWindow) End() time.Time {
	return w.Start.AddDate(0, 0, 6)
}

// Contains reports whether t falls on one of the window's days
func (w WeekWindow) Contains(t time.Time) bool {
	day := model.DayOf(t)
	return !day.Before(w.Start) && !day.After(w.End())
}

// Next returns the following week's window
func (w WeekWindow) Next() WeekWindow {
	return WeekWindow{Start: w.Start.AddDate(0, 0, 7)}
}

// Prev returns the preceding week's window
func (w WeekWindow) Prev() WeekWindow {
	return WeekWindow{Start: w.Start.AddDate(0, 0, -7)}
}

// Label returns a header like "2024-W23  Jun 3 - Jun 9"
func (w WeekWindow) Label() string {
	year, week := w.Start.ISOWeek()
	return fmt.Sprintf("%d-W%02d  %s - %s", year, week,
		w.Start.Format("Jan 2"), w.End().Format("Jan 2"))
}
