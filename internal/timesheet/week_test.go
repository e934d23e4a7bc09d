package timesheet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWeekOf(t *testing.T) {
	tests := []struct {
		name      string
		in        time.Time
		start     time.Weekday
		wantStart time.Time
	}{
		{"monday itself", date(2024, 6, 3), time.Monday, date(2024, 6, 3)},
		{"midweek", date(2024, 6, 5), time.Monday, date(2024, 6, 3)},
		{"sunday belongs to prior monday", date(2024, 6, 9), time.Monday, date(2024, 6, 3)},
		{"time of day ignored", time.Date(2024, 6, 5, 23, 30, 0, 0, time.UTC), time.Monday, date(2024, 6, 3)},
		{"sunday start convention", date(2024, 6, 5), time.Sunday, date(2024, 6, 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := WeekOf(tt.in, tt.start)
			assert.True(t, w.Start.Equal(tt.wantStart), "got %v want %v", w.Start, tt.wantStart)
		})
	}
}

func TestWeekWindowDays(t *testing.T) {
	w := WeekOf(date(2024, 6, 5), time.Monday)
	days := w.Days()

	require.Len(t, days, 7)
	assert.True(t, days[0].Equal(date(2024, 6, 3)))
	assert.True(t, days[6].Equal(date(2024, 6, 9)))
	assert.True(t, w.End().Equal(date(2024, 6, 9)))
}

func TestWeekWindowContains(t *testing.T) {
	w := WeekOf(date(2024, 6, 3), time.Monday)

	assert.True(t, w.Contains(date(2024, 6, 3)))
	assert.True(t, w.Contains(date(2024, 6, 9)))
	assert.True(t, w.Contains(time.Date(2024, 6, 9, 18, 0, 0, 0, time.UTC)))
	assert.False(t, w.Contains(date(2024, 6, 2)))
	assert.False(t, w.Contains(date(2024, 6, 10)))
}

func TestWeekWindowNavigation(t *testing.T) {
	w := WeekOf(date(2024, 6, 3), time.Monday)

	assert.True(t, w.Next().Start.Equal(date(2024, 6, 10)))
	assert.True(t, w.Prev().Start.Equal(date(2024, 5, 27)))
	assert.True(t, w.Next().Prev().Start.Equal(w.Start))
}
