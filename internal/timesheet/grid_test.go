package timesheet

import (
	"testing"
	"time"

	"github.com/existflow/tempo/internal/model"
	"github.com/stretchr/testify/assert"
)

func fixtureGrid() Grid {
	week := WeekOf(date(2024, 6, 3), time.Monday)
	projects := []model.Project{
		{ID: "alpha", Name: "Alpha"},
		{ID: "beta", Name: "Beta"},
	}
	store := NewEntryStore()
	store.Load([]model.TimeEntry{
		{ID: "e1", ProjectID: "alpha", Date: date(2024, 6, 3), Hours: 3},
		{ID: "e2", ProjectID: "beta", Date: date(2024, 6, 4), Hours: 1.5},
	})
	return NewGrid(week, projects, store)
}

func TestGridScenario(t *testing.T) {
	g := fixtureGrid()

	assert.Equal(t, 3.0, g.DailyTotal(date(2024, 6, 3)))
	assert.Equal(t, 1.5, g.DailyTotal(date(2024, 6, 4)))
	for d := 5; d <= 9; d++ {
		assert.Equal(t, 0.0, g.DailyTotal(date(2024, 6, d)), "day %d", d)
	}

	assert.Equal(t, 3.0, g.ProjectTotal("alpha"))
	assert.Equal(t, 1.5, g.ProjectTotal("beta"))
	assert.Equal(t, 4.5, g.WeekTotal())
}

func TestGridCrossAxisTotalsAgree(t *testing.T) {
	g := fixtureGrid()

	var byDay, byProject float64
	for _, d := range g.Week.Days() {
		byDay += g.DailyTotal(d)
	}
	for _, p := range g.Projects {
		byProject += g.ProjectTotal(p.ID)
	}

	assert.Equal(t, g.WeekTotal(), byDay)
	assert.Equal(t, g.WeekTotal(), byProject)
}

func TestGridEmptyCellIsZero(t *testing.T) {
	g := fixtureGrid()

	h := g.HoursAt("alpha", date(2024, 6, 7))
	assert.Equal(t, 0.0, h)
	assert.False(t, h != h, "must not be NaN")

	h = g.HoursAt("missing-project", date(2024, 6, 3))
	assert.Equal(t, 0.0, h)
}

func TestGridIgnoresTimeOfDay(t *testing.T) {
	g := fixtureGrid()

	assert.Equal(t, 3.0, g.HoursAt("alpha", time.Date(2024, 6, 3, 17, 45, 0, 0, time.UTC)))
}

func TestGridZeroInputs(t *testing.T) {
	week := WeekOf(date(2024, 6, 3), time.Monday)

	empty := NewGrid(week, nil, NewEntryStore())
	assert.Equal(t, 0.0, empty.WeekTotal())
	assert.Equal(t, 0.0, empty.DailyTotal(date(2024, 6, 3)))

	noEntries := NewGrid(week, []model.Project{{ID: "alpha"}}, NewEntryStore())
	assert.Equal(t, 0.0, noEntries.ProjectTotal("alpha"))
	assert.Equal(t, 0.0, noEntries.WeekTotal())
}

func TestFormatHours(t *testing.T) {
	assert.Equal(t, "-", FormatHours(0))
	assert.Equal(t, "2.5", FormatHours(2.5))
	assert.Equal(t, "3.0", FormatHours(3))
	assert.Equal(t, "1.3", FormatHours(1.34))
}
