package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/existflow/tempo/internal/api"
	"github.com/existflow/tempo/internal/model"
	"github.com/existflow/tempo/internal/timesheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testModel(t *testing.T) Model {
	t.Helper()
	session := &api.Session{ServerURL: "http://127.0.0.1:0"}
	m := NewModel(api.NewClient(session), session, time.Monday)
	m.width = 80
	m.height = 24
	return m
}

func deliver(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	updated, _ := m.Update(msg)
	next, ok := updated.(Model)
	require.True(t, ok)
	return next
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestStaleEntryFetchIsDiscarded(t *testing.T) {
	m := testModel(t)
	m = deliver(t, m, projectsMsg{projects: []model.Project{{ID: "p1", Name: "Atlas"}}})
	m = deliver(t, m, tea.KeyMsg{Type: tea.KeyTab})

	oldScope := m.entryScope
	m = deliver(t, m, keyRune(']'))
	require.False(t, oldScope.Matches(m.entryScope), "week navigation must change the scope")

	// A late response for the week we navigated away from must not land
	m = deliver(t, m, entriesMsg{
		scope:   oldScope,
		entries: []model.TimeEntry{{ID: "e1", ProjectID: "p1", Date: m.week.Prev().Start, Hours: 4}},
	})
	assert.Equal(t, 0, m.entries.Len(), "stale response must leave the store untouched")

	// The response for the current scope still applies
	m = deliver(t, m, entriesMsg{
		scope:   m.entryScope,
		entries: []model.TimeEntry{{ID: "e2", ProjectID: "p1", Date: m.week.Start, Hours: 2}},
	})
	assert.Equal(t, 1, m.entries.Len())
}

func TestStaleTaskFetchIsDiscarded(t *testing.T) {
	m := testModel(t)
	m = deliver(t, m, projectsMsg{projects: []model.Project{
		{ID: "p1", Name: "Atlas"},
		{ID: "p2", Name: "Borealis"},
	}})

	oldScope := m.taskScope
	m = deliver(t, m, keyRune('p'))
	require.False(t, oldScope.Matches(m.taskScope))

	m = deliver(t, m, tasksMsg{
		scope: oldScope,
		tasks: []model.Task{{ID: "t1", ProjectID: "p1", Title: "Late", Status: model.StatusOpen}},
	})
	assert.Equal(t, 0, m.cols.Placed(), "stale response must not repopulate the board")

	m = deliver(t, m, tasksMsg{
		scope: m.taskScope,
		tasks: []model.Task{{ID: "t2", ProjectID: "p2", Title: "Current", Status: model.StatusOpen}},
	})
	assert.Equal(t, 1, m.cols.Placed())
}

func TestEditModalPrefillsExactHours(t *testing.T) {
	m := testModel(t)
	m = deliver(t, m, projectsMsg{projects: []model.Project{{ID: "p1", Name: "Atlas"}}})

	day := m.week.Days()[2]
	m.entries.Load([]model.TimeEntry{
		{ID: "e1", ProjectID: "p1", Date: day, Hours: 2.25},
	})
	m.dayCursor = 2

	updated, _ := m.startEditCell()
	m = updated.(Model)
	require.Equal(t, ModeEditCell, m.mode)
	assert.Equal(t, "2.25", m.input.Value(), "prefill must carry the stored value, not the display rounding")

	// Saving the untouched prefill resolves to no request at all
	hours, err := timesheet.ParseHours(m.input.Value())
	require.NoError(t, err)
	op, _ := timesheet.PlanEdit(m.entries, "p1", day, hours)
	assert.Equal(t, timesheet.EditNone, op)
}

func TestEditModalPrefillForZeroHoursEntryIsSaveable(t *testing.T) {
	m := testModel(t)
	m = deliver(t, m, projectsMsg{projects: []model.Project{{ID: "p1", Name: "Atlas"}}})

	day := m.week.Days()[0]
	m.entries.Load([]model.TimeEntry{
		{ID: "e1", ProjectID: "p1", Date: day, Hours: 0},
	})

	updated, _ := m.startEditCell()
	m = updated.(Model)
	assert.Equal(t, "0", m.input.Value())

	hours, err := timesheet.ParseHours(m.input.Value())
	require.NoError(t, err)
	op, _ := timesheet.PlanEdit(m.entries, "p1", day, hours)
	assert.Equal(t, timesheet.EditNone, op, "an untouched zero cell must not issue a delete")
}
