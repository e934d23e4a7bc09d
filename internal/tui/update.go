package tui

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/existflow/tempo/internal/api"
	"github.com/existflow/tempo/internal/board"
	"github.com/existflow/tempo/internal/logger"
	"github.com/existflow/tempo/internal/model"
	"github.com/existflow/tempo/internal/timesheet"
)

// projectsMsg carries the fetched project list
type projectsMsg struct {
	projects []model.Project
	err      error
}

// entriesMsg carries a time-entry fetch tagged with the scope it was issued for
type entriesMsg struct {
	scope   api.Scope
	entries []model.TimeEntry
	err     error
}

// tasksMsg carries a task fetch tagged with the scope it was issued for
type tasksMsg struct {
	scope api.Scope
	tasks []model.Task
	err   error
}

// entrySavedMsg reports the outcome of a cell edit
type entrySavedMsg struct {
	op  timesheet.EditOp
	err error
}

// taskMovedMsg reports the outcome of a status transition
type taskMovedMsg struct {
	moved  bool
	target model.Status
	err    error
}

// sessionExpiredMsg is published when the backend rejects our credentials
type sessionExpiredMsg struct{}

// Init fetches the project list and starts listening for session expiry
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetchProjects(), m.waitForExpiry())
}

func (m Model) fetchProjects() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		projects, err := client.Projects(context.Background())
		return projectsMsg{projects: projects, err: err}
	}
}

// fetchEntries issues a scope-tagged fetch, cancelling any superseded one
func (m *Model) fetchEntries() tea.Cmd {
	if m.cancelEntries != nil {
		m.cancelEntries()
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.cancelEntries = cancel

	client := m.client
	scope := m.entryScope
	return func() tea.Msg {
		entries, err := client.TimeEntries(ctx, scope)
		return entriesMsg{scope: scope, entries: entries, err: err}
	}
}

// fetchTasks issues a scope-tagged fetch, cancelling any superseded one
func (m *Model) fetchTasks() tea.Cmd {
	if m.cancelTasks != nil {
		m.cancelTasks()
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.cancelTasks = cancel

	client := m.client
	scope := m.taskScope
	return func() tea.Msg {
		tasks, err := client.Tasks(ctx, scope)
		return tasksMsg{scope: scope, tasks: tasks, err: err}
	}
}

func (m Model) waitForExpiry() tea.Cmd {
	ch := m.expiredChan
	return func() tea.Msg {
		<-ch
		return sessionExpiredMsg{}
	}
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case projectsMsg:
		if msg.err != nil {
			m.message = fmt.Sprintf("Failed to load projects: %v", msg.err)
			return m, nil
		}
		m.projects = msg.projects
		if m.projCursor >= len(m.projects) {
			m.projCursor = 0
		}
		m.rescope()
		return m, tea.Batch(m.fetchTasks(), m.fetchEntries())

	case entriesMsg:
		if !msg.scope.Matches(m.entryScope) {
			// Stale response from a superseded scope; the view moved on
			logger.Debug("Discarding stale entry fetch", logger.F("scope", msg.scope.Key()))
			return m, nil
		}
		if msg.err != nil {
			// Keep showing the previous projection rather than clearing it
			m.message = fmt.Sprintf("Failed to load entries: %v", msg.err)
			return m, nil
		}
		m.entries.Load(msg.entries)
		return m, nil

	case tasksMsg:
		if !msg.scope.Matches(m.taskScope) {
			logger.Debug("Discarding stale task fetch", logger.F("scope", msg.scope.Key()))
			return m, nil
		}
		if msg.err != nil {
			m.message = fmt.Sprintf("Failed to load tasks: %v", msg.err)
			return m, nil
		}
		m.tasks = msg.tasks
		m.cols = board.Partition(msg.tasks)
		m.clampBoardCursor()
		return m, nil

	case entrySavedMsg:
		if msg.err != nil {
			m.message = fmt.Sprintf("Edit failed: %v", msg.err)
			return m, nil
		}
		switch msg.op {
		case timesheet.EditNone:
			m.message = "No change"
			return m, nil
		case timesheet.EditDelete:
			m.message = "Entry cleared"
		default:
			m.message = "Hours saved"
		}
		// Server confirmed; re-fetch instead of patching locally
		return m, m.fetchEntries()

	case taskMovedMsg:
		if msg.err != nil {
			m.message = fmt.Sprintf("Move failed: %v", msg.err)
			return m, nil
		}
		if !msg.moved {
			return m, nil
		}
		m.message = fmt.Sprintf("Moved to %s", msg.target.Label())
		return m, m.fetchTasks()

	case sessionExpiredMsg:
		m.expired = true
		m.message = "Session expired - run 'tempo login'"
		return m, tea.Quit

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case ModeEditCell:
			return m.updateEditCell(msg)
		case ModeHelp:
			m.mode = ModeNormal
			return m, nil
		}
		return m.handleNormalKeys(msg)
	}

	return m, nil
}

// handleNormalKeys handles key presses in normal mode
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Tab):
		if m.view == ViewBoard {
			m.view = ViewWeek
		} else {
			m.view = ViewBoard
		}

	case key.Matches(msg, keys.Up):
		m.handleUp()

	case key.Matches(msg, keys.Down):
		m.handleDown()

	case key.Matches(msg, keys.Left):
		m.handleLeft()

	case key.Matches(msg, keys.Right):
		m.handleRight()

	case key.Matches(msg, keys.Project):
		return m.cycleProject()

	case key.Matches(msg, keys.PrevWeek):
		if m.view == ViewWeek {
			m.week = m.week.Prev()
			return m.rescopeEntries()
		}

	case key.Matches(msg, keys.NextWeek):
		if m.view == ViewWeek {
			m.week = m.week.Next()
			return m.rescopeEntries()
		}

	case key.Matches(msg, keys.Today):
		if m.view == ViewWeek {
			m.week = timesheet.WeekOf(time.Now(), m.weekStart)
			return m.rescopeEntries()
		}

	case key.Matches(msg, keys.MoveLeft):
		return m.moveTask(-1)

	case key.Matches(msg, keys.MoveRight):
		return m.moveTask(1)

	case msg.String() == "1", msg.String() == "2", msg.String() == "3", msg.String() == "4":
		// Direct-to-column transition, same controller as a drag would use
		return m.moveTaskTo(model.Statuses[int(msg.String()[0]-'1')])

	case key.Matches(msg, keys.Enter):
		if m.view == ViewWeek {
			return m.startEditCell()
		}

	case key.Matches(msg, keys.Refresh):
		m.message = "Refreshing..."
		return m, tea.Batch(m.fetchTasks(), m.fetchEntries())

	case key.Matches(msg, keys.Help):
		m.mode = ModeHelp
	}

	return m, nil
}

func (m *Model) handleUp() {
	switch m.view {
	case ViewBoard:
		if m.rowCursor > 0 {
			m.rowCursor--
		}
	case ViewWeek:
		if m.gridRow > 0 {
			m.gridRow--
		}
	}
}

func (m *Model) handleDown() {
	switch m.view {
	case ViewBoard:
		if m.rowCursor < len(m.cols.Bucket(m.currentBucket()))-1 {
			m.rowCursor++
		}
	case ViewWeek:
		if m.gridRow < len(m.projects)-1 {
			m.gridRow++
		}
	}
}

func (m *Model) handleLeft() {
	switch m.view {
	case ViewBoard:
		if m.colCursor > 0 {
			m.colCursor--
			m.clampBoardCursor()
		}
	case ViewWeek:
		if m.dayCursor > 0 {
			m.dayCursor--
		}
	}
}

func (m *Model) handleRight() {
	switch m.view {
	case ViewBoard:
		if m.colCursor < len(model.Statuses)-1 {
			m.colCursor++
			m.clampBoardCursor()
		}
	case ViewWeek:
		if m.dayCursor < 6 {
			m.dayCursor++
		}
	}
}

func (m *Model) clampBoardCursor() {
	if n := len(m.cols.Bucket(m.currentBucket())); m.rowCursor >= n {
		m.rowCursor = n - 1
	}
	if m.rowCursor < 0 {
		m.rowCursor = 0
	}
}

// cycleProject switches the view to the next project and re-fetches both
// collections under the new scope
func (m Model) cycleProject() (tea.Model, tea.Cmd) {
	if len(m.projects) == 0 {
		return m, nil
	}
	m.projCursor = (m.projCursor + 1) % len(m.projects)
	m.rowCursor = 0
	m.rescope()
	m.message = fmt.Sprintf("Project: %s", m.projects[m.projCursor].Name)
	return m, tea.Batch(m.fetchTasks(), m.fetchEntries())
}

// rescopeEntries re-fetches entries after week navigation
func (m Model) rescopeEntries() (tea.Model, tea.Cmd) {
	m.rescope()
	return m, m.fetchEntries()
}

// moveTask requests a transition to the column delta steps away
func (m Model) moveTask(delta int) (tea.Model, tea.Cmd) {
	if m.view != ViewBoard {
		return m, nil
	}
	target := m.colCursor + delta
	if target < 0 || target >= len(model.Statuses) {
		return m, nil
	}
	return m.moveTaskTo(model.Statuses[target])
}

// moveTaskTo requests a transition of the focused task to the target bucket
func (m Model) moveTaskTo(target model.Status) (tea.Model, tea.Cmd) {
	if m.view != ViewBoard {
		return m, nil
	}
	task := m.currentTask()
	if task == nil {
		return m, nil
	}

	mover := m.mover
	moved := *task
	return m, func() tea.Msg {
		ok, err := mover.Move(context.Background(), moved, target)
		return taskMovedMsg{moved: ok, target: target, err: err}
	}
}

// startEditCell opens the hours input over the focused grid cell
func (m Model) startEditCell() (tea.Model, tea.Cmd) {
	if m.gridRow >= len(m.projects) {
		return m, nil
	}
	proj := m.projects[m.gridRow]
	day := m.week.Days()[m.dayCursor]

	m.mode = ModeEditCell
	m.input.SetValue("")
	if e, ok := m.entries.Find(proj.ID, day); ok {
		// Prefill the exact stored value, not the rounded display form, so
		// saving an untouched cell stays a no-op
		m.input.SetValue(strconv.FormatFloat(e.Hours, 'f', -1, 64))
	}
	m.input.Focus()
	return m, textinput.Blink
}

// updateEditCell handles keys while the hours input is open
func (m Model) updateEditCell(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Escape):
		m.mode = ModeNormal
		m.input.Blur()
		return m, nil

	case key.Matches(msg, keys.Enter):
		m.mode = ModeNormal
		m.input.Blur()

		proj := m.projects[m.gridRow]
		day := m.week.Days()[m.dayCursor]
		raw := m.input.Value()

		// Validate locally before anything touches the network
		if _, err := timesheet.ParseHours(raw); err != nil {
			m.message = fmt.Sprintf("Invalid hours: %v", err)
			return m, nil
		}

		editor := m.editor
		store := m.entries
		return m, func() tea.Msg {
			op, err := editor.SetHours(context.Background(), store, proj.ID, day, raw)
			return entrySavedMsg{op: op, err: err}
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}
