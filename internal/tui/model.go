package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/existflow/tempo/internal/api"
	"github.com/existflow/tempo/internal/board"
	"github.com/existflow/tempo/internal/logger"
	"github.com/existflow/tempo/internal/model"
	"github.com/existflow/tempo/internal/timesheet"
)

// View represents which projection is on screen
type View int

const (
	ViewBoard View = iota
	ViewWeek
)

// Mode represents the current UI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeEditCell
	ModeHelp
)

// Model is the main TUI model
type Model struct {
	client    *api.Client
	session   *api.Session
	editor    *timesheet.Editor
	mover     *board.Mover
	weekStart time.Weekday

	// UI state
	width   int
	height  int
	view    View
	mode    Mode
	message string

	// Projects (grid rows, board scope)
	projects   []model.Project
	projCursor int

	// Board state
	tasks     []model.Task
	cols      board.Columns
	colCursor int
	rowCursor int

	// Week grid state
	week      timesheet.WeekWindow
	entries   *timesheet.EntryStore
	gridRow   int
	dayCursor int
	input     textinput.Model

	// In-flight fetch tracking: responses are applied only when their scope
	// still matches these, and superseded fetches are cancelled
	taskScope     api.Scope
	entryScope    api.Scope
	cancelTasks   context.CancelFunc
	cancelEntries context.CancelFunc

	expiredChan chan struct{}
	expired     bool
}

// NewModel creates the TUI model bound to a session-carrying client
func NewModel(client *api.Client, session *api.Session, weekStart time.Weekday) Model {
	logger.Info("Initializing TUI model")

	ti := textinput.New()
	ti.Placeholder = "hours"
	ti.CharLimit = 6
	ti.Width = 8

	m := Model{
		client:      client,
		session:     session,
		editor:      timesheet.NewEditor(client),
		mover:       board.NewMover(client),
		weekStart:   weekStart,
		view:        ViewBoard,
		mode:        ModeNormal,
		week:        timesheet.WeekOf(time.Now(), weekStart),
		entries:     timesheet.NewEntryStore(),
		input:       ti,
		expiredChan: make(chan struct{}, 1),
	}

	session.OnExpired(func() {
		// Non-blocking send; the TUI drains it into a message
		select {
		case m.expiredChan <- struct{}{}:
		default:
		}
	})

	return m
}

// currentProject returns the project the view is scoped to
func (m *Model) currentProject() *model.Project {
	if m.projCursor < len(m.projects) {
		return &m.projects[m.projCursor]
	}
	return nil
}

// currentBucket returns the status of the focused board column
func (m *Model) currentBucket() model.Status {
	return model.Statuses[m.colCursor]
}

// currentTask returns the focused task on the board
func (m *Model) currentTask() *model.Task {
	bucket := m.cols.Bucket(m.currentBucket())
	if m.rowCursor < len(bucket) {
		return &bucket[m.rowCursor]
	}
	return nil
}

// grid projects the held entries into the weekly matrix
func (m *Model) grid() timesheet.Grid {
	return timesheet.NewGrid(m.week, m.projects, m.entries)
}

// rescope recomputes both fetch scopes from the current project and week
func (m *Model) rescope() {
	proj := m.currentProject()
	if proj == nil {
		m.taskScope = api.Scope{}
		m.entryScope = api.Scope{}
		return
	}
	m.taskScope = api.ProjectScope(proj.ID)
	m.entryScope = api.RangeScope(proj.ID, m.week.Start, m.week.End())
}
