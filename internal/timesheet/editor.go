package timesheet

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/existflow/tempo/internal/logger"
	"github.com/existflow/tempo/internal/model"
)

// EditOp is the mutation a cell edit resolves to
type EditOp int

const (
	EditNone EditOp = iota
	EditCreate
	EditUpdate
	EditDelete
)

// String returns the operation name for logging
func (op EditOp) String() string {
	switch op {
	case EditCreate:
		return "create"
	case EditUpdate:
		return "update"
	case EditDelete:
		return "delete"
	default:
		return "none"
	}
}

// ParseHours validates raw cell input. It accepts a non-negative finite number;
// an empty or whitespace-only string counts as zero (clearing the cell).
func ParseHours(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	h, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", raw)
	}
	if math.IsNaN(h) || math.IsInf(h, 0) {
		return 0, fmt.Errorf("not a finite number: %q", raw)
	}
	if h < 0 {
		return 0, fmt.Errorf("hours cannot be negative: %q", raw)
	}
	return h, nil
}

// PlanEdit computes the mutation needed to set a (project, date) cell to hours.
// Setting an existing entry to its current value is detected as a no-op so no
// request is issued for it.
func PlanEdit(store *EntryStore, projectID string, date time.Time, hours float64) (EditOp, model.TimeEntry) {
	prior, exists := store.Find(projectID, date)
	switch {
	case !exists && hours == 0:
		return EditNone, model.TimeEntry{}
	case !exists:
		return EditCreate, model.TimeEntry{
			ProjectID: projectID,
			Date:      model.DayOf(date),
			Hours:     hours,
		}
	case hours == prior.Hours:
		return EditNone, prior
	case hours == 0:
		return EditDelete, prior
	default:
		updated := prior
		updated.Hours = hours
		return EditUpdate, updated
	}
}

// EntryService is the mutation surface the editor needs from the API layer
type EntryService interface {
	CreateEntry(ctx context.Context, entry model.TimeEntry) error
	UpdateEntry(ctx context.Context, entry model.TimeEntry) error
	DeleteEntry(ctx context.Context, id string) error
}

// Editor validates and applies grid cell edits. Mutations are never patched
// into the store locally: on success the applied hook fires and the owning
// view re-fetches, keeping the server the single source of truth.
type Editor struct {
	svc       EntryService
	onApplied func()
}

// NewEditor creates an editor backed by the given service
func NewEditor(svc EntryService) *Editor {
	return &Editor{svc: svc}
}

// OnApplied registers a refresh hook invoked after each successful mutation
func (e *Editor) OnApplied(fn func()) {
	e.onApplied = fn
}

// SetHours applies a cell edit given raw user input. It returns the operation
// that was performed; EditNone means no request was issued.
func (e *Editor) SetHours(ctx context.Context, store *EntryStore, projectID string, date time.Time, raw string) (EditOp, error) {
	hours, err := ParseHours(raw)
	if err != nil {
		return EditNone, err
	}

	op, entry := PlanEdit(store, projectID, date, hours)
	if op == EditNone {
		return EditNone, nil
	}

	logger.Debug("Applying cell edit",
		logger.F("op", op.String()),
		logger.F("project", projectID),
		logger.F("date", model.DayKey(date)),
		logger.F("hours", hours))

	switch op {
	case EditCreate:
		err = e.svc.CreateEntry(ctx, entry)
	case EditUpdate:
		err = e.svc.UpdateEntry(ctx, entry)
	case EditDelete:
		err = e.svc.DeleteEntry(ctx, entry.ID)
	}
	if err != nil {
		logger.Error("Cell edit failed", logger.F("op", op.String()), logger.F("error", err))
		return op, err
	}

	if e.onApplied != nil {
		e.onApplied()
	}
	return op, nil
}
