package board

import (
	"context"
	"fmt"

	"github.com/existflow/tempo/internal/logger"
	"github.com/existflow/tempo/internal/model"
)

// TaskService is the mutation surface the mover needs from the API layer
type TaskService interface {
	UpdateTaskStatus(ctx context.Context, taskID string, status model.Status) error
}

// Mover validates and requests task status transitions. Any bucket may move
// to any other bucket; there is no workflow graph. The move is never applied
// locally: on success the moved hook fires and the owning view re-fetches.
type Mover struct {
	svc     TaskService
	onMoved func()
}

// NewMover creates a mover backed by the given service
func NewMover(svc TaskService) *Mover {
	return &Mover{svc: svc}
}

// OnMoved registers a refresh hook invoked after each successful transition
func (m *Mover) OnMoved(fn func()) {
	m.onMoved = fn
}

// Move requests a transition of task to the target bucket. Dropping a task
// onto its current bucket is suppressed locally: moved is false and no
// request is issued.
func (m *Mover) Move(ctx context.Context, task model.Task, target model.Status) (moved bool, err error) {
	if !target.Valid() {
		return false, fmt.Errorf("unknown status %q", target)
	}
	if target == task.Status {
		return false, nil
	}

	logger.Debug("Requesting status transition",
		logger.F("task", task.ID),
		logger.F("from", string(task.Status)),
		logger.F("to", string(target)))

	if err := m.svc.UpdateTaskStatus(ctx, task.ID, target); err != nil {
		logger.Error("Status transition failed", logger.F("task", task.ID), logger.F("error", err))
		return false, err
	}

	if m.onMoved != nil {
		m.onMoved()
	}
	return true, nil
}
