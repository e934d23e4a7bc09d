package api

import (
	"time"

	"github.com/existflow/tempo/internal/model"
)

// Scope identifies what a fetch was issued for: a (project, date-range) pair
// for time entries, or a bare project for tasks. Views tag every in-flight
// fetch with its scope and discard responses whose scope no longer matches
// the current view, so a late response can never clobber a newer one.
type Scope struct {
	ProjectID string
	From      time.Time
	To        time.Time
}

// ProjectScope is the scope of a task fetch
func ProjectScope(projectID string) Scope {
	return Scope{ProjectID: projectID}
}

// RangeScope is the scope of a time-entry fetch
func RangeScope(projectID string, from, to time.Time) Scope {
	return Scope{ProjectID: projectID, From: model.DayOf(from), To: model.DayOf(to)}
}

// Key returns a comparable identity for the scope
func (s Scope) Key() string {
	if s.From.IsZero() {
		return s.ProjectID
	}
	return s.ProjectID + "|" + model.DayKey(s.From) + "|" + model.DayKey(s.To)
}

// Matches reports whether two scopes identify the same view state
func (s Scope) Matches(other Scope) bool {
	return s.Key() == other.Key()
}
