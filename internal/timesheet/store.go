package timesheet

import (
	"time"

	"github.com/existflow/tempo/internal/model"
)

// EntryStore holds the current page of fetched time entries for one view scope.
// It is a passive cache: Load fully replaces the previous page, there is no
// merge and no eviction. The view re-fetches whenever its scope changes.
type EntryStore struct {
	entries []model.TimeEntry
	byCell  map[string]int // (project, day) -> index into entries
}

// NewEntryStore creates an empty store
func NewEntryStore() *EntryStore {
	return &EntryStore{byCell: map[string]int{}}
}

func cellKey(projectID string, date time.Time) string {
	return projectID + "|" + model.DayKey(date)
}

// Load replaces the held collection with a fresh fetch
func (s *EntryStore) Load(entries []model.TimeEntry) {
	s.entries = entries
	s.byCell = make(map[string]int, len(entries))
	for i, e := range entries {
		s.byCell[cellKey(e.ProjectID, e.Date)] = i
	}
}

// Find returns the single entry for a (project, date) pair, if present.
// Time-of-day on date is ignored.
func (s *EntryStore) Find(projectID string, date time.Time) (model.TimeEntry, bool) {
	i, ok := s.byCell[cellKey(projectID, date)]
	if !ok {
		return model.TimeEntry{}, false
	}
	return s.entries[i], true
}

// All returns the held entries in fetch order
func (s *EntryStore) All() []model.TimeEntry {
	return s.entries
}

// Len returns the number of held entries
func (s *EntryStore) Len() int {
	return len(s.entries)
}
