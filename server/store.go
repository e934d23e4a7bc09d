package server

import (
	"fmt"
	"sync"
	"time"

	"github.com/existflow/tempo/internal/model"
	"github.com/google/uuid"
)

// Store is the devserver's in-memory dataset. It exists so the client has a
// real contract to talk to during development and integration tests; nothing
// is persisted across restarts.
type Store struct {
	mu       sync.Mutex
	tokens   map[string]string // token -> user id
	users    map[string]model.User
	projects []model.Project
	entries  []model.TimeEntry
	tasks    []model.Task
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		tokens: map[string]string{},
		users:  map[string]model.User{},
	}
}

// Login accepts any username/password pair and issues a token. The devserver
// does not model real credentials.
func (s *Store) Login(username string) (token, userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	userID = "user-" + username
	if _, ok := s.users[userID]; !ok {
		s.users[userID] = model.User{
			ID:        userID,
			Username:  username,
			Email:     username + "@example.com",
			CreatedAt: time.Now(),
		}
	}
	token = uuid.NewString()
	s.tokens[token] = userID
	return token, userID
}

// Logout revokes a token
func (s *Store) Logout(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
}

// UserForToken resolves a bearer token to a user
func (s *Store) UserForToken(token string) (model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	userID, ok := s.tokens[token]
	if !ok {
		return model.User{}, false
	}
	return s.users[userID], true
}

// ProjectsFor returns the projects visible to a user, in stable order. A
// project with no member list is visible to everyone.
func (s *Store) ProjectsFor(userID string) []model.Project {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []model.Project{}
	for _, p := range s.projects {
		if len(p.Members) > 0 && !p.HasMember(userID) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// EntriesInRange returns entries for a project whose date falls in [from, to],
// in creation order
func (s *Store) EntriesInRange(projectID string, from, to time.Time) []model.TimeEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []model.TimeEntry
	for _, e := range s.entries {
		if e.ProjectID != projectID {
			continue
		}
		if e.Date.Before(from) || e.Date.After(to) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// CreateEntry stores a new entry and assigns its identity
func (s *Store) CreateEntry(entry model.TimeEntry) model.TimeEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry.ID = uuid.NewString()
	entry.CreatedAt = time.Now()
	entry.UpdatedAt = entry.CreatedAt
	s.entries = append(s.entries, entry)
	return entry
}

// UpdateEntry replaces an entry's mutable fields by identity
func (s *Store) UpdateEntry(id string, entry model.TimeEntry) (model.TimeEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.entries {
		if s.entries[i].ID == id {
			s.entries[i].Date = entry.Date
			s.entries[i].Hours = entry.Hours
			s.entries[i].Description = entry.Description
			s.entries[i].UpdatedAt = time.Now()
			return s.entries[i], nil
		}
	}
	return model.TimeEntry{}, fmt.Errorf("entry %s not found", id)
}

// DeleteEntry removes an entry by identity
func (s *Store) DeleteEntry(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.entries {
		if s.entries[i].ID == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("entry %s not found", id)
}

// Tasks returns a project's tasks in creation order, optionally restricted to
// top-level tasks
func (s *Store) Tasks(projectID string, topLevelOnly bool) []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []model.Task
	for _, t := range s.tasks {
		if t.ProjectID != projectID {
			continue
		}
		if topLevelOnly && t.IsSubtask() {
			continue
		}
		out = append(out, t)
	}
	return out
}

// SetTaskStatus updates a task's status by identity
func (s *Store) SetTaskStatus(id string, status model.Status) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i].Status = status
			s.tasks[i].UpdatedAt = time.Now()
			return s.tasks[i], nil
		}
	}
	return model.Task{}, fmt.Errorf("task %s not found", id)
}

// Seed loads demo projects, tasks and entries for local development
func (s *Store) Seed() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	// Entry dates must be UTC day-truncated to match the wire format the
	// range queries parse
	week := model.DayOf(now.UTC())

	s.projects = []model.Project{
		{ID: "proj-atlas", Name: "Atlas", Color: "#4ECDC4", CreatedAt: now, UpdatedAt: now},
		{ID: "proj-borealis", Name: "Borealis", Color: "#FFB347", CreatedAt: now, UpdatedAt: now},
	}

	titles := []struct {
		title  string
		status model.Status
	}{
		{"Wire up login screen", model.StatusOpen},
		{"Weekly grid keyboard navigation", model.StatusInProgress},
		{"Review board column rendering", model.StatusInReview},
		{"Ship status transitions", model.StatusClosed},
		{"Spike on report exports", model.StatusOpen},
	}
	for i, tt := range titles {
		task := model.NewTask(uuid.NewString(), "proj-atlas", tt.title)
		task.Status = tt.status
		task.Priority = 1 + i%4
		s.tasks = append(s.tasks, task)
	}

	sub := model.NewTask(uuid.NewString(), "proj-atlas", "Draft grid focus styles")
	sub.ParentID = s.tasks[1].ID
	s.tasks = append(s.tasks, sub)

	for i, hours := range []float64{3, 1.5, 2.5} {
		s.entries = append(s.entries, model.NewTimeEntry(
			uuid.NewString(), "proj-atlas", week.AddDate(0, 0, -i), hours))
	}
}
