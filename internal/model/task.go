package model

import "time"

// Status is the fixed set of task workflow states
type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in-progress"
	StatusInReview   Status = "in-review"
	StatusClosed     Status = "closed"
)

// Statuses lists every recognized status in board column order
var Statuses = []Status{StatusOpen, StatusInProgress, StatusInReview, StatusClosed}

// Valid reports whether s is one of the recognized statuses
func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusInReview, StatusClosed:
		return true
	}
	return false
}

// Label returns the display name for a status column
func (s Status) Label() string {
	switch s {
	case StatusOpen:
		return "Open"
	case StatusInProgress:
		return "In Progress"
	case StatusInReview:
		return "In Review"
	case StatusClosed:
		return "Closed"
	default:
		return string(s)
	}
}

// Priority levels for tasks
const (
	PriorityUrgent = 1 // Red - Urgent
	PriorityHigh   = 2 // Orange - High
	PriorityMedium = 3 // Yellow - Medium
	PriorityLow    = 4 // Blue - Low (default)
)

// Task represents a single work item fetched from the server
type Task struct {
	ID             string     `json:"id"`
	ProjectID      string     `json:"project_id"`
	Title          string     `json:"title"`
	Description    string     `json:"description,omitempty"`
	Status         Status     `json:"status"`
	Priority       int        `json:"priority"`
	Assignees      []string   `json:"assignees,omitempty"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	ParentID       string     `json:"parent_id,omitempty"`
	EstimatedHours float64    `json:"estimated_hours,omitempty"`
	ActualHours    float64    `json:"actual_hours,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// NewTask creates a new task with defaults
func NewTask(id, projectID, title string) Task {
	now := time.Now()
	return Task{
		ID:        id,
		ProjectID: projectID,
		Title:     title,
		Status:    StatusOpen,
		Priority:  PriorityLow,
		Assignees: []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsSubtask reports whether the task has a parent; subtasks never appear in board columns
func (t *Task) IsSubtask() bool {
	return t.ParentID != ""
}

// IsOverdue returns true if the task is past its due date
func (t *Task) IsOverdue() bool {
	if t.DueDate == nil {
		return false
	}
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return t.DueDate.Before(today)
}
