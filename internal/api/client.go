package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/existflow/tempo/internal/logger"
	"github.com/existflow/tempo/internal/model"
)

// Client is the HTTP client for the Tempo backend. It is a thin wrapper over
// the REST contract: every response is a JSON object with a "data" envelope
// containing the named collection.
type Client struct {
	session    *Session
	httpClient *http.Client
}

// NewClient creates a client bound to a session
func NewClient(session *Session) *Client {
	return &Client{
		session:    session,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Login authenticates with username and password and begins the session
func (c *Client) Login(ctx context.Context, username, password string) error {
	var out struct {
		Data struct {
			Token  string `json:"token"`
			UserID string `json:"user_id"`
		} `json:"data"`
	}
	body := map[string]string{"username": username, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/v1/login", body, &out); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	return c.session.Begin(out.Data.Token, out.Data.UserID)
}

// Logout tears the session down. The server-side revoke is best effort;
// local teardown happens regardless.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPost, "/api/v1/logout", nil, nil); err != nil {
		logger.Warn("Server-side logout failed", logger.F("error", err))
	}
	return c.session.End()
}

// Me returns the authenticated user
func (c *Client) Me(ctx context.Context) (model.User, error) {
	var out struct {
		Data struct {
			User model.User `json:"user"`
		} `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/me", nil, &out); err != nil {
		return model.User{}, err
	}
	return out.Data.User, nil
}

// Projects fetches the ordered project list
func (c *Client) Projects(ctx context.Context) ([]model.Project, error) {
	var out struct {
		Data struct {
			Projects []model.Project `json:"projects"`
		} `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/projects", nil, &out); err != nil {
		return nil, err
	}
	return out.Data.Projects, nil
}

// TimeEntries fetches the ordered entries for a (project, date-range) scope
func (c *Client) TimeEntries(ctx context.Context, scope Scope) ([]model.TimeEntry, error) {
	q := url.Values{}
	q.Set("project", scope.ProjectID)
	q.Set("from", scope.From.Format(model.DateFormat))
	q.Set("to", scope.To.Format(model.DateFormat))

	var out struct {
		Data struct {
			Entries []model.TimeEntry `json:"entries"`
		} `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/time-entries?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return out.Data.Entries, nil
}

// Tasks fetches the ordered top-level tasks of a project
func (c *Client) Tasks(ctx context.Context, scope Scope) ([]model.Task, error) {
	q := url.Values{}
	q.Set("project", scope.ProjectID)
	q.Set("top-level", "true")

	var out struct {
		Data struct {
			Tasks []model.Task `json:"tasks"`
		} `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/tasks?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return out.Data.Tasks, nil
}

// CreateEntry creates a time entry; the server assigns its identity
func (c *Client) CreateEntry(ctx context.Context, entry model.TimeEntry) error {
	return c.do(ctx, http.MethodPost, "/api/v1/time-entries", entryBody(entry), nil)
}

// UpdateEntry updates an existing time entry by identity
func (c *Client) UpdateEntry(ctx context.Context, entry model.TimeEntry) error {
	return c.do(ctx, http.MethodPut, "/api/v1/time-entries/"+entry.ID, entryBody(entry), nil)
}

// DeleteEntry deletes a time entry by identity
func (c *Client) DeleteEntry(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/time-entries/"+id, nil, nil)
}

// UpdateTaskStatus requests a status transition for a task
func (c *Client) UpdateTaskStatus(ctx context.Context, taskID string, status model.Status) error {
	body := map[string]string{"status": string(status)}
	return c.do(ctx, http.MethodPatch, "/api/v1/tasks/"+taskID+"/status", body, nil)
}

func entryBody(entry model.TimeEntry) map[string]interface{} {
	return map[string]interface{}{
		"project_id":  entry.ProjectID,
		"task_id":     entry.TaskID,
		"date":        entry.Date.Format(model.DateFormat),
		"hours":       entry.Hours,
		"description": entry.Description,
	}
}

// do executes a request against the backend and decodes the response into out.
// A 401 expires the session and notifies its observers.
func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.session.ServerURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if token := c.session.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		c.session.expire()
		return fmt.Errorf("not logged in")
	}
	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("request failed: %s", string(respBody))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
