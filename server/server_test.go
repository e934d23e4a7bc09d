package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/existflow/tempo/internal/api"
	"github.com/existflow/tempo/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func devClient(t *testing.T) (*api.Client, *httptest.Server) {
	t.Helper()
	srv := New(true)
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)

	session := &api.Session{ServerURL: ts.URL}
	client := api.NewClient(session)
	require.NoError(t, client.Login(context.Background(), "dev", "dev"))
	return client, ts
}

func TestRequestsWithoutTokenAreRejected(t *testing.T) {
	srv := New(false)
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/v1/projects")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLoginAndListProjects(t *testing.T) {
	client, _ := devClient(t)

	projects, err := client.Projects(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "Atlas", projects[0].Name)
}

func TestEntryLifecycle(t *testing.T) {
	client, _ := devClient(t)
	ctx := context.Background()

	day := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	scope := api.RangeScope("proj-atlas", day, day.AddDate(0, 0, 6))

	entry := model.TimeEntry{ProjectID: "proj-atlas", Date: day, Hours: 2.5}
	require.NoError(t, client.CreateEntry(ctx, entry))

	entries, err := client.TimeEntries(ctx, scope)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 2.5, entries[0].Hours)
	assert.NotEmpty(t, entries[0].ID, "server assigns identity")

	created := entries[0]
	created.Hours = 4
	require.NoError(t, client.UpdateEntry(ctx, created))

	entries, err = client.TimeEntries(ctx, scope)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 4.0, entries[0].Hours)

	require.NoError(t, client.DeleteEntry(ctx, created.ID))

	entries, err = client.TimeEntries(ctx, scope)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDeleteMissingEntryFails(t *testing.T) {
	client, _ := devClient(t)

	err := client.DeleteEntry(context.Background(), "nope")
	assert.Error(t, err)
}

func TestTasksTopLevelFilter(t *testing.T) {
	client, _ := devClient(t)

	tasks, err := client.Tasks(context.Background(), api.ProjectScope("proj-atlas"))
	require.NoError(t, err)
	require.NotEmpty(t, tasks)
	for _, tk := range tasks {
		assert.False(t, tk.IsSubtask(), "top-level fetches exclude subtasks")
	}
}

func TestTaskStatusTransition(t *testing.T) {
	client, _ := devClient(t)
	ctx := context.Background()

	tasks, err := client.Tasks(ctx, api.ProjectScope("proj-atlas"))
	require.NoError(t, err)
	require.NotEmpty(t, tasks)

	target := tasks[0]
	require.NoError(t, client.UpdateTaskStatus(ctx, target.ID, model.StatusInReview))

	tasks, err = client.Tasks(ctx, api.ProjectScope("proj-atlas"))
	require.NoError(t, err)
	for _, tk := range tasks {
		if tk.ID == target.ID {
			assert.Equal(t, model.StatusInReview, tk.Status)
		}
	}

	err = client.UpdateTaskStatus(ctx, target.ID, model.Status("archived"))
	assert.Error(t, err, "the backend rejects statuses outside the fixed set")
}

func TestLogoutRevokesToken(t *testing.T) {
	client, _ := devClient(t)
	ctx := context.Background()

	require.NoError(t, client.Logout(ctx))

	_, err := client.Projects(ctx)
	assert.Error(t, err)
}

func TestSeedEntriesMatchWireDateWindow(t *testing.T) {
	store := NewStore()
	store.Seed()

	for _, e := range store.entries {
		wire, err := time.Parse(model.DateFormat, e.Date.Format(model.DateFormat))
		require.NoError(t, err)
		assert.True(t, e.Date.Equal(wire),
			"seed dates must be UTC day-truncated so range queries find them")
	}

	today := time.Now().UTC()
	from, err := time.Parse(model.DateFormat, today.AddDate(0, 0, -6).Format(model.DateFormat))
	require.NoError(t, err)
	to, err := time.Parse(model.DateFormat, today.Format(model.DateFormat))
	require.NoError(t, err)

	assert.Len(t, store.EntriesInRange("proj-atlas", from, to), 3)
}

func TestMemberRestrictedProjectsAreHidden(t *testing.T) {
	store := NewStore()
	store.Seed()
	store.projects = append(store.projects, model.Project{
		ID:      "proj-crew",
		Name:    "Crew",
		Members: []string{"user-ana"},
	})

	var ids []string
	for _, p := range store.ProjectsFor("user-dev") {
		ids = append(ids, p.ID)
	}
	assert.Contains(t, ids, "proj-atlas", "open projects stay visible to everyone")
	assert.NotContains(t, ids, "proj-crew")

	ids = ids[:0]
	for _, p := range store.ProjectsFor("user-ana") {
		ids = append(ids, p.ID)
	}
	assert.Contains(t, ids, "proj-crew")
}
