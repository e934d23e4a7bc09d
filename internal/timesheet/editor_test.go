package timesheet

import (
	"context"
	"testing"

	"github.com/existflow/tempo/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEntryService records mutations instead of issuing requests
type fakeEntryService struct {
	creates, updates, deletes int
	lastEntry                 model.TimeEntry
	lastDeletedID             string
	err                       error
}

func (f *fakeEntryService) CreateEntry(_ context.Context, e model.TimeEntry) error {
	f.creates++
	f.lastEntry = e
	return f.err
}

func (f *fakeEntryService) UpdateEntry(_ context.Context, e model.TimeEntry) error {
	f.updates++
	f.lastEntry = e
	return f.err
}

func (f *fakeEntryService) DeleteEntry(_ context.Context, id string) error {
	f.deletes++
	f.lastDeletedID = id
	return f.err
}

func (f *fakeEntryService) requests() int {
	return f.creates + f.updates + f.deletes
}

func TestParseHours(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    float64
		wantErr bool
	}{
		{"plain number", "2.5", 2.5, false},
		{"integer", "8", 8, false},
		{"zero", "0", 0, false},
		{"empty clears", "", 0, false},
		{"whitespace clears", "  ", 0, false},
		{"trimmed", " 1.5 ", 1.5, false},
		{"negative rejected", "-1", 0, true},
		{"garbage rejected", "2h30", 0, true},
		{"nan rejected", "NaN", 0, true},
		{"inf rejected", "Inf", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHours(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPlanEdit(t *testing.T) {
	store := NewEntryStore()
	store.Load([]model.TimeEntry{
		{ID: "e1", ProjectID: "alpha", Date: date(2024, 6, 3), Hours: 3},
		{ID: "e2", ProjectID: "alpha", Date: date(2024, 6, 5), Hours: 0},
	})

	tests := []struct {
		name    string
		project string
		day     int
		hours   float64
		wantOp  EditOp
	}{
		{"no entry, zero value", "alpha", 4, 0, EditNone},
		{"no entry, positive value", "alpha", 4, 2, EditCreate},
		{"existing entry, zero value", "alpha", 3, 0, EditDelete},
		{"existing entry, new value", "alpha", 3, 5, EditUpdate},
		{"existing entry, same value", "alpha", 3, 3, EditNone},
		{"zero-hours entry, zero value", "alpha", 5, 0, EditNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op, entry := PlanEdit(store, tt.project, date(2024, 6, tt.day), tt.hours)
			assert.Equal(t, tt.wantOp, op)

			switch op {
			case EditCreate:
				assert.Empty(t, entry.ID, "server assigns identity on create")
				assert.Equal(t, tt.hours, entry.Hours)
			case EditUpdate, EditDelete:
				assert.Equal(t, "e1", entry.ID)
			}
		})
	}
}

func TestEditorIdempotentEditIssuesNoRequest(t *testing.T) {
	store := NewEntryStore()
	store.Load([]model.TimeEntry{
		{ID: "e1", ProjectID: "alpha", Date: date(2024, 6, 3), Hours: 2.5},
	})

	svc := &fakeEntryService{}
	editor := NewEditor(svc)

	op, err := editor.SetHours(context.Background(), store, "alpha", date(2024, 6, 3), "2.5")
	require.NoError(t, err)
	assert.Equal(t, EditNone, op)
	assert.Zero(t, svc.requests())
}

func TestEditorRejectsInvalidInputLocally(t *testing.T) {
	svc := &fakeEntryService{}
	editor := NewEditor(svc)
	store := NewEntryStore()

	_, err := editor.SetHours(context.Background(), store, "alpha", date(2024, 6, 3), "lots")
	assert.Error(t, err)
	assert.Zero(t, svc.requests(), "validation errors never reach the network")
}

func TestEditorRoundTrip(t *testing.T) {
	svc := &fakeEntryService{}
	editor := NewEditor(svc)
	store := NewEntryStore()
	refreshed := 0
	editor.OnApplied(func() { refreshed++ })

	day := date(2024, 6, 3)

	// Create 2.5h on an empty cell
	op, err := editor.SetHours(context.Background(), store, "alpha", day, "2.5")
	require.NoError(t, err)
	assert.Equal(t, EditCreate, op)
	assert.Equal(t, 2.5, svc.lastEntry.Hours)
	assert.Equal(t, 1, refreshed)

	// Simulate the re-fetch the hook triggers
	store.Load([]model.TimeEntry{
		{ID: "e1", ProjectID: "alpha", Date: day, Hours: 2.5},
	})
	g := NewGrid(WeekOf(day, day.Weekday()), []model.Project{{ID: "alpha"}}, store)
	assert.Equal(t, 2.5, g.HoursAt("alpha", day))

	// Editing to 0 deletes
	op, err = editor.SetHours(context.Background(), store, "alpha", day, "0")
	require.NoError(t, err)
	assert.Equal(t, EditDelete, op)
	assert.Equal(t, "e1", svc.lastDeletedID)
	assert.Equal(t, 2, refreshed)

	store.Load(nil)
	assert.Equal(t, 0.0, g.HoursAt("alpha", day))
}

func TestEditorFailureLeavesStoreUntouched(t *testing.T) {
	store := NewEntryStore()
	store.Load([]model.TimeEntry{
		{ID: "e1", ProjectID: "alpha", Date: date(2024, 6, 3), Hours: 3},
	})

	svc := &fakeEntryService{err: assert.AnError}
	editor := NewEditor(svc)
	refreshed := false
	editor.OnApplied(func() { refreshed = true })

	_, err := editor.SetHours(context.Background(), store, "alpha", date(2024, 6, 3), "5")
	assert.Error(t, err)
	assert.False(t, refreshed, "failed mutations must not trigger a refresh")

	// Pre-edit data still projected
	e, ok := store.Find("alpha", date(2024, 6, 3))
	require.True(t, ok)
	assert.Equal(t, 3.0, e.Hours)
}

func TestEntryStoreLoadReplaces(t *testing.T) {
	store := NewEntryStore()
	store.Load([]model.TimeEntry{
		{ID: "e1", ProjectID: "alpha", Date: date(2024, 6, 3), Hours: 3},
	})
	store.Load([]model.TimeEntry{
		{ID: "e2", ProjectID: "beta", Date: date(2024, 6, 4), Hours: 1},
	})

	_, ok := store.Find("alpha", date(2024, 6, 3))
	assert.False(t, ok, "a fresh fetch fully replaces prior state")

	e, ok := store.Find("beta", date(2024, 6, 4))
	require.True(t, ok)
	assert.Equal(t, "e2", e.ID)
	assert.Equal(t, 1, store.Len())
}
