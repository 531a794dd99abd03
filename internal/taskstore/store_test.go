package taskstore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syncflow/dashboard/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(context.Background(), "")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func newTestTasks(t *testing.T, now time.Time) *Tasks {
	t.Helper()
	tasks := NewTasks(newTestStore(t))
	tasks.now = func() time.Time { return now }
	return tasks
}

func TestStore_SlotRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, ok, err := s.Load(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Save(ctx, "a", []byte(`[1]`)))
	require.NoError(t, s.Save(ctx, "a", []byte(`[1,2]`)))

	v, ok, err := s.Load(ctx, "a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[1,2]`, string(v), "save replaces the slot")
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "syncflow.duckdb")
	ctx := context.Background()

	s, err := NewStore(ctx, path)
	require.NoError(t, err)
	created, err := NewTasks(s).Create(ctx, model.Task{Name: "Rotate keys"})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = NewStore(ctx, path)
	require.NoError(t, err)
	defer s.Close()

	tasks, err := NewTasks(s).List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Task{created}, tasks)
}

func TestTasks_EmptyList(t *testing.T) {
	tasks := newTestTasks(t, time.Now())

	list, err := tasks.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestTasks_CRUD(t *testing.T) {
	now := time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC)
	tasks := newTestTasks(t, now)
	ctx := context.Background()

	a, err := tasks.Create(ctx, model.Task{Name: "Audit firewall", AssigneeID: "123456789", Deadline: "2024-05-10"})
	require.NoError(t, err)
	assert.Equal(t, now.UnixMilli(), a.ID)

	b, err := tasks.Create(ctx, model.Task{Name: "Patch servers"})
	require.NoError(t, err)
	assert.Equal(t, a.ID+1, b.ID, "ids stay unique within the same millisecond")

	a.Description = "quarterly"
	require.NoError(t, tasks.Update(ctx, a))

	list, err := tasks.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Task{a, b}, list)

	require.NoError(t, tasks.Delete(ctx, a.ID))
	list, err = tasks.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Task{b}, list)
}

func TestTasks_NotFound(t *testing.T) {
	tasks := newTestTasks(t, time.Now())
	ctx := context.Background()

	assert.ErrorIs(t, tasks.Update(ctx, model.Task{ID: 42, Name: "x"}), ErrNotFound)
	assert.ErrorIs(t, tasks.Delete(ctx, 42), ErrNotFound)
}

func TestTasks_Validation(t *testing.T) {
	tasks := newTestTasks(t, time.Now())
	ctx := context.Background()

	for name, task := range map[string]model.Task{
		"blank name":       {Name: "  "},
		"unknown assignee": {Name: "x", AssigneeID: "999"},
		"bad deadline":     {Name: "x", Deadline: "10/05/2024"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := tasks.Create(ctx, task)
			assert.ErrorIs(t, err, ErrInvalidTask)
		})
	}
}

func TestTasks_Search(t *testing.T) {
	tasks := newTestTasks(t, time.Now())
	ctx := context.Background()

	for _, name := range []string{"Deploy API", "Review deploy", "Write docs"} {
		_, err := tasks.Create(ctx, model.Task{Name: name})
		require.NoError(t, err)
	}

	found, err := tasks.Search(ctx, "eploy")
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "Deploy API", found[0].Name)
	assert.Equal(t, "Review deploy", found[1].Name)

	found, err = tasks.Search(ctx, "deploy")
	require.NoError(t, err)
	require.Len(t, found, 1, "search is case-sensitive")
}
