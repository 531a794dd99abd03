package taskstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/syncflow/dashboard/internal/model"
	"github.com/syncflow/dashboard/internal/projection"
)

// TasksSlot is the slot holding the serialized task array.
const TasksSlot = "tasks"

var (
	ErrNotFound    = errors.New("taskstore: task not found")
	ErrInvalidTask = errors.New("taskstore: invalid task")
)

// Tasks is the task collection. Every mutation rewrites the whole slot;
// concurrent writers in other processes are last-write-wins.
type Tasks struct {
	store *Store
	now   func() time.Time

	mu sync.Mutex
}

// NewTasks returns the task collection kept in store.
func NewTasks(store *Store) *Tasks {
	return &Tasks{store: store, now: time.Now}
}

// List returns every task in insertion order.
func (t *Tasks) List(ctx context.Context) ([]model.Task, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.load(ctx)
}

// Search returns the tasks whose name contains needle.
func (t *Tasks) Search(ctx context.Context, needle string) ([]model.Task, error) {
	tasks, err := t.List(ctx)
	if err != nil {
		return nil, err
	}
	return projection.Filter(tasks, needle, func(task model.Task) string { return task.Name }), nil
}

// Create assigns task an id from the current time and appends it.
func (t *Tasks) Create(ctx context.Context, task model.Task) (model.Task, error) {
	if err := validate(task); err != nil {
		return model.Task{}, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	tasks, err := t.load(ctx)
	if err != nil {
		return model.Task{}, err
	}
	task.ID = model.NewTaskID(t.now())
	for slices.ContainsFunc(tasks, func(x model.Task) bool { return x.ID == task.ID }) {
		task.ID++
	}
	tasks = append(tasks, task)
	if err := t.save(ctx, tasks); err != nil {
		return model.Task{}, err
	}
	return task, nil
}

// Update replaces the task with the same id.
func (t *Tasks) Update(ctx context.Context, task model.Task) error {
	if err := validate(task); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	tasks, err := t.load(ctx)
	if err != nil {
		return err
	}
	i := slices.IndexFunc(tasks, func(x model.Task) bool { return x.ID == task.ID })
	if i < 0 {
		return fmt.Errorf("%w: %d", ErrNotFound, task.ID)
	}
	tasks[i] = task
	return t.save(ctx, tasks)
}

// Delete removes the task with id.
func (t *Tasks) Delete(ctx context.Context, id int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	tasks, err := t.load(ctx)
	if err != nil {
		return err
	}
	i := slices.IndexFunc(tasks, func(x model.Task) bool { return x.ID == id })
	if i < 0 {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return t.save(ctx, slices.Delete(tasks, i, i+1))
}

func (t *Tasks) load(ctx context.Context) ([]model.Task, error) {
	raw, ok, err := t.store.Load(ctx, TasksSlot)
	if err != nil {
		return nil, err
	}
	tasks := []model.Task{}
	if !ok {
		return tasks, nil
	}
	if err := json.Unmarshal(raw, &tasks); err != nil {
		return nil, fmt.Errorf("taskstore: decode %s: %w", TasksSlot, err)
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	return tasks, nil
}

func (t *Tasks) save(ctx context.Context, tasks []model.Task) error {
	raw, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("taskstore: encode %s: %w", TasksSlot, err)
	}
	return t.store.Save(ctx, TasksSlot, raw)
}

func validate(task model.Task) error {
	if strings.TrimSpace(task.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidTask)
	}
	if task.AssigneeID != "" && !slices.Contains(model.AssigneeIDs, task.AssigneeID) {
		return fmt.Errorf("%w: unknown assignee %q", ErrInvalidTask, task.AssigneeID)
	}
	if task.Deadline != "" {
		if _, err := time.Parse(time.DateOnly, task.Deadline); err != nil {
			return fmt.Errorf("%w: deadline must be YYYY-MM-DD", ErrInvalidTask)
		}
	}
	return nil
}
