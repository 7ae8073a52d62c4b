package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/custodia-labs/chime/internal/core/domain"
	"github.com/custodia-labs/chime/internal/core/ports/driven"
)

// Ensure TaskStore implements the interface.
var _ driven.TaskStore = (*TaskStore)(nil)

// TaskStore is an in-memory, ordered implementation of driven.TaskStore.
// Tasks live only for the lifetime of the process.
type TaskStore struct {
	mu    sync.RWMutex
	tasks []*domain.SoundTask
}

// NewTaskStore creates an empty task store.
func NewTaskStore() *TaskStore {
	return &TaskStore{}
}

// Append adds a task at the end.
func (s *TaskStore) Append(_ context.Context, task *domain.SoundTask) error {
	if task == nil {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexOf(task.ID) >= 0 {
		return domain.ErrInvalidInput
	}
	s.tasks = append(s.tasks, task)
	return nil
}

// Get retrieves a task by ID.
func (s *TaskStore) Get(_ context.Context, id string) (*domain.SoundTask, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(id)
	if i < 0 {
		return nil, domain.ErrNotFound
	}
	return s.tasks[i], nil
}

// At retrieves the task at a display position.
func (s *TaskStore) At(_ context.Context, index int) (*domain.SoundTask, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if index < 0 || index >= len(s.tasks) {
		return nil, domain.ErrNotFound
	}
	return s.tasks[index], nil
}

// Delete removes a task, keeping the order of the others.
func (s *TaskStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return domain.ErrNotFound
	}
	s.tasks = slices.Delete(s.tasks, i, i+1)
	return nil
}

// List returns all tasks in display order.
// The slice is a copy; the tasks are shared.
func (s *TaskStore) List(_ context.Context) ([]*domain.SoundTask, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.tasks), nil
}

// Len returns the number of tasks.
func (s *TaskStore) Len(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}

func (s *TaskStore) indexOf(id string) int {
	return slices.IndexFunc(s.tasks, func(t *domain.SoundTask) bool {
		return t.ID == id
	})
}
