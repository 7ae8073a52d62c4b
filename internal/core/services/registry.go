package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/chime/internal/core/domain"
	"github.com/custodia-labs/chime/internal/core/ports/driven"
	"github.com/custodia-labs/chime/internal/core/ports/driving"
	"github.com/custodia-labs/chime/internal/logger"
)

// Ensure TaskRegistry implements the interface.
var _ driving.TaskRegistry = (*TaskRegistry)(nil)

// TaskRegistry owns the ordered task collection and binds each task to a
// scheduler worker.
//
// Mutations are serialised by a mutex, so a stale index from one caller can
// never be applied halfway through another caller's removal.
type TaskRegistry struct {
	mu        sync.Mutex
	store     driven.TaskStore
	scheduler driving.TaskScheduler
	watcher   driven.FileWatcher
	now       func() time.Time
}

// NewTaskRegistry creates a registry backed by store whose tasks are run
// by scheduler.
func NewTaskRegistry(store driven.TaskStore, scheduler driving.TaskScheduler) *TaskRegistry {
	return &TaskRegistry{
		store:     store,
		scheduler: scheduler,
		now:       time.Now,
	}
}

// SetFileWatcher sets the watcher notified of task file paths.
func (r *TaskRegistry) SetFileWatcher(watcher driven.FileWatcher) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.watcher = watcher
}

// Add registers a task for an existing file and starts its worker.
func (r *TaskRegistry) Add(ctx context.Context, filePath, intervalText string) (*domain.SoundTask, error) {
	path, err := validateFilePath(filePath)
	if err != nil {
		return nil, err
	}
	minutes, err := domain.ParseIntervalMinutes(intervalText)
	if err != nil {
		return nil, err
	}
	return r.add(ctx, path, minutes)
}

// AddMinutes is Add with a numeric interval.
func (r *TaskRegistry) AddMinutes(ctx context.Context, filePath string, minutes float64) (*domain.SoundTask, error) {
	path, err := validateFilePath(filePath)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidateIntervalMinutes(minutes); err != nil {
		return nil, err
	}
	return r.add(ctx, path, minutes)
}

func (r *TaskRegistry) add(ctx context.Context, path string, minutes float64) (*domain.SoundTask, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task := domain.NewSoundTask(uuid.NewString(), path, minutes, r.now())
	if err := r.store.Append(ctx, task); err != nil {
		return nil, err
	}

	if r.watcher != nil {
		if err := r.watcher.Add(path); err != nil {
			logger.L().Warn().Str("path", path).Err(err).Msg("cannot watch sound file")
		}
	}
	if r.scheduler != nil {
		r.scheduler.Schedule(task)
	}

	logger.L().Info().
		Str("task", task.ID).
		Str("path", path).
		Float64("minutes", minutes).
		Msg("task added")
	return task, nil
}

// Update changes a task's interval and reactivates it.
func (r *TaskRegistry) Update(ctx context.Context, id, intervalText string) (*domain.SoundTask, error) {
	minutes, err := domain.ParseIntervalMinutes(intervalText)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	task, err := r.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	r.update(task, minutes)
	return task, nil
}

// UpdateAt changes the interval of the task at a display position and
// reactivates it.
func (r *TaskRegistry) UpdateAt(ctx context.Context, index int, intervalText string) (*domain.SoundTask, error) {
	minutes, err := domain.ParseIntervalMinutes(intervalText)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	task, err := r.store.At(ctx, index)
	if err != nil {
		return nil, err
	}
	r.update(task, minutes)
	return task, nil
}

// update applies a validated interval. Caller must hold r.mu.
//
// The task is reactivated unconditionally, so editing a paused task
// resumes it.
func (r *TaskRegistry) update(task *domain.SoundTask, minutes float64) {
	task.SetIntervalMinutes(minutes)
	task.SetActive(true)
	if r.scheduler != nil {
		r.scheduler.Schedule(task)
	}
	logger.L().Info().
		Str("task", task.ID).
		Float64("minutes", minutes).
		Msg("task updated")
}

// Remove deactivates a task and removes it from the collection.
// The task's worker exits on its next poll.
func (r *TaskRegistry) Remove(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, err := r.store.Get(ctx, id)
	if err != nil {
		return err
	}
	return r.remove(ctx, task)
}

// RemoveAt removes the task at a display position.
func (r *TaskRegistry) RemoveAt(ctx context.Context, index int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, err := r.store.At(ctx, index)
	if err != nil {
		return err
	}
	return r.remove(ctx, task)
}

// remove deactivates then deletes task. Caller must hold r.mu.
func (r *TaskRegistry) remove(ctx context.Context, task *domain.SoundTask) error {
	task.SetActive(false)
	if err := r.store.Delete(ctx, task.ID); err != nil {
		return err
	}
	r.unwatch(ctx, task.FilePath)
	logger.L().Info().Str("task", task.ID).Str("path", task.FilePath).Msg("task removed")
	return nil
}

// unwatch stops watching path once no remaining task uses it.
func (r *TaskRegistry) unwatch(ctx context.Context, path string) {
	if r.watcher == nil {
		return
	}
	tasks, err := r.store.List(ctx)
	if err != nil {
		return
	}
	for _, t := range tasks {
		if t.FilePath == path {
			return
		}
	}
	if err := r.watcher.Remove(path); err != nil {
		logger.Debug("unwatch %s: %v", path, err)
	}
}

// Pause deactivates a task without removing it.
func (r *TaskRegistry) Pause(ctx context.Context, id string) (*domain.SoundTask, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, err := r.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	task.SetActive(false)
	logger.L().Info().Str("task", task.ID).Msg("task paused")
	return task, nil
}

// Resume reactivates a paused task and makes sure it has a worker.
func (r *TaskRegistry) Resume(ctx context.Context, id string) (*domain.SoundTask, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, err := r.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	task.SetActive(true)
	if r.scheduler != nil {
		r.scheduler.Schedule(task)
	}
	logger.L().Info().Str("task", task.ID).Msg("task resumed")
	return task, nil
}

// Get retrieves a task by ID.
func (r *TaskRegistry) Get(ctx context.Context, id string) (*domain.SoundTask, error) {
	return r.store.Get(ctx, id)
}

// List returns the tasks in display order.
func (r *TaskRegistry) List(ctx context.Context) ([]*domain.SoundTask, error) {
	return r.store.List(ctx)
}

// Len returns the number of registered tasks.
func (r *TaskRegistry) Len(ctx context.Context) int {
	return r.store.Len(ctx)
}

// Shutdown deactivates every task. Workers exit on their next poll.
func (r *TaskRegistry) Shutdown(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tasks, err := r.store.List(ctx)
	if err != nil {
		return
	}
	for _, t := range tasks {
		t.SetActive(false)
	}
}

// HandleFileEvent flags tasks whose file vanished or reappeared.
// Tasks are never removed or paused because of a missing file.
func (r *TaskRegistry) HandleFileEvent(event driven.FileEvent) {
	tasks, err := r.store.List(context.Background())
	if err != nil {
		return
	}
	missing := event.Change == driven.FileVanished
	for _, t := range tasks {
		if t.FilePath == event.Path {
			t.SetMissing(missing)
			logger.L().Debug().Str("task", t.ID).Bool("missing", missing).Msg("sound file changed")
		}
	}
}
