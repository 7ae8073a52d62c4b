package driving

import (
	"context"

	"github.com/custodia-labs/chime/internal/core/domain"
)

// TaskRegistry manages the ordered collection of sound tasks.
//
// Every mutation that fails validation returns an error matching
// domain.ErrValidation and leaves the registry unchanged. Index-based
// methods address the position shown to the user; ID-based methods
// address a task regardless of later insertions or removals.
type TaskRegistry interface {
	// Add registers a task for an existing file with an interval given as
	// user text, and starts its worker.
	Add(ctx context.Context, filePath, intervalText string) (*domain.SoundTask, error)

	// AddMinutes is Add with a numeric interval.
	AddMinutes(ctx context.Context, filePath string, minutes float64) (*domain.SoundTask, error)

	// Update changes a task's interval and reactivates it.
	Update(ctx context.Context, id, intervalText string) (*domain.SoundTask, error)

	// UpdateAt is Update for the task at a display position.
	UpdateAt(ctx context.Context, index int, intervalText string) (*domain.SoundTask, error)

	// Remove deactivates a task and removes it from the collection.
	Remove(ctx context.Context, id string) error

	// RemoveAt is Remove for the task at a display position.
	RemoveAt(ctx context.Context, index int) error

	// Pause deactivates a task without removing it.
	Pause(ctx context.Context, id string) (*domain.SoundTask, error)

	// Resume reactivates a paused task.
	Resume(ctx context.Context, id string) (*domain.SoundTask, error)

	// Get retrieves a task by ID.
	Get(ctx context.Context, id string) (*domain.SoundTask, error)

	// List returns the tasks in display order.
	List(ctx context.Context) ([]*domain.SoundTask, error)

	// Len returns the number of registered tasks.
	Len(ctx context.Context) int
}
