package driven

import (
	"context"

	"github.com/custodia-labs/chime/internal/core/domain"
)

// TaskStore holds sound tasks in display order.
// Insertion is always at the end; removal is positional or by ID.
type TaskStore interface {
	// Append adds a task at the end of the collection.
	Append(ctx context.Context, task *domain.SoundTask) error

	// Get retrieves a task by ID.
	// Returns domain.ErrNotFound if the task does not exist.
	Get(ctx context.Context, id string) (*domain.SoundTask, error)

	// At retrieves the task at a display position.
	// Returns domain.ErrNotFound if the index is out of range.
	At(ctx context.Context, index int) (*domain.SoundTask, error)

	// Delete removes a task by ID.
	// Returns domain.ErrNotFound if the task does not exist.
	Delete(ctx context.Context, id string) error

	// List returns all tasks in display order.
	List(ctx context.Context) ([]*domain.SoundTask, error)

	// Len returns the number of tasks.
	Len(ctx context.Context) int
}
