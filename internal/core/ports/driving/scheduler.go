package driving

import "github.com/custodia-labs/chime/internal/core/domain"

// TaskScheduler runs one background worker per active task.
type TaskScheduler interface {
	// Schedule starts a worker for task unless one is already running.
	// It reports whether a new worker was started.
	Schedule(task *domain.SoundTask) bool

	// Running returns the number of live workers.
	Running() int

	// Stop makes every worker return, regardless of task flags.
	// Used on application exit.
	Stop()

	// Wait blocks until every worker has returned.
	Wait()
}
