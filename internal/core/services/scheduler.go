package services

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/custodia-labs/chime/internal/core/domain"
	"github.com/custodia-labs/chime/internal/core/ports/driving"
	"github.com/custodia-labs/chime/internal/logger"
)

// Ensure Scheduler implements the interface.
var _ driving.TaskScheduler = (*Scheduler)(nil)

// Scheduler runs one background worker per active task.
//
// A worker polls its task at a fixed cadence and plays the file whenever
// the interval has elapsed since the last trigger. Workers observe the
// task's active flag on every poll and exit once it is cleared, so a
// paused or removed task stops within one poll interval. A playback in
// progress is never interrupted.
type Scheduler struct {
	playback driving.PlaybackService
	poll     time.Duration
	now      func() time.Time

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	stopped bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
	running atomic.Int64
}

// NewScheduler creates a scheduler whose workers poll every poll interval.
// Intervals below domain.MinPollInterval are raised to it.
func NewScheduler(playback driving.PlaybackService, poll time.Duration) *Scheduler {
	if poll < domain.MinPollInterval {
		poll = domain.MinPollInterval
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		playback: playback,
		poll:     poll,
		now:      time.Now,
		ctx:      ctx,
		cancel:   cancel,
		stopCh:   make(chan struct{}),
	}
}

// SetClock replaces the time source used for due checks.
// Must be called before any task is scheduled.
func (s *Scheduler) SetClock(now func() time.Time) {
	s.now = now
}

// PollInterval returns the worker cadence.
func (s *Scheduler) PollInterval() time.Duration {
	return s.poll
}

// Schedule starts a worker for task unless one already holds its slot,
// the task is inactive or the scheduler has stopped.
func (s *Scheduler) Schedule(task *domain.SoundTask) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped || !task.Active() {
		return false
	}
	if !task.AcquireWorker() {
		return false
	}

	s.wg.Add(1)
	s.running.Add(1)
	go s.work(task)
	return true
}

// Running returns the number of live workers.
func (s *Scheduler) Running() int {
	return int(s.running.Load())
}

// Stop makes every worker return after its current poll.
// Calling Stop more than once is a no-op.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}
	s.stopped = true
	close(s.stopCh)
	s.cancel()
}

// Wait blocks until every worker has returned.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}

// work is the per-task polling loop. The caller has acquired the task's
// worker slot.
func (s *Scheduler) work(task *domain.SoundTask) {
	defer s.wg.Done()
	defer s.running.Add(-1)

	logger.L().Debug().Str("task", task.ID).Msg("worker started")

	ticker := time.NewTicker(s.poll)
	defer ticker.Stop()

	for {
		if !task.Active() {
			task.ReleaseWorker()
			// A resume between the check and the release found the slot
			// taken and started nothing, so take the task back.
			if !task.Active() || !task.AcquireWorker() {
				logger.L().Debug().Str("task", task.ID).Msg("worker stopped")
				return
			}
			continue
		}

		now := s.now()
		if task.Due(now) {
			event := s.playback.Play(s.ctx, task.ID, task.FilePath)
			task.MarkPlayed(now)
			task.RecordAttempt(!event.Succeeded())
		}

		select {
		case <-s.stopCh:
			task.ReleaseWorker()
			return
		case <-ticker.C:
		}
	}
}
