package domain

import (
	"fmt"
	"math"
	"path/filepath"
	"sync/atomic"
	"time"
)

// SoundTask binds one audio file to a repeat interval.
//
// The identity fields are fixed at creation. The mutable state is shared
// between the control goroutine and the task's worker, so it is only
// reachable through atomic accessors. A SoundTask must not be copied
// after first use; use Snapshot for a plain value.
type SoundTask struct {
	// ID is the stable identity of the task.
	ID string

	// FilePath is the absolute path of the audio file.
	FilePath string

	// DisplayName is the file's base name, used for presentation only.
	DisplayName string

	// CreatedAt is when the task was registered.
	CreatedAt time.Time

	interval   atomic.Uint64 // math.Float64bits of the interval in minutes
	lastPlayed atomic.Int64  // unix nanoseconds, 0 = never
	active     atomic.Bool
	missing    atomic.Bool
	worker     atomic.Bool
	plays      atomic.Uint64
	failures   atomic.Uint64
}

// NewSoundTask creates an active task that has never played.
// The interval is not validated here; callers validate user input first.
func NewSoundTask(id, filePath string, intervalMinutes float64, now time.Time) *SoundTask {
	t := &SoundTask{
		ID:          id,
		FilePath:    filePath,
		DisplayName: filepath.Base(filePath),
		CreatedAt:   now,
	}
	t.interval.Store(math.Float64bits(intervalMinutes))
	t.active.Store(true)
	return t
}

// IntervalMinutes returns the repeat interval in minutes.
func (t *SoundTask) IntervalMinutes() float64 {
	return math.Float64frombits(t.interval.Load())
}

// SetIntervalMinutes replaces the repeat interval.
func (t *SoundTask) SetIntervalMinutes(minutes float64) {
	t.interval.Store(math.Float64bits(minutes))
}

// Interval returns the repeat interval as a duration.
func (t *SoundTask) Interval() time.Duration {
	return MinutesToDuration(t.IntervalMinutes())
}

// Active reports whether the task's worker should keep running.
func (t *SoundTask) Active() bool {
	return t.active.Load()
}

// SetActive sets the active flag. Clearing it is the only stop signal a
// worker observes; it exits on its next poll.
func (t *SoundTask) SetActive(active bool) {
	t.active.Store(active)
}

// Missing reports whether the file was seen disappearing after creation.
func (t *SoundTask) Missing() bool {
	return t.missing.Load()
}

// SetMissing records whether the file is currently missing.
func (t *SoundTask) SetMissing(missing bool) {
	t.missing.Store(missing)
}

// LastPlayed returns the time of the most recent trigger.
// The zero time means the task has never played.
func (t *SoundTask) LastPlayed() time.Time {
	ns := t.lastPlayed.Load()
	if ns == 0 {
		return time.Time{}
	}
	return time.Unix(0, ns)
}

// MarkPlayed records a trigger at the given time.
func (t *SoundTask) MarkPlayed(at time.Time) {
	t.lastPlayed.Store(at.UnixNano())
}

// Due reports whether the interval has elapsed since the last trigger.
// A task that has never played is always due.
func (t *SoundTask) Due(now time.Time) bool {
	ns := t.lastPlayed.Load()
	if ns == 0 {
		return true
	}
	return now.Sub(time.Unix(0, ns)) >= t.Interval()
}

// RecordAttempt counts a trigger and, if failed, a failure.
func (t *SoundTask) RecordAttempt(failed bool) {
	t.plays.Add(1)
	if failed {
		t.failures.Add(1)
	}
}

// Plays returns the number of playback attempts.
func (t *SoundTask) Plays() uint64 {
	return t.plays.Load()
}

// Failures returns the number of attempts where every mechanism failed.
func (t *SoundTask) Failures() uint64 {
	return t.failures.Load()
}

// AcquireWorker claims the task's single worker slot.
// It returns false if a worker already holds it.
func (t *SoundTask) AcquireWorker() bool {
	return t.worker.CompareAndSwap(false, true)
}

// ReleaseWorker frees the worker slot.
func (t *SoundTask) ReleaseWorker() {
	t.worker.Store(false)
}

// HasWorker reports whether a worker currently holds the slot.
func (t *SoundTask) HasWorker() bool {
	return t.worker.Load()
}

// Label renders the list entry shown to the user.
func (t *SoundTask) Label() string {
	return FormatLabel(t.DisplayName, t.IntervalMinutes())
}

// Snapshot returns a point-in-time copy of the task's state.
func (t *SoundTask) Snapshot() TaskSnapshot {
	return TaskSnapshot{
		ID:              t.ID,
		FilePath:        t.FilePath,
		DisplayName:     t.DisplayName,
		IntervalMinutes: t.IntervalMinutes(),
		LastPlayed:      t.LastPlayed(),
		Active:          t.Active(),
		Missing:         t.Missing(),
		Plays:           t.Plays(),
		Failures:        t.Failures(),
		CreatedAt:       t.CreatedAt,
	}
}

// TaskSnapshot is a plain copy of a SoundTask for presentation.
type TaskSnapshot struct {
	ID              string
	FilePath        string
	DisplayName     string
	IntervalMinutes float64
	LastPlayed      time.Time
	Active          bool
	Missing         bool
	Plays           uint64
	Failures        uint64
	CreatedAt       time.Time
}

// Label renders the list entry shown to the user.
func (s TaskSnapshot) Label() string {
	return FormatLabel(s.DisplayName, s.IntervalMinutes)
}

// NeverPlayed reports whether the snapshot has no trigger recorded.
func (s TaskSnapshot) NeverPlayed() bool {
	return s.LastPlayed.IsZero()
}

// FormatLabel renders "<name> - Every <interval> minutes".
func FormatLabel(name string, minutes float64) string {
	return fmt.Sprintf("%s - Every %s minutes", name, FormatMinutes(minutes))
}
