package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/chime/internal/core/domain"
	"github.com/custodia-labs/chime/internal/core/ports/driven"
)

// --- Mock implementations for service testing ---

// mockPlayer implements driven.Player.
type mockPlayer struct {
	err   error
	calls atomic.Int64
	panic bool
}

func (m *mockPlayer) Play(_ context.Context, _ string) error {
	m.calls.Add(1)
	if m.panic {
		panic("player exploded")
	}
	return m.err
}

func (m *mockPlayer) Name() string { return "mock" }

// mockLauncher implements driven.Launcher.
type mockLauncher struct {
	err   error
	calls atomic.Int64
}

func (m *mockLauncher) Open(_ context.Context, _ string) error {
	m.calls.Add(1)
	return m.err
}

// mockPlayback implements driving.PlaybackService.
type mockPlayback struct {
	mu      sync.Mutex
	paths   []string
	outcome domain.PlaybackOutcome
	delay   time.Duration
}

func (m *mockPlayback) Play(_ context.Context, taskID, path string) domain.PlaybackEvent {
	if m.delay > 0 {
		time.Sleep(m.delay)
	}
	m.mu.Lock()
	m.paths = append(m.paths, path)
	m.mu.Unlock()

	outcome := m.outcome
	if outcome == "" {
		outcome = domain.OutcomePlayed
	}
	return domain.PlaybackEvent{TaskID: taskID, Path: path, At: time.Now(), Outcome: outcome}
}

func (m *mockPlayback) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.paths)
}

// mockScheduler implements driving.TaskScheduler without starting workers.
type mockScheduler struct {
	mu        sync.Mutex
	scheduled []*domain.SoundTask
}

func (m *mockScheduler) Schedule(task *domain.SoundTask) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scheduled = append(m.scheduled, task)
	return true
}

func (m *mockScheduler) Running() int { return 0 }
func (m *mockScheduler) Stop()        {}
func (m *mockScheduler) Wait()        {}

func (m *mockScheduler) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.scheduled)
}

// mockWatcher implements driven.FileWatcher.
type mockWatcher struct {
	mu      sync.Mutex
	watched map[string]bool
	addErr  error
}

func newMockWatcher() *mockWatcher {
	return &mockWatcher{watched: make(map[string]bool)}
}

func (m *mockWatcher) Add(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.addErr != nil {
		return m.addErr
	}
	m.watched[path] = true
	return nil
}

func (m *mockWatcher) Remove(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.watched[path] {
		return errors.New("not watched")
	}
	delete(m.watched, path)
	return nil
}

func (m *mockWatcher) Run(ctx context.Context, _ func(driven.FileEvent)) error {
	<-ctx.Done()
	return nil
}

func (m *mockWatcher) Close() error { return nil }

func (m *mockWatcher) isWatched(path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.watched[path]
}

// recordingSink implements driven.PlaybackSink.
type recordingSink struct {
	mu     sync.Mutex
	events []domain.PlaybackEvent
}

func (r *recordingSink) Record(event domain.PlaybackEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordingSink) all() []domain.PlaybackEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.PlaybackEvent(nil), r.events...)
}

// fakeClock is a settable time source.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// writeSound creates an empty file that stands in for an audio file.
func writeSound(t testing.TB, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("RIFF"), 0o600))
	return path
}
