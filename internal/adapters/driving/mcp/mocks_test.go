package mcp

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/chime/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/chime/internal/core/domain"
	"github.com/custodia-labs/chime/internal/core/services"
)

// idleScheduler counts scheduled tasks without running workers.
type idleScheduler struct {
	mu      sync.Mutex
	started int
}

func (s *idleScheduler) Schedule(*domain.SoundTask) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.started++
	return true
}

func (s *idleScheduler) Running() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started
}

func (s *idleScheduler) Stop() {}
func (s *idleScheduler) Wait() {}

type fixture struct {
	server   *Server
	registry *services.TaskRegistry
	history  *services.PlaybackHistory
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	sched := &idleScheduler{}
	reg := services.NewTaskRegistry(memory.NewTaskStore(), sched)
	hist := services.NewPlaybackHistory(10)

	srv, err := NewServer(&Ports{Registry: reg, Scheduler: sched, History: hist})
	require.NoError(t, err)
	return &fixture{server: srv, registry: reg, history: hist}
}

func writeSound(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("RIFF"), 0o600))
	return path
}
