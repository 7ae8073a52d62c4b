package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/chime/internal/adapters/driven/storage/memory"
	coreservices "github.com/custodia-labs/chime/internal/core/services"
)

type fakePlayer struct {
	mu    sync.Mutex
	paths []string
	err   error
}

func (p *fakePlayer) Play(_ context.Context, path string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.paths = append(p.paths, path)
	return p.err
}

func (p *fakePlayer) Name() string { return "fake" }

func (p *fakePlayer) Played() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.paths...)
}

// installServices wires real services around player for the duration of t.
func installServices(t *testing.T, player *fakePlayer) {
	t.Helper()

	SetServicesFactory(func(string) (*Services, error) {
		history := coreservices.NewPlaybackHistory(10)
		playback := coreservices.NewPlaybackService(player, nil, history)
		scheduler := coreservices.NewScheduler(playback, 10*time.Millisecond)
		registry := coreservices.NewTaskRegistry(memory.NewTaskStore(), scheduler)
		return &Services{
			Registry:   registry,
			Scheduler:  scheduler,
			Playback:   playback,
			History:    history,
			Settings:   coreservices.NewSettingsService(memory.NewConfigStore()),
			PlayerName: player.Name(),
			OnPlayback: history.OnRecord,
			Close: func() {
				registry.Shutdown(context.Background())
				scheduler.Stop()
				scheduler.Wait()
			},
		}, nil
	})
	t.Cleanup(resetCommandState)
}

func resetCommandState() {
	closeServices()
	SetServicesFactory(nil)
	runFor = 0
	runQuiet = false
	configDir = ""
	verbose = false
	rootCmd.SetArgs(nil)
	rootCmd.SetOut(nil)
	rootCmd.SetErr(nil)
}

// execute runs the root command with args and returns combined output.
// Services are closed before it returns.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := ExecuteContext(context.Background())
	return buf.String(), err
}

func writeSound(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("RIFF"), 0o600))
	return path
}
