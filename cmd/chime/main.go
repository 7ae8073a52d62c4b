// Command chime plays sound files on repeating timers.
package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/custodia-labs/chime/internal/adapters/driven/audio"
	"github.com/custodia-labs/chime/internal/adapters/driven/config/file"
	"github.com/custodia-labs/chime/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/chime/internal/adapters/driven/watch"
	"github.com/custodia-labs/chime/internal/adapters/driving/cli"
	"github.com/custodia-labs/chime/internal/core/ports/driven"
	"github.com/custodia-labs/chime/internal/core/services"
	"github.com/custodia-labs/chime/internal/logger"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cli.SetServicesFactory(newServices)
	// Cobra has already printed the error.
	if err := cli.ExecuteContext(ctx); err != nil {
		cancel()
		os.Exit(1)
	}
}

// newServices wires the core services for configDir.
// An empty configDir means ~/.chime.
func newServices(configDir string) (*cli.Services, error) {
	// The TUI log lives next to the config file, so keep the path absolute.
	if configDir != "" {
		abs, err := filepath.Abs(configDir)
		if err != nil {
			return nil, err
		}
		configDir = abs
	}

	store, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, err
	}
	settingsService := services.NewSettingsService(store)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, err
	}

	history := services.NewPlaybackHistory(settings.Playback.HistorySize)

	var (
		player     driven.Player
		playerName string
	)
	if p, err := audio.NewCommandPlayer(settings.Playback.Player); err != nil {
		logger.Warn("audio: %v", err)
	} else {
		player = p
		playerName = p.Name()
		logger.Info("audio player: %s", playerName)
	}

	var launcher driven.Launcher
	if settings.Playback.Fallback {
		launcher = audio.NewRateLimitedLauncher(audio.NewDefaultLauncher(), settings.Playback.FallbackPerMinute)
	}

	playback := services.NewPlaybackService(player, launcher, history)
	scheduler := services.NewScheduler(playback, settings.Scheduler.PollInterval)
	registry := services.NewTaskRegistry(memory.NewTaskStore(), scheduler)

	var fw *watch.FileWatcher
	if settings.Watch.Enabled {
		if fw, err = watch.NewFileWatcher(); err != nil {
			logger.Warn("watch: %v", err)
		} else {
			registry.SetFileWatcher(fw)
		}
	}

	return &cli.Services{
		Registry:   registry,
		Scheduler:  scheduler,
		Playback:   playback,
		History:    history,
		Settings:   settingsService,
		PlayerName: playerName,
		OnPlayback: history.OnRecord,
		Start: func(ctx context.Context) {
			if fw == nil {
				return
			}
			if err := fw.Run(ctx, registry.HandleFileEvent); err != nil {
				logger.Error("watch: %v", err)
			}
		},
		Close: func() {
			registry.Shutdown(context.Background())
			scheduler.Stop()
			scheduler.Wait()
			if fw != nil {
				_ = fw.Close()
			}
		},
	}, nil
}
