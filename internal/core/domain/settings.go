package domain

import (
	"fmt"
	"time"
)

// Scheduler defaults.
const (
	// DefaultPollInterval is how often a worker checks its task.
	DefaultPollInterval = time.Second

	// MinPollInterval is the shortest accepted poll interval.
	MinPollInterval = 10 * time.Millisecond
)

// Playback defaults and limits.
const (
	DefaultFallbackPerMinute = 6
	DefaultHistorySize       = 50

	// MaxFallbackPerMinute caps the default-handler launch rate.
	MaxFallbackPerMinute = 600

	// MaxHistorySize caps the playback history ring, which is
	// allocated up front.
	MaxHistorySize = 10000
)

// DefaultIntervalText is the interval pre-filled in the add form.
const DefaultIntervalText = "5"

// AppSettings holds the effective application configuration.
type AppSettings struct {
	Scheduler SchedulerSettings
	Playback  PlaybackSettings
	UI        UISettings
	Watch     WatchSettings
}

// SchedulerSettings configures task workers.
type SchedulerSettings struct {
	// PollInterval is the fixed period between elapsed-time checks.
	PollInterval time.Duration
}

// PlaybackSettings configures the playback invoker.
type PlaybackSettings struct {
	// Player overrides the auto-detected audio command.
	// The file path is appended as the last argument.
	Player string

	// Fallback enables handing the file to the OS default handler
	// when the player fails.
	Fallback bool

	// FallbackPerMinute caps default-handler launches across all tasks.
	FallbackPerMinute int

	// HistorySize is the number of recent playback events retained.
	HistorySize int
}

// UISettings configures the terminal UI.
type UISettings struct {
	// DefaultInterval pre-fills the interval field of the add form.
	DefaultInterval string
}

// WatchSettings configures file watching.
type WatchSettings struct {
	// Enabled turns on missing-file detection.
	Enabled bool
}

// DefaultSettings returns sensible defaults.
func DefaultSettings() AppSettings {
	return AppSettings{
		Scheduler: SchedulerSettings{
			PollInterval: DefaultPollInterval,
		},
		Playback: PlaybackSettings{
			Fallback:          true,
			FallbackPerMinute: DefaultFallbackPerMinute,
			HistorySize:       DefaultHistorySize,
		},
		UI: UISettings{
			DefaultInterval: DefaultIntervalText,
		},
		Watch: WatchSettings{
			Enabled: true,
		},
	}
}

// Validate checks the settings for values the application cannot run with.
func (s AppSettings) Validate() error {
	if s.Scheduler.PollInterval < MinPollInterval {
		return fmt.Errorf("%w: poll interval %s is below %s",
			ErrInvalidInput, s.Scheduler.PollInterval, MinPollInterval)
	}
	if s.Playback.FallbackPerMinute < 0 || s.Playback.FallbackPerMinute > MaxFallbackPerMinute {
		return fmt.Errorf("%w: fallback_per_minute must be between 0 and %d", ErrInvalidInput, MaxFallbackPerMinute)
	}
	if s.Playback.HistorySize < 0 || s.Playback.HistorySize > MaxHistorySize {
		return fmt.Errorf("%w: history_size must be between 0 and %d", ErrInvalidInput, MaxHistorySize)
	}
	if _, err := ParseIntervalMinutes(s.UI.DefaultInterval); err != nil {
		return fmt.Errorf("default interval: %w", err)
	}
	return nil
}
