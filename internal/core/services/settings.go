package services

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/chime/internal/core/domain"
	"github.com/custodia-labs/chime/internal/core/ports/driven"
	"github.com/custodia-labs/chime/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyPollInterval      = "scheduler.poll_interval"
	keyPlayer            = "playback.player"
	keyFallback          = "playback.fallback"
	keyFallbackPerMinute = "playback.fallback_per_minute"
	keyHistorySize       = "playback.history_size"
	keyDefaultInterval   = "ui.default_interval"
	keyWatchEnabled      = "watch.enabled"
)

// settingKeys lists every key Set accepts, in display order.
var settingKeys = []string{
	keyPollInterval,
	keyPlayer,
	keyFallback,
	keyFallbackPerMinute,
	keyHistorySize,
	keyDefaultInterval,
	keyWatchEnabled,
}

// SettingsService resolves application settings from the config store.
// Missing keys take their defaults; invalid values also take their
// defaults and are reported through Warnings.
type SettingsService struct {
	configStore driven.ConfigStore

	mu       sync.Mutex
	warnings []string
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultSettings()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.warnings = nil

	if s.configStore == nil {
		return &defaults, nil
	}

	settings := &domain.AppSettings{
		Scheduler: domain.SchedulerSettings{
			PollInterval: s.getPollInterval(defaults.Scheduler.PollInterval),
		},
		Playback: domain.PlaybackSettings{
			Player:            s.configStore.GetString(keyPlayer),
			Fallback:          s.getBool(keyFallback, defaults.Playback.Fallback),
			FallbackPerMinute: s.getCount(keyFallbackPerMinute, defaults.Playback.FallbackPerMinute),
			HistorySize:       s.getCount(keyHistorySize, defaults.Playback.HistorySize),
		},
		UI: domain.UISettings{
			DefaultInterval: s.getDefaultInterval(defaults.UI.DefaultInterval),
		},
		Watch: domain.WatchSettings{
			Enabled: s.getBool(keyWatchEnabled, defaults.Watch.Enabled),
		},
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("resolving settings: %w", err)
	}
	return settings, nil
}

// Warnings lists the values ignored by the most recent Get.
func (s *SettingsService) Warnings() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.warnings...)
}

// Path returns the configuration file path.
func (s *SettingsService) Path() string {
	if s.configStore == nil {
		return ""
	}
	return s.configStore.Path()
}

// Keys returns the configurable keys.
func (s *SettingsService) Keys() []string {
	return slices.Clone(settingKeys)
}

// Set validates text for key and writes the typed value to the store.
// Running services keep their settings until the next start.
func (s *SettingsService) Set(key, text string) error {
	if s.configStore == nil {
		return fmt.Errorf("%w: no config store", domain.ErrInvalidInput)
	}
	value, err := parseSetting(key, strings.TrimSpace(text))
	if err != nil {
		return err
	}
	if err := s.configStore.Set(key, value); err != nil {
		return fmt.Errorf("saving %s: %w", key, err)
	}
	return nil
}

// parseSetting converts text to the type Get expects for key.
func parseSetting(key, text string) (any, error) {
	invalid := func(reason string) error {
		return fmt.Errorf("%w: %s = %q: %s", domain.ErrInvalidInput, key, text, reason)
	}

	switch key {
	case keyPollInterval:
		d, err := time.ParseDuration(text)
		if err != nil {
			return nil, invalid("not a duration")
		}
		if d < domain.MinPollInterval {
			return nil, invalid("below " + domain.MinPollInterval.String())
		}
		return text, nil

	case keyPlayer:
		return text, nil

	case keyFallback, keyWatchEnabled:
		b, err := strconv.ParseBool(text)
		if err != nil {
			return nil, invalid("expected true or false")
		}
		return b, nil

	case keyFallbackPerMinute, keyHistorySize:
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return nil, invalid("expected an integer")
		}
		if reason := countProblem(n, countLimits[key]); reason != "" {
			return nil, invalid(reason)
		}
		return n, nil

	case keyDefaultInterval:
		if _, err := domain.ParseIntervalMinutes(text); err != nil {
			return nil, err
		}
		return text, nil
	}

	return nil, fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
}

// countLimits holds the upper bound of each count setting.
var countLimits = map[string]int64{
	keyFallbackPerMinute: domain.MaxFallbackPerMinute,
	keyHistorySize:       domain.MaxHistorySize,
}

func countProblem(n, limit int64) string {
	switch {
	case n < 0:
		return "must not be negative"
	case n > limit:
		return fmt.Sprintf("must not exceed %d", limit)
	}
	return ""
}

func (s *SettingsService) warn(key string, value any, reason string) {
	s.warnings = append(s.warnings, fmt.Sprintf("%s = %v ignored: %s", key, value, reason))
}

func (s *SettingsService) getPollInterval(defaultVal time.Duration) time.Duration {
	raw, exists := s.configStore.Get(keyPollInterval)
	if !exists {
		return defaultVal
	}
	text, ok := raw.(string)
	if !ok {
		s.warn(keyPollInterval, raw, "expected a duration string such as \"1s\"")
		return defaultVal
	}
	d, err := time.ParseDuration(text)
	if err != nil {
		s.warn(keyPollInterval, raw, "not a duration")
		return defaultVal
	}
	if d < domain.MinPollInterval {
		s.warn(keyPollInterval, raw, "below "+domain.MinPollInterval.String())
		return defaultVal
	}
	return d
}

func (s *SettingsService) getCount(key string, defaultVal int) int {
	raw, exists := s.configStore.Get(key)
	if !exists {
		return defaultVal
	}
	var n int64
	switch v := raw.(type) {
	case int:
		n = int64(v)
	case int64:
		n = v
	default:
		s.warn(key, raw, "expected an integer")
		return defaultVal
	}
	if reason := countProblem(n, countLimits[key]); reason != "" {
		s.warn(key, raw, reason)
		return defaultVal
	}
	return int(n)
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	raw, exists := s.configStore.Get(key)
	if !exists {
		return defaultVal
	}
	if _, ok := raw.(bool); !ok {
		s.warn(key, raw, "expected true or false")
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getDefaultInterval(defaultVal string) string {
	val := s.configStore.GetString(keyDefaultInterval)
	if val == "" {
		return defaultVal
	}
	if _, err := domain.ParseIntervalMinutes(val); err != nil {
		s.warn(keyDefaultInterval, val, err.Error())
		return defaultVal
	}
	return val
}
