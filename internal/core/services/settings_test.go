package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/chime/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/chime/internal/core/domain"
)

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), *settings)
	assert.Empty(t, service.Warnings())
	assert.Equal(t, ":memory:", service.Path())
}

func TestSettingsService_Get_NilStore(t *testing.T) {
	service := NewSettingsService(nil)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), *settings)
	assert.Empty(t, service.Path())
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStoreWith(map[string]any{
		"scheduler.poll_interval":      "250ms",
		"playback.player":              "mpv --no-video",
		"playback.fallback":            false,
		"playback.fallback_per_minute": int64(2),
		"playback.history_size":        int64(10),
		"ui.default_interval":          "0.5",
		"watch.enabled":                false,
	})
	service := NewSettingsService(store)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, settings.Scheduler.PollInterval)
	assert.Equal(t, "mpv --no-video", settings.Playback.Player)
	assert.False(t, settings.Playback.Fallback)
	assert.Equal(t, 2, settings.Playback.FallbackPerMinute)
	assert.Equal(t, 10, settings.Playback.HistorySize)
	assert.Equal(t, "0.5", settings.UI.DefaultInterval)
	assert.False(t, settings.Watch.Enabled)
	assert.Empty(t, service.Warnings())
	assert.NoError(t, settings.Validate())
}

func TestSettingsService_Get_ZeroCountsAreKept(t *testing.T) {
	store := memory.NewConfigStoreWith(map[string]any{
		"playback.fallback_per_minute": 0,
		"playback.history_size":        0,
	})

	settings, err := NewSettingsService(store).Get()

	require.NoError(t, err)
	assert.Zero(t, settings.Playback.FallbackPerMinute)
	assert.Zero(t, settings.Playback.HistorySize)
}

func TestSettingsService_Get_InvalidValuesReturnDefaults(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value any
		check func(t *testing.T, s *domain.AppSettings)
	}{
		{
			name: "poll interval not a duration", key: "scheduler.poll_interval", value: "often",
			check: func(t *testing.T, s *domain.AppSettings) {
				assert.Equal(t, domain.DefaultPollInterval, s.Scheduler.PollInterval)
			},
		},
		{
			name: "poll interval below minimum", key: "scheduler.poll_interval", value: "1ms",
			check: func(t *testing.T, s *domain.AppSettings) {
				assert.Equal(t, domain.DefaultPollInterval, s.Scheduler.PollInterval)
			},
		},
		{
			name: "poll interval as number", key: "scheduler.poll_interval", value: int64(5),
			check: func(t *testing.T, s *domain.AppSettings) {
				assert.Equal(t, domain.DefaultPollInterval, s.Scheduler.PollInterval)
			},
		},
		{
			name: "fallback as string", key: "playback.fallback", value: "yes",
			check: func(t *testing.T, s *domain.AppSettings) {
				assert.True(t, s.Playback.Fallback)
			},
		},
		{
			name: "negative history", key: "playback.history_size", value: int64(-1),
			check: func(t *testing.T, s *domain.AppSettings) {
				assert.Equal(t, domain.DefaultHistorySize, s.Playback.HistorySize)
			},
		},
		{
			name: "fractional rate", key: "playback.fallback_per_minute", value: 1.5,
			check: func(t *testing.T, s *domain.AppSettings) {
				assert.Equal(t, domain.DefaultFallbackPerMinute, s.Playback.FallbackPerMinute)
			},
		},
		{
			name: "huge history", key: "playback.history_size", value: int64(1_000_000_000_000),
			check: func(t *testing.T, s *domain.AppSettings) {
				assert.Equal(t, domain.DefaultHistorySize, s.Playback.HistorySize)
			},
		},
		{
			name: "history above limit as int", key: "playback.history_size", value: domain.MaxHistorySize + 1,
			check: func(t *testing.T, s *domain.AppSettings) {
				assert.Equal(t, domain.DefaultHistorySize, s.Playback.HistorySize)
			},
		},
		{
			name: "fallback rate above limit", key: "playback.fallback_per_minute", value: int64(domain.MaxFallbackPerMinute + 1),
			check: func(t *testing.T, s *domain.AppSettings) {
				assert.Equal(t, domain.DefaultFallbackPerMinute, s.Playback.FallbackPerMinute)
			},
		},
		{
			name: "non-positive default interval", key: "ui.default_interval", value: "-5",
			check: func(t *testing.T, s *domain.AppSettings) {
				assert.Equal(t, domain.DefaultIntervalText, s.UI.DefaultInterval)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.NewConfigStoreWith(map[string]any{tt.key: tt.value})
			service := NewSettingsService(store)

			settings, err := service.Get()

			require.NoError(t, err)
			tt.check(t, settings)
			require.Len(t, service.Warnings(), 1)
			assert.Contains(t, service.Warnings()[0], tt.key)
			assert.NoError(t, settings.Validate())
		})
	}
}

func TestSettingsService_WarningsResetOnGet(t *testing.T) {
	store := memory.NewConfigStoreWith(map[string]any{"watch.enabled": "no"})
	service := NewSettingsService(store)

	_, err := service.Get()
	require.NoError(t, err)
	require.Len(t, service.Warnings(), 1)

	require.NoError(t, store.Set("watch.enabled", true))
	_, err = service.Get()
	require.NoError(t, err)
	assert.Empty(t, service.Warnings())
}

func TestSettingsService_Set_StoresTypedValues(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	require.NoError(t, service.Set("scheduler.poll_interval", "500ms"))
	require.NoError(t, service.Set("playback.player", "ffplay -nodisp"))
	require.NoError(t, service.Set("playback.fallback", "false"))
	require.NoError(t, service.Set("playback.fallback_per_minute", "3"))
	require.NoError(t, service.Set("playback.history_size", " 20 "))
	require.NoError(t, service.Set("ui.default_interval", "2.5"))
	require.NoError(t, service.Set("watch.enabled", "no"))

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Empty(t, service.Warnings())
	assert.Equal(t, 500*time.Millisecond, settings.Scheduler.PollInterval)
	assert.Equal(t, "ffplay -nodisp", settings.Playback.Player)
	assert.False(t, settings.Playback.Fallback)
	assert.Equal(t, 3, settings.Playback.FallbackPerMinute)
	assert.Equal(t, 20, settings.Playback.HistorySize)
	assert.Equal(t, "2.5", settings.UI.DefaultInterval)
	assert.False(t, settings.Watch.Enabled)
}

func TestSettingsService_Set_RejectsInvalid(t *testing.T) {
	tests := []struct {
		key   string
		value string
		want  error
	}{
		{"scheduler.poll_interval", "soon", domain.ErrInvalidInput},
		{"scheduler.poll_interval", "1ms", domain.ErrInvalidInput},
		{"playback.fallback", "maybe", domain.ErrInvalidInput},
		{"playback.fallback_per_minute", "-1", domain.ErrInvalidInput},
		{"playback.history_size", "many", domain.ErrInvalidInput},
		{"ui.default_interval", "0", domain.ErrValidation},
		{"playback.history_size", "1000000000000", domain.ErrInvalidInput},
		{"playback.history_size", "10001", domain.ErrInvalidInput},
		{"playback.fallback_per_minute", "601", domain.ErrInvalidInput},
		{"ui.default_interval", "0x1p2", domain.ErrValidation},
		{"ui.colour", "blue", domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			store := memory.NewConfigStore()
			service := NewSettingsService(store)

			err := service.Set(tt.key, tt.value)

			assert.ErrorIs(t, err, tt.want)
			_, exists := store.Get(tt.key)
			assert.False(t, exists)
		})
	}
}

func TestSettingsService_Set_NilStore(t *testing.T) {
	err := NewSettingsService(nil).Set("watch.enabled", "true")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettingsService_Keys(t *testing.T) {
	service := NewSettingsService(nil)

	keys := service.Keys()

	assert.Len(t, keys, 7)
	assert.Contains(t, keys, "playback.fallback_per_minute")
	keys[0] = "mutated"
	assert.NotEqual(t, "mutated", service.Keys()[0])
}

func TestSettingsService_Set_AcceptsHistoryLimit(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	require.NoError(t, service.Set("playback.history_size", "10000"))

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.MaxHistorySize, settings.Playback.HistorySize)
	assert.Empty(t, service.Warnings())
}

func TestSettingsService_Get_OversizedHistoryStillBuildsServices(t *testing.T) {
	store := memory.NewConfigStoreWith(map[string]any{
		"playback.history_size": int64(10_000_000_000_000),
	})
	service := NewSettingsService(store)

	settings, err := service.Get()
	require.NoError(t, err)

	history := NewPlaybackHistory(settings.Playback.HistorySize)
	history.Record(domain.PlaybackEvent{Path: "/bell.wav", Outcome: domain.OutcomePlayed})
	assert.Len(t, history.Recent(domain.DefaultHistorySize), 1)

	// The bad value can still be replaced through Set.
	require.NoError(t, service.Set("playback.history_size", "100"))
	settings, err = service.Get()
	require.NoError(t, err)
	assert.Equal(t, 100, settings.Playback.HistorySize)
}
