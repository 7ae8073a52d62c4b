package driving

import "github.com/custodia-labs/chime/internal/core/domain"

// SettingsService provides the effective application settings.
type SettingsService interface {
	// Get returns the settings, with defaults applied for missing or
	// invalid values.
	Get() (*domain.AppSettings, error)

	// Warnings lists values that were ignored while loading.
	Warnings() []string

	// Path returns the configuration file path.
	Path() string

	// Keys returns the configurable keys.
	Keys() []string

	// Set validates and stores one setting. Invalid input returns an error
	// wrapping domain.ErrInvalidInput or domain.ErrValidation and leaves
	// the stored configuration unchanged.
	Set(key, value string) error
}
