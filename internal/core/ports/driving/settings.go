package driving

import "github.com/custodia-labs/plato/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings, defaults filled in.
	Get() (*domain.AppSettings, error)

	// Save validates and persists application settings.
	Save(settings *domain.AppSettings) error

	// Set updates a single setting by its config key, e.g. "steering.poll_ms".
	// Returns domain.ErrInvalidInput for an unknown key or unparsable value.
	Set(key, value string) error

	// Keys lists the config keys Set accepts.
	Keys() []string

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
