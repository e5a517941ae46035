package services

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/custodia-labs/plato/internal/core/domain"
	"github.com/custodia-labs/plato/internal/core/ports/driven"
	"github.com/custodia-labs/plato/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyWindowTitle    = "window.title"
	keyWindowWidth    = "window.width"
	keyWindowHeight   = "window.height"
	keyRenderTick     = "render.tick_ms"
	keyIsoSurfaces    = "iso.surfaces"
	keySteerEnabled   = "steering.enabled"
	keySteerPoll      = "steering.poll_interval_ms"
	keySteerSource    = "steering.source"
	keySteerFile      = "steering.file"
	keySteerMCPAddr   = "steering.mcp_addr"
	keyJournalEnabled = "journal.enabled"
)

// steerFileName is the default steer file, next to the config file.
const steerFileName = "steer.toml"

type keyKind int

const (
	kindString keyKind = iota
	kindPositiveInt
	kindBool
	kindSource
)

var settingKeys = map[string]keyKind{
	keyWindowTitle:    kindString,
	keyWindowWidth:    kindPositiveInt,
	keyWindowHeight:   kindPositiveInt,
	keyRenderTick:     kindPositiveInt,
	keyIsoSurfaces:    kindPositiveInt,
	keySteerEnabled:   kindBool,
	keySteerPoll:      kindPositiveInt,
	keySteerSource:    kindSource,
	keySteerFile:      kindString,
	keySteerMCPAddr:   kindString,
	keyJournalEnabled: kindBool,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := s.GetDefaults()

	settings := &domain.AppSettings{
		Window: domain.WindowSettings{
			Title:  s.getString(keyWindowTitle, defaults.Window.Title),
			Width:  s.getInt(keyWindowWidth, defaults.Window.Width),
			Height: s.getInt(keyWindowHeight, defaults.Window.Height),
		},
		Render: domain.RenderSettings{
			Tick: s.getMillis(keyRenderTick, defaults.Render.Tick),
		},
		Iso: domain.IsoSettings{
			Surfaces: s.getInt(keyIsoSurfaces, defaults.Iso.Surfaces),
		},
		Steering: domain.SteeringSettings{
			Enabled:      s.getBool(keySteerEnabled, defaults.Steering.Enabled),
			PollInterval: s.getMillis(keySteerPoll, defaults.Steering.PollInterval),
			Source:       s.getSource(defaults.Steering.Source),
			File:         s.getString(keySteerFile, defaults.Steering.File),
			MCPAddr:      s.getString(keySteerMCPAddr, defaults.Steering.MCPAddr),
		},
		Journal: domain.JournalSettings{
			Enabled: s.getBool(keyJournalEnabled, defaults.Journal.Enabled),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}

	values := []struct {
		key   string
		value any
	}{
		{keyWindowTitle, settings.Window.Title},
		{keyWindowWidth, settings.Window.Width},
		{keyWindowHeight, settings.Window.Height},
		{keyRenderTick, int(settings.Render.Tick / time.Millisecond)},
		{keyIsoSurfaces, settings.Iso.Surfaces},
		{keySteerEnabled, settings.Steering.Enabled},
		{keySteerPoll, int(settings.Steering.PollInterval / time.Millisecond)},
		{keySteerSource, settings.Steering.Source.String()},
		{keySteerFile, settings.Steering.File},
		{keySteerMCPAddr, settings.Steering.MCPAddr},
		{keyJournalEnabled, settings.Journal.Enabled},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// Set parses value for key and stores it.
func (s *SettingsService) Set(key, value string) error {
	kind, ok := settingKeys[key]
	if !ok {
		return fmt.Errorf("unknown setting %q: %w", key, domain.ErrInvalidInput)
	}

	var parsed any
	switch kind {
	case kindString:
		parsed = value
	case kindPositiveInt:
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("%s must be a positive integer, got %q: %w", key, value, domain.ErrInvalidInput)
		}
		parsed = n
	case kindBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s must be true or false, got %q: %w", key, value, domain.ErrInvalidInput)
		}
		parsed = b
	case kindSource:
		src := domain.SteeringSourceType(value)
		if !src.IsValid() {
			return fmt.Errorf("invalid steering source %q: %w", value, domain.ErrInvalidInput)
		}
		parsed = src.String()
	}

	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Keys lists the settable keys in sorted order.
func (s *SettingsService) Keys() []string {
	keys := make([]string, 0, len(settingKeys))
	for k := range settingKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// GetDefaults returns default settings. The steer file defaults to
// steer.toml next to the config file.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	defaults := domain.DefaultAppSettings()
	defaults.Steering.File = filepath.Join(filepath.Dir(s.configStore.Path()), steerFileName)
	return defaults
}

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getMillis(key string, defaultVal time.Duration) time.Duration {
	ms := s.configStore.GetInt(key)
	if ms <= 0 {
		return defaultVal
	}
	return time.Duration(ms) * time.Millisecond
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getSource(defaultVal domain.SteeringSourceType) domain.SteeringSourceType {
	val := s.configStore.GetString(keySteerSource)
	if val == "" {
		return defaultVal
	}
	src := domain.SteeringSourceType(val)
	if !src.IsValid() {
		return defaultVal
	}
	return src
}
