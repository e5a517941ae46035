package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/plato/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/plato/internal/core/domain"
)

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	settings, err := service.Get()
	require.NoError(t, err)

	defaults := domain.DefaultAppSettings()
	assert.Equal(t, defaults.Window, settings.Window)
	assert.Equal(t, defaults.Render.Tick, settings.Render.Tick)
	assert.Equal(t, 2, settings.Iso.Surfaces)
	assert.False(t, settings.Steering.Enabled)
	assert.Equal(t, 200*time.Millisecond, settings.Steering.PollInterval)
	assert.Equal(t, domain.SteeringSourceFile, settings.Steering.Source)
	assert.Equal(t, "steer.toml", settings.Steering.File)
	assert.True(t, settings.Journal.Enabled)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("window.title", "Density")
	_ = store.Set("steering.poll_interval_ms", 50)
	_ = store.Set("steering.source", "mcp")
	_ = store.Set("journal.enabled", false)

	settings, err := NewSettingsService(store).Get()
	require.NoError(t, err)

	assert.Equal(t, "Density", settings.Window.Title)
	assert.Equal(t, 50*time.Millisecond, settings.Steering.PollInterval)
	assert.Equal(t, domain.SteeringSourceMCP, settings.Steering.Source)
	assert.False(t, settings.Journal.Enabled)
}

func TestSettingsService_Get_InvalidValuesReturnDefaults(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("steering.source", "carrier-pigeon")
	_ = store.Set("iso.surfaces", -4)

	settings, err := NewSettingsService(store).Get()
	require.NoError(t, err)
	assert.Equal(t, domain.SteeringSourceFile, settings.Steering.Source)
	assert.Equal(t, domain.DefaultIsoSurfaces, settings.Iso.Surfaces)
}

func TestSettingsService_SaveRoundTrip(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	settings := service.GetDefaults()
	settings.Render.Tick = 40 * time.Millisecond
	settings.Steering.Enabled = true
	settings.Steering.MCPAddr = "127.0.0.1:9000"
	require.NoError(t, service.Save(&settings))

	got, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, settings, *got)
	assert.Equal(t, 40, store.GetInt("render.tick_ms"))
}

func TestSettingsService_SaveRejectsInvalid(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	settings := service.GetDefaults()
	settings.Iso.Surfaces = 0
	assert.ErrorIs(t, service.Save(&settings), domain.ErrInvalidInput)
}

func TestSettingsService_Set(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	require.NoError(t, service.Set("iso.surfaces", "4"))
	require.NoError(t, service.Set("steering.enabled", "true"))
	require.NoError(t, service.Set("steering.source", "mcp"))
	require.NoError(t, service.Set("window.title", "Hello"))

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, 4, settings.Iso.Surfaces)
	assert.True(t, settings.Steering.Enabled)
	assert.Equal(t, domain.SteeringSourceMCP, settings.Steering.Source)
	assert.Equal(t, "Hello", settings.Window.Title)
}

func TestSettingsService_SetRejects(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	tests := []struct {
		key, value string
	}{
		{"no.such.key", "1"},
		{"iso.surfaces", "zero"},
		{"render.tick_ms", "-5"},
		{"journal.enabled", "maybe"},
		{"steering.source", "smoke"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.ErrorIs(t, service.Set(tt.key, tt.value), domain.ErrInvalidInput)
		})
	}
}

func TestSettingsService_Keys(t *testing.T) {
	keys := NewSettingsService(memory.NewConfigStore()).Keys()
	assert.Len(t, keys, 11)
	assert.Equal(t, "iso.surfaces", keys[0])
}
