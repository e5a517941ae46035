package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/plato/internal/core/ports/driven"
)

var _ driven.ConfigStore = (*ConfigStore)(nil)

func TestConfigStore_Path(t *testing.T) {
	assert.Equal(t, ":memory:", NewConfigStore().Path())
	assert.Equal(t, "/tmp/pvs/config.toml", NewConfigStoreAt("/tmp/pvs/config.toml").Path())
}

func TestConfigStore_SetGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("window.title", "Plato"))
	require.NoError(t, store.Set("window.width", 800))
	require.NoError(t, store.Set("steering.enabled", true))

	assert.Equal(t, "Plato", store.GetString("window.title"))
	assert.Equal(t, 800, store.GetInt("window.width"))
	assert.True(t, store.GetBool("steering.enabled"))

	val, ok := store.Get("missing")
	assert.False(t, ok)
	assert.Nil(t, val)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("int64", int64(40))
	_ = store.Set("float", float64(2.9))
	_ = store.Set("string", "true")

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"int from int64", store.GetInt("int64"), 40},
		{"int from float truncates", store.GetInt("float"), 2},
		{"int wrong type", store.GetInt("string"), 0},
		{"bool wrong type", store.GetBool("string"), false},
		{"string wrong type", store.GetString("int64"), ""},
		{"missing int", store.GetInt("nope"), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestConfigStore_SaveLoad(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("iso.surfaces", 3)

	require.NoError(t, store.Save())
	require.NoError(t, store.Save())
	require.NoError(t, store.Load())

	assert.Equal(t, 2, store.Saves())
	assert.Equal(t, 3, store.GetInt("iso.surfaces"))
}

func TestConfigStore_InstancesAreIsolated(t *testing.T) {
	a := NewConfigStore()
	b := NewConfigStore()
	_ = a.Set("render.tick", "40ms")

	assert.Equal(t, "40ms", a.GetString("render.tick"))
	assert.Empty(t, b.GetString("render.tick"))
}

func TestConfigStore_ConcurrentAccess(t *testing.T) {
	store := NewConfigStore()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_ = store.Set("iso.surfaces", i)
			_ = store.Save()
		}(i)
		go func() {
			defer wg.Done()
			_ = store.GetInt("iso.surfaces")
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, store.Saves())
	_, ok := store.Get("iso.surfaces")
	assert.True(t, ok)
}
