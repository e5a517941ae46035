package keymap

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	require.NotNil(t, km)
}

func TestDefaultKeyMap_QuitBinding(t *testing.T) {
	km := DefaultKeyMap()

	keys := km.Quit.Keys()
	assert.Contains(t, keys, "q")
	assert.Contains(t, keys, "ctrl+c")
}

func TestDefaultKeyMap_HelpBinding(t *testing.T) {
	km := DefaultKeyMap()

	assert.Contains(t, km.Help.Keys(), "?")
}

func TestDefaultKeyMap_RedrawBinding(t *testing.T) {
	km := DefaultKeyMap()

	keys := km.Redraw.Keys()
	assert.Contains(t, keys, "r")
	assert.Contains(t, keys, "ctrl+l")
}

func TestKeyMap_ShortHelp(t *testing.T) {
	km := DefaultKeyMap()

	bindings := km.ShortHelp()
	require.Len(t, bindings, 2)
	assert.Equal(t, "quit", bindings[0].Help().Desc)
}

func TestKeyMap_FullHelp(t *testing.T) {
	km := DefaultKeyMap()

	groups := km.FullHelp()
	require.Len(t, groups, 2)
	assert.Equal(t, []key.Binding{km.Redraw}, groups[0])
}

func TestMatches(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name    string
		key     string
		binding key.Binding
		want    bool
	}{
		{"q quits", "q", km.Quit, true},
		{"ctrl+c quits", "ctrl+c", km.Quit, true},
		{"r redraws", "r", km.Redraw, true},
		{"x does nothing", "x", km.Quit, false},
		{"q is not help", "q", km.Help, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(tt.key, tt.binding))
		})
	}
}
