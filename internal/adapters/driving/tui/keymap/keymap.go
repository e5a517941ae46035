// Package keymap defines keybindings for the viewer TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

// Ensure KeyMap can drive the help component.
var _ help.KeyMap = (*KeyMap)(nil)

// KeyMap defines all keybindings for the viewer.
type KeyMap struct {
	// Quit closes the viewer window.
	Quit key.Binding

	// Help toggles the full help line.
	Help key.Binding

	// Redraw forces a frame without a steering request.
	Redraw key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Redraw: key.NewBinding(
			key.WithKeys("r", "ctrl+l"),
			key.WithHelp("r", "redraw"),
		),
	}
}

// ShortHelp returns a short list of keybindings for the help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Help}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Redraw},
		{k.Help, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
