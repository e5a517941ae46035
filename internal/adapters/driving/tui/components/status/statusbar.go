// Package status provides the viewer status bar.
package status

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/plato/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/plato/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/plato/internal/core/domain"
)

// Bar displays the steering state, frame count and keybinding hints.
type Bar struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	steered bool
	state   domain.SessionState
	frames  int
	message string
	width   int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  domain.StateRunning,
		width:  80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update handles status bar messages.
func (s *Bar) Update(_ tea.Msg) (*Bar, tea.Cmd) {
	// Bar is passive, updated via Set methods
	return s, nil
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

func (s *Bar) renderLeft() string {
	frames := fmt.Sprintf("frame %d", s.frames)
	if s.message != "" {
		return s.styles.Warning.Render(s.message) + " " + s.styles.Muted.Render(frames)
	}
	if !s.steered {
		return s.styles.Muted.Render("not steered · " + frames)
	}
	label := "steering " + s.state.String()
	style := s.styles.Success
	if s.state != domain.StateRunning {
		style = s.styles.Warning
	}
	return style.Render(label) + s.styles.Muted.Render(" · "+frames)
}

func (s *Bar) renderRight() string {
	bindings := s.keymap.ShortHelp()
	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetSteered records whether a steering worker is attached.
func (s *Bar) SetSteered(steered bool) {
	s.steered = steered
}

// Steered reports whether a steering worker is attached.
func (s *Bar) Steered() bool {
	return s.steered
}

// SetState sets the steering handshake state.
func (s *Bar) SetState(state domain.SessionState) {
	s.state = state
}

// State returns the steering handshake state.
func (s *Bar) State() domain.SessionState {
	return s.state
}

// SetFrames sets the frame counter.
func (s *Bar) SetFrames(n int) {
	s.frames = n
}

// Frames returns the frame counter.
func (s *Bar) Frames() int {
	return s.frames
}

// SetMessage sets a transient message.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}
