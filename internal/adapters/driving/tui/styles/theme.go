// Package styles provides colours and lipgloss styles for the viewer TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/plato/internal/core/domain"
)

// Theme is the viewer palette.
type Theme struct {
	Accent  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Good    lipgloss.Color
	Warning lipgloss.Color
	Bar     lipgloss.Color

	// Molecule, Iso and Ortho tag renderables by the pipeline that drew them.
	Molecule lipgloss.Color
	Iso      lipgloss.Color
	Ortho    lipgloss.Color
}

// DefaultTheme returns the default palette.
func DefaultTheme() *Theme {
	return &Theme{
		Accent:   lipgloss.Color("#7C3AED"),
		Text:     lipgloss.Color("#CDD6F4"),
		Muted:    lipgloss.Color("#6C7086"),
		Good:     lipgloss.Color("#A6E3A1"),
		Warning:  lipgloss.Color("#F9E2AF"),
		Bar:      lipgloss.Color("#181825"),
		Molecule: lipgloss.Color("#FAB387"),
		Iso:      lipgloss.Color("#89B4FA"),
		Ortho:    lipgloss.Color("#94E2D5"),
	}
}

// Styles holds the styles the views render with.
type Styles struct {
	theme *Theme

	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Normal    lipgloss.Style
	Muted     lipgloss.Style
	Visible   lipgloss.Style
	Hidden    lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	StatusBar lipgloss.Style

	pipelines map[domain.PipelineKind]lipgloss.Style
}

// NewStyles creates styles from a theme. A nil theme means DefaultTheme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	tag := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(c).Width(5)
	}

	return &Styles{
		theme:    theme,
		Title:    lipgloss.NewStyle().Bold(true).Foreground(theme.Accent),
		Subtitle: lipgloss.NewStyle().Bold(true).Foreground(theme.Ortho),
		Normal:   lipgloss.NewStyle().Foreground(theme.Text),
		Muted:    lipgloss.NewStyle().Foreground(theme.Muted),
		Visible:  lipgloss.NewStyle().Bold(true).Foreground(theme.Good),
		Hidden:   lipgloss.NewStyle().Foreground(theme.Muted).Strikethrough(true),
		Success:  lipgloss.NewStyle().Foreground(theme.Good),
		Warning:  lipgloss.NewStyle().Foreground(theme.Warning),
		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(theme.Bar).
			Padding(0, 1),
		pipelines: map[domain.PipelineKind]lipgloss.Style{
			domain.PipelineXYZ:   tag(theme.Molecule),
			domain.PipelineIso:   tag(theme.Iso),
			domain.PipelineOrtho: tag(theme.Ortho),
		},
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}

// Pipeline returns the tag style for a pipeline kind; Muted for unknown kinds.
func (s *Styles) Pipeline(kind domain.PipelineKind) lipgloss.Style {
	if st, ok := s.pipelines[kind]; ok {
		return st
	}
	return s.Muted
}

// Swatch returns a style that paints a cell in the given hex colour.
func (s *Styles) Swatch(hex string) lipgloss.Style {
	return lipgloss.NewStyle().Background(lipgloss.Color(hex))
}
