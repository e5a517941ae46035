package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/plato/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/plato/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/plato/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/plato/internal/core/domain"
	"github.com/custodia-labs/plato/internal/core/ports/driven"
)

// Config controls the viewer window.
type Config struct {
	// Title is set as the terminal window title.
	Title string

	// Tick is how often pending redraw requests are consumed.
	Tick time.Duration

	// Steered shows the steering state in the status bar.
	Steered bool

	// LogFile receives log output while the viewer holds the terminal.
	// Empty discards it.
	LogFile string
}

// tickMsg drives the render tick.
type tickMsg time.Time

// App is the viewer model following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	frames driven.FrameSource
	config Config

	styles *styles.Styles
	keymap *keymap.KeyMap
	help   help.Model
	status *status.Bar

	// frameCount counts redraws, one per consumed render request.
	frameCount int

	width  int
	height int
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates the viewer model.
func NewApp(ports *Ports, frames driven.FrameSource, cfg Config) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}
	if cfg.Tick <= 0 {
		cfg.Tick = domain.DefaultAppSettings().Render.Tick
	}
	if cfg.Title == "" {
		cfg.Title = domain.DefaultAppSettings().Window.Title
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	bar := status.NewBar(s, km)
	bar.SetSteered(cfg.Steered)

	return &App{
		ports:  ports,
		frames: frames,
		config: cfg,
		styles: s,
		keymap: km,
		help:   help.New(),
		status: bar,
	}, nil
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle(a.config.Title),
		a.tick(),
	)
}

func (a *App) tick() tea.Cmd {
	return tea.Tick(a.config.Tick, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.status.SetWidth(msg.Width)
		a.help.Width = msg.Width
		return a, nil

	case tickMsg:
		if a.frames != nil {
			if a.frames.ConsumeRender() {
				a.frameCount++
			}
			a.status.SetState(a.frames.State())
		}
		a.status.SetFrames(a.frameCount)
		return a, a.tick()

	case tea.KeyMsg:
		switch {
		case keymap.Matches(msg.String(), a.keymap.Quit):
			a.status.SetMessage("closing")
			return a, tea.Quit
		case keymap.Matches(msg.String(), a.keymap.Help):
			a.help.ShowAll = !a.help.ShowAll
			return a, nil
		case keymap.Matches(msg.String(), a.keymap.Redraw):
			a.frameCount++
			a.status.SetFrames(a.frameCount)
			return a, nil
		}
	}
	return a, nil
}

// View implements tea.Model.
func (a *App) View() string {
	var b strings.Builder

	b.WriteString(a.styles.Title.Render(a.config.Title))
	b.WriteString("\n")
	if line := a.fieldLine(); line != "" {
		b.WriteString(a.styles.Muted.Render(line))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	renderables := a.ports.Scene.Renderables()
	if len(renderables) == 0 {
		b.WriteString(a.styles.Muted.Render("nothing to draw"))
		b.WriteString("\n")
	}
	for _, r := range renderables {
		b.WriteString(a.renderableLine(r))
		b.WriteString("\n")
	}

	if heat := renderHeatMap(a.styles, a.ports.Scene.Ortho); heat != "" {
		b.WriteString("\n")
		b.WriteString(a.styles.Subtitle.Render("orthoslice"))
		b.WriteString("\n")
		b.WriteString(heat)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(a.status.View())
	b.WriteString("\n")
	b.WriteString(a.help.View(a.keymap))
	return b.String()
}

func (a *App) fieldLine() string {
	f := a.ports.Scene.Field
	if f == nil {
		return ""
	}
	r := f.ValueRange()
	if f.IsUniform() {
		d := f.Dimensions()
		return fmt.Sprintf("field: %dx%dx%d lattice, range [%.4g, %.4g]", d[0], d[1], d[2], r.Min, r.Max)
	}
	return fmt.Sprintf("field: %d scattered points, range [%.4g, %.4g]", f.Len(), r.Min, r.Max)
}

func (a *App) renderableLine(r domain.Renderable) string {
	marker, style := "●", a.styles.Visible
	if !r.Visible {
		marker, style = "○", a.styles.Hidden
	}
	tag := a.styles.Pipeline(r.Pipeline).Render(string(r.Pipeline))
	name := style.Render(fmt.Sprintf("%s %-12s", marker, r.Name))
	return tag + name + " " + a.styles.Normal.Render(r.Summary)
}

// Frames returns how many redraws have happened.
func (a *App) Frames() int {
	return a.frameCount
}
