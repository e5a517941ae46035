package domain

import "time"

// DefaultIsoSurfaces is the number of isosurfaces a pipeline tracks.
const DefaultIsoSurfaces = 2

// SteeringSourceType selects the transport the steering worker polls.
type SteeringSourceType string

// Available steering sources.
const (
	// SteeringSourceFile polls a TOML file edited by the user.
	SteeringSourceFile SteeringSourceType = "file"

	// SteeringSourceMCP polls a mailbox fed by an MCP server.
	SteeringSourceMCP SteeringSourceType = "mcp"
)

// IsValid returns true if the source type is recognised.
func (t SteeringSourceType) IsValid() bool {
	switch t {
	case SteeringSourceFile, SteeringSourceMCP:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t SteeringSourceType) String() string {
	return string(t)
}

// Description returns a human-readable description of the source.
func (t SteeringSourceType) Description() string {
	switch t {
	case SteeringSourceFile:
		return "Steer file (TOML, watched for edits)"
	case SteeringSourceMCP:
		return "MCP server (HTTP)"
	default:
		return "Unknown"
	}
}

// WindowSettings configures the viewer window.
type WindowSettings struct {
	Title  string
	Width  int
	Height int
}

// RenderSettings configures the render loop.
type RenderSettings struct {
	// Tick is how often the render loop checks for a pending redraw.
	Tick time.Duration
}

// IsoSettings configures the isosurface pipeline.
type IsoSettings struct {
	// Surfaces is the number of independently steerable isosurfaces.
	Surfaces int
}

// SteeringSettings configures the steering worker.
type SteeringSettings struct {
	Enabled bool

	// PollInterval is the fixed sleep between polls.
	PollInterval time.Duration

	Source SteeringSourceType

	// File is the steer file path for SteeringSourceFile.
	File string

	// MCPAddr is the listen address for SteeringSourceMCP.
	MCPAddr string
}

// JournalSettings configures the steering journal.
type JournalSettings struct {
	Enabled bool
}

// AppSettings holds all application settings.
type AppSettings struct {
	Window   WindowSettings
	Render   RenderSettings
	Iso      IsoSettings
	Steering SteeringSettings
	Journal  JournalSettings
}

// Validate checks the settings for values the viewer cannot use.
func (s *AppSettings) Validate() error {
	if s.Render.Tick <= 0 || s.Steering.PollInterval <= 0 {
		return ErrInvalidInput
	}
	if s.Iso.Surfaces < 1 {
		return ErrInvalidInput
	}
	if !s.Steering.Source.IsValid() {
		return ErrInvalidInput
	}
	return nil
}

// DefaultAppSettings returns sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Window: WindowSettings{
			Title:  "Plato Visualization System",
			Width:  500,
			Height: 500,
		},
		Render: RenderSettings{
			Tick: 100 * time.Millisecond,
		},
		Iso: IsoSettings{
			Surfaces: DefaultIsoSurfaces,
		},
		Steering: SteeringSettings{
			Enabled:      false,
			PollInterval: 200 * time.Millisecond,
			Source:       SteeringSourceFile,
			MCPAddr:      "127.0.0.1:7420",
		},
		Journal: JournalSettings{
			Enabled: true,
		},
	}
}
