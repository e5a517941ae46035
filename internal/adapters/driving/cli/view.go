package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	headlessloop "github.com/custodia-labs/plato/internal/adapters/driving/headless"
	"github.com/custodia-labs/plato/internal/adapters/driving/mcp"
	"github.com/custodia-labs/plato/internal/adapters/driving/tui"
	"github.com/custodia-labs/plato/internal/core/domain"
	"github.com/custodia-labs/plato/internal/core/pipeline"
	"github.com/custodia-labs/plato/internal/core/ports/driven"
	"github.com/custodia-labs/plato/internal/logger"
)

// idleFrames is the frame source for runs without steering: nothing ever
// requests a redraw, so only the initial frame is drawn.
type idleFrames struct{}

func (idleFrames) ConsumeRender() bool        { return false }
func (idleFrames) State() domain.SessionState { return domain.StateRunning }

func runView(cmd *cobra.Command, _ []string) error {
	opts := domain.SceneOptions{
		RhoPath:    rhoPath,
		XYZPath:    xyzPath,
		Isosurface: isosurface,
		Orthoslice: orthoslice,
		CutPlane:   cutPlane,
	}
	if !opts.HasInput() {
		_ = cmd.Usage()
		return ErrNoInput
	}

	svc, err := requireServices()
	if err != nil {
		return err
	}
	settings, err := svc.Settings.Get()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}
	if err := applyViewFlags(cmd, settings); err != nil {
		return err
	}
	opts.IsoSurfaces = settings.Iso.Surfaces

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	logger.Section("Loading")
	start := time.Now()
	scene, err := svc.Scene.Build(ctx, opts)
	if err != nil {
		return err
	}
	logger.Elapsed("loading scene", start)
	defer func() {
		if err := scene.Close(); err != nil {
			logger.Warn("closing scene: %v", err)
		}
	}()

	loop := newRenderLoop(cmd.OutOrStdout(), scene, settings)

	if !settings.Steering.Enabled {
		return loop.Run(ctx, idleFrames{})
	}
	return runSteered(ctx, cmd, svc, scene, settings, loop)
}

// applyViewFlags overrides settings with the flags given on this run.
func applyViewFlags(cmd *cobra.Command, settings *domain.AppSettings) error {
	flags := cmd.Flags()
	if flags.Changed("steer") {
		settings.Steering.Enabled = steer
	}
	if flags.Changed("steer-source") {
		src := domain.SteeringSourceType(steerSource)
		if !src.IsValid() {
			return fmt.Errorf("--steer-source %q: %w", steerSource, domain.ErrInvalidInput)
		}
		settings.Steering.Source = src
	}
	if flags.Changed("steer-file") {
		settings.Steering.File = steerFilePath
	}
	if flags.Changed("mcp-addr") {
		settings.Steering.MCPAddr = mcpAddr
	}
	return nil
}

func newRenderLoop(out io.Writer, scene *pipeline.Scene, settings *domain.AppSettings) driven.RenderLoop {
	if headless || !term.IsTerminal(int(os.Stdout.Fd())) {
		logger.Debug("using headless render loop")
		return headlessloop.NewLoop(scene, settings.Render.Tick, out)
	}
	loop, err := tui.NewLoop(&tui.Ports{Scene: scene}, tui.Config{
		Title:   settings.Window.Title,
		Tick:    settings.Render.Tick,
		Steered: settings.Steering.Enabled,
		LogFile: viewerLogFile(),
	})
	if err != nil {
		// Only a nil scene fails validation, and Build never returns one.
		return headlessloop.NewLoop(scene, settings.Render.Tick, out)
	}
	return loop
}

// viewerLogFile is where verbose output goes while the viewer owns the
// terminal.
func viewerLogFile() string {
	if !logger.IsVerbose() {
		return ""
	}
	return filepath.Join(os.TempDir(), "pvs.log")
}

func runSteered(
	ctx context.Context,
	cmd *cobra.Command,
	svc *Services,
	scene *pipeline.Scene,
	settings *domain.AppSettings,
	loop driven.RenderLoop,
) error {
	if svc.NewSteering == nil {
		return fmt.Errorf("steering not configured")
	}
	steering, source, err := svc.NewSteering(settings.Steering)
	if err != nil {
		return fmt.Errorf("creating steering source: %w", err)
	}

	info := domain.SteeringSession{
		ID:        uuid.NewString(),
		RhoPath:   rhoPath,
		XYZPath:   xyzPath,
		StartedAt: time.Now(),
	}
	logger.Info("steering session %s using %s source", info.ID, settings.Steering.Source)

	switch settings.Steering.Source {
	case domain.SteeringSourceMCP:
		inbox, ok := source.(mcp.SteeringInbox)
		if !ok {
			return fmt.Errorf("mcp steering needs an inbox source, got %T", source)
		}
		server, err := mcp.NewServer(&mcp.Ports{Steering: inbox, Scene: scene})
		if err != nil {
			return err
		}
		ln, err := mcp.Listen(settings.Steering.MCPAddr, mcp.PortAttempts)
		if err != nil {
			return err
		}
		serveCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		go func() {
			if err := server.Serve(serveCtx, ln); err != nil {
				logger.Warn("mcp: %v", err)
			}
		}()
		fmt.Fprintf(cmd.ErrOrStderr(), "MCP steering on http://%s\n", ln.Addr())
	case domain.SteeringSourceFile:
		fmt.Fprintf(cmd.ErrOrStderr(), "Steer file: %s\n", settings.Steering.File)
	}

	return steering.Run(ctx, info, scene, loop)
}
