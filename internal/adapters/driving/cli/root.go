// Package cli provides the pvs command line.
//
// The root command opens the viewer on the given rho and xyz files.
// Subcommands inspect input files, read back the steering journal, edit
// settings and steer a running viewer through its steer file.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/plato/internal/core/domain"
	"github.com/custodia-labs/plato/internal/core/ports/driven"
	"github.com/custodia-labs/plato/internal/core/ports/driving"
	"github.com/custodia-labs/plato/internal/logger"
)

// version is the program version, overridable at link time.
var version = "0.05 pre"

// ErrNoInput is returned when the viewer is started without input files.
var ErrNoInput = errors.New("no input files: give --rho and/or --xyz")

// Services holds everything the commands call into.
type Services struct {
	Settings driving.SettingsService
	Scene    driving.SceneService
	Journal  driving.JournalService

	// NewSteering builds a steering service and its source for one run.
	NewSteering func(settings domain.SteeringSettings) (driving.SteeringService, driven.SteeringSource, error)

	// Close releases stores opened by the bootstrap. May be nil.
	Close func() error
}

// Bootstrap creates the services once flags are parsed.
type Bootstrap func(configDir string) (*Services, error)

var (
	services  *Services
	bootstrap Bootstrap
)

// Root flags.
var (
	rhoPath       string
	xyzPath       string
	isosurface    bool
	orthoslice    bool
	cutPlane      bool
	steer         bool
	steerSource   string
	steerFilePath string
	mcpAddr       string
	headless      bool
	configDir     string
	verbose       bool
)

var rootCmd = &cobra.Command{
	Use:   "pvs",
	Short: "Plato Visualisation System",
	Long: `pvs draws electron density (rho) and molecular geometry (xyz) files.

Isosurfaces, an orthoslice and a cut plane of the density are drawn
alongside the molecule. With --steer, a client can change what is drawn
while the viewer runs, through a TOML steer file or an MCP server.`,
	Example: `  pvs -r benzene.rho -x benzene.xyz
  pvs -r benzene.rho --orthoslice --steer
  pvs -r benzene.rho --steer --steer-source mcp --mcp-addr 127.0.0.1:7420`,
	Version:           version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	Args:              cobra.NoArgs,
	PersistentPreRunE: initServices,
	RunE:              runView,
}

func init() {
	rootCmd.SetVersionTemplate("Plato Visualisation System {{.Version}}\n")

	flags := rootCmd.Flags()
	flags.StringVarP(&rhoPath, "rho", "r", "", "electron density file")
	flags.StringVarP(&xyzPath, "xyz", "x", "", "molecule geometry file")
	flags.BoolVar(&isosurface, "isosurface", true, "draw isosurfaces of the density")
	flags.BoolVar(&orthoslice, "orthoslice", false, "draw an orthoslice through the density")
	flags.BoolVar(&cutPlane, "cutplane", false, "clip isosurfaces with the cut plane")
	flags.BoolVar(&steer, "steer", false, "accept steering while the viewer runs")
	flags.StringVar(&steerSource, "steer-source", "", "steering source: file or mcp")
	flags.StringVar(&steerFilePath, "steer-file", "", "steer file path for the file source")
	flags.StringVar(&mcpAddr, "mcp-addr", "", "listen address for the mcp source")
	flags.BoolVar(&headless, "headless", false, "print frames instead of opening the terminal viewer")

	persistent := rootCmd.PersistentFlags()
	persistent.StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.plato)")
	persistent.BoolVar(&verbose, "verbose", false, "print debug output to stderr")
}

// SetServices injects ready-made services; the bootstrap is then skipped.
func SetServices(s *Services) {
	services = s
}

// SetBootstrap registers the function that builds services after flag parsing.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

func initServices(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	if services != nil || bootstrap == nil {
		return nil
	}
	s, err := bootstrap(configDir)
	if err != nil {
		return fmt.Errorf("initialising: %w", err)
	}
	services = s
	return nil
}

// ExecuteContext runs the root command and closes bootstrapped services.
func ExecuteContext(ctx context.Context) error {
	defer closeServices()
	return rootCmd.ExecuteContext(ctx)
}

func closeServices() {
	if services != nil && services.Close != nil {
		if err := services.Close(); err != nil {
			logger.Warn("closing services: %v", err)
		}
	}
}

func requireServices() (*Services, error) {
	if services == nil {
		return nil, errors.New("services not configured")
	}
	return services, nil
}
