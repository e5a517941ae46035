package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/plato/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change the settings stored in config.toml.

Flags given to the viewer override these settings for a single run.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a setting",
	Long: `Change a single setting by its config key.

Keys:
  window.title               viewer window title
  window.width, window.height
  render.tick_ms             render loop tick in milliseconds
  iso.surfaces               number of steerable isosurfaces
  steering.enabled           accept steering by default (true/false)
  steering.poll_interval_ms  steering poll interval in milliseconds
  steering.source            file or mcp
  steering.file              steer file path
  steering.mcp_addr          MCP listen address
  journal.enabled            record steering sessions (true/false)`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	svc, err := requireServices()
	if err != nil {
		return err
	}
	if svc.Settings == nil {
		return errors.New("settings service not configured")
	}

	settings, err := svc.Settings.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Window]")
	cmd.Printf("  Title: %s\n", settings.Window.Title)
	cmd.Printf("  Size: %dx%d\n", settings.Window.Width, settings.Window.Height)
	cmd.Println()

	cmd.Println("[Render]")
	cmd.Printf("  Tick: %s\n", settings.Render.Tick)
	cmd.Println()

	cmd.Println("[Isosurfaces]")
	cmd.Printf("  Surfaces: %d\n", settings.Iso.Surfaces)
	cmd.Println()

	cmd.Println("[Steering]")
	cmd.Printf("  Enabled: %s\n", onOff(settings.Steering.Enabled))
	cmd.Printf("  Poll interval: %s\n", settings.Steering.PollInterval)
	cmd.Printf("  Source: %s\n", settings.Steering.Source.Description())
	switch settings.Steering.Source {
	case domain.SteeringSourceFile:
		cmd.Printf("  Steer file: %s\n", settings.Steering.File)
	case domain.SteeringSourceMCP:
		cmd.Printf("  MCP address: %s\n", settings.Steering.MCPAddr)
	}
	cmd.Println()

	cmd.Println("[Journal]")
	cmd.Printf("  Enabled: %s\n", onOff(settings.Journal.Enabled))

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	svc, err := requireServices()
	if err != nil {
		return err
	}
	if svc.Settings == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	if err := svc.Settings.Set(key, value); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return fmt.Errorf("%w\nvalid keys: %s", err, strings.Join(svc.Settings.Keys(), ", "))
		}
		return fmt.Errorf("failed to save setting: %w", err)
	}

	cmd.Printf("%s = %s\n", key, value)
	return nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
