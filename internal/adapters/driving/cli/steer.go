package cli

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/plato/internal/adapters/driven/steering/file"
)

var steerCmd = &cobra.Command{
	Use:   "steer",
	Short: "Steer a running viewer through its steer file",
	Long: `Edit the steer file of a viewer started with --steer and the file source.
The viewer picks up each change on its next poll.`,
}

var steerShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the parameters in the steer file",
	Args:  cobra.NoArgs,
	RunE:  runSteerShow,
}

var steerSetCmd = &cobra.Command{
	Use:   "set [name] [value]",
	Short: "Set a parameter, e.g. pvs steer set \"Iso 0 value\" 0.05",
	Args:  cobra.ExactArgs(2),
	RunE:  runSteerSet,
}

var steerStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Ask the viewer to close",
	Args:  cobra.NoArgs,
	RunE:  runSteerStop,
}

func init() {
	steerCmd.PersistentFlags().StringVar(&steerFilePath, "steer-file", "", "steer file path (default from settings)")
	steerCmd.AddCommand(steerShowCmd)
	steerCmd.AddCommand(steerSetCmd)
	steerCmd.AddCommand(steerStopCmd)
	rootCmd.AddCommand(steerCmd)
}

// steerFile resolves the steer file from the flag or settings.
func steerFile(cmd *cobra.Command) (string, error) {
	if cmd.Flags().Changed("steer-file") && steerFilePath != "" {
		return steerFilePath, nil
	}
	svc, err := requireServices()
	if err != nil {
		return "", err
	}
	if svc.Settings == nil {
		return "", errors.New("settings service not configured")
	}
	settings, err := svc.Settings.Get()
	if err != nil {
		return "", fmt.Errorf("loading settings: %w", err)
	}
	return settings.Steering.File, nil
}

func runSteerShow(cmd *cobra.Command, _ []string) error {
	path, err := steerFile(cmd)
	if err != nil {
		return err
	}
	values, err := file.ReadParameters(path)
	if err != nil {
		return fmt.Errorf("reading steer file: %w", err)
	}

	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	cmd.Printf("Steer file: %s\n", path)
	for _, name := range names {
		cmd.Printf("  %-20s %g\n", name, values[name])
	}
	return nil
}

func runSteerSet(cmd *cobra.Command, args []string) error {
	path, err := steerFile(cmd)
	if err != nil {
		return err
	}
	value, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("value %q is not a number", args[1])
	}
	if err := file.WriteValue(path, args[0], value); err != nil {
		return fmt.Errorf("writing steer file: %w", err)
	}
	cmd.Printf("%s = %g\n", args[0], value)
	return nil
}

func runSteerStop(cmd *cobra.Command, _ []string) error {
	path, err := steerFile(cmd)
	if err != nil {
		return err
	}
	if err := file.RequestStop(path); err != nil {
		return fmt.Errorf("writing steer file: %w", err)
	}
	cmd.Println("Stop requested.")
	return nil
}
