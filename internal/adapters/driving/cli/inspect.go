package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/plato/internal/core/domain"
)

var inspectJSON bool

var inspectCmd = &cobra.Command{
	Use:   "inspect [rho-file]",
	Short: "Print statistics of a density file",
	Long: `Reads a rho file and prints its lattice, value range, bounds and centroid
without opening the viewer.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().BoolVar(&inspectJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(inspectCmd)
}

// fieldSummary is the printable description of a field.
type fieldSummary struct {
	Path       string     `json:"path"`
	Uniform    bool       `json:"uniform"`
	Dimensions [3]int     `json:"dimensions,omitempty"`
	Samples    int        `json:"samples"`
	Min        float64    `json:"min"`
	Max        float64    `json:"max"`
	Bounds     [6]float64 `json:"bounds"`
	Centroid   [3]float64 `json:"centroid"`
}

func summarise(path string, f *domain.VolumetricField) fieldSummary {
	r := f.ValueRange()
	c := f.Centroid()
	return fieldSummary{
		Path:       path,
		Uniform:    f.IsUniform(),
		Dimensions: f.Dimensions(),
		Samples:    f.Len(),
		Min:        r.Min,
		Max:        r.Max,
		Bounds:     f.Bounds().Array(),
		Centroid:   [3]float64{c.X, c.Y, c.Z},
	}
}

func runInspect(cmd *cobra.Command, args []string) error {
	svc, err := requireServices()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	field, err := svc.Scene.LoadField(ctx, args[0])
	if err != nil {
		return err
	}
	summary := summarise(args[0], field)

	if inspectJSON {
		data, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal summary: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Printf("File:     %s\n", summary.Path)
	if summary.Uniform {
		d := summary.Dimensions
		cmd.Printf("Lattice:  %d x %d x %d\n", d[0], d[1], d[2])
	} else {
		cmd.Println("Lattice:  scattered points")
	}
	cmd.Printf("Samples:  %d\n", summary.Samples)
	cmd.Printf("Range:    [%g, %g]\n", summary.Min, summary.Max)
	b := summary.Bounds
	cmd.Printf("Bounds:   x [%g, %g]  y [%g, %g]  z [%g, %g]\n", b[0], b[1], b[2], b[3], b[4], b[5])
	cmd.Printf("Centroid: (%g, %g, %g)\n", summary.Centroid[0], summary.Centroid[1], summary.Centroid[2])
	return nil
}
