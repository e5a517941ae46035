package tui

import (
	"strings"

	"github.com/custodia-labs/plato/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/plato/internal/core/pipeline"
)

// Heat map size limits in terminal cells. Each sample is two cells wide.
const (
	maxHeatCols = 32
	maxHeatRows = 16
)

// renderHeatMap paints the orthoslice plane with the shared colour table.
// Rows are printed top down, so the highest j comes first.
func renderHeatMap(s *styles.Styles, ortho *pipeline.OrthoPipeline) string {
	if ortho == nil || !ortho.IsOrthosliceOn() {
		return ""
	}
	slice := ortho.Slice()
	if slice == nil {
		return s.Muted.Render("scattered field: no lattice plane to show")
	}
	if len(slice) == 0 || len(slice[0]) == 0 {
		return ""
	}

	ny, nx := len(slice), len(slice[0])
	stepY := ceilDiv(ny, maxHeatRows)
	stepX := ceilDiv(nx, maxHeatCols)

	var b strings.Builder
	for j := ny - 1; j >= 0; j -= stepY {
		for i := 0; i < nx; i += stepX {
			hex := ortho.Colour(slice[j][i]).Hex()
			b.WriteString(s.Swatch(hex).Render("  "))
		}
		if j-stepY >= 0 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
