package pipeline

import (
	"fmt"
	"math"
	"sync"

	"github.com/custodia-labs/plato/internal/core/domain"
)

// colourEntries is the size of the lookup table.
const colourEntries = 256

// RGB is an 8-bit colour.
type RGB struct {
	R, G, B uint8
}

// Hex returns the colour as #rrggbb.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ColourTable maps scalars to colours with a linear hue ramp at full
// saturation and value.
type ColourTable struct {
	mu       sync.RWMutex
	hueMin   float64
	hueMax   float64
	entries  []RGB
	released bool
}

// NewColourTable builds the default table: hue 0..1, linear ramp.
func NewColourTable() *ColourTable {
	return NewColourTableWithHue(0, 1)
}

// NewColourTableWithHue builds a table whose hue runs from hueMin to hueMax.
func NewColourTableWithHue(hueMin, hueMax float64) *ColourTable {
	ct := &ColourTable{hueMin: hueMin, hueMax: hueMax}
	ct.build()
	return ct
}

func (ct *ColourTable) build() {
	ct.entries = make([]RGB, colourEntries)
	for i := range ct.entries {
		t := float64(i) / float64(colourEntries-1)
		ct.entries[i] = hsvToRGB(ct.hueMin+(ct.hueMax-ct.hueMin)*t, 1, 1)
	}
}

// Colour returns the colour for v within r. Values outside r clamp to the ends.
func (ct *ColourTable) Colour(v float64, r domain.ValueRange) RGB {
	ct.mu.RLock()
	defer ct.mu.RUnlock()

	if ct.released {
		return RGB{}
	}
	idx := int(r.Normalise(v) * colourEntries)
	if idx >= colourEntries {
		idx = colourEntries - 1
	}
	return ct.entries[idx]
}

// Released reports whether the table has been released by its owner.
func (ct *ColourTable) Released() bool {
	ct.mu.RLock()
	defer ct.mu.RUnlock()
	return ct.released
}

// Release frees the table. Only the owning pipeline calls this.
func (ct *ColourTable) Release() {
	ct.mu.Lock()
	defer ct.mu.Unlock()
	ct.entries = nil
	ct.released = true
}

// hsvToRGB converts h, s, v in [0, 1] to RGB. Hue wraps at 1.
func hsvToRGB(h, s, v float64) RGB {
	h = math.Mod(h, 1)
	if h < 0 {
		h++
	}
	h *= 6
	sector := math.Floor(h)
	f := h - sector
	p := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))

	var r, g, b float64
	switch int(sector) {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default:
		r, g, b = v, p, q
	}
	return RGB{R: to8(r), G: to8(g), B: to8(b)}
}

func to8(x float64) uint8 {
	return uint8(math.Round(x * 255))
}
