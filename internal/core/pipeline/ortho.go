package pipeline

import (
	"fmt"
	"math"
	"sync"

	"github.com/custodia-labs/plato/internal/core/domain"
)

// OrthoPipeline is a single plane through the field centroid with normal
// +z, coloured by the field values.
type OrthoPipeline struct {
	mu      sync.RWMutex
	field   *domain.VolumetricField
	colours colourSlot
	on      bool
	origin  domain.Vec3
	normal  domain.Vec3
	closed  bool
}

var _ Pipeline = (*OrthoPipeline)(nil)

// NewOrthoPipeline creates an orthoslice pipeline. on sets initial visibility.
func NewOrthoPipeline(field *domain.VolumetricField, on bool, opts ...Option) *OrthoPipeline {
	return &OrthoPipeline{
		field:   field,
		colours: newColourSlot(opts),
		on:      on,
		origin:  field.Centroid(),
		normal:  domain.Vec3{Z: 1},
	}
}

// Kind implements Pipeline.
func (p *OrthoPipeline) Kind() domain.PipelineKind { return domain.PipelineOrtho }

// SetOrthoslice shows or hides the slice.
func (p *OrthoPipeline) SetOrthoslice(on bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.on = on
}

// IsOrthosliceOn reports whether the slice is drawn.
func (p *OrthoPipeline) IsOrthosliceOn() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.on
}

// Plane returns the slice origin and normal.
func (p *OrthoPipeline) Plane() (origin, normal domain.Vec3) {
	return p.origin, p.normal
}

// SliceIndex returns the lattice k plane the slice samples, or -1 for
// scattered fields.
func (p *OrthoPipeline) SliceIndex() int {
	if !p.field.IsUniform() {
		return -1
	}
	return p.field.Dimensions()[2] / 2
}

// Slice returns the values of the middle k plane as ny rows of nx values.
// Scattered fields have no lattice and return nil.
func (p *OrthoPipeline) Slice() [][]float64 {
	k := p.SliceIndex()
	if k < 0 {
		return nil
	}
	dims := p.field.Dimensions()
	rows := make([][]float64, dims[1])
	for j := range rows {
		rows[j] = make([]float64, dims[0])
		for i := range rows[j] {
			rows[j][i] = p.field.At(i, j, k)
		}
	}
	return rows
}

// slabCount counts scattered points within a thin slab around the plane.
func (p *OrthoPipeline) slabCount() int {
	b := p.field.Bounds()
	half := (b.Max.Z - b.Min.Z) / 20
	n := 0
	for i := 0; i < p.field.Len(); i++ {
		if math.Abs(p.field.Point(i).Sub(p.origin).Dot(p.normal)) <= half {
			n++
		}
	}
	return n
}

// Colour returns the colour of value v on the slice.
func (p *OrthoPipeline) Colour(v float64) RGB {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return RGB{}
	}
	return p.colours.table.Colour(v, p.field.ValueRange())
}

// Renderables implements Pipeline.
func (p *OrthoPipeline) Renderables() []domain.Renderable {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return nil
	}
	var summary string
	if p.field.IsUniform() {
		dims := p.field.Dimensions()
		summary = fmt.Sprintf("plane k=%d at z=%.3g, %dx%d samples",
			p.SliceIndex(), p.origin.Z, dims[0], dims[1])
	} else {
		summary = fmt.Sprintf("plane z=%.3g, %d scattered points nearby", p.origin.Z, p.slabCount())
	}
	return []domain.Renderable{{
		Pipeline: domain.PipelineOrtho,
		Name:     "orthoslice",
		Visible:  p.on,
		Summary:  summary,
	}}
}

// Ownership reports whether the colour table is owned or borrowed.
func (p *OrthoPipeline) Ownership() domain.ColourOwnership {
	return p.colours.ownership
}

// Close implements Pipeline.
func (p *OrthoPipeline) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.colours.release()
	p.closed = true
	return nil
}
