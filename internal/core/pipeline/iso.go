package pipeline

import (
	"fmt"
	"sync"

	"github.com/custodia-labs/plato/internal/core/domain"
)

// IsoPipeline extracts up to a fixed number of isosurfaces from a field,
// optionally clipped by a cut plane through the field centroid.
type IsoPipeline struct {
	mu      sync.RWMutex
	field   *domain.VolumetricField
	colours colourSlot
	values  []float64
	visible []bool
	cutOn   bool
	origin  domain.Vec3
	normal  domain.Vec3
	closed  bool
}

var _ Pipeline = (*IsoPipeline)(nil)

// NewIsoPipeline creates an iso pipeline with the given number of surfaces.
// Every surface starts at the middle of the data range and only surface 0
// is visible.
func NewIsoPipeline(field *domain.VolumetricField, surfaces int, opts ...Option) *IsoPipeline {
	if surfaces < 1 {
		surfaces = domain.DefaultIsoSurfaces
	}
	mid := field.ValueRange().Mid()
	p := &IsoPipeline{
		field:   field,
		colours: newColourSlot(opts),
		values:  make([]float64, surfaces),
		visible: make([]bool, surfaces),
		origin:  field.Centroid(),
		normal:  domain.Vec3{Y: 1},
	}
	for i := range p.values {
		p.values[i] = mid
	}
	p.visible[0] = true
	return p
}

// Kind implements Pipeline.
func (p *IsoPipeline) Kind() domain.PipelineKind { return domain.PipelineIso }

// Surfaces returns the number of steerable surfaces.
func (p *IsoPipeline) Surfaces() int { return len(p.values) }

// Range returns the data range of the underlying field.
func (p *IsoPipeline) Range() domain.ValueRange { return p.field.ValueRange() }

// SetIsoValue updates surface i. The call is ignored when the surface is
// hidden or i is out of range.
func (p *IsoPipeline) SetIsoValue(i int, v float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if i < 0 || i >= len(p.values) || !p.visible[i] {
		return
	}
	p.values[i] = v
}

// IsoValue returns the value of surface i, or 0 when i is out of range.
func (p *IsoPipeline) IsoValue(i int) float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if i < 0 || i >= len(p.values) {
		return 0
	}
	return p.values[i]
}

// SetIsoVisible shows or hides surface i. Out-of-range indices and calls
// that would not change the state are ignored.
func (p *IsoPipeline) SetIsoVisible(i int, on bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if i < 0 || i >= len(p.visible) || p.visible[i] == on {
		return
	}
	p.visible[i] = on
}

// IsIsoVisible reports whether surface i is drawn.
func (p *IsoPipeline) IsIsoVisible(i int) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if i < 0 || i >= len(p.visible) {
		return false
	}
	return p.visible[i]
}

// ActiveValues returns the values of the visible surfaces in index order.
// This is the contour list the extraction runs with.
func (p *IsoPipeline) ActiveValues() []float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()

	var out []float64
	for i, v := range p.values {
		if p.visible[i] {
			out = append(out, v)
		}
	}
	return out
}

// SetCutPlane enables or disables clipping.
func (p *IsoPipeline) SetCutPlane(on bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cutOn = on
}

// IsCutPlaneOn reports whether clipping is enabled.
func (p *IsoPipeline) IsCutPlaneOn() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.cutOn
}

// CutPlane returns the plane origin and normal.
func (p *IsoPipeline) CutPlane() (origin, normal domain.Vec3) {
	return p.origin, p.normal
}

// Enclosed counts the samples at or above surface i's value. With the cut
// plane on, only samples on the positive side of the plane count.
func (p *IsoPipeline) Enclosed(i int) int {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if i < 0 || i >= len(p.values) {
		return 0
	}
	return p.enclosedLocked(p.values[i])
}

func (p *IsoPipeline) enclosedLocked(v float64) int {
	n := 0
	for idx := 0; idx < p.field.Len(); idx++ {
		if p.field.Value(idx) < v {
			continue
		}
		if p.cutOn && p.field.Point(idx).Sub(p.origin).Dot(p.normal) < 0 {
			continue
		}
		n++
	}
	return n
}

// Colour returns the colour surface i is drawn with.
func (p *IsoPipeline) Colour(i int) RGB {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed || i < 0 || i >= len(p.values) {
		return RGB{}
	}
	return p.colours.table.Colour(p.values[i], p.field.ValueRange())
}

// Renderables implements Pipeline. Each surface yields one item.
func (p *IsoPipeline) Renderables() []domain.Renderable {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return nil
	}
	out := make([]domain.Renderable, 0, len(p.values))
	for i, v := range p.values {
		summary := fmt.Sprintf("value %.4g, %d/%d samples enclosed",
			v, p.enclosedLocked(v), p.field.Len())
		if p.cutOn {
			summary += fmt.Sprintf(", clipped at y=%.3g", p.origin.Y)
		}
		out = append(out, domain.Renderable{
			Pipeline: domain.PipelineIso,
			Name:     fmt.Sprintf("iso %d", i),
			Visible:  p.visible[i],
			Summary:  summary,
		})
	}
	return out
}

// Ownership reports whether the colour table is owned or borrowed.
func (p *IsoPipeline) Ownership() domain.ColourOwnership {
	return p.colours.ownership
}

// Close implements Pipeline.
func (p *IsoPipeline) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.colours.release()
	p.closed = true
	return nil
}
