package pipeline

import (
	"errors"

	"github.com/custodia-labs/plato/internal/core/domain"
)

// Scene is the set of pipelines built for one viewer run. Any pipeline may
// be nil when its input or option was absent.
type Scene struct {
	Field    *domain.VolumetricField
	Molecule *domain.Molecule
	Colours  *ColourTable

	XYZ   *XYZPipeline
	Iso   *IsoPipeline
	Ortho *OrthoPipeline
}

// Pipelines returns the non-nil pipelines in draw order: molecule,
// isosurfaces, orthoslice.
func (s *Scene) Pipelines() []Pipeline {
	var out []Pipeline
	if s.XYZ != nil {
		out = append(out, s.XYZ)
	}
	if s.Iso != nil {
		out = append(out, s.Iso)
	}
	if s.Ortho != nil {
		out = append(out, s.Ortho)
	}
	return out
}

// Renderables collects renderables from every pipeline in draw order.
func (s *Scene) Renderables() []domain.Renderable {
	var out []domain.Renderable
	for _, p := range s.Pipelines() {
		out = append(out, p.Renderables()...)
	}
	return out
}

// Empty reports whether the scene has nothing to draw.
func (s *Scene) Empty() bool {
	return len(s.Pipelines()) == 0
}

// Close closes every pipeline, then releases the shared colour table.
func (s *Scene) Close() error {
	var errs []error
	for _, p := range s.Pipelines() {
		if err := p.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if s.Colours != nil {
		s.Colours.Release()
	}
	return errors.Join(errs...)
}
