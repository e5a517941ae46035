package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/plato/internal/core/domain"
	"github.com/custodia-labs/plato/internal/core/pipeline"
	"github.com/custodia-labs/plato/internal/core/ports/driven"
	"github.com/custodia-labs/plato/internal/core/ports/driving"
	"github.com/custodia-labs/plato/internal/logger"
)

// Ensure SceneService implements the interface.
var _ driving.SceneService = (*SceneService)(nil)

// SceneService loads inputs and assembles pipelines.
type SceneService struct {
	fields    driven.FieldReader
	molecules driven.MoleculeReader
}

// NewSceneService creates a scene service.
func NewSceneService(fields driven.FieldReader, molecules driven.MoleculeReader) *SceneService {
	return &SceneService{fields: fields, molecules: molecules}
}

// LoadField reads a rho file.
func (s *SceneService) LoadField(ctx context.Context, path string) (*domain.VolumetricField, error) {
	return s.fields.Load(ctx, path)
}

// Build loads the inputs and creates the selected pipelines. The iso and
// ortho pipelines borrow one colour table owned by the scene.
func (s *SceneService) Build(ctx context.Context, opts domain.SceneOptions) (*pipeline.Scene, error) {
	if !opts.HasInput() {
		return nil, fmt.Errorf("no rho or xyz file given: %w", domain.ErrInvalidInput)
	}

	scene := &pipeline.Scene{}

	if opts.XYZPath != "" {
		logger.Section("Molecule")
		m, err := s.molecules.Load(ctx, opts.XYZPath)
		if err != nil {
			return nil, err
		}
		scene.Molecule = m
		scene.XYZ = pipeline.NewXYZPipeline(m)
	}

	if opts.RhoPath != "" {
		logger.Section("Field")
		f, err := s.fields.Load(ctx, opts.RhoPath)
		if err != nil {
			return nil, err
		}
		r := f.ValueRange()
		logger.Info("field: %d points, range [%g, %g]", f.Len(), r.Min, r.Max)

		scene.Field = f
		scene.Colours = pipeline.NewColourTable()
		shared := pipeline.WithColourTable(scene.Colours)

		if opts.Isosurface {
			surfaces := opts.IsoSurfaces
			if surfaces < 1 {
				surfaces = domain.DefaultIsoSurfaces
			}
			scene.Iso = pipeline.NewIsoPipeline(f, surfaces, shared)
			scene.Iso.SetCutPlane(opts.CutPlane)
		}
		if opts.Orthoslice {
			scene.Ortho = pipeline.NewOrthoPipeline(f, true, shared)
		}
	}

	return scene, nil
}
