package driving

import (
	"context"

	"github.com/custodia-labs/plato/internal/core/domain"
	"github.com/custodia-labs/plato/internal/core/pipeline"
)

// SceneService loads input files and builds the pipelines to draw them.
type SceneService interface {
	// Build loads the inputs named in opts and creates the selected pipelines.
	// Returns domain.ErrInvalidInput when opts names no input.
	Build(ctx context.Context, opts domain.SceneOptions) (*pipeline.Scene, error)

	// LoadField reads a rho file without building any pipeline.
	LoadField(ctx context.Context, path string) (*domain.VolumetricField, error)
}
