package driving

import (
	"context"

	"github.com/custodia-labs/plato/internal/core/domain"
	"github.com/custodia-labs/plato/internal/core/pipeline"
	"github.com/custodia-labs/plato/internal/core/ports/driven"
)

// SteeringService runs a steered viewer session.
type SteeringService interface {
	// Run registers the scene's parameters with the steering source, starts
	// the polling worker and blocks in loop.Run. When the loop returns it
	// requests shutdown and waits for the worker to finish before returning.
	Run(ctx context.Context, info domain.SteeringSession, scene *pipeline.Scene, loop driven.RenderLoop) error
}
