// Package tui provides the terminal viewer window for pvs.
// It implements the render loop as a bubbletea program: a fixed tick
// consumes redraw requests raised by the steering worker, and the view
// describes every renderable of the scene plus an orthoslice heat map.
package tui

import (
	"github.com/custodia-labs/plato/internal/core/pipeline"
)

// Ports aggregates what the viewer draws.
type Ports struct {
	// Scene holds the pipelines. Required.
	Scene *pipeline.Scene
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Scene == nil {
		return ErrMissingScene
	}
	return nil
}
