package mcp

import (
	"github.com/custodia-labs/plato/internal/core/domain"
)

// SteeringInbox accepts steering input on behalf of the viewer.
// The mailbox steering source implements it.
type SteeringInbox interface {
	Parameters() []domain.Parameter
	Push(name string, value float64) error
	PushCommand(cmd domain.Command) error
}

// SceneView exposes what the viewer is drawing.
type SceneView interface {
	Renderables() []domain.Renderable
}

// Ports aggregates everything the MCP server talks to.
type Ports struct {
	// Steering receives parameter changes and commands.
	Steering SteeringInbox

	// Scene is optional; without it the scene resource is empty.
	Scene SceneView
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Steering == nil {
		return ErrMissingSteering
	}
	return nil
}
