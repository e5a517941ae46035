package mcp

import (
	"sync"

	"github.com/custodia-labs/plato/internal/core/domain"
)

var (
	_ SteeringInbox = (*mockInbox)(nil)
	_ SceneView     = (*mockScene)(nil)
)

// mockInbox records pushes.
type mockInbox struct {
	mu       sync.Mutex
	params   []domain.Parameter
	pushed   []domain.ParameterChange
	commands []domain.Command
	err      error
}

func (m *mockInbox) Parameters() []domain.Parameter {
	return m.params
}

func (m *mockInbox) Push(name string, value float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.pushed = append(m.pushed, domain.ParameterChange{Name: name, Value: value})
	return nil
}

func (m *mockInbox) PushCommand(cmd domain.Command) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.commands = append(m.commands, cmd)
	return nil
}

// mockScene returns fixed renderables.
type mockScene struct {
	renderables []domain.Renderable
}

func (m *mockScene) Renderables() []domain.Renderable {
	return m.renderables
}
