// Package mailbox implements driven.SteeringSource as an in-memory queue.
//
// Producers such as the MCP server push changes and commands; the steering
// worker drains them on each poll. All methods are safe for concurrent use.
package mailbox

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/custodia-labs/plato/internal/core/domain"
	"github.com/custodia-labs/plato/internal/core/ports/driven"
)

// Ensure Mailbox implements the interface.
var _ driven.SteeringSource = (*Mailbox)(nil)

// Mailbox queues steering input between producers and the worker.
type Mailbox struct {
	mu       sync.Mutex
	app      string
	opened   bool
	closed   bool
	params   []domain.Parameter
	index    map[string]int
	changes  []domain.ParameterChange
	commands []domain.Command
}

// New creates an unopened mailbox.
func New() *Mailbox {
	return &Mailbox{index: make(map[string]int)}
}

// Open records the application and its parameters.
func (m *Mailbox) Open(_ context.Context, app string, params []domain.Parameter) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return domain.ErrSessionClosed
	}
	m.app = app
	m.params = append([]domain.Parameter(nil), params...)
	m.index = make(map[string]int, len(params))
	for i, p := range m.params {
		m.index[p.Name] = i
	}
	m.opened = true
	return nil
}

// App returns the name announced by Open.
func (m *Mailbox) App() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.app
}

// Push queues a parameter change after validating it against the
// registered parameters.
func (m *Mailbox) Push(name string, value float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.opened || m.closed {
		return domain.ErrSessionClosed
	}
	i, ok := m.index[name]
	if !ok {
		return fmt.Errorf("%q: %w", name, domain.ErrUnknownParameter)
	}
	p := &m.params[i]
	if p.Kind == domain.ParameterInt {
		value = math.Trunc(value)
	}
	if !p.InBounds(value) {
		return fmt.Errorf("%q value %g outside [%g, %g]: %w", name, value, p.Min, p.Max, domain.ErrOutOfBounds)
	}
	p.Value = value
	m.changes = append(m.changes, domain.ParameterChange{Name: name, Value: value})
	return nil
}

// PushCommand queues a command.
func (m *Mailbox) PushCommand(cmd domain.Command) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.opened || m.closed {
		return domain.ErrSessionClosed
	}
	m.commands = append(m.commands, cmd)
	return nil
}

// Parameters returns the registered parameters with the latest pushed values.
func (m *Mailbox) Parameters() []domain.Parameter {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Parameter(nil), m.params...)
}

// Pending returns the number of queued changes and commands.
func (m *Mailbox) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.changes) + len(m.commands)
}

// Poll drains the queue.
func (m *Mailbox) Poll(_ context.Context, _ int) (domain.PollResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.opened || m.closed {
		return domain.PollResult{Status: domain.PollFailed}, domain.ErrSessionClosed
	}
	res := domain.PollResult{
		Status:   domain.PollSuccess,
		Changes:  m.changes,
		Commands: m.commands,
	}
	m.changes = nil
	m.commands = nil
	return res, nil
}

// Close rejects further input. Queued input is discarded.
func (m *Mailbox) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.changes = nil
	m.commands = nil
	return nil
}

// Closed reports whether Close has been called.
func (m *Mailbox) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}
