package services

import (
	"fmt"
	"math"
	"sync"

	"github.com/custodia-labs/plato/internal/core/domain"
)

// ParameterSet is the ordered registry of steerable parameters.
// Names are unique; registration order is preserved.
type ParameterSet struct {
	mu     sync.RWMutex
	order  []string
	params map[string]*domain.Parameter
}

// NewParameterSet creates an empty registry.
func NewParameterSet() *ParameterSet {
	return &ParameterSet{params: make(map[string]*domain.Parameter)}
}

// Register adds a parameter. Returns domain.ErrParameterExists for a
// duplicate name and domain.ErrOutOfBounds when the initial value lies
// outside the bounds.
func (ps *ParameterSet) Register(p domain.Parameter) error {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	if _, ok := ps.params[p.Name]; ok {
		return fmt.Errorf("%q: %w", p.Name, domain.ErrParameterExists)
	}
	if !p.InBounds(p.Value) {
		return fmt.Errorf("%q initial value %g outside [%g, %g]: %w", p.Name, p.Value, p.Min, p.Max, domain.ErrOutOfBounds)
	}
	p.Changed = false
	ps.params[p.Name] = &p
	ps.order = append(ps.order, p.Name)
	return nil
}

// Get returns a copy of the named parameter.
func (ps *ParameterSet) Get(name string) (domain.Parameter, bool) {
	ps.mu.RLock()
	defer ps.mu.RUnlock()

	p, ok := ps.params[name]
	if !ok {
		return domain.Parameter{}, false
	}
	return *p, true
}

// Value returns the current value of the named parameter, or 0.
func (ps *ParameterSet) Value(name string) float64 {
	p, _ := ps.Get(name)
	return p.Value
}

// Apply sets a parameter from a change reported by the steering source.
// Int parameters are truncated before the bounds check.
// Returns domain.ErrUnknownParameter or domain.ErrOutOfBounds, leaving the
// stored value untouched.
func (ps *ParameterSet) Apply(change domain.ParameterChange) (domain.Parameter, error) {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	p, ok := ps.params[change.Name]
	if !ok {
		return domain.Parameter{}, fmt.Errorf("%q: %w", change.Name, domain.ErrUnknownParameter)
	}
	v := change.Value
	if p.Kind == domain.ParameterInt {
		v = math.Trunc(v)
	}
	if !p.InBounds(v) {
		return *p, fmt.Errorf("%q value %g outside [%g, %g]: %w", p.Name, v, p.Min, p.Max, domain.ErrOutOfBounds)
	}
	p.Value = v
	p.Changed = true
	return *p, nil
}

// ClearChanged resets every Changed flag.
func (ps *ParameterSet) ClearChanged() {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	for _, p := range ps.params {
		p.Changed = false
	}
}

// Snapshot returns copies of all parameters in registration order.
func (ps *ParameterSet) Snapshot() []domain.Parameter {
	ps.mu.RLock()
	defer ps.mu.RUnlock()

	out := make([]domain.Parameter, 0, len(ps.order))
	for _, name := range ps.order {
		out = append(out, *ps.params[name])
	}
	return out
}

// Len returns the number of registered parameters.
func (ps *ParameterSet) Len() int {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	return len(ps.order)
}
