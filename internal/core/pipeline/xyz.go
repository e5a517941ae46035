package pipeline

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/plato/internal/core/domain"
)

// XYZPipeline renders a molecule as atoms plus optional bonds. Bonds are
// only drawn while the molecule itself is visible.
type XYZPipeline struct {
	mu       sync.RWMutex
	molecule *domain.Molecule
	atomsOn  bool
	bondsOn  bool
	closed   bool
}

var _ Pipeline = (*XYZPipeline)(nil)

// NewXYZPipeline creates a molecule pipeline with atoms and bonds visible.
func NewXYZPipeline(m *domain.Molecule) *XYZPipeline {
	return &XYZPipeline{molecule: m, atomsOn: true, bondsOn: true}
}

// Kind implements Pipeline.
func (p *XYZPipeline) Kind() domain.PipelineKind { return domain.PipelineXYZ }

// Molecule returns the molecule being drawn.
func (p *XYZPipeline) Molecule() *domain.Molecule { return p.molecule }

// SetMoleculeVisible shows or hides the whole molecule. The bond setting is
// kept, so showing the molecule again brings back the bonds it had.
func (p *XYZPipeline) SetMoleculeVisible(on bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.atomsOn = on
}

// IsMoleculeVisible reports whether the atoms are drawn.
func (p *XYZPipeline) IsMoleculeVisible() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.atomsOn
}

// SetBondsVisible shows or hides the bonds. Ignored while the molecule is hidden.
func (p *XYZPipeline) SetBondsVisible(on bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.atomsOn {
		return
	}
	p.bondsOn = on
}

// IsBondsVisible reports whether the bonds are drawn.
func (p *XYZPipeline) IsBondsVisible() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.atomsOn && p.bondsOn
}

// Renderables implements Pipeline.
func (p *XYZPipeline) Renderables() []domain.Renderable {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return nil
	}
	return []domain.Renderable{
		{
			Pipeline: domain.PipelineXYZ,
			Name:     "atoms",
			Visible:  p.atomsOn,
			Summary:  fmt.Sprintf("%d atoms (%s)", len(p.molecule.Atoms), composition(p.molecule)),
		},
		{
			Pipeline: domain.PipelineXYZ,
			Name:     "bonds",
			Visible:  p.atomsOn && p.bondsOn,
			Summary:  fmt.Sprintf("%d bonds", len(p.molecule.Bonds)),
		},
	}
}

// Close implements Pipeline.
func (p *XYZPipeline) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

// composition formats element counts as e.g. "C2 H6 O".
func composition(m *domain.Molecule) string {
	counts := map[string]int{}
	for _, a := range m.Atoms {
		counts[a.Element]++
	}
	elements := make([]string, 0, len(counts))
	for el := range counts {
		elements = append(elements, el)
	}
	sort.Strings(elements)

	parts := make([]string, 0, len(elements))
	for _, el := range elements {
		if counts[el] == 1 {
			parts = append(parts, el)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s%d", el, counts[el]))
	}
	return strings.Join(parts, " ")
}
