// Package xyz reads XYZ molecule files and infers bonds from covalent radii.
package xyz

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/custodia-labs/plato/internal/core/domain"
	"github.com/custodia-labs/plato/internal/core/ports/driven"
	"github.com/custodia-labs/plato/internal/logger"
)

// Ensure Reader implements the interface.
var _ driven.MoleculeReader = (*Reader)(nil)

// Reader loads XYZ files.
type Reader struct{}

// NewReader creates an XYZ reader.
func NewReader() *Reader {
	return &Reader{}
}

// Load reads the XYZ file at path.
func (r *Reader) Load(ctx context.Context, path string) (*domain.Molecule, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrFileOpen, path, err)
	}
	defer f.Close()

	m, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.Bonds = InferBonds(m.Atoms)
	logger.Debug("xyz: %s: %d atoms, %d bonds", path, len(m.Atoms), len(m.Bonds))
	return m, nil
}

// Parse reads the atoms of an XYZ stream. Bonds are left empty.
//
// The format is an atom count line, a free-text comment line, then one
// "Element x y z" line per atom. Columns after z are ignored.
func Parse(r io.Reader) (*domain.Molecule, error) {
	sc := bufio.NewScanner(r)
	line := 0
	nextLine := func() (string, bool) {
		if !sc.Scan() {
			return "", false
		}
		line++
		return sc.Text(), true
	}

	header, ok := nextLine()
	if !ok {
		return nil, fmt.Errorf("missing atom count: %w", domain.ErrMalformedData)
	}
	count, err := strconv.Atoi(strings.TrimSpace(header))
	if err != nil || count < 0 {
		return nil, fmt.Errorf("line 1: bad atom count %q: %w", header, domain.ErrMalformedData)
	}

	comment, ok := nextLine()
	if !ok {
		return nil, fmt.Errorf("missing comment line: %w", domain.ErrMalformedData)
	}

	m := &domain.Molecule{
		Comment: strings.TrimSpace(comment),
		Atoms:   make([]domain.Atom, 0, count),
	}
	for len(m.Atoms) < count {
		text, ok := nextLine()
		if !ok {
			return nil, fmt.Errorf("expected %d atoms, found %d: %w", count, len(m.Atoms), domain.ErrMalformedData)
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 4 {
			return nil, fmt.Errorf("line %d: want element and three coordinates: %w", line, domain.ErrMalformedData)
		}
		var pos [3]float64
		for c := range pos {
			if pos[c], err = strconv.ParseFloat(fields[c+1], 64); err != nil {
				return nil, fmt.Errorf("line %d: bad coordinate %q: %w", line, fields[c+1], domain.ErrMalformedData)
			}
		}
		m.Atoms = append(m.Atoms, domain.Atom{
			Element:  fields[0],
			Position: domain.Vec3{X: pos[0], Y: pos[1], Z: pos[2]},
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading atoms: %v: %w", err, domain.ErrMalformedData)
	}
	return m, nil
}

// InferBonds bonds every pair of atoms closer than the sum of their
// covalent radii plus a tolerance. Hydrogen pairs are never bonded.
func InferBonds(atoms []domain.Atom) []domain.Bond {
	var bonds []domain.Bond
	for a := 0; a < len(atoms); a++ {
		ra := radius(atoms[a].Element)
		for b := a + 1; b < len(atoms); b++ {
			if isHydrogen(atoms[a].Element) && isHydrogen(atoms[b].Element) {
				continue
			}
			limit := ra + radius(atoms[b].Element) + bondTolerance
			if atoms[a].Position.Dist2(atoms[b].Position) <= limit*limit {
				bonds = append(bonds, domain.Bond{A: a, B: b})
			}
		}
	}
	return bonds
}
