package domain

// Atom is a single atom read from a molecule file.
type Atom struct {
	// Element is the chemical symbol as written in the file.
	Element string

	// Position is in ångström.
	Position Vec3
}

// Bond joins two atoms by index into Molecule.Atoms.
type Bond struct {
	A, B int
}

// Molecule is a set of atoms and the bonds inferred between them.
type Molecule struct {
	// Comment is the free-text second line of an XYZ file.
	Comment string

	Atoms []Atom
	Bonds []Bond
}

// Bounds returns the bounds of the atom positions.
func (m *Molecule) Bounds() Bounds {
	b := EmptyBounds()
	for _, a := range m.Atoms {
		b = b.Extend(a.Position)
	}
	return b
}
