package driven

import (
	"context"

	"github.com/custodia-labs/plato/internal/core/domain"
)

// FieldReader loads a volumetric field.
type FieldReader interface {
	// Load reads the file at path.
	// Returns domain.ErrFileOpen when the file cannot be opened and
	// domain.ErrMalformedData when its content cannot be parsed.
	Load(ctx context.Context, path string) (*domain.VolumetricField, error)
}

// MoleculeReader loads a molecule and infers its bonds.
type MoleculeReader interface {
	// Load reads the file at path. Errors follow FieldReader.Load.
	Load(ctx context.Context, path string) (*domain.Molecule, error)
}
