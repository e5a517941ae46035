// Package domain defines the core entities for the Plato visualisation system.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - VolumetricField: A scalar field sampled on a lattice or scattered points
//   - Molecule: Atoms and bonds read from an XYZ file
//   - Parameter: An externally steerable value
//   - Renderable: A drawable item produced by a pipeline
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
