package domain

import (
	"fmt"
	"slices"
)

// BohrRadius converts the basis vectors of a rho file from bohr to ångström.
const BohrRadius = 0.529177

// ScatteredMeshSentinel is the mesh-type value that selects scattered
// (atom-centred) mode in a rho file. The comparison is a literal equality;
// every other value selects a uniform lattice.
const ScatteredMeshSentinel = 1

// VolumetricField is a scalar field sampled either on a uniform lattice or
// at scattered points. It is built once by a reader and never modified.
type VolumetricField struct {
	uniform  bool
	dims     [3]int
	basis    Mat3
	points   []Vec3
	values   []float64
	valRange ValueRange
	bounds   Bounds
	centroid Vec3
}

// NewVolumetricField validates the point/value invariant and derives the
// value range, bounds and centroid. For uniform fields the point count must
// equal the product of dims. Ownership of points and values passes to the field.
func NewVolumetricField(uniform bool, dims [3]int, basis Mat3, points []Vec3, values []float64) (*VolumetricField, error) {
	if len(points) != len(values) {
		return nil, fmt.Errorf("%d points but %d values: %w", len(points), len(values), ErrInvalidInput)
	}
	if uniform {
		want := dims[0] * dims[1] * dims[2]
		if want != len(points) {
			return nil, fmt.Errorf("lattice %dx%dx%d needs %d points, got %d: %w",
				dims[0], dims[1], dims[2], want, len(points), ErrInvalidInput)
		}
	} else {
		dims = [3]int{}
	}

	f := &VolumetricField{
		uniform: uniform,
		dims:    dims,
		basis:   basis,
		points:  points,
		values:  values,
	}
	f.derive()
	return f, nil
}

// derive computes the statistics exposed to the render layer.
func (f *VolumetricField) derive() {
	if len(f.values) == 0 {
		return
	}

	r := ValueRange{Min: f.values[0], Max: f.values[0]}
	for _, v := range f.values[1:] {
		if v < r.Min {
			r.Min = v
		}
		if v > r.Max {
			r.Max = v
		}
	}
	f.valRange = r

	b := EmptyBounds()
	for _, p := range f.points {
		b = b.Extend(p)
	}
	f.bounds = b
	f.centroid = b.Centre()
}

// IsUniform reports whether the field is a regular lattice.
func (f *VolumetricField) IsUniform() bool { return f.uniform }

// Dimensions returns the lattice extents (nx, ny, nz).
// Zero for scattered fields.
func (f *VolumetricField) Dimensions() [3]int { return f.dims }

// Basis returns the bohr-scaled lattice basis. Zero for scattered fields.
func (f *VolumetricField) Basis() Mat3 { return f.basis }

// Len returns the number of samples.
func (f *VolumetricField) Len() int { return len(f.values) }

// Point returns the position of sample i.
func (f *VolumetricField) Point(i int) Vec3 { return f.points[i] }

// Value returns the scalar of sample i.
func (f *VolumetricField) Value(i int) float64 { return f.values[i] }

// Points returns a copy of the sample positions in storage order.
func (f *VolumetricField) Points() []Vec3 { return slices.Clone(f.points) }

// Values returns a copy of the scalars in storage order.
func (f *VolumetricField) Values() []float64 { return slices.Clone(f.values) }

// ValueRange returns the minimum and maximum scalar.
func (f *VolumetricField) ValueRange() ValueRange { return f.valRange }

// Bounds returns the axis-aligned bounds of the sample positions.
func (f *VolumetricField) Bounds() Bounds { return f.bounds }

// Centroid returns the centre of the bounding box.
func (f *VolumetricField) Centroid() Vec3 { return f.centroid }

// LinearIndex maps lattice coordinates to storage order, i varying fastest.
func (f *VolumetricField) LinearIndex(i, j, k int) int {
	return LinearIndex(f.dims, i, j, k)
}

// At returns the scalar at lattice coordinates (i, j, k).
// It panics if the field is not uniform or the index is out of range.
func (f *VolumetricField) At(i, j, k int) float64 {
	if !f.uniform {
		panic("domain: At called on a scattered field")
	}
	return f.values[f.LinearIndex(i, j, k)]
}

// LinearIndex returns i + j*nx + k*nx*ny for dims (nx, ny, nz).
func LinearIndex(dims [3]int, i, j, k int) int {
	return i + j*dims[0] + k*dims[0]*dims[1]
}
