package domain

import "math"

// Vec3 is a point or direction in Cartesian space.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns a + b.
func (a Vec3) Add(b Vec3) Vec3 { return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }

// Sub returns a - b.
func (a Vec3) Sub(b Vec3) Vec3 { return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }

// Scale returns v * s.
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Dot returns the dot product of a and b.
func (a Vec3) Dot(b Vec3) float64 { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }

// Dist2 returns the squared distance between a and b.
func (a Vec3) Dist2(b Vec3) float64 {
	d := a.Sub(b)
	return d.Dot(d)
}

// Mat3 is a row-major 3x3 matrix.
type Mat3 [3][3]float64

// RowMul returns the row-vector product v·M.
// Row r of M is the image of the r-th unit vector.
func (m Mat3) RowMul(v Vec3) Vec3 {
	return Vec3{
		X: v.X*m[0][0] + v.Y*m[1][0] + v.Z*m[2][0],
		Y: v.X*m[0][1] + v.Y*m[1][1] + v.Z*m[2][1],
		Z: v.X*m[0][2] + v.Y*m[1][2] + v.Z*m[2][2],
	}
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min, Max Vec3
}

// EmptyBounds returns bounds that any Extend call will replace.
func EmptyBounds() Bounds {
	inf := math.Inf(1)
	return Bounds{
		Min: Vec3{inf, inf, inf},
		Max: Vec3{-inf, -inf, -inf},
	}
}

// IsEmpty reports whether no point has been added.
func (b Bounds) IsEmpty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

// Extend grows the bounds to include p.
func (b Bounds) Extend(p Vec3) Bounds {
	return Bounds{
		Min: Vec3{math.Min(b.Min.X, p.X), math.Min(b.Min.Y, p.Y), math.Min(b.Min.Z, p.Z)},
		Max: Vec3{math.Max(b.Max.X, p.X), math.Max(b.Max.Y, p.Y), math.Max(b.Max.Z, p.Z)},
	}
}

// Centre returns the midpoint of the box.
func (b Bounds) Centre() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Contains reports whether p lies inside the box, faces included.
func (b Bounds) Contains(p Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Array returns the bounds as (xmin, xmax, ymin, ymax, zmin, zmax).
func (b Bounds) Array() [6]float64 {
	return [6]float64{b.Min.X, b.Max.X, b.Min.Y, b.Max.Y, b.Min.Z, b.Max.Z}
}

// ValueRange is the closed interval spanned by a set of scalars.
type ValueRange struct {
	Min, Max float64
}

// Contains reports whether v lies within the range.
func (r ValueRange) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Mid returns the midpoint of the range.
func (r ValueRange) Mid() float64 {
	return r.Min + (r.Max-r.Min)/2.0
}

// Normalise maps v into [0, 1]. A degenerate range maps everything to 0.
func (r ValueRange) Normalise(v float64) float64 {
	if r.Max <= r.Min {
		return 0
	}
	t := (v - r.Min) / (r.Max - r.Min)
	switch {
	case t < 0:
		return 0
	case t > 1:
		return 1
	}
	return t
}
