package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unitLattice(nx, ny, nz int) ([]Vec3, []float64) {
	points := make([]Vec3, nx*ny*nz)
	values := make([]float64, nx*ny*nz)
	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				idx := LinearIndex([3]int{nx, ny, nz}, i, j, k)
				points[idx] = Vec3{float64(i), float64(j), float64(k)}
				values[idx] = float64(idx)
			}
		}
	}
	return points, values
}

func TestLinearIndex(t *testing.T) {
	dims := [3]int{3, 4, 5}

	assert.Equal(t, 0, LinearIndex(dims, 0, 0, 0))
	assert.Equal(t, 1, LinearIndex(dims, 1, 0, 0))
	assert.Equal(t, 3, LinearIndex(dims, 0, 1, 0))
	assert.Equal(t, 12, LinearIndex(dims, 0, 0, 1))
	assert.Equal(t, 2+3*3+4*12, LinearIndex(dims, 2, 3, 4))
}

func TestNewVolumetricField_Uniform(t *testing.T) {
	points, values := unitLattice(2, 3, 4)

	f, err := NewVolumetricField(true, [3]int{2, 3, 4}, Mat3{}, points, values)
	require.NoError(t, err)

	assert.True(t, f.IsUniform())
	assert.Equal(t, [3]int{2, 3, 4}, f.Dimensions())
	assert.Equal(t, 24, f.Len())
	assert.Equal(t, ValueRange{Min: 0, Max: 23}, f.ValueRange())
	assert.Equal(t, Vec3{0, 0, 0}, f.Bounds().Min)
	assert.Equal(t, Vec3{1, 2, 3}, f.Bounds().Max)
	assert.Equal(t, Vec3{0.5, 1, 1.5}, f.Centroid())
	assert.Equal(t, 7.0, f.At(1, 0, 1))
	assert.Equal(t, f.LinearIndex(1, 2, 3), 1+2*2+3*6)
}

func TestNewVolumetricField_LengthMismatch(t *testing.T) {
	points, values := unitLattice(2, 2, 2)

	_, err := NewVolumetricField(true, [3]int{2, 2, 2}, Mat3{}, points, values[:7])
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = NewVolumetricField(true, [3]int{2, 2, 3}, Mat3{}, points, values)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestNewVolumetricField_Scattered(t *testing.T) {
	points := []Vec3{{0, 0, 0}, {2, 0, 0}, {0, 4, -2}}
	values := []float64{0.5, -1, 3}

	f, err := NewVolumetricField(false, [3]int{9, 9, 9}, Mat3{}, points, values)
	require.NoError(t, err)

	assert.False(t, f.IsUniform())
	assert.Equal(t, [3]int{}, f.Dimensions())
	assert.Equal(t, ValueRange{Min: -1, Max: 3}, f.ValueRange())
	assert.Equal(t, Vec3{1, 2, -1}, f.Centroid())
	assert.Panics(t, func() { f.At(0, 0, 0) })
}

func TestVolumetricField_CopiesAreIndependent(t *testing.T) {
	points, values := unitLattice(2, 1, 1)
	f, err := NewVolumetricField(true, [3]int{2, 1, 1}, Mat3{}, points, values)
	require.NoError(t, err)

	got := f.Values()
	got[0] = 99

	assert.Equal(t, 0.0, f.Value(0))
	assert.Len(t, f.Points(), 2)
}

func TestVolumetricField_RangeHoldsEveryValue(t *testing.T) {
	points := make([]Vec3, 50)
	values := make([]float64, 50)
	for i := range values {
		values[i] = float64((i*37)%23) - 11.5
	}

	f, err := NewVolumetricField(false, [3]int{}, Mat3{}, points, values)
	require.NoError(t, err)

	r := f.ValueRange()
	for i := 0; i < f.Len(); i++ {
		assert.True(t, r.Contains(f.Value(i)))
	}
}

func TestNewVolumetricField_Empty(t *testing.T) {
	f, err := NewVolumetricField(false, [3]int{}, Mat3{}, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 0, f.Len())
	assert.Equal(t, ValueRange{}, f.ValueRange())
}
