package rho

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/plato/internal/core/domain"
)

const uniform2x2x2 = `1 0 0
0 1 0
0 0 1
0 0
2 2 2
1 2 3 4 5 6 7 8
`

const scattered3 = `2 0 0 0 2 0 0 0 2
0 1
3
0 0 0 0.5
1 0 0 1.5
0 4 0 -1.0
`

// ==== Uniform Tests ====

func TestParse_Uniform2x2x2(t *testing.T) {
	f, err := Parse(strings.NewReader(uniform2x2x2))
	require.NoError(t, err)

	assert.True(t, f.IsUniform())
	assert.Equal(t, [3]int{2, 2, 2}, f.Dimensions())
	require.Equal(t, 8, f.Len())

	for n := 0; n < 8; n++ {
		assert.Equal(t, float64(n+1), f.Value(n))
	}

	half := 0.5 * domain.BohrRadius
	assert.InDelta(t, half, f.Point(7).X, 1e-12)
	assert.InDelta(t, half, f.Point(7).Y, 1e-12)
	assert.InDelta(t, half, f.Point(7).Z, 1e-12)
	// i is the fastest index.
	assert.InDelta(t, half, f.Point(1).X, 1e-12)
	assert.Equal(t, 0.0, f.Point(1).Y)
	assert.Equal(t, 7.0, f.At(0, 1, 1))

	assert.Equal(t, domain.ValueRange{Min: 1, Max: 8}, f.ValueRange())
	assert.InDelta(t, half/2, f.Centroid().Z, 1e-12)
}

func TestParse_BasisScaledToAngstrom(t *testing.T) {
	f, err := Parse(strings.NewReader(uniform2x2x2))
	require.NoError(t, err)

	b := f.Basis()
	assert.InDelta(t, domain.BohrRadius, b[0][0], 1e-12)
	assert.InDelta(t, domain.BohrRadius, b[2][2], 1e-12)
	assert.Equal(t, 0.0, b[0][1])
}

func TestParse_AnyOtherMeshTypeIsUniform(t *testing.T) {
	input := strings.Replace(uniform2x2x2, "0 0\n2 2 2", "0 7\n2 2 2", 1)

	f, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.True(t, f.IsUniform())
}

// ==== Scattered Tests ====

func TestParse_Scattered(t *testing.T) {
	f, err := Parse(strings.NewReader(scattered3))
	require.NoError(t, err)

	assert.False(t, f.IsUniform())
	assert.Equal(t, [3]int{}, f.Dimensions())
	require.Equal(t, 3, f.Len())

	// Positions are taken as written.
	assert.Equal(t, domain.Vec3{Y: 4}, f.Point(2))
	assert.Equal(t, domain.ValueRange{Min: -1, Max: 1.5}, f.ValueRange())
	assert.Equal(t, domain.Vec3{X: 0.5, Y: 2}, f.Centroid())
}

// ==== Error Tests ====

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"short basis", "1 0 0 0 1"},
		{"missing mesh type", "1 0 0 0 1 0 0 0 1 0"},
		{"non-numeric value", "1 0 0 0 1 0 0 0 1 0 0 1 1 2 1 x"},
		{"truncated lattice", "1 0 0 0 1 0 0 0 1 0 0 2 2 2 1 2 3"},
		{"zero dimension", "1 0 0 0 1 0 0 0 1 0 0 2 0 2"},
		{"negative dimension", "1 0 0 0 1 0 0 0 1 0 0 -2 2 2"},
		{"negative count", "1 0 0 0 1 0 0 0 1 0 1 -1"},
		{"truncated point", "1 0 0 0 1 0 0 0 1 0 1 1 0 0 0"},
		{"float mesh type", "1 0 0 0 1 0 0 0 1 0 1.0 1"},
		{"huge lattice, few values", "1 0 0 0 1 0 0 0 1\n0 0\n1048576 1048576 1\n1 2 3\n"},
		{"overflowing lattice", "1 0 0 0 1 0 0 0 1\n0 0\n3 4611686018427387904 1\n1 2\n"},
		{"huge point count, one point", "1 0 0 0 1 0 0 0 1\n0 1\n100000000000000\n0 0 0 1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrMalformedData)
		})
	}
}

func TestParseContext_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ParseContext(ctx, strings.NewReader(uniform2x2x2))
	assert.ErrorIs(t, err, context.Canceled)
}

// ==== Reader Tests ====

func TestReader_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "field.rho")
	require.NoError(t, os.WriteFile(path, []byte(uniform2x2x2), 0600))

	f, err := NewReader().Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 8, f.Len())
}

func TestReader_LoadMissingFile(t *testing.T) {
	_, err := NewReader().Load(context.Background(), filepath.Join(t.TempDir(), "nope.rho"))
	assert.ErrorIs(t, err, domain.ErrFileOpen)
	assert.NotErrorIs(t, err, domain.ErrMalformedData)
}

func TestReader_LoadMalformedNamesPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.rho")
	require.NoError(t, os.WriteFile(path, []byte("1 2 3"), 0600))

	_, err := NewReader().Load(context.Background(), path)
	assert.ErrorIs(t, err, domain.ErrMalformedData)
	assert.Contains(t, err.Error(), "bad.rho")
}
