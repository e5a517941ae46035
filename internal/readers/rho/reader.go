// Package rho reads charge-density (rho) files into a volumetric field.
//
// A rho file is a stream of whitespace-separated numbers:
//
//	a1 a2 a3 b1 b2 b3 c1 c2 c3   basis vectors, bohr
//	n  mesh                      n is ignored; mesh 1 selects scattered mode
//	nx ny nz                     uniform: lattice size
//	v ...                        uniform: nx*ny*nz values, i fastest
//	N                            scattered: point count
//	x y z v ...                  scattered: N points, positions not scaled
package rho

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/custodia-labs/plato/internal/core/domain"
	"github.com/custodia-labs/plato/internal/core/ports/driven"
	"github.com/custodia-labs/plato/internal/logger"
)

// maxPrealloc caps the capacity taken on trust from a header count.
// Larger fields grow as their values are read.
const maxPrealloc = 1 << 20

// Ensure Reader implements the interface.
var _ driven.FieldReader = (*Reader)(nil)

// Reader loads rho files.
type Reader struct{}

// NewReader creates a rho reader.
func NewReader() *Reader {
	return &Reader{}
}

// Load reads the rho file at path.
func (r *Reader) Load(ctx context.Context, path string) (*domain.VolumetricField, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrFileOpen, path, err)
	}
	defer f.Close()

	logger.Debug("rho: reading %s", path)
	field, err := ParseContext(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return field, nil
}

// Parse reads a rho stream.
func Parse(r io.Reader) (*domain.VolumetricField, error) {
	return ParseContext(context.Background(), r)
}

// ParseContext reads a rho stream, stopping between lattice planes if ctx
// is cancelled.
func ParseContext(ctx context.Context, r io.Reader) (*domain.VolumetricField, error) {
	tok := newTokens(r)

	var basis domain.Mat3
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			v, err := tok.float("basis")
			if err != nil {
				return nil, err
			}
			basis[row][col] = v * domain.BohrRadius
		}
	}

	// The first of the two header integers carries nothing we use.
	if _, err := tok.int("header"); err != nil {
		return nil, err
	}
	mesh, err := tok.int("mesh type")
	if err != nil {
		return nil, err
	}

	if mesh == domain.ScatteredMeshSentinel {
		logger.Debug("rho: scattered mesh")
		return parseScattered(ctx, tok, basis)
	}
	logger.Debug("rho: uniform mesh")
	return parseUniform(ctx, tok, basis)
}

func parseUniform(ctx context.Context, tok *tokens, basis domain.Mat3) (*domain.VolumetricField, error) {
	var dims [3]int
	for a := range dims {
		n, err := tok.int("lattice dimension")
		if err != nil {
			return nil, err
		}
		if n <= 0 {
			return nil, fmt.Errorf("lattice dimension %d is %d: %w", a, n, domain.ErrMalformedData)
		}
		dims[a] = n
	}

	if dims[1] > math.MaxInt/dims[0] || dims[2] > math.MaxInt/(dims[0]*dims[1]) {
		return nil, fmt.Errorf("lattice %dx%dx%d overflows: %w", dims[0], dims[1], dims[2], domain.ErrMalformedData)
	}
	total := dims[0] * dims[1] * dims[2]
	logger.Debug("rho: %dx%dx%d lattice, %d points", dims[0], dims[1], dims[2], total)

	// Values are read in LinearIndex order, so appending fills each slot.
	points := make([]domain.Vec3, 0, min(total, maxPrealloc))
	values := make([]float64, 0, min(total, maxPrealloc))
	for k := 0; k < dims[2]; k++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		fk := float64(k) / float64(dims[2])
		for j := 0; j < dims[1]; j++ {
			fj := float64(j) / float64(dims[1])
			for i := 0; i < dims[0]; i++ {
				fi := float64(i) / float64(dims[0])
				v, err := tok.float("value")
				if err != nil {
					return nil, fmt.Errorf("rho: reading value %d of %d: %w", len(values)+1, total, err)
				}
				values = append(values, v)
				points = append(points, basis.RowMul(domain.Vec3{X: fi, Y: fj, Z: fk}))
			}
		}
	}

	return domain.NewVolumetricField(true, dims, basis, points, values)
}

func parseScattered(ctx context.Context, tok *tokens, basis domain.Mat3) (*domain.VolumetricField, error) {
	n, err := tok.int("point count")
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, fmt.Errorf("point count is %d: %w", n, domain.ErrMalformedData)
	}
	logger.Debug("rho: %d scattered points", n)

	points := make([]domain.Vec3, 0, min(n, maxPrealloc))
	values := make([]float64, 0, min(n, maxPrealloc))
	for i := 0; i < n; i++ {
		if i%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		var xyzv [4]float64
		for c := range xyzv {
			if xyzv[c], err = tok.float("point"); err != nil {
				return nil, fmt.Errorf("rho: reading point %d of %d: %w", i+1, n, err)
			}
		}
		points = append(points, domain.Vec3{X: xyzv[0], Y: xyzv[1], Z: xyzv[2]})
		values = append(values, xyzv[3])
	}

	return domain.NewVolumetricField(false, [3]int{}, basis, points, values)
}
