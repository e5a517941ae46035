package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/plato/internal/core/domain"
	"github.com/custodia-labs/plato/internal/core/pipeline"
	"github.com/custodia-labs/plato/internal/core/ports/driven"
)

// ==== Fakes ====

var _ driven.SteeringSource = (*fakeSource)(nil)

// fakeSource returns scripted poll results in order, then empty successes.
type fakeSource struct {
	mu      sync.Mutex
	opened  []domain.Parameter
	openErr error
	script  []domain.PollResult
	fail    bool
	polls   int
	closed  int
}

func (s *fakeSource) Open(_ context.Context, _ string, params []domain.Parameter) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opened = params
	return s.openErr
}

func (s *fakeSource) Poll(_ context.Context, _ int) (domain.PollResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.polls++
	if s.fail {
		return domain.PollResult{Status: domain.PollFailed}, nil
	}
	if len(s.script) == 0 {
		return domain.PollResult{Status: domain.PollSuccess}, nil
	}
	res := s.script[0]
	s.script = s.script[1:]
	return res, nil
}

func (s *fakeSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed++
	return nil
}

func (s *fakeSource) pollCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.polls
}

func (s *fakeSource) closeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

var _ driven.RenderLoop = (*fakeLoop)(nil)

// fakeLoop consumes render requests every millisecond until Exit.
type fakeLoop struct {
	exit   chan struct{}
	once   sync.Once
	mu     sync.Mutex
	frames int
}

func newFakeLoop() *fakeLoop {
	return &fakeLoop{exit: make(chan struct{})}
}

func (l *fakeLoop) Run(ctx context.Context, frames driven.FrameSource) error {
	tick := time.NewTicker(time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case <-l.exit:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		case <-tick.C:
			if frames.ConsumeRender() {
				l.mu.Lock()
				l.frames++
				l.mu.Unlock()
			}
		}
	}
}

func (l *fakeLoop) Exit() {
	l.once.Do(func() { close(l.exit) })
}

func (l *fakeLoop) exited() bool {
	select {
	case <-l.exit:
		return true
	default:
		return false
	}
}

var _ driven.FieldReader = (*fakeFieldReader)(nil)

type fakeFieldReader struct {
	field *domain.VolumetricField
	err   error
	paths []string
}

func (r *fakeFieldReader) Load(_ context.Context, path string) (*domain.VolumetricField, error) {
	r.paths = append(r.paths, path)
	return r.field, r.err
}

var _ driven.MoleculeReader = (*fakeMoleculeReader)(nil)

type fakeMoleculeReader struct {
	molecule *domain.Molecule
	err      error
}

func (r *fakeMoleculeReader) Load(_ context.Context, _ string) (*domain.Molecule, error) {
	return r.molecule, r.err
}

// ==== Fixtures ====

// testField is a 2x2x2 unit lattice with values 0..7.
func testField(t *testing.T) *domain.VolumetricField {
	t.Helper()
	var points []domain.Vec3
	var values []float64
	for k := 0; k < 2; k++ {
		for j := 0; j < 2; j++ {
			for i := 0; i < 2; i++ {
				points = append(points, domain.Vec3{X: float64(i), Y: float64(j), Z: float64(k)})
				values = append(values, float64(len(values)))
			}
		}
	}
	f, err := domain.NewVolumetricField(true, [3]int{2, 2, 2}, domain.Mat3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}, points, values)
	require.NoError(t, err)
	return f
}

func testMolecule() *domain.Molecule {
	return &domain.Molecule{
		Atoms: []domain.Atom{{Element: "O"}, {Element: "H", Position: domain.Vec3{X: 0.96}}},
		Bonds: []domain.Bond{{A: 0, B: 1}},
	}
}

// testScene has every pipeline: molecule, two isosurfaces and an orthoslice.
func testScene(t *testing.T) *pipeline.Scene {
	t.Helper()
	f := testField(t)
	m := testMolecule()
	return &pipeline.Scene{
		Field:    f,
		Molecule: m,
		XYZ:      pipeline.NewXYZPipeline(m),
		Iso:      pipeline.NewIsoPipeline(f, 2),
		Ortho:    pipeline.NewOrthoPipeline(f, false),
	}
}

func change(name string, v float64) domain.PollResult {
	return domain.PollResult{
		Status:  domain.PollSuccess,
		Changes: []domain.ParameterChange{{Name: name, Value: v}},
	}
}
