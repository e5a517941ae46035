package headless

import (
	"bytes"
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/plato/internal/core/domain"
)

type fixedScene []domain.Renderable

func (s fixedScene) Renderables() []domain.Renderable { return s }

type countingFrames struct {
	pending atomic.Int32
}

func (c *countingFrames) ConsumeRender() bool {
	for {
		n := c.pending.Load()
		if n == 0 {
			return false
		}
		if c.pending.CompareAndSwap(n, n-1) {
			return true
		}
	}
}

func (c *countingFrames) State() domain.SessionState { return domain.StateRunning }

// syncBuffer guards a bytes.Buffer shared with the loop goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestLoop_DrawsRequestedFrames(t *testing.T) {
	out := &syncBuffer{}
	scene := fixedScene{{Pipeline: domain.PipelineIso, Name: "iso 0", Visible: true, Summary: "value 0.5"}}
	loop := NewLoop(scene, time.Millisecond, out)

	frames := &countingFrames{}
	frames.pending.Store(2)

	done := make(chan error, 1)
	go func() { done <- loop.Run(context.Background(), frames) }()

	require.Eventually(t, func() bool { return loop.Frames() == 3 }, time.Second, time.Millisecond)
	loop.Exit()
	require.NoError(t, <-done)

	text := out.String()
	assert.Contains(t, text, "frame 1")
	assert.Contains(t, text, "frame 3")
	assert.Contains(t, text, "iso 0")
	assert.Contains(t, text, "visible")
	assert.NotContains(t, text, "frame 4")
}

func TestLoop_ExitBeforeRun(t *testing.T) {
	out := &syncBuffer{}
	loop := NewLoop(nil, time.Millisecond, out)
	loop.Exit()
	loop.Exit()

	require.NoError(t, loop.Run(context.Background(), &countingFrames{}))
	assert.Zero(t, loop.Frames())
	assert.Empty(t, out.String())
}

func TestLoop_ContextCancel(t *testing.T) {
	loop := NewLoop(nil, time.Millisecond, &syncBuffer{})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- loop.Run(ctx, nil) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("loop did not stop")
	}
}

func TestNewLoop_Defaults(t *testing.T) {
	loop := NewLoop(nil, 0, nil)
	assert.Equal(t, domain.DefaultAppSettings().Render.Tick, loop.tick)
	assert.NotNil(t, loop.out)
}
