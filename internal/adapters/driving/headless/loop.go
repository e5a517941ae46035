// Package headless provides a render loop for runs without a terminal.
// Each redraw prints the scene's renderables as plain text lines.
package headless

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/custodia-labs/plato/internal/core/domain"
	"github.com/custodia-labs/plato/internal/core/ports/driven"
	"github.com/custodia-labs/plato/internal/logger"
)

// Ensure Loop implements the interface.
var _ driven.RenderLoop = (*Loop)(nil)

// SceneView is what the loop prints on each frame.
type SceneView interface {
	Renderables() []domain.Renderable
}

// Loop is a render loop that writes frames to a writer.
type Loop struct {
	scene SceneView
	tick  time.Duration
	out   io.Writer

	exit     chan struct{}
	exitOnce sync.Once

	mu     sync.Mutex
	frames int
}

// NewLoop creates a headless loop. A nil writer means stdout.
func NewLoop(scene SceneView, tick time.Duration, out io.Writer) *Loop {
	if tick <= 0 {
		tick = domain.DefaultAppSettings().Render.Tick
	}
	if out == nil {
		out = os.Stdout
	}
	return &Loop{
		scene: scene,
		tick:  tick,
		out:   out,
		exit:  make(chan struct{}),
	}
}

// Run prints the initial frame, then one frame per consumed render request
// until Exit or ctx cancellation.
func (l *Loop) Run(ctx context.Context, frames driven.FrameSource) error {
	select {
	case <-l.exit:
		return nil
	default:
	}

	l.draw()

	ticker := time.NewTicker(l.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Debug("headless loop cancelled after %d frames", l.Frames())
			return nil
		case <-l.exit:
			logger.Debug("headless loop exited after %d frames", l.Frames())
			return nil
		case <-ticker.C:
			if frames != nil && frames.ConsumeRender() {
				l.draw()
			}
		}
	}
}

func (l *Loop) draw() {
	l.mu.Lock()
	l.frames++
	n := l.frames
	l.mu.Unlock()

	fmt.Fprintf(l.out, "frame %d\n", n)
	if l.scene == nil {
		return
	}
	for _, r := range l.scene.Renderables() {
		state := "hidden"
		if r.Visible {
			state = "visible"
		}
		fmt.Fprintf(l.out, "  %-5s %-12s %-7s %s\n", r.Pipeline, r.Name, state, r.Summary)
	}
}

// Exit stops the loop. Safe to call more than once and from any goroutine.
func (l *Loop) Exit() {
	l.exitOnce.Do(func() { close(l.exit) })
}

// Frames returns how many frames have been drawn, the initial one included.
func (l *Loop) Frames() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.frames
}
