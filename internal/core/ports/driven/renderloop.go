package driven

import (
	"context"

	"github.com/custodia-labs/plato/internal/core/domain"
)

// FrameSource tells the render loop when a redraw is due.
type FrameSource interface {
	// ConsumeRender reports whether a redraw was requested and clears the request.
	ConsumeRender() bool

	// State returns the steering handshake state.
	State() domain.SessionState
}

// RenderLoop is the window. Run blocks the calling goroutine until the
// window closes.
type RenderLoop interface {
	// Run draws the scene until the user closes the window, Exit is
	// called, or ctx is cancelled.
	Run(ctx context.Context, frames FrameSource) error

	// Exit asks a running loop to close. Safe to call from any goroutine,
	// before Run or after it has returned.
	Exit()
}
