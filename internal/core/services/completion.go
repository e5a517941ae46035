package services

import (
	"context"
	"sync/atomic"

	"github.com/custodia-labs/plato/internal/core/domain"
)

// Completion is a one-shot rendezvous: signalled once by the worker when it
// exits and awaited once by the thread that started it. Everything the
// worker did before Signal is visible to the waiter after Wait returns.
type Completion struct {
	done      chan struct{}
	signalled atomic.Bool
	awaited   atomic.Bool
}

// NewCompletion creates an unsignalled completion.
func NewCompletion() *Completion {
	return &Completion{done: make(chan struct{})}
}

// Signal releases the waiter. A second call is a misuse and returns
// domain.ErrAlreadySignalled.
func (c *Completion) Signal() error {
	if !c.signalled.CompareAndSwap(false, true) {
		return domain.ErrAlreadySignalled
	}
	close(c.done)
	return nil
}

// Wait blocks until Signal is called or ctx is done. A second call is a
// misuse and returns domain.ErrAlreadyAwaited.
func (c *Completion) Wait(ctx context.Context) error {
	if !c.awaited.CompareAndSwap(false, true) {
		return domain.ErrAlreadyAwaited
	}
	select {
	case <-c.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done is closed once Signal has been called.
func (c *Completion) Done() <-chan struct{} {
	return c.done
}

// Signalled reports whether Signal has been called.
func (c *Completion) Signalled() bool {
	return c.signalled.Load()
}
