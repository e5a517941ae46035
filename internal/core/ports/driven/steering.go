package driven

import (
	"context"

	"github.com/custodia-labs/plato/internal/core/domain"
)

// SteeringSource is the external service a client steers the viewer through.
// Only the steering worker calls it, so implementations need not be safe
// for concurrent Poll calls.
type SteeringSource interface {
	// Open announces the application and registers its parameters.
	Open(ctx context.Context, app string, params []domain.Parameter) error

	// Poll returns what changed since the previous poll.
	// A source that cannot be read returns a result with PollFailed status
	// or an error; the worker treats both as a skipped iteration.
	Poll(ctx context.Context, iteration int) (domain.PollResult, error)

	// Close finalises the connection. Called once, from the worker.
	Close() error
}
