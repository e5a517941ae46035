package driven

import (
	"context"
	"time"

	"github.com/custodia-labs/plato/internal/core/domain"
)

// SteeringJournal records steering sessions and the events within them.
type SteeringJournal interface {
	// StartSession creates the session record.
	StartSession(ctx context.Context, session domain.SteeringSession) error

	// EndSession stamps the session end time.
	// Returns domain.ErrNotFound for an unknown session.
	EndSession(ctx context.Context, id string, at time.Time) error

	// Record appends an event to its session.
	Record(ctx context.Context, event domain.SteeringEvent) error

	// ListSessions returns sessions, most recent first.
	// A limit of zero or less returns every session.
	ListSessions(ctx context.Context, limit int) ([]domain.SteeringSession, error)

	// GetSession retrieves a session by ID.
	// Returns domain.ErrNotFound if it does not exist.
	GetSession(ctx context.Context, id string) (*domain.SteeringSession, error)

	// ListEvents returns a session's events in the order they were recorded.
	// A limit of zero or less returns every event.
	ListEvents(ctx context.Context, sessionID string, limit int) ([]domain.SteeringEvent, error)
}
