package driving

import (
	"context"

	"github.com/custodia-labs/plato/internal/core/domain"
)

// JournalService reads back recorded steering sessions.
type JournalService interface {
	// Sessions returns recent sessions, most recent first.
	// A limit of zero or less returns every session.
	Sessions(ctx context.Context, limit int) ([]domain.SteeringSession, error)

	// Session returns one session.
	// Returns domain.ErrNotFound for an unknown ID.
	Session(ctx context.Context, id string) (*domain.SteeringSession, error)

	// Events returns up to limit events of a session in recorded order.
	// Returns domain.ErrNotFound for an unknown session.
	Events(ctx context.Context, sessionID string, limit int) ([]domain.SteeringEvent, error)
}
