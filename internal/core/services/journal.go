package services

import (
	"context"

	"github.com/custodia-labs/plato/internal/core/domain"
	"github.com/custodia-labs/plato/internal/core/ports/driven"
	"github.com/custodia-labs/plato/internal/core/ports/driving"
)

// Ensure JournalService implements the interface.
var _ driving.JournalService = (*JournalService)(nil)

// JournalService reads the steering journal.
type JournalService struct {
	journal driven.SteeringJournal
}

// NewJournalService creates a journal service.
func NewJournalService(journal driven.SteeringJournal) *JournalService {
	return &JournalService{journal: journal}
}

// Sessions returns recent sessions, most recent first.
func (s *JournalService) Sessions(ctx context.Context, limit int) ([]domain.SteeringSession, error) {
	return s.journal.ListSessions(ctx, limit)
}

// Session returns one session.
func (s *JournalService) Session(ctx context.Context, id string) (*domain.SteeringSession, error) {
	return s.journal.GetSession(ctx, id)
}

// Events returns a session's events in recorded order.
func (s *JournalService) Events(ctx context.Context, sessionID string, limit int) ([]domain.SteeringEvent, error) {
	if _, err := s.journal.GetSession(ctx, sessionID); err != nil {
		return nil, err
	}
	return s.journal.ListEvents(ctx, sessionID, limit)
}
