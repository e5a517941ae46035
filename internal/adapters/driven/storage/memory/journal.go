package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/custodia-labs/plato/internal/core/domain"
	"github.com/custodia-labs/plato/internal/core/ports/driven"
)

// Ensure Journal implements the interface.
var _ driven.SteeringJournal = (*Journal)(nil)

// Journal is an in-memory implementation of driven.SteeringJournal.
// Used when journalling is disabled on disk and in tests.
type Journal struct {
	mu       sync.RWMutex
	sessions map[string]domain.SteeringSession
	seq      map[string]int
	next     int
	events   map[string][]domain.SteeringEvent
}

// NewJournal creates a new in-memory journal.
func NewJournal() *Journal {
	return &Journal{
		sessions: make(map[string]domain.SteeringSession),
		seq:      make(map[string]int),
		events:   make(map[string][]domain.SteeringEvent),
	}
}

// StartSession stores a session record.
func (j *Journal) StartSession(_ context.Context, session domain.SteeringSession) error {
	if session.ID == "" {
		return domain.ErrInvalidInput
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	if _, ok := j.sessions[session.ID]; !ok {
		j.seq[session.ID] = j.next
		j.next++
	}
	j.sessions[session.ID] = session
	return nil
}

// EndSession stamps the end time.
func (j *Journal) EndSession(_ context.Context, id string, at time.Time) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	session, ok := j.sessions[id]
	if !ok {
		return domain.ErrNotFound
	}
	session.EndedAt = at
	j.sessions[id] = session
	return nil
}

// Record appends an event.
func (j *Journal) Record(_ context.Context, event domain.SteeringEvent) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if _, ok := j.sessions[event.SessionID]; !ok {
		return domain.ErrNotFound
	}
	j.events[event.SessionID] = append(j.events[event.SessionID], event)
	return nil
}

// ListSessions returns sessions, most recently started first.
func (j *Journal) ListSessions(_ context.Context, limit int) ([]domain.SteeringSession, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	result := make([]domain.SteeringSession, 0, len(j.sessions))
	for _, s := range j.sessions {
		result = append(result, s)
	}
	sort.Slice(result, func(a, b int) bool {
		if !result[a].StartedAt.Equal(result[b].StartedAt) {
			return result[a].StartedAt.After(result[b].StartedAt)
		}
		return j.seq[result[a].ID] > j.seq[result[b].ID]
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// GetSession retrieves a session by ID.
func (j *Journal) GetSession(_ context.Context, id string) (*domain.SteeringSession, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	session, ok := j.sessions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &session, nil
}

// ListEvents returns a session's events in recorded order.
func (j *Journal) ListEvents(_ context.Context, sessionID string, limit int) ([]domain.SteeringEvent, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	events := j.events[sessionID]
	if limit > 0 && len(events) > limit {
		events = events[:limit]
	}
	result := make([]domain.SteeringEvent, len(events))
	copy(result, events)
	return result, nil
}
