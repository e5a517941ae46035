package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/plato/internal/core/domain"
	"github.com/custodia-labs/plato/internal/core/ports/driven"
)

// timeLayout is fixed-width so stored times sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// journalStore implements driven.SteeringJournal.
type journalStore struct {
	store *Store
}

var _ driven.SteeringJournal = (*journalStore)(nil)

// StartSession inserts a session, replacing any with the same ID.
func (s *journalStore) StartSession(ctx context.Context, session domain.SteeringSession) error {
	if session.ID == "" {
		return domain.ErrInvalidInput
	}
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO steering_sessions (id, rho_path, xyz_path, started_at, ended_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			rho_path = excluded.rho_path,
			xyz_path = excluded.xyz_path,
			started_at = excluded.started_at,
			ended_at = excluded.ended_at
	`,
		session.ID,
		nullString(session.RhoPath),
		nullString(session.XYZPath),
		session.StartedAt.UTC().Format(timeLayout),
		formatNullableTime(session.EndedAt),
	)
	if err != nil {
		return fmt.Errorf("saving steering session: %w", err)
	}
	return nil
}

// EndSession stamps the end time.
func (s *journalStore) EndSession(ctx context.Context, id string, at time.Time) error {
	res, err := s.store.db.ExecContext(ctx,
		"UPDATE steering_sessions SET ended_at = ? WHERE id = ?",
		at.UTC().Format(timeLayout), id)
	if err != nil {
		return fmt.Errorf("ending steering session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("ending steering session: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Record appends an event. The session must exist.
func (s *journalStore) Record(ctx context.Context, event domain.SteeringEvent) error {
	if _, err := s.GetSession(ctx, event.SessionID); err != nil {
		return err
	}
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO steering_events (session_id, iteration, kind, name, value, detail, at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		event.SessionID,
		event.Iteration,
		string(event.Kind),
		nullString(event.Name),
		event.Value,
		nullString(event.Detail),
		event.At.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("recording steering event: %w", err)
	}
	return nil
}

// ListSessions returns sessions, most recently started first.
func (s *journalStore) ListSessions(ctx context.Context, limit int) ([]domain.SteeringSession, error) {
	query := `
		SELECT id, rho_path, xyz_path, started_at, ended_at
		FROM steering_sessions
		ORDER BY started_at DESC, rowid DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying steering sessions: %w", err)
	}
	defer rows.Close()

	var sessions []domain.SteeringSession //nolint:prealloc // size unknown from query
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating steering sessions: %w", err)
	}
	return sessions, nil
}

// GetSession retrieves a session by ID.
func (s *journalStore) GetSession(ctx context.Context, id string) (*domain.SteeringSession, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, rho_path, xyz_path, started_at, ended_at
		FROM steering_sessions WHERE id = ?
	`, id)

	session, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return session, err
}

// ListEvents returns a session's events in recorded order.
func (s *journalStore) ListEvents(ctx context.Context, sessionID string, limit int) ([]domain.SteeringEvent, error) {
	query := `
		SELECT session_id, iteration, kind, name, value, detail, at
		FROM steering_events
		WHERE session_id = ?
		ORDER BY seq
	`
	args := []any{sessionID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying steering events: %w", err)
	}
	defer rows.Close()

	var events []domain.SteeringEvent //nolint:prealloc // size unknown from query
	for rows.Next() {
		var ev domain.SteeringEvent
		var kind, at string
		var name, detail sql.NullString
		if err := rows.Scan(&ev.SessionID, &ev.Iteration, &kind, &name, &ev.Value, &detail, &at); err != nil {
			return nil, fmt.Errorf("scanning steering event: %w", err)
		}
		ev.Kind = domain.EventKind(kind)
		ev.Name = name.String
		ev.Detail = detail.String
		ev.At = parseNullableTime(sql.NullString{String: at, Valid: true})
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating steering events: %w", err)
	}
	return events, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (*domain.SteeringSession, error) {
	var session domain.SteeringSession
	var rho, xyz, ended sql.NullString
	var started string

	if err := row.Scan(&session.ID, &rho, &xyz, &started, &ended); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning steering session: %w", err)
	}
	session.RhoPath = rho.String
	session.XYZPath = xyz.String
	session.StartedAt = parseNullableTime(sql.NullString{String: started, Valid: true})
	session.EndedAt = parseNullableTime(ended)
	return &session, nil
}

// formatNullableTime returns nil for zero times.
func formatNullableTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC().Format(timeLayout)
}

// parseNullableTime parses an RFC 3339 time, returning the zero time for
// NULL or unparsable values.
func parseNullableTime(s sql.NullString) time.Time {
	if !s.Valid || s.String == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s.String)
	if err != nil {
		return time.Time{}
	}
	return t
}

// nullString returns nil for empty strings, otherwise the string.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
