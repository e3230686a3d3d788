package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pharmacy_inventory/internal/models"
)

type SessionSQLite struct {
	db *sql.DB
}

func NewSessionSQLite(db *sql.DB) *SessionSQLite {
	return &SessionSQLite{db: db}
}

var _ SessionRepo = (*SessionSQLite)(nil)

const (
	insertSessionSQL = `
		INSERT INTO sessions (id, user_id, username, flashes, created_at, expires_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	selectSessionSQL = `
		SELECT id, user_id, username, flashes, created_at, expires_at
		FROM sessions WHERE id = ?
	`
	updateSessionSQL         = `UPDATE sessions SET user_id = ?, username = ?, flashes = ? WHERE id = ?`
	deleteSessionSQL         = `DELETE FROM sessions WHERE id = ?`
	deleteExpiredSessionsSQL = `DELETE FROM sessions WHERE expires_at <= ?`
)

// marshalFlashes converts queued flashes to a JSON string; an empty queue is stored as NULL.
func marshalFlashes(flashes []models.Flash) (*string, error) {
	if len(flashes) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(flashes)
	if err != nil {
		return nil, err
	}
	s := string(b)
	return &s, nil
}

// unmarshalFlashes parses a stored JSON column back into flashes.
func unmarshalFlashes(s sql.NullString) ([]models.Flash, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	var out []models.Flash
	if err := json.Unmarshal([]byte(s.String), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create inserts a new session row.
func (r *SessionSQLite) Create(ctx context.Context, s *models.Session) error {
	flashes, err := marshalFlashes(s.Flashes)
	if err != nil {
		return fmt.Errorf("marshal flashes: %w", err)
	}
	_, err = r.db.ExecContext(ctx, insertSessionSQL,
		s.ID,
		s.UserID,
		s.Username,
		flashes,
		s.CreatedAt.UTC().Unix(),
		s.ExpiresAt.UTC().Unix(),
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	s.MarkStored()
	s.MarkClean()
	return nil
}

// Get loads a session by id. Returns (nil, nil) if not found.
func (r *SessionSQLite) Get(ctx context.Context, id string) (*models.Session, error) {
	var (
		s                  models.Session
		flashes            sql.NullString
		created, expiresAt int64
	)
	err := r.db.QueryRowContext(ctx, selectSessionSQL, id).
		Scan(&s.ID, &s.UserID, &s.Username, &flashes, &created, &expiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select session: %w", err)
	}
	if s.Flashes, err = unmarshalFlashes(flashes); err != nil {
		return nil, fmt.Errorf("unmarshal flashes: %w", err)
	}
	s.CreatedAt = time.Unix(created, 0).UTC()
	s.ExpiresAt = time.Unix(expiresAt, 0).UTC()
	s.MarkStored()
	return &s, nil
}

// Save persists the user binding and flash queue. Expiry is never extended.
func (r *SessionSQLite) Save(ctx context.Context, s *models.Session) error {
	flashes, err := marshalFlashes(s.Flashes)
	if err != nil {
		return fmt.Errorf("marshal flashes: %w", err)
	}
	res, err := r.db.ExecContext(ctx, updateSessionSQL, s.UserID, s.Username, flashes, s.ID)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	s.MarkClean()
	return nil
}

func (r *SessionSQLite) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, deleteSessionSQL, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteExpired removes sessions whose expiry is at or before now.
func (r *SessionSQLite) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, deleteExpiredSessionsSQL, now.UTC().Unix())
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: rows affected: %w", err)
	}
	return n, nil
}
