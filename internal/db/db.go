package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNoRows is returned when a session row does not exist or has expired.
var ErrNoRows = errors.New("db: no rows")

type DB struct {
	sql *sql.DB
}

func Open(path string) (*DB, error) {
	d, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// A single connection keeps ":memory:" databases shared across calls.
	d.SetMaxOpenConns(1)
	if _, err := d.Exec(`PRAGMA journal_mode=WAL;`); err != nil {
		_ = d.Close()
		return nil, err
	}
	if _, err := RunMigrations(d); err != nil {
		_ = d.Close()
		return nil, err
	}
	return &DB{sql: d}, nil
}

func (d *DB) Close() error { return d.sql.Close() }

func (d *DB) Ping(ctx context.Context) error { return d.sql.PingContext(ctx) }

type SessionRow struct {
	ID        string
	Payload   []byte
	ExpiresAt time.Time
	UpdatedAt time.Time
}

func (d *DB) UpsertSession(ctx context.Context, s SessionRow) error {
	_, err := d.sql.ExecContext(ctx, `
INSERT INTO sessions (id, payload, expires_at, updated_at) VALUES (?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  payload=excluded.payload,
  expires_at=excluded.expires_at,
  updated_at=excluded.updated_at
`, s.ID, s.Payload, s.ExpiresAt.UnixNano(), s.UpdatedAt.UnixNano())
	return err
}

// GetSession returns the session row unless it expired before now.
func (d *DB) GetSession(ctx context.Context, id string, now time.Time) (SessionRow, error) {
	var (
		s                  SessionRow
		expires, updatedAt int64
	)
	err := d.sql.QueryRowContext(ctx,
		`SELECT id, payload, expires_at, updated_at FROM sessions WHERE id=? AND expires_at > ?`,
		id, now.UnixNano(),
	).Scan(&s.ID, &s.Payload, &expires, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return SessionRow{}, ErrNoRows
	}
	if err != nil {
		return SessionRow{}, err
	}
	s.ExpiresAt = time.Unix(0, expires)
	s.UpdatedAt = time.Unix(0, updatedAt)
	return s, nil
}

func (d *DB) DeleteSession(ctx context.Context, id string) error {
	_, err := d.sql.ExecContext(ctx, `DELETE FROM sessions WHERE id=?`, id)
	return err
}

// DeleteExpiredSessions removes rows that expired at or before now.
func (d *DB) DeleteExpiredSessions(ctx context.Context, now time.Time) (int, error) {
	res, err := d.sql.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= ?`, now.UnixNano())
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

func (d *DB) CountSessions(ctx context.Context) (int, error) {
	var n int
	err := d.sql.QueryRowContext(ctx, `SELECT COUNT(1) FROM sessions`).Scan(&n)
	return n, err
}
