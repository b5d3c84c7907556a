package session

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/pratik-mahalle/flashalerts/internal/db"
)

// SQLiteStore keeps sessions in the sessions table.
type SQLiteStore struct {
	db  *db.DB
	now func() time.Time
}

func NewSQLiteStore(d *db.DB) *SQLiteStore {
	return &SQLiteStore{db: d, now: time.Now}
}

func (s *SQLiteStore) Load(ctx context.Context, id string) (*Data, error) {
	row, err := s.db.GetSession(ctx, id, s.now())
	if errors.Is(err, db.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "load session")
	}
	return decode(row.Payload)
}

func (s *SQLiteStore) Save(ctx context.Context, id string, data *Data, ttl time.Duration) error {
	raw, err := encode(data)
	if err != nil {
		return err
	}
	now := s.now()
	err = s.db.UpsertSession(ctx, db.SessionRow{ID: id, Payload: raw, ExpiresAt: now.Add(ttl), UpdatedAt: now})
	return errors.Wrap(err, "save session")
}

func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	return errors.Wrap(s.db.DeleteSession(ctx, id), "delete session")
}

func (s *SQLiteStore) GC(ctx context.Context) (int, error) {
	n, err := s.db.DeleteExpiredSessions(ctx, s.now())
	return n, errors.Wrap(err, "collect expired sessions")
}

// Ping checks the database connection.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}
