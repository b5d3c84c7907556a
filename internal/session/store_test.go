package session

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pratik-mahalle/flashalerts/internal/db"
)

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

func sample() *Data {
	return &Data{
		Values:   map[string]json.RawMessage{"_alerts.alerts": json.RawMessage(`[{"message":"hi"}]`)},
		FlashNew: []string{"_alerts.alerts"},
	}
}

func testStore(t *testing.T, store Store, c *clock) {
	ctx := context.Background()

	_, err := store.Load(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Save(ctx, "a", sample(), time.Minute))
	require.NoError(t, store.Save(ctx, "b", sample(), time.Hour))

	got, err := store.Load(ctx, "a")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"message":"hi"}]`, string(got.Values["_alerts.alerts"]))
	assert.Equal(t, []string{"_alerts.alerts"}, got.FlashNew)

	c.now = c.now.Add(2 * time.Minute)
	_, err = store.Load(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound, "expired sessions are not loaded")

	n, err := store.GC(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = store.Load(ctx, "b")
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, "b"))
	_, err = store.Load(ctx, "b")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore(t *testing.T) {
	c := &clock{now: time.Unix(1700000000, 0)}
	store := NewMemoryStore()
	store.now = c.Now

	testStore(t, store, c)
	assert.Equal(t, 0, store.Len())
}

func TestSQLiteStore(t *testing.T) {
	d, err := db.Open(filepath.Join(t.TempDir(), "sessions.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })

	c := &clock{now: time.Unix(1700000000, 0)}
	store := NewSQLiteStore(d)
	store.now = c.Now

	testStore(t, store, c)
	require.NoError(t, store.Ping(context.Background()))
}

func TestSQLiteStore_Overwrite(t *testing.T) {
	d, err := db.Open(filepath.Join(t.TempDir(), "sessions.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })

	store := NewSQLiteStore(d)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "a", sample(), time.Hour))
	require.NoError(t, store.Save(ctx, "a", &Data{Values: map[string]json.RawMessage{}}, time.Hour))

	got, err := store.Load(ctx, "a")
	require.NoError(t, err)
	assert.Empty(t, got.Values)

	n, err := d.CountSessions(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
