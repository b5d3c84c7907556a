package client_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pratik-mahalle/flashalerts/internal/config"
	"github.com/pratik-mahalle/flashalerts/internal/pkg/logger"
	"github.com/pratik-mahalle/flashalerts/internal/server"
	"github.com/pratik-mahalle/flashalerts/pkg/client"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := &config.Config{
		Server:  config.ServerConfig{RateLimit: 1000, RateBurst: 1000},
		Session: config.SessionConfig{Driver: "memory", Cookie: "sid", Lifetime: time.Hour, Secret: "test-secret"},
		Alerts:  config.AlertsConfig{Renderer: "bootstrap", Tags: []string{"default"}, Key: "_alerts", Locale: "en"},
	}
	s, err := server.New(cfg, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func TestClient_CreateDeliversAlert(t *testing.T) {
	ts := newTestServer(t)
	c := client.NewClient(client.Config{BaseURL: ts.URL})
	ctx := context.Background()

	a, resp, err := c.Alerts().Create(ctx, &client.CreateAlertRequest{Message: "Saved", Types: []string{"success"}})
	require.NoError(t, err)
	assert.Equal(t, "Saved", a.Message)
	require.Len(t, resp.Delivered, 1)
	assert.Equal(t, []string{"success"}, resp.Delivered[0].Types)
}

func TestClient_PersistentAlertFollowsSession(t *testing.T) {
	ts := newTestServer(t)
	c := client.NewClient(client.Config{BaseURL: ts.URL})
	ctx := context.Background()

	_, _, err := c.Alerts().Create(ctx, &client.CreateAlertRequest{Message: "Verify email", PersistKey: "account.verify"})
	require.NoError(t, err)

	list, _, err := c.Alerts().List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "account.verify", list[0].PersistKey)

	// A second client resumes the session from saved cookies.
	other := client.NewClient(client.Config{BaseURL: ts.URL})
	other.SetCookies(c.Cookies())
	list, _, err = other.Alerts().List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = other.Alerts().Abandon(ctx, "account.verify")
	require.NoError(t, err)

	_, err = other.Alerts().Abandon(ctx, "account.verify")
	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.True(t, apiErr.IsNotFound())
}

func TestClient_QuickUnknownOperation(t *testing.T) {
	ts := newTestServer(t)
	c := client.NewClient(client.Config{BaseURL: ts.URL})

	a, _, err := c.Alerts().Quick(context.Background(), "accountLocked", "Locked")
	require.NoError(t, err)
	assert.Equal(t, []string{"account-locked"}, a.Types)

	_, _, err = c.Alerts().Quick(context.Background(), "info", "a", "b", "c", "d")
	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.True(t, apiErr.IsUnknownOperation())
}

func TestClient_Health(t *testing.T) {
	ts := newTestServer(t)
	c := client.NewClient(client.Config{BaseURL: ts.URL})

	require.NoError(t, c.Ping(context.Background()))
	h, err := c.Ready(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "memory", h.Sessions)
}
