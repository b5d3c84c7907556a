package server

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pratik-mahalle/flashalerts/internal/config"
	"github.com/pratik-mahalle/flashalerts/internal/pkg/logger"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Server: config.ServerConfig{
			Host:            "127.0.0.1",
			Port:            8080,
			RateLimit:       100,
			RateBurst:       100,
			ShutdownTimeout: time.Second,
		},
		Session:  config.SessionConfig{Driver: "memory", Cookie: "sid", Lifetime: time.Hour, Secret: "test-secret"},
		Database: config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "sessions.db")},
		Alerts:   config.AlertsConfig{Renderer: "tailwind", Tags: []string{"default"}, Key: "_alerts", Locale: "en"},
	}
}

func TestOpenStore(t *testing.T) {
	for _, driver := range []string{"memory", "sqlite"} {
		t.Run(driver, func(t *testing.T) {
			cfg := testConfig(t)
			cfg.Session.Driver = driver

			store, closeStore, err := OpenStore(cfg)
			require.NoError(t, err)
			assert.NotNil(t, store)
			assert.NoError(t, closeStore())
		})
	}

	cfg := testConfig(t)
	cfg.Session.Driver = "file"
	_, _, err := OpenStore(cfg)
	assert.Error(t, err)
}

func TestNew_ServesWithTranslations(t *testing.T) {
	cfg := testConfig(t)
	cfg.Alerts.Translations = filepath.Join(t.TempDir(), "alerts.yaml")
	require.NoError(t, os.WriteFile(cfg.Alerts.Translations, []byte("en:\n  saved: Saved\n"), 0o600))

	s, err := New(cfg, logger.Nop())
	require.NoError(t, err)
	defer s.Close()

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "bootstrap.min.css")
}

func TestNew_MissingTranslations(t *testing.T) {
	cfg := testConfig(t)
	cfg.Alerts.Translations = filepath.Join(t.TempDir(), "missing.yaml")

	_, err := New(cfg, logger.Nop())
	assert.Error(t, err)
}

func TestNew_GCSchedule(t *testing.T) {
	cfg := testConfig(t)
	cfg.Session.GCSchedule = "*/5 * * * *"

	s, err := New(cfg, logger.Nop())
	require.NoError(t, err)
	assert.NotNil(t, s.gc)
	assert.Len(t, s.gc.Entries(), 1)
	require.NoError(t, s.Close())

	cfg.Session.GCSchedule = "every now and then"
	_, err = New(cfg, logger.Nop())
	assert.Error(t, err)
}
