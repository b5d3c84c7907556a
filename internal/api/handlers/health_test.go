package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pratik-mahalle/flashalerts/internal/pkg/logger"
	"github.com/pratik-mahalle/flashalerts/internal/session"
)

type pingStore struct {
	*session.MemoryStore
	err error
}

func (p pingStore) Ping(context.Context) error { return p.err }

func TestHealthHandler_Readyz(t *testing.T) {
	tests := []struct {
		name   string
		store  session.Store
		status int
		code   string
	}{
		{name: "store without ping", store: session.NewMemoryStore(), status: http.StatusOK},
		{name: "store answers", store: pingStore{MemoryStore: session.NewMemoryStore()}, status: http.StatusOK},
		{
			name:   "store down",
			store:  pingStore{MemoryStore: session.NewMemoryStore(), err: errors.New("connection refused")},
			status: http.StatusServiceUnavailable,
			code:   "SERVICE_UNAVAILABLE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(tt.store, "redis", logger.Nop())
			rec := httptest.NewRecorder()
			h.Readyz(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

			assert.Equal(t, tt.status, rec.Code)

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			if tt.code != "" {
				e := body["error"].(map[string]interface{})
				assert.Equal(t, tt.code, e["code"])
				assert.Equal(t, "redis session store unavailable", e["message"])
				return
			}
			assert.Equal(t, "redis", body["data"].(map[string]interface{})["sessions"])
		})
	}
}
