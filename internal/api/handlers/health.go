package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/pratik-mahalle/flashalerts/internal/pkg/errors"
	"github.com/pratik-mahalle/flashalerts/internal/pkg/logger"
	"github.com/pratik-mahalle/flashalerts/internal/pkg/utils"
	"github.com/pratik-mahalle/flashalerts/internal/session"
)

// pinger is implemented by session stores backed by a server.
type pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles health check requests
type HealthHandler struct {
	store  session.Store
	driver string
	logger *logger.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(store session.Store, driver string, log *logger.Logger) *HealthHandler {
	return &HealthHandler{
		store:  store,
		driver: driver,
		logger: log,
	}
}

// Healthz handles liveness probe
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	utils.WriteSuccess(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// Readyz handles readiness probe
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if p, ok := h.store.(pinger); ok {
		if err := p.Ping(ctx); err != nil {
			h.logger.ErrorWithErr(err, "Session store ping failed")
			utils.WriteError(w, errors.StoreUnavailable(h.driver, err))
			return
		}
	}

	utils.WriteSuccess(w, http.StatusOK, map[string]string{
		"status":   "ready",
		"sessions": h.driver,
	})
}
