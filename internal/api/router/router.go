package router

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/pratik-mahalle/flashalerts/internal/api/handlers"
	"github.com/pratik-mahalle/flashalerts/internal/api/middleware"
	"github.com/pratik-mahalle/flashalerts/internal/config"
	"github.com/pratik-mahalle/flashalerts/internal/i18n"
	"github.com/pratik-mahalle/flashalerts/internal/pkg/logger"
	"github.com/pratik-mahalle/flashalerts/internal/pkg/metrics"
	"github.com/pratik-mahalle/flashalerts/internal/session"
	"github.com/pratik-mahalle/flashalerts/pkg/alerts"
)

type Handlers struct {
	Health *handlers.HealthHandler
	Web    *handlers.WebHandler
	Alert  *handlers.AlertHandler
}

// Deps are the shared services the middleware stack needs
type Deps struct {
	Sessions *session.Manager
	Limiter  *middleware.RateLimiter
	Bridge   *alerts.Bridge
	Catalog  *i18n.Catalog
	BaseURL  *url.URL
}

func New(cfg *config.Config, log *logger.Logger, h *Handlers, d *Deps) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recovery(log))
	r.Use(metrics.Middleware)
	r.Use(middleware.SecurityHeaders(cfg.Session.Secure))
	r.Use(middleware.CORS(cfg.Server.AllowedOrigins))

	// Probes and metrics
	r.Get("/healthz", h.Health.Healthz)
	r.Get("/readyz", h.Health.Readyz)
	r.Handle("/metrics", metrics.Handler())

	alertsCfg := middleware.AlertsConfig{
		Bridge:  d.Bridge,
		Tags:    cfg.Alerts.Tags,
		Catalog: d.Catalog,
		BaseURL: d.BaseURL,
		Log:     log,
	}

	// Session backed routes
	r.Group(func(r chi.Router) {
		r.Use(d.Sessions.Middleware)
		if d.Limiter != nil {
			r.Use(middleware.RateLimit(d.Limiter))
		}
		r.Use(middleware.Alerts(alertsCfg))

		// Web
		r.Get("/", h.Web.Home)
		r.Post("/flash", h.Web.Flash)
		r.Post("/persist/{key}", h.Web.Persist)
		r.Delete("/persist/{key}", h.Web.Forget)

		// Alerts API
		r.Route("/api/v1/alerts", func(r chi.Router) {
			r.Use(middleware.AlertsJSON(cfg.Alerts.Key, log))
			r.Get("/", h.Alert.List)
			r.Post("/", h.Alert.Create)
			r.Post("/quick/{name}", h.Alert.Quick)
			r.Delete("/{key}", h.Alert.Delete)
		})
	})

	return r
}
