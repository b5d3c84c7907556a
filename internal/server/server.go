// Package server assembles the HTTP service from configuration.
package server

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"

	"github.com/pratik-mahalle/flashalerts/internal/api/handlers"
	"github.com/pratik-mahalle/flashalerts/internal/api/middleware"
	"github.com/pratik-mahalle/flashalerts/internal/api/router"
	"github.com/pratik-mahalle/flashalerts/internal/config"
	"github.com/pratik-mahalle/flashalerts/internal/db"
	"github.com/pratik-mahalle/flashalerts/internal/i18n"
	"github.com/pratik-mahalle/flashalerts/internal/pkg/logger"
	"github.com/pratik-mahalle/flashalerts/internal/pkg/metrics"
	"github.com/pratik-mahalle/flashalerts/internal/pkg/validator"
	"github.com/pratik-mahalle/flashalerts/internal/session"
	"github.com/pratik-mahalle/flashalerts/pkg/alerts"
	"github.com/pratik-mahalle/flashalerts/pkg/alerts/render"
)

// Server is the configured HTTP service and the resources it owns.
type Server struct {
	cfg      *config.Config
	log      *logger.Logger
	http     *http.Server
	sessions *session.Manager
	limiter  *middleware.RateLimiter
	gc       *cron.Cron
	closers  []func() error
}

// OpenStore opens the session store named by cfg.Session.Driver. The
// returned function releases the underlying connection.
func OpenStore(cfg *config.Config) (session.Store, func() error, error) {
	switch cfg.Session.Driver {
	case "memory":
		return session.NewMemoryStore(), func() error { return nil }, nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		return session.NewRedisStore(client, cfg.Redis.Prefix), client.Close, nil
	case "sqlite":
		database, err := db.Open(cfg.Database.Path)
		if err != nil {
			return nil, nil, errors.Wrap(err, "open session database")
		}
		return session.NewSQLiteStore(database), database.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported session driver: %s", cfg.Session.Driver)
	}
}

// New builds the service: session store, translations, renderers and router.
func New(cfg *config.Config, log *logger.Logger) (*Server, error) {
	store, closeStore, err := OpenStore(cfg)
	if err != nil {
		return nil, err
	}
	s := &Server{cfg: cfg, log: log, closers: []func() error{closeStore}}

	s.sessions, err = session.NewManager(store, session.Config{
		CookieName: cfg.Session.Cookie,
		Secret:     cfg.Session.Secret,
		Issuer:     "flashalerts",
		Lifetime:   cfg.Session.Lifetime,
		Secure:     cfg.Session.Secure,
	}, log, session.WithFailureHook(func(op string) {
		metrics.RecordSessionStoreError(cfg.Session.Driver, op)
	}))
	if err != nil {
		s.Close()
		return nil, err
	}

	if cfg.Session.GCSchedule != "" {
		s.gc = cron.New()
		sessions := s.sessions
		if _, err := s.gc.AddFunc(cfg.Session.GCSchedule, func() {
			sessions.CollectGarbage(context.Background())
		}); err != nil {
			s.Close()
			return nil, errors.Wrapf(err, "invalid session gc schedule %q", cfg.Session.GCSchedule)
		}
	}

	var catalog *i18n.Catalog
	if cfg.Alerts.Translations != "" {
		catalog, err = i18n.LoadFile(cfg.Alerts.Translations, cfg.Alerts.Locale)
		if err != nil {
			s.Close()
			return nil, err
		}
		log.Infof("Loaded translations for %v", catalog.Locales())
	}

	var baseURL *url.URL
	if cfg.Alerts.BaseURL != "" {
		if baseURL, err = url.Parse(cfg.Alerts.BaseURL); err != nil {
			s.Close()
			return nil, errors.Wrap(err, "parse alerts base url")
		}
	}

	renderers := render.NewManager(cfg.Alerts.Renderer)
	val := validator.New()
	s.limiter = middleware.NewRateLimiter(cfg.Server.RateLimit, cfg.Server.RateBurst)

	h := &router.Handlers{
		Health: handlers.NewHealthHandler(store, cfg.Session.Driver, log),
		Web:    handlers.NewWebHandler(renderers, log, val),
		Alert:  handlers.NewAlertHandler(log, val),
	}
	d := &router.Deps{
		Sessions: s.sessions,
		Limiter:  s.limiter,
		Bridge:   alerts.NewBridge(cfg.Alerts.Key, alerts.WithLogger(log.GetZerolog())),
		Catalog:  catalog,
		BaseURL:  baseURL,
	}

	s.http = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.New(cfg, log, h, d),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	return s, nil
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.http.Handler }

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	bg, cancel := context.WithCancel(ctx)
	defer cancel()

	switch {
	case s.gc != nil:
		s.gc.Start()
		defer s.gc.Stop()
	case s.cfg.Session.GCInterval > 0:
		go s.sessions.RunGC(bg, s.cfg.Session.GCInterval)
	}
	go s.limiter.Run(bg, time.Minute)

	errCh := make(chan error, 1)
	go func() {
		s.log.Infof("Listening on %s", s.http.Addr)
		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("Shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancelShutdown()
	return s.http.Shutdown(shutdownCtx)
}

// Close releases the session store.
func (s *Server) Close() error {
	var first error
	for _, c := range s.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
