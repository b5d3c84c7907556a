package session

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/pratik-mahalle/flashalerts/internal/auth"
	"github.com/pratik-mahalle/flashalerts/internal/pkg/logger"
)

// Config controls the session cookie.
type Config struct {
	CookieName string
	Secret     string
	Issuer     string
	Lifetime   time.Duration
	Secure     bool
	Path       string
}

// Manager loads and saves the session of each request.
type Manager struct {
	store  Store
	cfg    Config
	log    *logger.Logger
	onFail func(op string)
}

// Option configures a Manager.
type Option func(*Manager)

// WithFailureHook calls fn with the failed store operation name.
func WithFailureHook(fn func(op string)) Option {
	return func(m *Manager) { m.onFail = fn }
}

func NewManager(store Store, cfg Config, log *logger.Logger, opts ...Option) (*Manager, error) {
	if cfg.Secret == "" {
		return nil, auth.ErrEmptySecret
	}
	if cfg.CookieName == "" {
		cfg.CookieName = "flashalerts_session"
	}
	if cfg.Lifetime <= 0 {
		cfg.Lifetime = 2 * time.Hour
	}
	if cfg.Path == "" {
		cfg.Path = "/"
	}
	m := &Manager{store: store, cfg: cfg, log: log, onFail: func(string) {}}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Store returns the backing store.
func (m *Manager) Store() Store { return m.store }

// Start resolves the session for r, starting a new one when the cookie is
// missing, forged, or points to a session the store no longer has.
func (m *Manager) Start(r *http.Request) *Session {
	c, err := r.Cookie(m.cfg.CookieName)
	if err != nil {
		return New(uuid.NewString(), nil)
	}

	id, err := auth.ParseSessionToken(c.Value, m.cfg.Issuer, m.cfg.Secret)
	if err != nil {
		m.log.Debugf("rejecting session cookie: %v", err)
		return New(uuid.NewString(), nil)
	}

	data, err := m.store.Load(r.Context(), id)
	switch {
	case errors.Is(err, ErrNotFound):
		return New(uuid.NewString(), nil)
	case err != nil:
		m.onFail("load")
		m.log.WithError(err).Warn("session store load failed, starting a new session")
		return New(uuid.NewString(), nil)
	}
	return New(id, data)
}

// Save ages flash data and writes the session back to the store.
func (m *Manager) Save(ctx context.Context, sess *Session) error {
	if sess == nil {
		return nil
	}
	if !sess.IsActive() {
		return m.store.Delete(ctx, sess.ID())
	}
	sess.Age()
	return m.store.Save(ctx, sess.ID(), sess.Data(), m.cfg.Lifetime)
}

// Cookie returns the signed cookie carrying the id of sess.
func (m *Manager) Cookie(sess *Session) (*http.Cookie, error) {
	token, err := auth.MintSessionToken(sess.ID(), m.cfg.Issuer, m.cfg.Secret, m.cfg.Lifetime)
	if err != nil {
		return nil, errors.Wrap(err, "sign session cookie")
	}
	return &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    token,
		Path:     m.cfg.Path,
		MaxAge:   int(m.cfg.Lifetime.Seconds()),
		HttpOnly: true,
		Secure:   m.cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}, nil
}

// Middleware attaches a session to every request and saves it afterwards.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := m.Start(r)

		cookie, err := m.Cookie(sess)
		if err != nil {
			m.log.WithError(err).Error("session cookie")
		} else {
			http.SetCookie(w, cookie)
		}

		next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), sess)))

		if err := m.Save(r.Context(), sess); err != nil {
			m.onFail("save")
			m.log.WithError(err).With("session_id", sess.ID()).Error("session save failed")
		}
	})
}

// RunGC collects expired sessions every interval until ctx is done.
func (m *Manager) RunGC(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.CollectGarbage(ctx)
		}
	}
}

// CollectGarbage removes expired sessions from the store once.
func (m *Manager) CollectGarbage(ctx context.Context) int {
	n, err := m.store.GC(ctx)
	if err != nil {
		m.onFail("gc")
		m.log.WithError(err).Warn("session gc failed")
		return 0
	}
	if n > 0 {
		m.log.Debugf("session gc removed %d sessions", n)
	}
	return n
}
