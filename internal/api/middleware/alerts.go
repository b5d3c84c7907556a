package middleware

import (
	"bytes"
	"mime"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pratik-mahalle/flashalerts/internal/i18n"
	"github.com/pratik-mahalle/flashalerts/internal/pkg/logger"
	"github.com/pratik-mahalle/flashalerts/internal/pkg/metrics"
	"github.com/pratik-mahalle/flashalerts/internal/session"
	"github.com/pratik-mahalle/flashalerts/pkg/alerts"
)

// AlertsConfig configures the per-request alert bag.
type AlertsConfig struct {
	Bridge *alerts.Bridge
	Tags   []string
	// Catalog translates alerts in the locale of the Accept-Language header
	// unless a call names one.
	Catalog *i18n.Catalog
	BaseURL *url.URL
	Log     *logger.Logger
}

// Alerts creates the request bag, hydrates it from the session, and moves
// what is left back into the session once the handler returns.
func Alerts(cfg AlertsConfig) func(http.Handler) http.Handler {
	if cfg.Bridge == nil {
		cfg.Bridge = alerts.NewBridge(alerts.DefaultKey)
	}
	if cfg.Log == nil {
		cfg.Log = logger.Nop()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var opts []alerts.Option
			if cfg.Catalog != nil {
				opts = append(opts, alerts.WithTranslator(cfg.Catalog.For(r.Header.Get("Accept-Language"))))
			}
			if cfg.BaseURL != nil {
				opts = append(opts, alerts.WithBaseURL(cfg.BaseURL))
			}
			bag := alerts.NewBag(cfg.Tags, opts...)

			var sess alerts.Session
			if s := session.FromContext(r.Context()); s != nil {
				sess = s
				AddLogField(r, "session_id", s.ID())
			}

			hydrated, err := cfg.Bridge.Inbound(sess, bag)
			if err != nil {
				cfg.Log.WithError(err).Warn("could not hydrate alerts from session")
			}
			metrics.RecordAlerts(metrics.OutcomeHydrated, hydrated)
			AddLogField(r, "alerts_hydrated", hydrated)

			wrapped := wrap(w)
			next.ServeHTTP(wrapped, r.WithContext(alerts.NewContext(r.Context(), bag)))

			out, err := cfg.Bridge.Outbound(sess, bag, alerts.IsRedirect(wrapped.statusCode))
			if err != nil {
				cfg.Log.WithError(err).Error("could not store alerts in session")
				return
			}
			metrics.RecordAlerts(metrics.OutcomePersistent, out.Persistent)
			metrics.RecordAlerts(metrics.OutcomeFlashed, out.Flashed)
			metrics.RecordAlerts(metrics.OutcomeDropped, out.Dropped)
			AddLogField(r, "alerts_persisted", out.Persistent)
			AddLogField(r, "alerts_flashed", out.Flashed)
		})
	}
}

// bufferedWriter holds the response until the alerts are attached.
type bufferedWriter struct {
	http.ResponseWriter
	buf    bytes.Buffer
	status int
}

func (b *bufferedWriter) WriteHeader(code int) {
	if b.status == 0 {
		b.status = code
	}
}

func (b *bufferedWriter) Write(p []byte) (int, error) {
	if b.status == 0 {
		b.status = http.StatusOK
	}
	return b.buf.Write(p)
}

// AlertsJSON sets key of successful JSON object responses to the alerts of
// the request bag. An empty key uses the default "_alerts". It must run
// inside Alerts.
func AlertsJSON(key string, log *logger.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = logger.Nop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			bw := &bufferedWriter{ResponseWriter: w}
			next.ServeHTTP(bw, r)
			if bw.status == 0 {
				bw.status = http.StatusOK
			}

			body := bw.buf.Bytes()
			if isJSON(w.Header().Get("Content-Type")) && bw.status >= 200 && bw.status < 300 {
				list := alerts.FromContext(r.Context()).Collect()
				merged, err := alerts.AttachJSON(body, key, list)
				if err != nil {
					log.WithError(err).Warn("could not attach alerts to response")
				} else {
					body = merged
					metrics.RecordRendered("json", len(list))
				}
			}

			w.Header().Set("Content-Length", strconv.Itoa(len(body)))
			w.WriteHeader(bw.status)
			_, _ = w.Write(body)
		})
	}
}

func isJSON(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	return err == nil && mt == "application/json"
}
