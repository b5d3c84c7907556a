// Package ginalerts wires alert bags into gin handlers.
package ginalerts

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pratik-mahalle/flashalerts/pkg/alerts"
)

const (
	// BagKey is the gin context key of the request bag.
	BagKey = "flashalerts.bag"
	// SessionKey is where Middleware looks for the alerts.Session by default.
	SessionKey = "flashalerts.session"
)

// Config configures Middleware.
type Config struct {
	Bridge *alerts.Bridge
	Tags   []string
	// Session returns the session of the request. The default reads the
	// value stored under SessionKey.
	Session func(c *gin.Context) alerts.Session
	Options []alerts.Option
}

// Middleware gives every request a bag hydrated from the session and moves
// the remaining alerts back once the handlers have run.
func Middleware(cfg Config) gin.HandlerFunc {
	if cfg.Bridge == nil {
		cfg.Bridge = alerts.NewBridge(alerts.DefaultKey)
	}
	if cfg.Session == nil {
		cfg.Session = sessionFromKey
	}

	return func(c *gin.Context) {
		bag := alerts.NewBag(cfg.Tags, cfg.Options...)
		sess := cfg.Session(c)

		if _, err := cfg.Bridge.Inbound(sess, bag); err != nil {
			_ = c.Error(err)
		}

		c.Set(BagKey, bag)
		c.Request = c.Request.WithContext(alerts.NewContext(c.Request.Context(), bag))

		c.Next()

		if _, err := cfg.Bridge.Outbound(sess, bag, alerts.IsRedirect(c.Writer.Status())); err != nil {
			_ = c.Error(err)
		}
	}
}

func sessionFromKey(c *gin.Context) alerts.Session {
	if v, ok := c.Get(SessionKey); ok {
		if sess, ok := v.(alerts.Session); ok {
			return sess
		}
	}
	return nil
}

// Bag returns the request bag, or a detached empty bag outside Middleware.
func Bag(c *gin.Context) *alerts.Bag {
	if v, ok := c.Get(BagKey); ok {
		if bag, ok := v.(*alerts.Bag); ok {
			return bag
		}
	}
	return alerts.FromContext(c.Request.Context())
}

// JSON writes obj with the request alerts set at key ("_alerts" when empty).
// Alerts are only attached to successful responses.
func JSON(c *gin.Context, status int, key string, obj interface{}) {
	if status < 200 || status >= 300 {
		c.JSON(status, obj)
		return
	}

	body, err := json.Marshal(obj)
	if err != nil {
		_ = c.Error(err)
		c.Status(http.StatusInternalServerError)
		return
	}
	merged, err := alerts.AttachJSON(body, key, Bag(c).Collect())
	if err != nil {
		_ = c.Error(err)
		merged = body
	}
	c.Data(status, "application/json; charset=utf-8", merged)
}
