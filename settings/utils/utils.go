package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pratik-mahalle/flashalerts/internal/pkg/logger"
	"github.com/pratik-mahalle/flashalerts/internal/session"
	"github.com/pratik-mahalle/flashalerts/pkg/alerts/ginalerts"
)

// JSON writes v with the alerts raised by the request attached.
func JSON(c *gin.Context, status int, v any) {
	ginalerts.JSON(c, status, "", v)
}

func Error(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}

// Sessions attaches a session to the request and saves it once the
// handlers have run.
func Sessions(mgr *session.Manager, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := mgr.Start(c.Request)

		cookie, err := mgr.Cookie(sess)
		if err != nil {
			log.WithError(err).Error("session cookie")
		} else {
			http.SetCookie(c.Writer, cookie)
		}

		c.Set(ginalerts.SessionKey, sess)
		c.Request = c.Request.WithContext(session.NewContext(c.Request.Context(), sess))

		c.Next()

		if err := mgr.Save(c.Request.Context(), sess); err != nil {
			log.WithError(err).With("session_id", sess.ID()).Error("session save failed")
		}
	}
}
