package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/pratik-mahalle/flashalerts/internal/i18n"
	"github.com/pratik-mahalle/flashalerts/internal/pkg/logger"
	"github.com/pratik-mahalle/flashalerts/internal/session"
	"github.com/pratik-mahalle/flashalerts/pkg/alerts"
	"github.com/pratik-mahalle/flashalerts/pkg/alerts/ginalerts"
	c "github.com/pratik-mahalle/flashalerts/settings/controllers"
	u "github.com/pratik-mahalle/flashalerts/settings/utils"
)

func RegisterSettingsRoutes(r *gin.Engine, mgr *session.Manager, bridge *alerts.Bridge, catalog *i18n.Catalog, log *logger.Logger) {
	ctrl := c.NewSettingsController()

	var opts []alerts.Option
	if catalog != nil {
		opts = append(opts, alerts.WithTranslator(catalog))
	}

	r.Use(u.Sessions(mgr, log))
	r.Use(ginalerts.Middleware(ginalerts.Config{Bridge: bridge, Tags: []string{"default"}, Options: opts}))

	// Profile
	r.GET("/profile", ctrl.GetProfile)
	r.PUT("/profile", ctrl.UpdateProfile)
	r.POST("/profile", ctrl.SubmitProfile)

	// Account
	r.GET("/account/settings", ctrl.GetAccountSettings)
	r.PUT("/account/settings", ctrl.UpdateAccountSettings)

	// Security
	r.GET("/security", ctrl.GetSecurity)
	r.POST("/security/password", ctrl.ChangePassword)
}
