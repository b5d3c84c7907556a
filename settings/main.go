package main

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/pratik-mahalle/flashalerts/internal/config"
	"github.com/pratik-mahalle/flashalerts/internal/pkg/logger"
	"github.com/pratik-mahalle/flashalerts/internal/server"
	"github.com/pratik-mahalle/flashalerts/internal/session"
	"github.com/pratik-mahalle/flashalerts/pkg/alerts"
	"github.com/pratik-mahalle/flashalerts/settings/routes"
	"github.com/pratik-mahalle/flashalerts/settings/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		OutputPath: cfg.Logging.OutputPath,
	})

	store, closeStore, err := server.OpenStore(cfg)
	if err != nil {
		log.Fatalf("Failed to open session store: %v", err)
	}
	defer closeStore()

	mgr, err := session.NewManager(store, session.Config{
		CookieName: cfg.Session.Cookie,
		Secret:     cfg.Session.Secret,
		Issuer:     "flashalerts-settings",
		Lifetime:   cfg.Session.Lifetime,
		Secure:     cfg.Session.Secure,
	}, log)
	if err != nil {
		log.Fatalf("Failed to build session manager: %v", err)
	}

	catalog, err := utils.Messages(cfg.Alerts.Translations, cfg.Alerts.Locale)
	if err != nil {
		log.Fatalf("Failed to load translations: %v", err)
	}

	r := gin.Default()
	bridge := alerts.NewBridge(cfg.Alerts.Key, alerts.WithLogger(log.GetZerolog()))
	routes.RegisterSettingsRoutes(r, mgr, bridge, catalog, log)
	log.Info("Settings API running on :8081")
	if err := r.Run(":8081"); err != nil {
		log.ErrorWithErr(err, "Settings API stopped")
	}
}
