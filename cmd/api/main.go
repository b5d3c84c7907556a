package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pratik-mahalle/flashalerts/internal/config"
	"github.com/pratik-mahalle/flashalerts/internal/pkg/logger"
	"github.com/pratik-mahalle/flashalerts/internal/server"
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

	srv, err := server.New(cfg, log)
	if err != nil {
		log.ErrorWithErr(err, "Failed to build server")
		os.Exit(1)
	}
	defer srv.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		log.ErrorWithErr(err, "Server stopped")
		os.Exit(1)
	}
}
