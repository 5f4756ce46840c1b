package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/triquetra-api/internal/api"
	"github.com/phrazzld/triquetra-api/internal/bootstrap"
	"github.com/phrazzld/triquetra-api/internal/config"
	"github.com/phrazzld/triquetra-api/internal/platform/logger"
)

// application holds the shared application dependencies.
type application struct {
	config    *config.Config
	logger    *slog.Logger
	generator api.Generator
}

// newApplication loads configuration and wires every dependency.
func newApplication(ctx context.Context) (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.Setup(logger.Config{Level: cfg.Server.LogLevel})
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	l.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"provider", cfg.Provider.Kind,
		"credential_present", !cfg.Provider.DemoMode())

	svc, err := bootstrap.NewService(ctx, l, cfg)
	if err != nil {
		return nil, err
	}

	return &application{
		config:    cfg,
		logger:    l,
		generator: svc,
	}, nil
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
