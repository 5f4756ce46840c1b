// Package bootstrap builds the generation service from configuration. The
// HTTP server and the worldgen CLI share it so both pick the provider and
// demo mode the same way.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/triquetra-api/internal/config"
	"github.com/phrazzld/triquetra-api/internal/generation"
	"github.com/phrazzld/triquetra-api/internal/platform/gemini"
	"github.com/phrazzld/triquetra-api/internal/platform/replicate"
)

// Provider kinds accepted in configuration.
const (
	ProviderReplicate = "replicate"
	ProviderGemini    = "gemini"
)

// NewProvider returns the configured provider, or a nil Provider when no
// credential is configured (demo mode).
func NewProvider(ctx context.Context, logger *slog.Logger, cfg config.ProviderConfig) (generation.Provider, error) {
	if cfg.DemoMode() {
		logger.Info("no provider credential configured, running in demo mode")
		return nil, nil
	}

	switch cfg.Kind {
	case ProviderReplicate:
		p, err := replicate.New(logger, replicate.Config{
			APIToken:     cfg.APIToken,
			Model:        cfg.Model,
			BaseURL:      cfg.BaseURL,
			PollInterval: cfg.PollInterval,
		})
		if err != nil {
			return nil, err
		}
		return p, nil
	case ProviderGemini:
		p, err := gemini.New(ctx, logger, gemini.Config{
			APIKey: cfg.APIToken,
			Model:  cfg.Model,
		})
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("%w: unknown provider kind %q", generation.ErrInvalidConfig, cfg.Kind)
	}
}

// NewService builds the generation service described by cfg.
func NewService(ctx context.Context, logger *slog.Logger, cfg *config.Config) (*generation.Service, error) {
	provider, err := NewProvider(ctx, logger, cfg.Provider)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize image provider: %w", err)
	}

	svc, err := generation.NewService(provider, ServiceConfig(cfg.Generation), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize generation service: %w", err)
	}

	logger.Info("generation service initialized",
		slog.String("provider", cfg.Provider.Kind),
		slog.Bool("demo", svc.DemoMode()),
		slog.String("strategy", string(svc.Strategy())))

	return svc, nil
}

// ServiceConfig converts the generation section of the configuration.
func ServiceConfig(cfg config.GenerationConfig) generation.ServiceConfig {
	return generation.ServiceConfig{
		Strategy:       generation.FanOutStrategy(cfg.Strategy),
		InterCallDelay: cfg.InterCallDelay,
		CallTimeout:    cfg.CallTimeout,
		Image: generation.ImageSettings{
			AspectRatio:   cfg.AspectRatio,
			OutputFormat:  cfg.OutputFormat,
			OutputQuality: cfg.OutputQuality,
		},
	}
}
