package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/triquetra-api/internal/domain"
	"github.com/phrazzld/triquetra-api/internal/redact"
	"golang.org/x/sync/errgroup"
)

// FanOutStrategy selects how GenerateAll issues its per-world provider calls.
type FanOutStrategy string

const (
	// StrategyParallel issues all calls concurrently and waits for all of them.
	StrategyParallel FanOutStrategy = "parallel"
	// StrategySequential issues calls one at a time with a pause between them.
	StrategySequential FanOutStrategy = "sequential"
)

// Defaults applied by NewService to zero-valued ServiceConfig fields.
const (
	DefaultInterCallDelay = time.Second
	DefaultCallTimeout    = 60 * time.Second
	DefaultAspectRatio    = "1:1"
	DefaultOutputFormat   = "webp"
	DefaultOutputQuality  = 90
)

// ImageSettings are the fixed output settings sent with every provider call.
type ImageSettings struct {
	AspectRatio   string
	OutputFormat  string
	OutputQuality int
}

// ServiceConfig configures a Service. Zero values select the package
// defaults, so an InterCallDelay of zero means DefaultInterCallDelay.
type ServiceConfig struct {
	Strategy       FanOutStrategy
	InterCallDelay time.Duration
	CallTimeout    time.Duration
	Image          ImageSettings
}

func (c ServiceConfig) withDefaults() ServiceConfig {
	if c.Strategy == "" {
		c.Strategy = StrategyParallel
	}
	if c.InterCallDelay <= 0 {
		c.InterCallDelay = DefaultInterCallDelay
	}
	if c.CallTimeout <= 0 {
		c.CallTimeout = DefaultCallTimeout
	}
	if c.Image.AspectRatio == "" {
		c.Image.AspectRatio = DefaultAspectRatio
	}
	if c.Image.OutputFormat == "" {
		c.Image.OutputFormat = DefaultOutputFormat
	}
	if c.Image.OutputQuality <= 0 {
		c.Image.OutputQuality = DefaultOutputQuality
	}
	return c
}

// Service generates world-styled images. It holds no per-request state and is
// safe for concurrent use.
type Service struct {
	provider Provider
	config   ServiceConfig
	logger   *slog.Logger
}

// NewService creates a Service. A nil provider puts the service in demo mode:
// every operation returns placeholder images and no provider call is made.
func NewService(provider Provider, cfg ServiceConfig, logger *slog.Logger) (*Service, error) {
	cfg = cfg.withDefaults()
	if cfg.Strategy != StrategyParallel && cfg.Strategy != StrategySequential {
		return nil, fmt.Errorf("%w: unknown fan-out strategy %q", ErrInvalidConfig, cfg.Strategy)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		provider: provider,
		config:   cfg,
		logger:   logger.With(slog.String("component", "generation_service")),
	}, nil
}

// DemoMode reports whether the service runs without a provider.
func (s *Service) DemoMode() bool {
	return s.provider == nil
}

// Strategy returns the configured fan-out strategy.
func (s *Service) Strategy() FanOutStrategy {
	return s.config.Strategy
}

// GenerateOne produces one image for prompt styled by world. An empty world
// leaves the prompt unstyled.
//
// Validation errors are *domain.ValidationError values. Provider failures wrap
// ErrRateLimited, ErrAuthFailed or ErrGenerationFailed.
func (s *Service) GenerateOne(
	ctx context.Context,
	prompt string,
	world domain.WorldKey,
) (*domain.GenerationResult, error) {
	req := domain.GenerationRequest{Prompt: prompt, World: world}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	result := domain.NewResult(prompt, world)

	if s.DemoMode() {
		result.Image = singleDemoPlaceholder(world)
		result.Demo = true
		s.logger.DebugContext(ctx, "demo mode: returning placeholder",
			slog.String("world", string(world)))
		return &result, nil
	}

	image, err := s.call(ctx, result.Prompt, world)
	if err != nil {
		return nil, err
	}

	result.Image = image
	return &result, nil
}

// GenerateAll produces one image per configured world, in table order.
//
// Only validation errors are returned. A world whose provider call fails is
// reported in its result with Error set and a placeholder image; the other
// worlds are unaffected.
func (s *Service) GenerateAll(ctx context.Context, prompt string) ([]domain.GenerationResult, error) {
	if err := domain.ValidatePrompt(prompt); err != nil {
		return nil, err
	}

	worlds := domain.Worlds()
	results := make([]domain.GenerationResult, len(worlds))
	for i, style := range worlds {
		results[i] = domain.NewResult(prompt, style.Key)
	}

	if s.DemoMode() {
		for i, style := range worlds {
			results[i].Image = worldPlaceholder(style)
			results[i].Demo = true
		}
		s.logger.DebugContext(ctx, "demo mode: returning placeholders for all worlds")
		return results, nil
	}

	switch s.config.Strategy {
	case StrategySequential:
		s.generateSequential(ctx, worlds, results)
	default:
		s.generateParallel(ctx, worlds, results)
	}

	return results, nil
}

// generateParallel starts every world at once. The group has no shared
// context, so one failure never cancels its siblings.
func (s *Service) generateParallel(ctx context.Context, worlds []domain.WorldStyle, results []domain.GenerationResult) {
	var g errgroup.Group
	for i, style := range worlds {
		g.Go(func() error {
			s.fill(ctx, style, &results[i])
			return nil
		})
	}
	_ = g.Wait()
}

// generateSequential runs the worlds in order and waits InterCallDelay after
// each call before starting the next.
func (s *Service) generateSequential(ctx context.Context, worlds []domain.WorldStyle, results []domain.GenerationResult) {
	for i, style := range worlds {
		s.fill(ctx, style, &results[i])

		if i == len(worlds)-1 {
			break
		}
		if err := sleep(ctx, s.config.InterCallDelay); err != nil {
			// Cancelled mid-batch: remaining worlds fail without calling out.
			for j := i + 1; j < len(worlds); j++ {
				results[j].Image = worldPlaceholder(worlds[j])
				results[j].Error = true
			}
			return
		}
	}
}

func (s *Service) fill(ctx context.Context, style domain.WorldStyle, result *domain.GenerationResult) {
	image, err := s.call(ctx, result.Prompt, style.Key)
	if err != nil {
		result.Image = worldPlaceholder(style)
		result.Error = true
		return
	}
	result.Image = image
}

// call performs exactly one provider call under the per-call timeout and
// returns a normalised image reference or a classified error.
func (s *Service) call(ctx context.Context, styledPrompt string, world domain.WorldKey) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.config.CallTimeout)
	defer cancel()

	log := s.logger.With(
		slog.String("world", string(world)),
		slog.String("strategy", string(s.config.Strategy)),
	)

	start := time.Now()
	output, err := s.provider.GenerateImage(callCtx, ImageRequest{
		Prompt:        styledPrompt,
		Count:         1,
		AspectRatio:   s.config.Image.AspectRatio,
		OutputFormat:  s.config.Image.OutputFormat,
		OutputQuality: s.config.Image.OutputQuality,
	})
	elapsed := time.Since(start)

	if err == nil {
		var image string
		image, err = output.Reference()
		if err == nil {
			log.InfoContext(ctx, "image generated", slog.Duration("duration", elapsed))
			return image, nil
		}
	}

	if errors.Is(err, context.DeadlineExceeded) && callCtx.Err() != nil {
		err = fmt.Errorf("%w: call timed out after %s: %w", ErrGenerationFailed, s.config.CallTimeout, err)
	}
	err = Classify(err)

	log.ErrorContext(ctx, "image generation failed",
		slog.Duration("duration", elapsed),
		slog.String("error", redact.Error(err)))
	return "", err
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
