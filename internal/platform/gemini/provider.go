package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/triquetra-api/internal/generation"
	"google.golang.org/genai"
)

// DefaultModel is the Imagen model used when none is configured.
const DefaultModel = "imagen-3.0-generate-002"

// Config holds the Gemini API settings.
type Config struct {
	APIKey string `validate:"required"`
	Model  string `validate:"required"`
}

// imageModels is the subset of *genai.Models the provider uses.
type imageModels interface {
	GenerateImages(
		ctx context.Context,
		model, prompt string,
		config *genai.GenerateImagesConfig,
	) (*genai.GenerateImagesResponse, error)
}

// Provider implements generation.Provider using Imagen.
type Provider struct {
	// logger is used for structured logging
	logger *slog.Logger

	// models issues the GenerateImages calls
	models imageModels

	// model is the name of the Imagen model to use
	model string
}

var _ generation.Provider = (*Provider)(nil)

// New creates a Provider backed by a genai client for the Gemini API backend.
func New(ctx context.Context, logger *slog.Logger, cfg Config) (*Provider, error) {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: gemini: create client: %v", generation.ErrInvalidConfig, err)
	}

	return newWithModels(logger, client.Models, cfg.Model)
}

func newWithModels(logger *slog.Logger, models imageModels, model string) (*Provider, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if models == nil {
		return nil, fmt.Errorf("%w: gemini: models client cannot be nil", generation.ErrInvalidConfig)
	}

	return &Provider{
		logger: logger.With(slog.String("provider", "gemini"), slog.String("model", model)),
		models: models,
		model:  model,
	}, nil
}

func validateConfig(cfg Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("%w: gemini: %v", generation.ErrInvalidConfig, err)
	}
	return nil
}

// GenerateImage generates one image and returns its inline bytes.
func (p *Provider) GenerateImage(ctx context.Context, req generation.ImageRequest) (*generation.ImageOutput, error) {
	resp, err := p.models.GenerateImages(ctx, p.model, req.Prompt, imagesConfig(req))
	if err != nil {
		return nil, mapError(err)
	}

	if resp == nil || len(resp.GeneratedImages) == 0 {
		return nil, fmt.Errorf("%w: gemini: empty response", generation.ErrNoImage)
	}

	for _, generated := range resp.GeneratedImages {
		if generated == nil {
			continue
		}
		if generated.Image != nil && len(generated.Image.ImageBytes) > 0 {
			return &generation.ImageOutput{
				Data:     generated.Image.ImageBytes,
				MIMEType: generated.Image.MIMEType,
			}, nil
		}
		if generated.RAIFilteredReason != "" {
			p.logger.WarnContext(ctx, "image filtered by safety policy",
				slog.String("reason", generated.RAIFilteredReason))
			return nil, fmt.Errorf("%w: gemini: filtered: %s", generation.ErrNoImage, generated.RAIFilteredReason)
		}
	}

	return nil, fmt.Errorf("%w: gemini: response carried no image bytes", generation.ErrNoImage)
}

func imagesConfig(req generation.ImageRequest) *genai.GenerateImagesConfig {
	count := req.Count
	if count < 1 {
		count = 1
	}

	cfg := &genai.GenerateImagesConfig{
		NumberOfImages:   int32(count),
		AspectRatio:      req.AspectRatio,
		IncludeRAIReason: true,
	}

	if mime := outputMIMEType(req.OutputFormat); mime != "" {
		cfg.OutputMIMEType = mime
		if mime == "image/jpeg" && req.OutputQuality > 0 {
			quality := int32(req.OutputQuality)
			cfg.OutputCompressionQuality = &quality
		}
	}

	return cfg
}

// outputMIMEType maps an output format onto the MIME types Imagen accepts.
// Unsupported formats leave the choice to the model.
func outputMIMEType(format string) string {
	switch strings.ToLower(format) {
	case "png":
		return "image/png"
	case "jpg", "jpeg":
		return "image/jpeg"
	default:
		return ""
	}
}
