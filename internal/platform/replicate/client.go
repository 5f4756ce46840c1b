package replicate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/triquetra-api/internal/generation"
)

// Defaults for Config fields left empty.
const (
	DefaultBaseURL      = "https://api.replicate.com"
	DefaultModel        = "black-forest-labs/flux-schnell"
	DefaultPollInterval = time.Second
)

// Config holds the Replicate connection settings.
type Config struct {
	APIToken     string `validate:"required"`
	Model        string `validate:"required"`
	BaseURL      string `validate:"required,url"`
	PollInterval time.Duration
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for API calls.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// Client is a generation.Provider backed by Replicate.
type Client struct {
	config Config
	http   *http.Client
	logger *slog.Logger
}

var _ generation.Provider = (*Client)(nil)

// New creates a Client. Empty Model, BaseURL and PollInterval fall back to the
// package defaults; a missing token is an ErrInvalidConfig error.
func New(logger *slog.Logger, cfg Config, opts ...Option) (*Client, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("%w: replicate: %v", generation.ErrInvalidConfig, err)
	}

	c := &Client{
		config: cfg,
		http:   &http.Client{},
		logger: logger.With(slog.String("provider", "replicate"), slog.String("model", cfg.Model)),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// GenerateImage creates a prediction and waits for it to finish.
func (c *Client) GenerateImage(ctx context.Context, req generation.ImageRequest) (*generation.ImageOutput, error) {
	body, err := json.Marshal(predictionRequest{Input: predictionInput{
		Prompt:        req.Prompt,
		NumOutputs:    req.Count,
		AspectRatio:   req.AspectRatio,
		OutputFormat:  req.OutputFormat,
		OutputQuality: req.OutputQuality,
	}})
	if err != nil {
		return nil, fmt.Errorf("%w: replicate: marshal prediction request: %v", generation.ErrGenerationFailed, err)
	}

	url := strings.TrimRight(c.config.BaseURL, "/") + "/v1/models/" + c.config.Model + "/predictions"
	pred, err := c.do(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, err
	}

	for !pred.terminal() {
		if pred.URLs.Get == "" {
			return nil, fmt.Errorf("%w: replicate: prediction %s is %s and has no poll URL",
				generation.ErrGenerationFailed, pred.ID, pred.Status)
		}

		c.logger.DebugContext(ctx, "prediction still running",
			slog.String("prediction_id", pred.ID),
			slog.String("status", pred.Status))

		if err := wait(ctx, c.config.PollInterval); err != nil {
			return nil, fmt.Errorf("%w: replicate: waiting for prediction %s: %w",
				generation.ErrGenerationFailed, pred.ID, err)
		}

		if pred, err = c.do(ctx, http.MethodGet, pred.URLs.Get, nil); err != nil {
			return nil, err
		}
	}

	if pred.Status != statusSucceeded {
		msg := pred.Error
		if msg == "" {
			msg = "no error detail"
		}
		return nil, generation.Classify(fmt.Errorf("replicate: prediction %s %s: %s", pred.ID, pred.Status, msg))
	}

	urls, err := pred.outputURLs()
	if err != nil {
		return nil, err
	}

	return &generation.ImageOutput{URLs: urls}, nil
}

func (c *Client) do(ctx context.Context, method, url string, body []byte) (*prediction, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("%w: replicate: build request: %v", generation.ErrGenerationFailed, err)
	}

	httpReq.Header.Set("Authorization", "Bearer "+c.config.APIToken)
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("Prefer", "wait")
	}

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: replicate: request failed: %w", generation.ErrGenerationFailed, err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode >= http.StatusBadRequest {
		return nil, decodeAPIError(httpResp)
	}

	var pred prediction
	if err := json.NewDecoder(httpResp.Body).Decode(&pred); err != nil {
		return nil, fmt.Errorf("%w: replicate: decode prediction: %v", generation.ErrGenerationFailed, err)
	}

	return &pred, nil
}

func decodeAPIError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	var apiErr apiError
	detail := ""
	if err := json.Unmarshal(raw, &apiErr); err == nil {
		detail = apiErr.Detail
		if detail == "" {
			detail = apiErr.Title
		}
	}
	if detail == "" {
		detail = truncate(strings.TrimSpace(string(raw)), 200)
	}

	return generation.ClassifyStatus(resp.StatusCode, "replicate: "+detail)
}

func wait(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
