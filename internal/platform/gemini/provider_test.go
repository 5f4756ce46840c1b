package gemini

import (
	"context"
	"errors"
	"testing"

	"github.com/phrazzld/triquetra-api/internal/generation"
	"github.com/phrazzld/triquetra-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

// fakeModels records GenerateImages calls and replays a canned answer.
type fakeModels struct {
	resp *genai.GenerateImagesResponse
	err  error

	calls  int
	model  string
	prompt string
	config *genai.GenerateImagesConfig
}

func (f *fakeModels) GenerateImages(
	_ context.Context,
	model, prompt string,
	config *genai.GenerateImagesConfig,
) (*genai.GenerateImagesResponse, error) {
	f.calls++
	f.model = model
	f.prompt = prompt
	f.config = config
	return f.resp, f.err
}

func newTestProvider(t *testing.T, models imageModels) *Provider {
	t.Helper()
	log, _ := logger.NewTestLogger()
	p, err := newWithModels(log, models, DefaultModel)
	require.NoError(t, err)
	return p
}

func imageResponse(data []byte, mime string) *genai.GenerateImagesResponse {
	return &genai.GenerateImagesResponse{
		GeneratedImages: []*genai.GeneratedImage{
			{Image: &genai.Image{ImageBytes: data, MIMEType: mime}},
		},
	}
}

func TestNew_ConfigValidation(t *testing.T) {
	t.Parallel()

	log, _ := logger.NewTestLogger()
	_, err := New(context.Background(), log, Config{})
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)

	_, err = newWithModels(nil, &fakeModels{}, DefaultModel)
	assert.Error(t, err)

	_, err = newWithModels(log, nil, DefaultModel)
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)
}

func TestGenerateImage_Success(t *testing.T) {
	t.Parallel()

	models := &fakeModels{resp: imageResponse([]byte{0x89, 'P', 'N', 'G'}, "image/png")}
	p := newTestProvider(t, models)

	out, err := p.GenerateImage(context.Background(), generation.ImageRequest{
		Prompt:        "a lighthouse",
		Count:         1,
		AspectRatio:   "1:1",
		OutputFormat:  "png",
		OutputQuality: 90,
	})
	require.NoError(t, err)

	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, out.Data)
	assert.Equal(t, "image/png", out.MIMEType)

	assert.Equal(t, 1, models.calls)
	assert.Equal(t, DefaultModel, models.model)
	assert.Equal(t, "a lighthouse", models.prompt)
	assert.Equal(t, int32(1), models.config.NumberOfImages)
	assert.Equal(t, "1:1", models.config.AspectRatio)
	assert.Equal(t, "image/png", models.config.OutputMIMEType)
	assert.Nil(t, models.config.OutputCompressionQuality)
}

func TestImagesConfig_Formats(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format      string
		wantMIME    string
		wantQuality bool
	}{
		{format: "png", wantMIME: "image/png"},
		{format: "jpg", wantMIME: "image/jpeg", wantQuality: true},
		{format: "JPEG", wantMIME: "image/jpeg", wantQuality: true},
		{format: "webp", wantMIME: ""},
		{format: "", wantMIME: ""},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			t.Parallel()

			cfg := imagesConfig(generation.ImageRequest{OutputFormat: tt.format, OutputQuality: 80})
			assert.Equal(t, tt.wantMIME, cfg.OutputMIMEType)
			assert.Equal(t, int32(1), cfg.NumberOfImages)
			if tt.wantQuality {
				require.NotNil(t, cfg.OutputCompressionQuality)
				assert.Equal(t, int32(80), *cfg.OutputCompressionQuality)
			} else {
				assert.Nil(t, cfg.OutputCompressionQuality)
			}
		})
	}
}

func TestGenerateImage_NoImage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		resp *genai.GenerateImagesResponse
	}{
		{name: "nil response", resp: nil},
		{name: "no images", resp: &genai.GenerateImagesResponse{}},
		{name: "empty bytes", resp: imageResponse(nil, "image/png")},
		{
			name: "filtered",
			resp: &genai.GenerateImagesResponse{GeneratedImages: []*genai.GeneratedImage{
				{RAIFilteredReason: "blocked by safety filter"},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := newTestProvider(t, &fakeModels{resp: tt.resp})
			out, err := p.GenerateImage(context.Background(), generation.ImageRequest{Prompt: "x"})
			assert.Nil(t, out)
			assert.ErrorIs(t, err, generation.ErrNoImage)
			assert.ErrorIs(t, err, generation.ErrGenerationFailed)
		})
	}
}

func TestGenerateImage_ErrorMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{name: "api error 429", err: genai.APIError{Code: 429, Status: "RESOURCE_EXHAUSTED"}, wantErr: generation.ErrRateLimited},
		{name: "api error pointer 401", err: &genai.APIError{Code: 401, Status: "UNAUTHENTICATED"}, wantErr: generation.ErrAuthFailed},
		{name: "api error 403", err: genai.APIError{Code: 403, Message: "permission denied"}, wantErr: generation.ErrAuthFailed},
		{name: "api error 400 invalid key", err: genai.APIError{Code: 400, Message: "API key not valid. Please pass a valid API key."}, wantErr: generation.ErrAuthFailed},
		{name: "api error 400 bad prompt", err: genai.APIError{Code: 400, Message: "prompt contains unsupported content"}, wantErr: generation.ErrGenerationFailed},
		{name: "api error 500", err: genai.APIError{Code: 500}, wantErr: generation.ErrGenerationFailed},
		{name: "deadline", err: context.DeadlineExceeded, wantErr: generation.ErrGenerationFailed},
		{name: "plain text quota", err: errors.New("quota: too many requests"), wantErr: generation.ErrRateLimited},
		{name: "plain text other", err: errors.New("connection reset"), wantErr: generation.ErrGenerationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := newTestProvider(t, &fakeModels{err: tt.err})
			_, err := p.GenerateImage(context.Background(), generation.ImageRequest{Prompt: "x"})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
