package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/phrazzld/triquetra-api/internal/api/shared"
	"github.com/phrazzld/triquetra-api/internal/domain"
)

// demoWorld is reported for unstyled single-world requests served in demo mode.
const demoWorld = "demo"

// Generator is the subset of the generation service the handlers use.
type Generator interface {
	DemoMode() bool
	GenerateOne(ctx context.Context, prompt string, world domain.WorldKey) (*domain.GenerationResult, error)
	GenerateAll(ctx context.Context, prompt string) ([]domain.GenerationResult, error)
}

// GenerateHandler handles the image generation endpoints.
type GenerateHandler struct {
	generator Generator
}

// NewGenerateHandler creates a new GenerateHandler
func NewGenerateHandler(generator Generator) *GenerateHandler {
	return &GenerateHandler{generator: generator}
}

// GenerateOne handles POST /api/generate requests
func (h *GenerateHandler) GenerateOne(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := decodeGenerateBody(w, r, &req); err != nil {
		respondWithError(w, r, err, msgGenerationFailed)
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		respondWithError(w, r, err, msgGenerationFailed)
		return
	}

	// Accepted work runs to completion even if the client goes away;
	// the per-call timeout bounds it.
	ctx := context.WithoutCancel(r.Context())

	result, err := h.generator.GenerateOne(ctx, req.Prompt, domain.WorldKey(req.World))
	if err != nil {
		respondWithError(w, r, err, msgGenerationFailed)
		return
	}

	resp := GenerateResponse{
		Success: true,
		Demo:    result.Demo,
		Image:   result.Image,
		World:   string(result.World),
		Prompt:  result.Prompt,
	}
	if result.Demo && resp.World == "" {
		resp.World = demoWorld
	}

	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// GenerateAll handles PUT /api/generate requests
func (h *GenerateHandler) GenerateAll(w http.ResponseWriter, r *http.Request) {
	var req GenerateAllRequest
	if err := decodeGenerateBody(w, r, &req); err != nil {
		respondWithError(w, r, err, msgBatchFailed)
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		respondWithError(w, r, err, msgBatchFailed)
		return
	}

	results, err := h.generator.GenerateAll(context.WithoutCancel(r.Context()), req.Prompt)
	if err != nil {
		respondWithError(w, r, err, msgBatchFailed)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, GenerateResponse{
		Success: true,
		Demo:    h.generator.DemoMode(),
		Results: results,
	})
}

// ListWorlds handles GET /api/worlds requests
func (h *GenerateHandler) ListWorlds(w http.ResponseWriter, r *http.Request) {
	worlds := domain.Worlds()
	resp := WorldsResponse{
		Worlds: make([]WorldResponse, len(worlds)),
		Demo:   h.generator.DemoMode(),
	}
	for i, world := range worlds {
		resp.Worlds[i] = WorldToResponse(world)
	}

	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// decodeGenerateBody decodes a generation request body. A prompt or world of
// the wrong JSON type is reported as the matching validation error. A body
// over the size cap can only hold an over-long prompt. Anything else that
// fails to decode is an invalid body.
func decodeGenerateBody(w http.ResponseWriter, r *http.Request, v any) error {
	shared.LimitBody(w, r)

	err := shared.DecodeJSON(r, v)
	if err == nil {
		return nil
	}

	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return domain.PromptTooLongError()
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		switch typeErr.Field {
		case "prompt":
			return domain.InvalidPromptError()
		case "world":
			return domain.UnknownWorldError()
		}
	}

	return domain.NewValidationError("body", "json", "", msgInvalidJSON, domain.ErrInvalidInput)
}

// respondWithError writes the status and safe message for err. fallback is
// used for unclassified failures.
func respondWithError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError {
		message = fallback
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}
