package api

import (
	"github.com/phrazzld/triquetra-api/internal/domain"
)

// GenerateRequest defines the payload for POST /api/generate.
type GenerateRequest struct {
	Prompt string `json:"prompt"`
	World  string `json:"world,omitempty"`
}

// Validate applies the domain rules for a single-world request.
func (r GenerateRequest) Validate() error {
	return domain.GenerationRequest{Prompt: r.Prompt, World: domain.WorldKey(r.World)}.Validate()
}

// GenerateAllRequest defines the payload for PUT /api/generate.
// Any world field in the body is ignored.
type GenerateAllRequest struct {
	Prompt string `json:"prompt"`
}

// Validate applies the domain prompt rules.
func (r GenerateAllRequest) Validate() error {
	return domain.ValidatePrompt(r.Prompt)
}

// GenerateResponse is the success body for both generation endpoints.
// Single-world responses fill Image, World and Prompt; all-world responses
// fill Results.
type GenerateResponse struct {
	Success bool                      `json:"success"`
	Demo    bool                      `json:"demo,omitempty"`
	Image   string                    `json:"image,omitempty"`
	World   string                    `json:"world,omitempty"`
	Prompt  string                    `json:"prompt,omitempty"`
	Results []domain.GenerationResult `json:"results,omitempty"`
	TraceID string                    `json:"trace_id,omitempty"`
}

// WorldResponse describes one world style.
type WorldResponse struct {
	Key          string `json:"key"`
	Name         string `json:"name"`
	Color        string `json:"color"`
	PromptSuffix string `json:"prompt_suffix"`
}

// WorldsResponse is the body for GET /api/worlds.
type WorldsResponse struct {
	Worlds []WorldResponse `json:"worlds"`
	Demo   bool            `json:"demo"`
}

// WorldToResponse converts a world style to its JSON form.
func WorldToResponse(w domain.WorldStyle) WorldResponse {
	return WorldResponse{
		Key:          string(w.Key),
		Name:         w.Name,
		Color:        w.Color,
		PromptSuffix: w.PromptSuffix,
	}
}
