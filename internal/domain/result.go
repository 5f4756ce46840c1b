package domain

// GenerationResult is the outcome for one (prompt, world) pair.
//
// Prompt is always the fully styled prompt, i.e. the base prompt plus the
// world's suffix, or the bare prompt when no world applies.
type GenerationResult struct {
	World  WorldKey `json:"world,omitempty"`
	Name   string   `json:"name,omitempty"`
	Color  string   `json:"color,omitempty"`
	Image  string   `json:"image"`
	Prompt string   `json:"prompt"`
	Demo   bool     `json:"demo,omitempty"`
	Error  bool     `json:"error,omitempty"`
}

// NewResult creates a result for the given world with its styling metadata
// filled in. An empty key produces an unstyled result.
func NewResult(prompt string, key WorldKey) GenerationResult {
	result := GenerationResult{
		World:  key,
		Prompt: StyledPrompt(prompt, key),
	}
	if style, ok := LookupWorld(key); ok {
		result.Name = style.Name
		result.Color = style.Color
	}
	return result
}
