package domain

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// WorldKey identifies one of the stylistic variants applied to a prompt.
type WorldKey string

// Supported worlds, in result order.
const (
	WorldHappened   WorldKey = "happened"
	WorldCouldHave  WorldKey = "couldHave"
	WorldShouldHave WorldKey = "shouldHave"
)

// worldOrder is the fixed order every fan-out returns results in.
var worldOrder = []WorldKey{WorldHappened, WorldCouldHave, WorldShouldHave}

// WorldStyle is the static styling applied for one world.
type WorldStyle struct {
	Key          WorldKey `yaml:"key"           validate:"required"`
	Name         string   `yaml:"name"          validate:"required"`
	PromptSuffix string   `yaml:"prompt_suffix" validate:"required"`
	Color        string   `yaml:"color"         validate:"required,hexcolor"`
}

type worldFile struct {
	Worlds []WorldStyle `yaml:"worlds" validate:"required,dive"`
}

//go:embed worlds.yaml
var worldsYAML []byte

// worldTable is loaded once and never mutated; accessors hand out copies.
var worldTable = mustParseWorlds(worldsYAML)

// Worlds returns the configured world styles in result order.
func Worlds() []WorldStyle {
	out := make([]WorldStyle, len(worldTable))
	copy(out, worldTable)
	return out
}

// WorldKeys returns the configured world keys in result order.
func WorldKeys() []WorldKey {
	keys := make([]WorldKey, len(worldTable))
	for i, w := range worldTable {
		keys[i] = w.Key
	}
	return keys
}

// LookupWorld returns the style for key.
func LookupWorld(key WorldKey) (WorldStyle, bool) {
	for _, w := range worldTable {
		if w.Key == key {
			return w, true
		}
	}
	return WorldStyle{}, false
}

// IsWorld reports whether key names a configured world.
func IsWorld(key WorldKey) bool {
	_, ok := LookupWorld(key)
	return ok
}

// StyledPrompt appends the world's suffix to prompt. An empty key leaves the
// prompt unchanged. Unknown keys are the caller's problem and also leave it unchanged.
func StyledPrompt(prompt string, key WorldKey) string {
	if key == "" {
		return prompt
	}
	style, ok := LookupWorld(key)
	if !ok {
		return prompt
	}
	return prompt + style.PromptSuffix
}

// HexDigits returns the colour without its leading '#'.
func (w WorldStyle) HexDigits() string {
	return strings.TrimPrefix(w.Color, "#")
}

func mustParseWorlds(data []byte) []WorldStyle {
	worlds, err := parseWorlds(data)
	if err != nil {
		panic(fmt.Sprintf("domain: embedded world table is invalid: %v", err))
	}
	return worlds
}

func parseWorlds(data []byte) ([]WorldStyle, error) {
	var file worldFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse world table: %w", err)
	}

	if err := validator.New().Struct(file); err != nil {
		return nil, fmt.Errorf("world table validation failed: %w", err)
	}

	if len(file.Worlds) != len(worldOrder) {
		return nil, fmt.Errorf("world table must define %d worlds, found %d", len(worldOrder), len(file.Worlds))
	}
	for i, want := range worldOrder {
		if got := file.Worlds[i].Key; got != want {
			return nil, fmt.Errorf("world %d must be %q, found %q", i, want, got)
		}
	}

	return file.Worlds, nil
}
