package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorlds_TableOrderAndValues(t *testing.T) {
	t.Parallel()

	worlds := Worlds()
	require.Len(t, worlds, 3)

	assert.Equal(t, WorldHappened, worlds[0].Key)
	assert.Equal(t, "What Happened", worlds[0].Name)
	assert.Equal(t, "#C9A227", worlds[0].Color)

	assert.Equal(t, WorldCouldHave, worlds[1].Key)
	assert.Equal(t, "What Could Have", worlds[1].Name)
	assert.Equal(t, "#00f0ff", worlds[1].Color)

	assert.Equal(t, WorldShouldHave, worlds[2].Key)
	assert.Equal(t, "What Should Have", worlds[2].Name)
	assert.Equal(t, "#FFD700", worlds[2].Color)

	for _, w := range worlds {
		assert.True(t, len(w.PromptSuffix) > 2 && w.PromptSuffix[:2] == ", ",
			"suffix for %s should start with a comma separator", w.Key)
	}
}

func TestWorlds_ReturnsCopy(t *testing.T) {
	t.Parallel()

	worlds := Worlds()
	worlds[0].Name = "mutated"
	worlds[0].PromptSuffix = ""

	style, ok := LookupWorld(WorldHappened)
	require.True(t, ok)
	assert.Equal(t, "What Happened", style.Name)
	assert.NotEmpty(t, style.PromptSuffix)
}

func TestLookupWorld(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		key    WorldKey
		wantOK bool
	}{
		{name: "happened", key: WorldHappened, wantOK: true},
		{name: "couldHave", key: WorldCouldHave, wantOK: true},
		{name: "shouldHave", key: WorldShouldHave, wantOK: true},
		{name: "wrong case", key: "HAPPENED", wantOK: false},
		{name: "unknown", key: "neverWas", wantOK: false},
		{name: "empty", key: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, ok := LookupWorld(tt.key)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantOK, IsWorld(tt.key))
		})
	}
}

func TestStyledPrompt(t *testing.T) {
	t.Parallel()

	happened, _ := LookupWorld(WorldHappened)

	assert.Equal(t, "a city"+happened.PromptSuffix, StyledPrompt("a city", WorldHappened))
	assert.Equal(t, "a city", StyledPrompt("a city", ""))
	// No trimming or normalisation of the base prompt.
	assert.Equal(t, "  a city  "+happened.PromptSuffix, StyledPrompt("  a city  ", WorldHappened))
}

func TestWorldStyle_HexDigits(t *testing.T) {
	t.Parallel()

	style, ok := LookupWorld(WorldCouldHave)
	require.True(t, ok)
	assert.Equal(t, "00f0ff", style.HexDigits())
}

func TestParseWorlds_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "malformed yaml",
			yaml:    "worlds: [",
			wantErr: "failed to parse world table",
		},
		{
			name: "bad colour",
			yaml: `worlds:
  - {key: happened, name: A, color: "red", prompt_suffix: ", a"}
  - {key: couldHave, name: B, color: "#00f0ff", prompt_suffix: ", b"}
  - {key: shouldHave, name: C, color: "#FFD700", prompt_suffix: ", c"}`,
			wantErr: "validation failed",
		},
		{
			name: "missing world",
			yaml: `worlds:
  - {key: happened, name: A, color: "#C9A227", prompt_suffix: ", a"}
  - {key: couldHave, name: B, color: "#00f0ff", prompt_suffix: ", b"}`,
			wantErr: "must define 3 worlds",
		},
		{
			name: "wrong order",
			yaml: `worlds:
  - {key: couldHave, name: B, color: "#00f0ff", prompt_suffix: ", b"}
  - {key: happened, name: A, color: "#C9A227", prompt_suffix: ", a"}
  - {key: shouldHave, name: C, color: "#FFD700", prompt_suffix: ", c"}`,
			wantErr: `world 0 must be "happened"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := parseWorlds([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
