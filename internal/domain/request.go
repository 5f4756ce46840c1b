package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MaxPromptLength is the longest prompt accepted, in characters (Unicode code points).
const MaxPromptLength = 1000

// GenerationRequest is one validated call into the generation service.
type GenerationRequest struct {
	Prompt string   `validate:"required,max=1000"`
	World  WorldKey `validate:"omitempty,world"`
}

var requestValidator = newRequestValidator()

func newRequestValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("world", func(fl validator.FieldLevel) bool {
		return IsWorld(WorldKey(fl.Field().String()))
	}); err != nil {
		panic(fmt.Sprintf("domain: registering world validation: %v", err))
	}
	return v
}

// Validate checks the request and returns a *ValidationError wrapping
// ErrInvalidInput, ErrPromptTooLong or ErrUnknownWorld.
func (r GenerationRequest) Validate() error {
	err := requestValidator.Struct(r)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return NewValidationError("request", "valid", "", "Invalid request", ErrInvalidInput)
	}

	// Report the first violation; prompt errors come before world errors.
	return translateFieldError(fieldErrs[0])
}

// ValidatePrompt validates a prompt on its own, as the all-worlds operation does.
func ValidatePrompt(prompt string) error {
	return GenerationRequest{Prompt: prompt}.Validate()
}

func translateFieldError(fe validator.FieldError) error {
	switch fe.Field() {
	case "Prompt":
		if fe.Tag() == "max" {
			return PromptTooLongError()
		}
		return InvalidPromptError()
	case "World":
		return UnknownWorldError()
	default:
		return NewValidationError(strings.ToLower(fe.Field()), fe.Tag(), fe.Param(), "Invalid request", ErrInvalidInput)
	}
}

// InvalidPromptError reports a missing, empty or non-string prompt.
func InvalidPromptError() *ValidationError {
	return NewValidationError("prompt", "required", "",
		"Prompt is required and must be a string", ErrInvalidInput)
}

// PromptTooLongError reports a prompt over MaxPromptLength characters.
func PromptTooLongError() *ValidationError {
	return NewValidationError("prompt", "max", strconv.Itoa(MaxPromptLength),
		fmt.Sprintf("Prompt must be %d characters or less", MaxPromptLength), ErrPromptTooLong)
}

// UnknownWorldError reports a world selector outside the configured table.
func UnknownWorldError() *ValidationError {
	return NewValidationError("world", "oneof", worldList(),
		"Invalid world. Must be one of: "+worldList(), ErrUnknownWorld)
}

func worldList() string {
	keys := WorldKeys()
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}
