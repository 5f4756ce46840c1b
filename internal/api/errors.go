package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/triquetra-api/internal/domain"
	"github.com/phrazzld/triquetra-api/internal/generation"
)

// Client-facing messages for provider failures.
const (
	msgRateLimited      = "Rate limit exceeded. Please try again later."
	msgAuthFailed       = "API authentication failed"
	msgGenerationFailed = "Failed to generate image. Please try again."
	msgBatchFailed      = "Failed to generate images. Please try again."
	msgInvalidJSON      = "Invalid JSON body"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Input validation
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrPromptTooLong),
		errors.Is(err, domain.ErrUnknownWorld):
		return http.StatusBadRequest

	// Provider credential rejected
	case errors.Is(err, generation.ErrAuthFailed):
		return http.StatusUnauthorized

	// Provider throttling
	case errors.Is(err, generation.ErrRateLimited):
		return http.StatusTooManyRequests

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. Validation errors carry their own message;
// provider details never reach the client.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return msgGenerationFailed
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) && ve.Message != "" {
		return ve.Message
	}

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return "Prompt is required and must be a string"
	case errors.Is(err, domain.ErrPromptTooLong):
		return "Prompt is too long"
	case errors.Is(err, domain.ErrUnknownWorld):
		return "Invalid world"
	case errors.Is(err, generation.ErrRateLimited):
		return msgRateLimited
	case errors.Is(err, generation.ErrAuthFailed):
		return msgAuthFailed
	default:
		return msgGenerationFailed
	}
}
