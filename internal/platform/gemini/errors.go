package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/phrazzld/triquetra-api/internal/generation"
	"google.golang.org/genai"
)

// mapError translates a genai error into the provider error taxonomy.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	if code, ok := apiErrorCode(err); ok {
		switch code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: gemini: %w", generation.ErrAuthFailed, err)
		case http.StatusTooManyRequests:
			return fmt.Errorf("%w: gemini: %w", generation.ErrRateLimited, err)
		}
		// Invalid API keys come back as 400 INVALID_ARGUMENT; let the message decide.
		return generation.Classify(fmt.Errorf("gemini: %w", err))
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: gemini: %w", generation.ErrGenerationFailed, err)
	}

	return generation.Classify(fmt.Errorf("gemini: %w", err))
}

// apiErrorCode extracts the HTTP status from a genai.APIError, whichever way
// the client chose to return it.
func apiErrorCode(err error) (int, bool) {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code, true
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiErrPtr.Code, true
	}
	return 0, false
}
