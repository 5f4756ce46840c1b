package generation

import (
	"errors"
	"fmt"
	"strings"
)

var rateLimitMarkers = []string{
	"rate limit",
	"too many requests",
	"throttled",
	"resource_exhausted",
}

var authMarkers = []string{
	"unauthorized",
	"unauthenticated",
	"authentication",
	"api key not valid",
	"permission denied",
}

// Classify maps an arbitrary provider error onto the provider error taxonomy.
//
// Errors that already wrap ErrRateLimited, ErrAuthFailed or ErrGenerationFailed
// are returned unchanged. Otherwise the message is inspected, and anything
// unrecognised becomes ErrGenerationFailed. A nil error stays nil.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrRateLimited) || errors.Is(err, ErrAuthFailed) || errors.Is(err, ErrGenerationFailed) {
		return err
	}

	msg := strings.ToLower(err.Error())
	switch {
	case containsAny(msg, rateLimitMarkers):
		return fmt.Errorf("%w: %w", ErrRateLimited, err)
	case containsAny(msg, authMarkers):
		return fmt.Errorf("%w: %w", ErrAuthFailed, err)
	default:
		return fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}
}

// ClassifyStatus maps an HTTP-style status code onto the taxonomy, wrapping
// detail. Codes outside 401/403/429 map to ErrGenerationFailed.
func ClassifyStatus(code int, detail string) error {
	var sentinel error
	switch code {
	case 401, 403:
		sentinel = ErrAuthFailed
	case 429:
		sentinel = ErrRateLimited
	default:
		sentinel = ErrGenerationFailed
	}
	if detail == "" {
		return fmt.Errorf("%w (status %d)", sentinel, code)
	}
	return fmt.Errorf("%w (status %d): %s", sentinel, code, detail)
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
