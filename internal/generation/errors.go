package generation

import (
	"errors"
	"fmt"
)

// Provider errors. Every error surfaced from a provider call wraps exactly one
// of ErrRateLimited, ErrAuthFailed or ErrGenerationFailed.
var (
	// ErrRateLimited is returned when the provider throttles the caller.
	ErrRateLimited = errors.New("image provider rate limit exceeded")

	// ErrAuthFailed is returned when the provider rejects the credential.
	ErrAuthFailed = errors.New("image provider authentication failed")

	// ErrGenerationFailed is returned for any other provider failure.
	ErrGenerationFailed = errors.New("image generation failed")

	// ErrNoImage is returned when a provider answers without a usable image.
	ErrNoImage = fmt.Errorf("%w: provider returned no image", ErrGenerationFailed)

	// ErrInvalidConfig is returned when a provider is constructed with invalid configuration.
	ErrInvalidConfig = errors.New("invalid image provider configuration")
)
