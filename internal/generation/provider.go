package generation

import (
	"context"
	"encoding/base64"
)

// DefaultMIMEType is assumed for inline image data that arrives without one.
const DefaultMIMEType = "image/png"

// Provider is the boundary between the service and an external image model.
//
// Implementations perform exactly one remote generation per call and return
// errors wrapping ErrRateLimited, ErrAuthFailed or ErrGenerationFailed where
// they can tell the difference. The service classifies anything else.
type Provider interface {
	GenerateImage(ctx context.Context, req ImageRequest) (*ImageOutput, error)
}

// ImageRequest carries the fully styled prompt and the fixed output settings.
type ImageRequest struct {
	Prompt        string
	Count         int
	AspectRatio   string
	OutputFormat  string
	OutputQuality int
}

// ImageOutput is a provider's raw answer. Providers fill in URLs, inline
// Data, or both.
type ImageOutput struct {
	URLs     []string
	Data     []byte
	MIMEType string
}

// Reference normalises the output to a single image reference: the first
// non-empty URL, otherwise a data URI built from the inline bytes.
// It returns ErrNoImage when neither is present.
func (o *ImageOutput) Reference() (string, error) {
	if o == nil {
		return "", ErrNoImage
	}

	for _, u := range o.URLs {
		if u != "" {
			return u, nil
		}
	}

	if len(o.Data) > 0 {
		mime := o.MIMEType
		if mime == "" {
			mime = DefaultMIMEType
		}
		return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(o.Data), nil
	}

	return "", ErrNoImage
}

// ProviderFunc adapts an ordinary function to the Provider interface.
type ProviderFunc func(ctx context.Context, req ImageRequest) (*ImageOutput, error)

// GenerateImage calls f(ctx, req).
func (f ProviderFunc) GenerateImage(ctx context.Context, req ImageRequest) (*ImageOutput, error) {
	return f(ctx, req)
}
