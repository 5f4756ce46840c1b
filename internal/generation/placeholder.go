package generation

import (
	"fmt"
	"net/url"

	"github.com/phrazzld/triquetra-api/internal/domain"
)

const (
	placeholderBase       = "https://placehold.co/1024x1024/0a0a12"
	unstyledDemoLabel     = "Neptune"
	unstyledDemoColourHex = "C9A227"
)

// PlaceholderImage returns the placeholder image URL for the given colour
// (hex digits without '#') and label.
func PlaceholderImage(hex, label string) string {
	return fmt.Sprintf("%s/%s?text=%s", placeholderBase, hex, url.QueryEscape(label))
}

// worldPlaceholder labels the placeholder with the world's display name.
// It is used for batch demo results and for failed worlds.
func worldPlaceholder(style domain.WorldStyle) string {
	return PlaceholderImage(style.HexDigits(), style.Name)
}

// singleDemoPlaceholder labels the placeholder with the world key, or with
// the unstyled default when no world was requested.
func singleDemoPlaceholder(key domain.WorldKey) string {
	style, ok := domain.LookupWorld(key)
	if !ok {
		return PlaceholderImage(unstyledDemoColourHex, unstyledDemoLabel)
	}
	return PlaceholderImage(style.HexDigits(), string(key))
}
