// Package redact scrubs credentials, provider tokens, URLs, file paths and
// other sensitive fragments from strings before they are logged. Provider
// errors routinely echo request URLs and headers, so every error that reaches
// a log line passes through Error first.
package redact

import (
	"regexp"
)

// Redaction placeholders
const (
	RedactionPlaceholder          = "[REDACTED]"
	RedactedPathPlaceholder       = "[REDACTED_PATH]"
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
	RedactedTokenPlaceholder      = "[REDACTED_TOKEN]"
	RedactedURLPlaceholder        = "[REDACTED_URL]"
	RedactedImagePlaceholder      = "[REDACTED_IMAGE_DATA]"
)

type rule struct {
	pattern     *regexp.Regexp
	placeholder string
}

// rules are applied in order; earlier rules see the raw input.
var rules = []rule{
	// Stack trace fragments
	{regexp.MustCompile(`(?:goroutine \d+|panic:)[\s\S]*?(\n\t.*)+`), "[STACK_TRACE_REDACTED]"},

	// Inline image payloads
	{regexp.MustCompile(`data:[\w/+.-]+;base64,[A-Za-z0-9+/=]+`), RedactedImagePlaceholder},

	// Authorization header values
	{regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9._~+/-]+=*`), RedactedTokenPlaceholder},

	// Provider credentials: Replicate API tokens and Google API keys
	{regexp.MustCompile(`\br8_[A-Za-z0-9]{20,}`), RedactedKeyPlaceholder},
	{regexp.MustCompile(`\bAIza[0-9A-Za-z_-]{35}`), RedactedKeyPlaceholder},

	// JWTs, e.g. Google OAuth access tokens
	{regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`), "[REDACTED_JWT]"},

	// Generic key/token/secret parameters
	{
		regexp.MustCompile(`(?i)(api[_-]?key|token|secret|key|auth)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`),
		RedactedKeyPlaceholder,
	},
	{regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]?['"]?)[^'"&\s]{3,}`), RedactedCredentialPlaceholder},

	// Full URLs, including query strings that may carry keys
	{regexp.MustCompile(`(?i)\bhttps?://[^\s"'<>]+`), RedactedURLPlaceholder},

	// File paths
	{regexp.MustCompile(`(/[\w.-]+){2,}`), RedactedPathPlaceholder},
	{regexp.MustCompile(`[A-Za-z]:\\[^\\]+(\\[^\\]+)+`), RedactedPathPlaceholder},

	// Email addresses
	{regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b`), "[REDACTED_EMAIL]"},

	// Bare host names, with optional port
	{
		regexp.MustCompile(`\b(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}(?::\d{1,5})?\b`),
		"[REDACTED_HOST]",
	},

	// File system error phrasing
	{regexp.MustCompile(`(?i)(?:no such file|file not found|can't open|cannot open|file error)`), "[REDACTED_FILE_ERROR]"},
}

// String redacts sensitive information from the input string
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.placeholder)
	}

	return result
}

// Error redacts sensitive information from an error's Error() output
func Error(err error) string {
	if err == nil {
		return ""
	}

	return String(err.Error())
}
