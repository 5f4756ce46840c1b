// Package api handles incoming HTTP requests for image generation: request
// decoding and validation, mapping of domain and provider errors to status
// codes, and response formatting. It adapts HTTP to the generation service
// and never exposes raw provider errors to clients.
package api
