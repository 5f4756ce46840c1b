// Package gemini provides an implementation of the generation.Provider
// interface that uses Google's Imagen models through the Gemini API.
//
// This package is an infrastructure adapter: it translates an
// generation.ImageRequest into a genai GenerateImages call and the response
// back into inline image bytes, without exposing genai types to the service.
//
// Key components:
//
// 1. Provider:
//   - Implements the generation.Provider interface
//   - Maps output format and quality onto the Imagen request config
//
// 2. Error Handling:
//   - Maps genai API errors onto the provider error taxonomy by status code
//   - Treats safety-filtered or empty responses as "no image"
package gemini
