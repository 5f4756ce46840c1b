// Package replicate implements generation.Provider on top of the Replicate
// predictions HTTP API.
//
// A call creates a prediction for the configured model with "Prefer: wait", so
// most fast models (flux-schnell) answer in the same round trip. Predictions
// that are still running when the server returns are polled through their
// "get" URL until they reach a terminal status or the context ends.
package replicate
