package replicate

import (
	"encoding/json"
	"fmt"

	"github.com/phrazzld/triquetra-api/internal/generation"
)

// Prediction statuses reported by the API.
const (
	statusStarting   = "starting"
	statusProcessing = "processing"
	statusSucceeded  = "succeeded"
	statusFailed     = "failed"
	statusCanceled   = "canceled"
)

type predictionRequest struct {
	Input predictionInput `json:"input"`
}

type predictionInput struct {
	Prompt        string `json:"prompt"`
	NumOutputs    int    `json:"num_outputs,omitempty"`
	AspectRatio   string `json:"aspect_ratio,omitempty"`
	OutputFormat  string `json:"output_format,omitempty"`
	OutputQuality int    `json:"output_quality,omitempty"`
}

type prediction struct {
	ID     string          `json:"id"`
	Status string          `json:"status"`
	Output json.RawMessage `json:"output"`
	Error  string          `json:"error"`
	URLs   predictionURLs  `json:"urls"`
}

type predictionURLs struct {
	Get    string `json:"get"`
	Cancel string `json:"cancel"`
}

type apiError struct {
	Detail string `json:"detail"`
	Title  string `json:"title"`
}

func (p *prediction) terminal() bool {
	switch p.Status {
	case statusSucceeded, statusFailed, statusCanceled:
		return true
	default:
		return false
	}
}

// outputURLs decodes the output field, which is a single URL for some models
// and an array of URLs for others.
func (p *prediction) outputURLs() ([]string, error) {
	if len(p.Output) == 0 || string(p.Output) == "null" {
		return nil, generation.ErrNoImage
	}

	var single string
	if err := json.Unmarshal(p.Output, &single); err == nil {
		return []string{single}, nil
	}

	var many []string
	if err := json.Unmarshal(p.Output, &many); err == nil {
		return many, nil
	}

	return nil, fmt.Errorf("%w: unexpected prediction output %s", generation.ErrNoImage, truncate(string(p.Output), 200))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
