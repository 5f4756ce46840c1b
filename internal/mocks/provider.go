package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/phrazzld/triquetra-api/internal/generation"
)

// ProviderCall records one GenerateImage invocation.
type ProviderCall struct {
	Request generation.ImageRequest
	Started time.Time
	Ended   time.Time
}

// MockProvider implements generation.Provider for testing.
type MockProvider struct {
	// GenerateImageFn allows test cases to mock the GenerateImage behavior
	GenerateImageFn func(ctx context.Context, req generation.ImageRequest) (*generation.ImageOutput, error)

	// Default response values
	Output *generation.ImageOutput
	Err    error

	// Delay is slept before answering, honouring ctx cancellation.
	Delay time.Duration

	// mu protects the call tracking state for concurrent test cases
	mu       sync.Mutex
	calls    []ProviderCall
	inFlight int
	maxInFl  int
}

// GenerateImage implements the generation.Provider interface
func (m *MockProvider) GenerateImage(
	ctx context.Context,
	req generation.ImageRequest,
) (*generation.ImageOutput, error) {
	m.mu.Lock()
	idx := len(m.calls)
	m.calls = append(m.calls, ProviderCall{Request: req, Started: time.Now()})
	m.inFlight++
	if m.inFlight > m.maxInFl {
		m.maxInFl = m.inFlight
	}
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.inFlight--
		m.calls[idx].Ended = time.Now()
		m.mu.Unlock()
	}()

	if m.Delay > 0 {
		select {
		case <-time.After(m.Delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if m.GenerateImageFn != nil {
		return m.GenerateImageFn(ctx, req)
	}

	return m.Output, m.Err
}

// CallCount returns how many times GenerateImage was called.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// Calls returns a copy of the recorded calls in start order.
func (m *MockProvider) Calls() []ProviderCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ProviderCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// Prompts returns the prompts of all recorded calls in start order.
func (m *MockProvider) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	prompts := make([]string, len(m.calls))
	for i, c := range m.calls {
		prompts[i] = c.Request.Prompt
	}
	return prompts
}

// MaxConcurrent returns the highest number of calls that were in flight at once.
func (m *MockProvider) MaxConcurrent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.maxInFl
}

// Reset clears the call tracking state
func (m *MockProvider) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
	m.inFlight = 0
	m.maxInFl = 0
}

// NewMockProviderWithURL creates a MockProvider that returns a single image URL
func NewMockProviderWithURL(url string) *MockProvider {
	return &MockProvider{
		Output: &generation.ImageOutput{URLs: []string{url}},
	}
}

// NewMockProviderWithError creates a MockProvider that returns the specified error
func NewMockProviderWithError(err error) *MockProvider {
	return &MockProvider{Err: err}
}

// MockProviderThatFails creates a MockProvider that simulates a generation failure
func MockProviderThatFails() *MockProvider {
	return NewMockProviderWithError(generation.ErrGenerationFailed)
}

// MockProviderRateLimited creates a MockProvider that simulates provider throttling
func MockProviderRateLimited() *MockProvider {
	return NewMockProviderWithError(generation.ErrRateLimited)
}
