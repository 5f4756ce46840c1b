// Package mocks provides centralized mock implementations for testing.
//
// Mocks here record every call (safely across goroutines) so tests can
// assert how many provider calls an operation made, with which prompts, and
// whether any of them overlapped.
//
// Usage:
//
//	import "github.com/phrazzld/triquetra-api/internal/mocks"
//
//	func TestSomething(t *testing.T) {
//	    provider := mocks.NewMockProviderWithURL("https://img.example/1.webp")
//	    svc, _ := generation.NewService(provider, generation.ServiceConfig{}, nil)
//
//	    // ... exercise svc, then:
//	    assert.Equal(t, 1, provider.CallCount())
//	}
package mocks
