package main

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/phrazzld/triquetra-api/internal/api/shared"
	"github.com/phrazzld/triquetra-api/internal/config"
	"github.com/phrazzld/triquetra-api/internal/generation"
	"github.com/phrazzld/triquetra-api/internal/mocks"
	"github.com/phrazzld/triquetra-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestApp builds an application around provider. A nil provider gives a
// demo-mode application.
func newTestApp(t *testing.T, provider generation.Provider) *application {
	t.Helper()
	log, _ := logger.NewTestLogger()
	svc, err := generation.NewService(provider, generation.ServiceConfig{
		Strategy:    generation.StrategyParallel,
		CallTimeout: time.Second,
	}, log)
	require.NoError(t, err)

	return &application{
		config: &config.Config{
			Server: config.ServerConfig{
				Port:              0,
				LogLevel:          "debug",
				ReadHeaderTimeout: time.Second,
				WriteTimeout:      5 * time.Second,
				ShutdownTimeout:   time.Second,
				AllowedOrigins:    []string{"https://app.example.com"},
			},
		},
		logger:    log,
		generator: svc,
	}
}

func TestRouter_Routes(t *testing.T) {
	t.Parallel()

	router := newTestApp(t, nil).setupRouter()

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{name: "health", method: http.MethodGet, path: "/health", wantStatus: http.StatusOK},
		{name: "worlds", method: http.MethodGet, path: "/api/worlds", wantStatus: http.StatusOK},
		{name: "generate one", method: http.MethodPost, path: "/api/generate", body: `{"prompt":"a lighthouse"}`, wantStatus: http.StatusOK},
		{name: "generate all", method: http.MethodPut, path: "/api/generate", body: `{"prompt":"a lighthouse"}`, wantStatus: http.StatusOK},
		{name: "generate wrong method", method: http.MethodDelete, path: "/api/generate", wantStatus: http.StatusMethodNotAllowed},
		{name: "unknown path", method: http.MethodGet, path: "/api/nothing", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code, "body: %s", w.Body.String())
			assert.NotEmpty(t, w.Header().Get(shared.TraceIDHeader))
		})
	}
}

func TestRouter_HealthBody(t *testing.T) {
	t.Parallel()

	router := newTestApp(t, nil).setupRouter()
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, "OK", w.Body.String())
}

func TestRouter_CORSPreflight(t *testing.T) {
	t.Parallel()

	router := newTestApp(t, nil).setupRouter()

	req := httptest.NewRequest(http.MethodOptions, "/api/generate", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodPut)
}

func TestRouter_GenerateWithProvider(t *testing.T) {
	t.Parallel()

	provider := mocks.NewMockProviderWithURL("https://cdn.example.com/img.webp")
	router := newTestApp(t, provider).setupRouter()

	req := httptest.NewRequest(http.MethodPut, "/api/generate", strings.NewReader(`{"prompt":"a bridge"}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())

	var resp struct {
		Success bool `json:"success"`
		Results []struct {
			World string `json:"world"`
			Image string `json:"image"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.Len(t, resp.Results, 3)
	for _, r := range resp.Results {
		assert.Equal(t, "https://cdn.example.com/img.webp", r.Image)
	}
	assert.Equal(t, 3, provider.CallCount())
}

func TestServe_GracefulShutdown(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, nil)
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- app.serve(ctx, listener, app.setupRouter())
	}()

	url := "http://" + listener.Addr().String() + "/health"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url) //nolint:noctx
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not shut down")
	}
}
