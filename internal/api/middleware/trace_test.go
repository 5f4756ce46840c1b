package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/triquetra-api/internal/api/shared"
	"github.com/phrazzld/triquetra-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceMiddleware(t *testing.T) {
	t.Parallel()

	log, buf := logger.NewTestLogger()

	var seenTraceID string
	handler := TraceMiddleware(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenTraceID = shared.GetTraceID(r.Context())
		logger.FromContext(r.Context()).Info("inside handler")
		w.WriteHeader(http.StatusTeapot)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.NotEmpty(t, seenTraceID)
	_, err := uuid.Parse(seenTraceID)
	assert.NoError(t, err)
	assert.Equal(t, seenTraceID, w.Header().Get(shared.TraceIDHeader))
	assert.Equal(t, http.StatusTeapot, w.Code)

	entries, err := buf.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 3)
	for _, e := range entries {
		assert.Equal(t, seenTraceID, e["trace_id"])
	}
	assert.Equal(t, "inside handler", entries[1]["msg"])
	assert.Equal(t, "request completed", entries[2]["msg"])
	assert.Equal(t, float64(http.StatusTeapot), entries[2]["status"])
}

func TestTraceMiddleware_UniquePerRequest(t *testing.T) {
	t.Parallel()

	log, _ := logger.NewTestLogger()
	handler := TraceMiddleware(log)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	w1 := httptest.NewRecorder()
	handler.ServeHTTP(w1, httptest.NewRequest(http.MethodGet, "/", nil))
	w2 := httptest.NewRecorder()
	handler.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.NotEqual(t, w1.Header().Get(shared.TraceIDHeader), w2.Header().Get(shared.TraceIDHeader))
}
