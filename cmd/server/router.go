package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/triquetra-api/internal/api"
	apiMiddleware "github.com/phrazzld/triquetra-api/internal/api/middleware"
)

// setupRouter creates the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.CORS(app.config.Server.AllowedOrigins))

	generateHandler := api.NewGenerateHandler(app.generator)

	r.Route("/api", func(r chi.Router) {
		r.Post("/generate", generateHandler.GenerateOne)
		r.Put("/generate", generateHandler.GenerateAll)
		r.Get("/worlds", generateHandler.ListWorlds)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
