package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/poetry-api/internal/api"
	"github.com/phrazzld/poetry-api/internal/config"
	apiMiddleware "github.com/phrazzld/poetry-api/internal/api/middleware"
)

// handlerTimeoutSlack lets the provider timeout fire, and its 503 be written,
// before the router-level timeout does.
const handlerTimeoutSlack = config.HandlerTimeoutSlackSeconds * time.Second

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))
	r.Use(middleware.Timeout(providerTimeout(app.config.LLM) + handlerTimeoutSlack))

	poemHandler := api.NewPoemHandler(app.poetryService, app.logger)

	r.Post("/poems", poemHandler.GeneratePoem)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
