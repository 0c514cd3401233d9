package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/swiftdocs/swiftdocs/pkg/buildinfo"
)

// NewRouter creates a chi router with all API routes mounted.
func NewRouter(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger(h.logger))
	r.Use(middleware.Recoverer)

	// Health check (unauthenticated, unversioned).
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Version: buildinfo.Version})
	})

	r.Route("/api/v1", func(r chi.Router) {
		// Index lookups.
		r.Get("/search", h.Search)

		// Batch resolution for a local project.
		r.Get("/dependencies", h.Dependencies)

		// Per-package resolution.
		r.Route("/packages/{name}", func(r chi.Router) {
			r.Get("/", h.Package)
			r.Get("/documentation", h.Documentation)
			r.Get("/examples", h.Examples)
		})
	})

	return r
}
