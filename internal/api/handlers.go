package api

import (
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/swiftdocs/swiftdocs/pkg/docs"
	apperrors "github.com/swiftdocs/swiftdocs/pkg/errors"
	"github.com/swiftdocs/swiftdocs/pkg/summarize"
)

// Handler holds API route handlers.
type Handler struct {
	resolver *docs.Resolver
	logger   *log.Logger
}

// NewHandler creates a new Handler.
func NewHandler(resolver *docs.Resolver, logger *log.Logger) *Handler {
	return &Handler{resolver: resolver, logger: logger}
}

// Search handles GET /api/v1/search.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'q' is required", apperrors.ErrCodeInvalidInput))
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	results, err := h.resolver.Search(r.Context(), q, limit)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, searchResponse{Query: q, Results: results})
}

// Package handles GET /api/v1/packages/{name}.
func (h *Handler) Package(w http.ResponseWriter, r *http.Request) {
	meta, err := h.resolver.ResolvePackage(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, meta)
}

// Documentation handles GET /api/v1/packages/{name}/documentation.
func (h *Handler) Documentation(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := docs.ResolutionRequest{
		Name:        chi.URLParam(r, "name"),
		URL:         q.Get("url"),
		Version:     q.Get("version"),
		ProjectPath: q.Get("project"),
	}

	artifact, err := h.resolver.FetchDocumentation(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, documentationResponse{
		Documentation: artifact,
		Summary:       summarize.Summarize(artifact),
	})
}

// Examples handles GET /api/v1/packages/{name}/examples.
func (h *Handler) Examples(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	req := docs.ResolutionRequest{
		Name: chi.URLParam(r, "name"),
		URL:  q.Get("url"),
	}

	examples, err := h.resolver.FindExamples(r.Context(), req, q.Get("filter"), limit)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, examplesResponse{
		Examples: examples,
		Patterns: summarize.ExtractPatterns(examples),
	})
}

// Dependencies handles GET /api/v1/dependencies.
func (h *Handler) Dependencies(w http.ResponseWriter, r *http.Request) {
	project := r.URL.Query().Get("project")
	if project == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'project' is required", apperrors.ErrCodeInvalidInput))
		return
	}

	manifest, packages, issues, err := h.resolver.ListDependencies(r.Context(), project)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dependenciesResponse{
		Manifest: manifest,
		Packages: packages,
		Issues:   issues,
	})
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := apperrors.GetCode(err)
	status := statusFor(code)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"err", err,
			"request_id", GetRequestID(r.Context()))
	}
	writeJSON(w, status, errorBody(apperrors.UserMessage(err), code))
}
