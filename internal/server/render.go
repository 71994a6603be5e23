package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/validation"
)

// render serves GET /render/{name}. The query parameters title, theme and
// variant override the server defaults; lint=1 overlays lint issues as field
// feedback.
func (s *Server) render(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	groups := s.session.Snapshot().Groups()
	opts := s.renderDefaults
	query := r.URL.Query()
	if v := strings.TrimSpace(query.Get("title")); v != "" {
		opts.Title = v
	}
	if v := strings.TrimSpace(query.Get("theme")); v != "" {
		opts.Theme = v
	}
	if v := strings.TrimSpace(query.Get("variant")); v != "" {
		opts.Variant = v
	}
	if query.Get("lint") == "1" {
		opts.Errors = render.LintPayload(validation.Lint(groups))
	}

	body, contentType, err := s.renderers.Render(r.Context(), name, groups, opts)
	switch {
	case errors.Is(err, render.ErrRendererNotFound):
		writeError(w, http.StatusNotFound, CodeUnknownRenderer, err.Error())
		return
	case err != nil:
		s.logger.Warn("render failed", "renderer", name, "error", err)
		writeError(w, http.StatusUnprocessableEntity, CodeRenderFailed, err.Error())
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// listRenderers serves GET /api/renderers.
func (s *Server) listRenderers(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.renderers.Describe())
}
