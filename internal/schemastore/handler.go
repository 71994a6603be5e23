package schemastore

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	json "github.com/goccy/go-json"
)

const maxPayloadBytes = 4 << 20

// HandlerOptions configures the HTTP surface of a Store.
type HandlerOptions struct {
	// Route is where the schema is served. Defaults to "/schema".
	Route string
	// WrapKey, when set, wraps GET responses as {"<key>": [...]} so clients
	// can exercise the wrapped payload shape.
	WrapKey string
	Logger  *slog.Logger
}

// NewHandler serves the store as a remote form endpoint:
//
//	GET  <route>              latest schema (bare or wrapped)
//	POST <route>              store a new revision
//	GET  <route>/revisions    revision history
//	GET  <route>/revisions/N  one revision's schema
func NewHandler(store *Store, opts HandlerOptions) http.Handler {
	route := strings.TrimSpace(opts.Route)
	if route == "" {
		route = "/schema"
	}
	if !strings.HasPrefix(route, "/") {
		route = "/" + route
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	h := &handler{store: store, wrapKey: strings.TrimSpace(opts.WrapKey), logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Route(route, func(r chi.Router) {
		r.Get("/", h.latest)
		r.Post("/", h.put)
		r.Get("/revisions", h.history)
		r.Get("/revisions/{id}", h.revision)
	})
	return r
}

type handler struct {
	store   *Store
	wrapKey string
	logger  *slog.Logger
}

func (h *handler) latest(w http.ResponseWriter, r *http.Request) {
	rev, ok, err := h.store.Latest(r.Context())
	if err != nil {
		h.internal(w, err)
		return
	}
	payload := []byte("[]")
	if ok {
		payload = rev.Payload
	}
	h.writeSchema(w, payload)
}

func (h *handler) revision(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "revision id must be a number")
		return
	}
	rev, ok, err := h.store.Revision(r.Context(), id)
	if err != nil {
		h.internal(w, err)
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "no such revision")
		return
	}
	h.writeSchema(w, rev.Payload)
}

func (h *handler) put(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	body, err := io.ReadAll(io.LimitReader(r.Body, maxPayloadBytes+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}
	if len(body) > maxPayloadBytes {
		writeError(w, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", "schema payload is too large")
		return
	}
	rev, err := h.store.Put(r.Context(), body)
	if err != nil {
		h.logger.Warn("rejected schema", "error", err)
		writeError(w, http.StatusBadRequest, "INVALID_SCHEMA", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, rev)
}

func (h *handler) history(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "INVALID_LIMIT", "limit must be a non-negative number")
			return
		}
		limit = n
	}
	revisions, err := h.store.History(r.Context(), limit)
	if err != nil {
		h.internal(w, err)
		return
	}
	if revisions == nil {
		revisions = []Revision{}
	}
	writeJSON(w, http.StatusOK, revisions)
}

func (h *handler) writeSchema(w http.ResponseWriter, payload []byte) {
	if h.wrapKey != "" {
		envelope := map[string]json.RawMessage{h.wrapKey: payload}
		writeJSON(w, http.StatusOK, envelope)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}

func (h *handler) internal(w http.ResponseWriter, err error) {
	h.logger.Error("schema store failure", "error", err)
	writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{
		"error": message,
		"code":  code,
	})
}
