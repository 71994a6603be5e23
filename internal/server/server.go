// Package server exposes a builder session over HTTP: a JSON editing API,
// rendered views of the tree and a websocket feed of session events.
package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/goliatone/go-formbuilder/pkg/dnd"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/session"
)

const shutdownTimeout = 5 * time.Second

// Option customises a Server.
type Option func(*Server)

// WithLogger attaches a logger used for request and websocket logs.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRenderers sets the registry behind GET /render/{name}.
func WithRenderers(registry *render.Registry) Option {
	return func(s *Server) {
		if registry != nil {
			s.renderers = registry
		}
	}
}

// WithRenderDefaults sets the options used for rendered views. Query
// parameters override Title, Theme and Variant per request.
func WithRenderDefaults(opts render.RenderOptions) Option {
	return func(s *Server) {
		s.renderDefaults = opts
	}
}

// WithAssets serves files under /assets/.
func WithAssets(files fs.FS) Option {
	return func(s *Server) {
		s.assets = files
	}
}

// WithOriginPatterns allows extra hosts to open the websocket feed. Same
// origin requests are always accepted.
func WithOriginPatterns(patterns ...string) Option {
	return func(s *Server) {
		s.originPatterns = append(s.originPatterns, patterns...)
	}
}

// Server routes HTTP requests to a session.
type Server struct {
	session        *session.Session
	surface        *dnd.Surface
	renderers      *render.Registry
	renderDefaults render.RenderOptions
	assets         fs.FS
	originPatterns []string
	logger         *slog.Logger
	router         chi.Router
}

// New builds a server around sess.
func New(sess *session.Session, opts ...Option) (*Server, error) {
	if sess == nil {
		return nil, errors.New("server: session is required")
	}
	s := &Server{
		session:   sess,
		renderers: &render.Registry{},
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	s.surface = dnd.NewSurface(dnd.WithLogger(s.logger))
	s.router = s.routes()
	return s, nil
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	return Serve(ctx, addr, s.router, s.logger)
}

// Serve runs handler on addr until ctx is cancelled, then shuts down
// gracefully.
func Serve(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: listen: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server: shutdown: %w", err)
		}
		return nil
	}
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/palette", s.palette)
		r.Get("/state", s.state)
		r.Get("/lint", s.lint)
		r.Get("/renderers", s.listRenderers)
		r.Post("/drop", s.drop)

		r.Route("/fieldsets/{groupID}", func(r chi.Router) {
			r.Patch("/", s.patchGroup)
			r.Route("/fields/{fieldID}", func(r chi.Router) {
				r.Patch("/", s.patchField)
				r.Delete("/", s.deleteField)
				r.Post("/duplicate", s.duplicateField)
				r.Post("/options", s.addOption)
				r.Patch("/options/{optionID}", s.updateOption)
				r.Delete("/options/{optionID}", s.deleteOption)
			})
		})

		r.Post("/moves/field", s.moveField)
		r.Post("/moves/fieldset", s.moveFieldset)

		r.Post("/selection", s.selectItem)
		r.Delete("/selection", s.clearSelection)
		r.Post("/properties", s.commitProperties)

		r.Post("/save", s.save)
		r.Post("/reload", s.reload)
	})

	r.Get("/render/{name}", s.render)
	r.Get("/ws", s.feed)

	if s.assets != nil {
		r.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServerFS(s.assets)))
	}
	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		started := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(started),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
