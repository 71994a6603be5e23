// Package formbuilder is the entry point for building form schemas: load a
// schema from the remote endpoint into an editing session, change it with
// the builder operations and render or save the result.
package formbuilder

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/goliatone/go-formbuilder/pkg/builder"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/remote"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/renderers/openapi"
	"github.com/goliatone/go-formbuilder/pkg/renderers/payload"
	"github.com/goliatone/go-formbuilder/pkg/renderers/preview"
	"github.com/goliatone/go-formbuilder/pkg/session"
)

// Group aliases model.Group, a fieldset of the form.
type Group = model.Group

// Field aliases model.Field.
type Field = model.Field

// State aliases builder.State, one immutable snapshot of the builder.
type State = builder.State

// RenderOptions describes per-request data handed to renderers.
type RenderOptions = render.RenderOptions

// Names of the built-in renderers.
const (
	RendererPreview = preview.Name
	RendererWire    = payload.Name
	RendererOpenAPI = openapi.Name
)

type config struct {
	remote  []remote.Option
	session []session.Option
	preview []preview.Option
	logger  *slog.Logger
}

// Option configures the helpers in this package.
type Option func(*config)

// WithLogger passes logger to every component created by the helpers.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithRemoteOptions forwards options to the remote client.
func WithRemoteOptions(opts ...remote.Option) Option {
	return func(c *config) {
		c.remote = append(c.remote, opts...)
	}
}

// WithSessionOptions forwards options to the session.
func WithSessionOptions(opts ...session.Option) Option {
	return func(c *config) {
		c.session = append(c.session, opts...)
	}
}

// WithPreviewOptions forwards options to the HTML preview renderer.
func WithPreviewOptions(opts ...preview.Option) Option {
	return func(c *config) {
		c.preview = append(c.preview, opts...)
	}
}

func newConfig(options []Option) config {
	var cfg config
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.logger != nil {
		cfg.remote = append([]remote.Option{remote.WithLogger(cfg.logger)}, cfg.remote...)
		cfg.session = append([]session.Option{session.WithLogger(cfg.logger)}, cfg.session...)
		cfg.preview = append([]preview.Option{preview.WithLogger(cfg.logger)}, cfg.preview...)
	}
	return cfg
}

// NewSession creates a session backed by the remote endpoint. The session
// starts empty; call Load to fetch the schema.
func NewSession(endpoint string, options ...Option) (*session.Session, error) {
	cfg := newConfig(options)
	client, err := remote.New(endpoint, cfg.remote...)
	if err != nil {
		return nil, err
	}
	return session.New(client, cfg.session...), nil
}

// OpenSession is NewSession followed by Load. The session is returned even
// when the load fails so callers can keep editing an empty tree.
func OpenSession(ctx context.Context, endpoint string, options ...Option) (*session.Session, error) {
	sess, err := NewSession(endpoint, options...)
	if err != nil {
		return nil, err
	}
	return sess, sess.Load(ctx)
}

// NewRenderers returns a registry holding the preview, wire and openapi
// renderers.
func NewRenderers(options ...Option) (*render.Registry, error) {
	cfg := newConfig(options)
	previewRenderer, err := preview.New(cfg.preview...)
	if err != nil {
		return nil, fmt.Errorf("formbuilder: preview renderer: %w", err)
	}
	return render.NewRegistry(previewRenderer, payload.New(), openapi.New())
}

// Render renders groups with the named built-in renderer.
func Render(ctx context.Context, groups []Group, rendererName string, opts RenderOptions, options ...Option) ([]byte, error) {
	registry, err := NewRenderers(options...)
	if err != nil {
		return nil, err
	}
	body, _, err := registry.Render(ctx, rendererName, groups, opts)
	return body, err
}
