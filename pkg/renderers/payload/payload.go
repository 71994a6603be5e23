// Package payload renders a form tree as the JSON body the remote endpoint
// receives on save.
package payload

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/wire"
)

// Name identifies the renderer in a render.Registry.
const Name = "wire"

// Option configures the renderer.
type Option func(*Renderer)

// WithIndent sets the indent string. An empty indent renders compact JSON.
func WithIndent(indent string) Option {
	return func(r *Renderer) {
		r.indent = indent
	}
}

// WithWrapKey nests the payload array under key, mirroring remotes that
// serve the wrapped shape.
func WithWrapKey(key string) Option {
	return func(r *Renderer) {
		r.wrapKey = strings.TrimSpace(key)
	}
}

// Renderer emits the transcoded wire payload.
type Renderer struct {
	indent  string
	wrapKey string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the renderer. Output is indented with two spaces unless
// overridden.
func New(options ...Option) *Renderer {
	r := &Renderer{indent: "  "}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "application/json"
}

// Render transcodes groups and encodes them. RenderOptions are ignored.
func (r *Renderer) Render(ctx context.Context, groups []model.Group, _ render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := wire.EncodePayload(wire.ToWire(groups))
	if err != nil {
		return nil, fmt.Errorf("payload renderer: %w", err)
	}
	if r.wrapKey != "" {
		data, err = json.Marshal(map[string]json.RawMessage{r.wrapKey: data})
		if err != nil {
			return nil, fmt.Errorf("payload renderer: wrap under %q: %w", r.wrapKey, err)
		}
	}
	if r.indent == "" {
		return data, nil
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", r.indent); err != nil {
		return nil, fmt.Errorf("payload renderer: indent: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
