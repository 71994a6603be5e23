// Package openapi exports a form tree as an OpenAPI 3.0 document describing
// the submission the form produces.
package openapi

import (
	"bytes"
	"context"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
	json "github.com/goccy/go-json"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
)

// Name identifies the renderer in a render.Registry.
const Name = "openapi"

// Renderer serialises Build output as indented JSON after validating it.
type Renderer struct{}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the renderer.
func New() *Renderer {
	return &Renderer{}
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "application/json"
}

func (r *Renderer) Render(ctx context.Context, groups []model.Group, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc := Build(groups, options)
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("openapi renderer: validate document: %w", err)
	}
	raw, err := doc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("openapi renderer: encode document: %w", err)
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return nil, fmt.Errorf("openapi renderer: indent document: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// Load parses and validates an exported document.
func Load(ctx context.Context, data []byte) (*openapi3.T, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("openapi: document payload is empty")
	}
	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("openapi: validate document: %w", err)
	}
	return doc, nil
}
