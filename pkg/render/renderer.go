package render

import (
	"context"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// Renderer converts a builder tree into a byte representation (HTML, wire
// JSON, an OpenAPI document, etc.).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, groups []model.Group, options RenderOptions) ([]byte, error)
}
