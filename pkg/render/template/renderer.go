package template

import (
	"io"
)

// TemplateRenderer executes one named template of a document bundle. data is
// addressed by its json field names. The rendered text is returned and also
// written to each writer in out.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
}
