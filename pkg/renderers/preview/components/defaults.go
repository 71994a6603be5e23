package components

import (
	"bytes"
	"fmt"

	"github.com/goliatone/go-formbuilder/pkg/widgets"
)

const templatePrefix = "templates/components/"

// NewDefaultRegistry returns a registry with a template-backed component for
// every built-in widget.
func NewDefaultRegistry() *Registry {
	registry := New()
	for _, name := range []string{
		widgets.WidgetLabel,
		widgets.WidgetInput,
		widgets.WidgetTextarea,
		widgets.WidgetSelect,
		widgets.WidgetRadio,
		widgets.WidgetCheckbox,
		widgets.WidgetCheckboxGroup,
	} {
		registry.MustRegister(name, Descriptor{
			Renderer: TemplateRenderer(templatePrefix + name + ".tmpl"),
		})
	}
	return registry
}

// TemplateRenderer renders templateName with the field bound to "field".
func TemplateRenderer(templateName string) Renderer {
	return func(buf *bytes.Buffer, field Field, data ComponentData) error {
		if data.Template == nil {
			return fmt.Errorf("components: template renderer not configured for %q", templateName)
		}
		_, err := data.Template.RenderTemplate(templateName, map[string]any{"field": field}, buf)
		return err
	}
}
