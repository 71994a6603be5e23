package preview

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
	rendertemplate "github.com/goliatone/go-formbuilder/pkg/render/template"
	gotemplate "github.com/goliatone/go-formbuilder/pkg/render/template/gotemplate"
	"github.com/goliatone/go-formbuilder/pkg/renderers/preview/components"
	"github.com/goliatone/go-formbuilder/pkg/widgets"
	"github.com/goliatone/go-formbuilder/pkg/wire"
)

const (
	// Name identifies the renderer in a render.Registry.
	Name = "preview"

	formTemplate = "templates/form.tmpl"
	defaultTitle = "Form preview"
)

// Option configures the preview renderer.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateDir      string
	templateRenderer rendertemplate.TemplateRenderer
	components       *components.Registry
	widgets          *widgets.Registry
	themes           theme.ThemeSelector
	sanitizer        *Sanitizer
	stylesheetHref   string
	inlineStylesheet bool
	logger           *slog.Logger
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir layers a directory on disk over the template bundle. Files
// found there, such as templates/form.tmpl, replace their bundled
// counterparts; everything else still comes from the bundle.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		cfg.templateDir = strings.TrimSpace(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithComponents replaces the component registry.
func WithComponents(registry *components.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.components = registry
		}
	}
}

// WithWidgets replaces the widget registry used to pick a component per field.
func WithWidgets(registry *widgets.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.widgets = registry
		}
	}
}

// WithThemeSelector resolves RenderOptions.Theme and Variant.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(cfg *config) {
		if selector != nil {
			cfg.themes = selector
		}
	}
}

// WithSanitizer replaces the text sanitiser.
func WithSanitizer(sanitizer *Sanitizer) Option {
	return func(cfg *config) {
		if sanitizer != nil {
			cfg.sanitizer = sanitizer
		}
	}
}

// WithStylesheetHref links an external stylesheet instead of inlining the
// embedded one.
func WithStylesheetHref(href string) Option {
	return func(cfg *config) {
		cfg.stylesheetHref = strings.TrimSpace(href)
		cfg.inlineStylesheet = cfg.stylesheetHref == ""
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// Renderer produces a standalone HTML page showing how a form tree will look
// to the people filling it in.
type Renderer struct {
	templates      rendertemplate.TemplateRenderer
	components     *components.Registry
	widgets        *widgets.Registry
	themes         theme.ThemeSelector
	sanitizer      *Sanitizer
	stylesheet     string
	stylesheetHref string
	logger         *slog.Logger
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the preview renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS:       TemplatesFS(),
		inlineStylesheet: true,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	templates := cfg.templateRenderer
	if templates == nil {
		files := cfg.templateFS
		if cfg.templateDir != "" {
			files = rendertemplate.Overlay(os.DirFS(cfg.templateDir), files)
		}
		engine, err := gotemplate.New(files, gotemplate.WithExtension(".tmpl"))
		if err != nil {
			return nil, fmt.Errorf("preview renderer: configure template renderer: %w", err)
		}
		templates = engine
	}

	r := &Renderer{
		templates:      templates,
		components:     cfg.components,
		widgets:        cfg.widgets,
		themes:         cfg.themes,
		sanitizer:      cfg.sanitizer,
		stylesheetHref: cfg.stylesheetHref,
		logger:         cfg.logger,
	}
	if r.components == nil {
		r.components = components.NewDefaultRegistry()
	}
	if r.widgets == nil {
		r.widgets = widgets.NewRegistry()
	}
	if r.themes == nil {
		r.themes = DefaultCatalog()
	}
	if r.sanitizer == nil {
		r.sanitizer = NewSanitizer()
	}
	if r.logger == nil {
		r.logger = slog.New(slog.DiscardHandler)
	}
	if cfg.inlineStylesheet {
		r.stylesheet = defaultStylesheet()
	}
	return r, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render draws groups as an HTML form. Feedback in options.Errors is placed
// next to the field or fieldset it names.
func (r *Renderer) Render(ctx context.Context, groups []model.Group, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("preview renderer: template renderer is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	selection, err := r.themes.Select(options.Theme, options.Variant)
	if err != nil {
		return nil, fmt.Errorf("preview renderer: select theme: %w", err)
	}
	themeCfg := RendererConfig(selection)

	mapping := render.MapErrorPayload(groups, options.Errors)
	page := pageView{
		Title:          r.sanitizer.Text(options.Title),
		Action:         strings.TrimSpace(options.Action),
		Method:         strings.ToLower(strings.TrimSpace(options.Method)),
		Stylesheet:     r.stylesheet,
		StylesheetHref: r.stylesheetHref,
		FormErrors:     render.MergeFormErrors(mapping.Form, options.FormErrors...),
		HiddenFields:   hiddenViews(render.SortedHiddenFields(options.HiddenFields)),
	}
	if page.Title == "" {
		page.Title = defaultTitle
	}
	if page.Method == "" && page.Action != "" {
		page.Method = "post"
	}
	if themeCfg != nil {
		page.Theme = themeCfg.Theme
		page.Variant = themeCfg.Variant
		page.CSSVars = sortedCSSVars(themeCfg.CSSVars)
		if href := themeCfg.AssetURL("preview.stylesheet"); href != "" {
			page.ThemeStylesheet = href
		}
	}

	for _, group := range groups {
		gv := groupView{
			ID:     group.ID,
			DOMID:  "fb-" + wire.ShortID(group.ID),
			Legend: r.sanitizer.Text(group.Name),
			Errors: mapping.Groups[group.ID],
		}
		for _, field := range group.Fields {
			fv, err := r.renderField(field, mapping.Fields[field.ID], themeCfg)
			if err != nil {
				return nil, err
			}
			gv.Fields = append(gv.Fields, fv)
		}
		page.Groups = append(page.Groups, gv)
	}

	name := formTemplate
	if override := partial(themeCfg, PartialForm); override != "" {
		name = override
	}
	result, err := r.templates.RenderTemplate(name, page)
	if err != nil {
		return nil, fmt.Errorf("preview renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func (r *Renderer) renderField(field model.Field, errs []string, themeCfg *theme.RendererConfig) (fieldView, error) {
	widget, ok := r.widgets.Resolve(field)
	if !ok {
		r.logger.Warn("preview: no widget for field type, rendering as text input",
			slog.String("field", field.ID), slog.String("type", string(field.Type)))
		widget = widgets.WidgetInput
	}

	view := r.componentField(field, widget, errs)

	var buf bytes.Buffer
	if override := partial(themeCfg, partialPrefix+widget); override != "" {
		if _, err := r.templates.RenderTemplate(override, map[string]any{"field": view}, &buf); err != nil {
			return fieldView{}, fmt.Errorf("preview renderer: render %s override for %q: %w", widget, field.ID, err)
		}
	} else {
		descriptor, ok := r.components.Descriptor(widget)
		if !ok {
			return fieldView{}, fmt.Errorf("preview renderer: no component registered for widget %q", widget)
		}
		if err := descriptor.Renderer(&buf, view, components.ComponentData{Template: r.templates}); err != nil {
			return fieldView{}, fmt.Errorf("preview renderer: render %s for %q: %w", widget, field.ID, err)
		}
	}

	return fieldView{
		ID:      field.ID,
		Widget:  widget,
		Control: buf.String(),
		Errors:  errs,
	}, nil
}

func (r *Renderer) componentField(field model.Field, widget string, errs []string) components.Field {
	controlID := "fb-" + wire.ShortID(field.ID)
	view := components.Field{
		ID:          field.ID,
		ControlID:   controlID,
		Name:        r.sanitizer.Text(field.Name),
		Label:       r.sanitizer.Text(field.Label),
		LabelHTML:   r.sanitizer.Inline(field.Label),
		Type:        string(field.Type),
		InputType:   inputType(field.Type),
		Widget:      widget,
		Placeholder: r.sanitizer.Text(field.Placeholder),
		Required:    field.Required,
		Errors:      errs,
		Value:       "on",
	}
	if view.Label == "" {
		view.Label = view.Name
	}
	for i, option := range field.Options {
		view.Options = append(view.Options, components.Option{
			ID:        option.ID,
			ControlID: fmt.Sprintf("%s-%d", controlID, i),
			Value:     r.sanitizer.Text(option.Value),
		})
	}
	if len(view.Options) == 1 && view.Options[0].Value != "" {
		view.Value = view.Options[0].Value
	}
	return view
}

func inputType(ft model.FieldType) string {
	switch ft {
	case model.FieldTypeNumber, model.FieldTypeNumberSelect:
		return "number"
	case model.FieldTypeDate:
		return "date"
	default:
		return "text"
	}
}

func partial(cfg *theme.RendererConfig, key string) string {
	if cfg == nil {
		return ""
	}
	return strings.TrimSpace(cfg.Partials[key])
}

func hiddenViews(fields []render.HiddenField) []hiddenView {
	if len(fields) == 0 {
		return nil
	}
	out := make([]hiddenView, 0, len(fields))
	for _, field := range fields {
		out = append(out, hiddenView{Name: field.Name, Value: field.Value})
	}
	return out
}
