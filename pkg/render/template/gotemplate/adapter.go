package gotemplate

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	json "github.com/goccy/go-json"

	"github.com/goliatone/go-formbuilder/pkg/render/template"
)

// FilterFunc is a template filter written against plain Go values.
type FilterFunc func(input any, param any) (any, error)

// Option configures an Engine.
type Option func(*Engine)

// WithExtension sets the extension appended to names given without one. The
// default is ".tmpl".
func WithExtension(ext string) Option {
	return func(e *Engine) {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			return
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		e.ext = ext
	}
}

// WithFilter makes fn available as a pongo2 filter. pongo2 keeps filters in a
// process-wide table, so a name that is already taken keeps its first
// definition.
func WithFilter(name string, fn FilterFunc) Option {
	return func(e *Engine) {
		name = strings.TrimSpace(name)
		if name == "" || fn == nil {
			return
		}
		e.filters[name] = fn
	}
}

// WithGlobals exposes values to every template under their keys.
func WithGlobals(values map[string]any) Option {
	return func(e *Engine) {
		for key, value := range values {
			if key = strings.TrimSpace(key); key != "" {
				e.globals[key] = value
			}
		}
	}
}

// Engine renders templates from a file system with pongo2, parsing each file
// once.
type Engine struct {
	set     *pongo2.TemplateSet
	ext     string
	filters map[string]FilterFunc
	globals map[string]any

	mu     sync.Mutex
	parsed map[string]*pongo2.Template
}

var _ template.TemplateRenderer = (*Engine)(nil)

// New builds an engine over files.
func New(files fs.FS, options ...Option) (*Engine, error) {
	if files == nil {
		return nil, errors.New("gotemplate: template files are required")
	}
	e := &Engine{
		ext:     ".tmpl",
		filters: make(map[string]FilterFunc),
		globals: make(map[string]any),
		parsed:  make(map[string]*pongo2.Template),
	}
	for _, opt := range options {
		if opt != nil {
			opt(e)
		}
	}

	e.set = pongo2.NewSet("formbuilder", pongo2.NewFSLoader(files))
	globals, err := toContext(e.globals)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: globals: %w", err)
	}
	e.set.Globals = globals

	for name, fn := range e.filters {
		if pongo2.FilterExists(name) {
			continue
		}
		if err := pongo2.RegisterFilter(name, adaptFilter(name, fn)); err != nil {
			return nil, fmt.Errorf("gotemplate: register filter %q: %w", name, err)
		}
	}
	return e, nil
}

// RenderTemplate renders the template at name, adding the configured
// extension when name has none.
func (e *Engine) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("gotemplate: engine is nil")
	}
	if !strings.HasSuffix(name, e.ext) {
		name += e.ext
	}
	tmpl, err := e.template(name)
	if err != nil {
		return "", err
	}
	ctx, err := toContext(data)
	if err != nil {
		return "", fmt.Errorf("gotemplate: data for %q: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteWriter(ctx, &buf); err != nil {
		return "", fmt.Errorf("gotemplate: execute %q: %w", name, err)
	}
	for _, w := range out {
		if _, err := w.Write(buf.Bytes()); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

func (e *Engine) template(name string) (*pongo2.Template, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if tmpl, ok := e.parsed[name]; ok {
		return tmpl, nil
	}
	tmpl, err := e.set.FromFile(name)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: load %q: %w", name, err)
	}
	e.parsed[name] = tmpl
	return tmpl, nil
}

func adaptFilter(name string, fn FilterFunc) pongo2.FilterFunction {
	return func(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		var arg any
		if param != nil {
			arg = param.Interface()
		}
		result, err := fn(in.Interface(), arg)
		if err != nil {
			return nil, &pongo2.Error{Sender: "filter:" + name, OrigError: err}
		}
		return pongo2.AsValue(result), nil
	}
}

// toContext flattens data into plain maps and slices through JSON, so view
// structs are addressed by their json names inside templates. Numbers stay
// json.Number to print the way they were written.
func toContext(data any) (pongo2.Context, error) {
	if data == nil {
		return pongo2.Context{}, nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	var ctx pongo2.Context
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&ctx); err != nil {
		return nil, fmt.Errorf("data of type %T is not an object", data)
	}
	if ctx == nil {
		ctx = pongo2.Context{}
	}
	return ctx, nil
}
