package preview

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	theme "github.com/goliatone/go-theme"
)

// DefaultThemeName names the built-in manifest.
const DefaultThemeName = "formbuilder"

// CSSVarPrefix prefixes every custom property derived from theme tokens.
const CSSVarPrefix = "--fb-"

// Theme template keys. A manifest may point any of them at a template path
// to replace the embedded markup.
const (
	PartialForm   = "preview.form"
	partialPrefix = "preview."
)

var (
	// ErrThemeNotFound is returned when a theme name is not registered.
	ErrThemeNotFound = errors.New("preview: theme not found")
	// ErrVariantNotFound is returned when a theme lacks the requested variant.
	ErrVariantNotFound = errors.New("preview: theme variant not found")
)

// Catalog is an in-memory set of theme manifests. The first manifest
// registered is used when no theme is requested.
type Catalog struct {
	mu        sync.RWMutex
	manifests map[string]*theme.Manifest
	fallback  string
}

var _ theme.ThemeSelector = (*Catalog)(nil)

// NewCatalog registers manifests in order.
func NewCatalog(manifests ...*theme.Manifest) (*Catalog, error) {
	catalog := &Catalog{manifests: make(map[string]*theme.Manifest)}
	for _, manifest := range manifests {
		if err := catalog.Register(manifest); err != nil {
			return nil, err
		}
	}
	return catalog, nil
}

// DefaultCatalog returns a catalog holding only DefaultManifest.
func DefaultCatalog() *Catalog {
	catalog, _ := NewCatalog(DefaultManifest())
	return catalog
}

// Register adds or replaces a manifest.
func (c *Catalog) Register(manifest *theme.Manifest) error {
	if manifest == nil {
		return errors.New("preview: theme manifest is nil")
	}
	name := strings.TrimSpace(manifest.Name)
	if name == "" {
		return errors.New("preview: theme manifest name is required")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.manifests == nil {
		c.manifests = make(map[string]*theme.Manifest)
	}
	if c.fallback == "" {
		c.fallback = name
	}
	c.manifests[name] = manifest
	return nil
}

// Names lists registered themes in sorted order.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Sorted(maps.Keys(c.manifests))
}

// Select resolves a theme and variant. A blank name selects the fallback
// theme; a blank variant selects the base tokens.
func (c *Catalog) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	name = strings.TrimSpace(name)
	if name == "" {
		name = c.fallback
	}
	manifest, ok := c.manifests[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrThemeNotFound, name)
	}
	variant = strings.TrimSpace(variant)
	if variant != "" {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("%w: %q has no variant %q", ErrVariantNotFound, name, variant)
		}
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: manifest}, nil
}

// RendererConfig flattens a selection into the values the preview needs:
// variant tokens and templates override the base manifest, and every token
// becomes a CSS custom property.
func RendererConfig(selection *theme.Selection) *theme.RendererConfig {
	if selection == nil || selection.Manifest == nil {
		return nil
	}
	manifest := selection.Manifest

	tokens := maps.Clone(manifest.Tokens)
	partials := maps.Clone(manifest.Templates)
	files := maps.Clone(manifest.Assets.Files)
	prefix := manifest.Assets.Prefix
	if variant, ok := manifest.Variants[selection.Variant]; ok && selection.Variant != "" {
		tokens = mergeStrings(tokens, variant.Tokens)
		partials = mergeStrings(partials, variant.Templates)
		files = mergeStrings(files, variant.Assets.Files)
		if variant.Assets.Prefix != "" {
			prefix = variant.Assets.Prefix
		}
	}

	cssVars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		name := cssVarName(key)
		if name == "" {
			continue
		}
		cssVars[name] = cssValue(value)
	}

	return &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Partials: partials,
		Tokens:   tokens,
		CSSVars:  cssVars,
		AssetURL: func(key string) string {
			file, ok := files[key]
			if !ok || file == "" {
				return ""
			}
			if prefix == "" {
				return file
			}
			return strings.TrimRight(prefix, "/") + "/" + strings.TrimLeft(file, "/")
		},
	}
}

// DefaultManifest is the built-in light theme with a dark variant.
func DefaultManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    DefaultThemeName,
		Version: "1.0.0",
		Tokens: map[string]string{
			"accent":  "#2563eb",
			"surface": "#ffffff",
			"text":    "#111827",
			"muted":   "#6b7280",
			"border":  "#d1d5db",
			"danger":  "#b91c1c",
			"radius":  "6px",
			"font":    "system-ui, sans-serif",
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					"accent":  "#60a5fa",
					"surface": "#111827",
					"text":    "#f9fafb",
					"muted":   "#9ca3af",
					"border":  "#374151",
					"danger":  "#f87171",
				},
			},
		},
	}
}

type cssVar struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func sortedCSSVars(vars map[string]string) []cssVar {
	if len(vars) == 0 {
		return nil
	}
	out := make([]cssVar, 0, len(vars))
	for _, name := range slices.Sorted(maps.Keys(vars)) {
		out = append(out, cssVar{Name: name, Value: vars[name]})
	}
	return out
}

func mergeStrings(base, overlay map[string]string) map[string]string {
	if len(overlay) == 0 {
		return base
	}
	if base == nil {
		base = make(map[string]string, len(overlay))
	}
	maps.Copy(base, overlay)
	return base
}

// cssVarName keeps lowercase letters, digits and hyphens.
func cssVarName(token string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(token)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		case r == '_' || r == '.' || r == ' ':
			b.WriteRune('-')
		}
	}
	if b.Len() == 0 {
		return ""
	}
	return CSSVarPrefix + b.String()
}

// cssValue drops characters that could close the declaration or the style
// element.
func cssValue(value string) string {
	return strings.TrimSpace(strings.Map(func(r rune) rune {
		switch r {
		case ';', '{', '}', '<', '>', '\\':
			return -1
		}
		return r
	}, value))
}
