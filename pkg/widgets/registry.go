package widgets

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// Built-in widget identifiers. Renderers map each one to a control template.
const (
	WidgetLabel         = "label"
	WidgetInput         = "input"
	WidgetTextarea      = "textarea"
	WidgetSelect        = "select"
	WidgetRadio         = "radio"
	WidgetCheckbox      = "checkbox"
	WidgetCheckboxGroup = "checkbox-group"
)

// Matcher decides whether a widget should render the supplied field.
type Matcher func(field model.Field) bool

type rule struct {
	name     string
	priority int
	match    Matcher
	order    int
}

// Registry selects widgets for fields using registered matchers. Higher
// priority wins; ties fall back to registration order. An empty registry
// never resolves a widget.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry constructs a registry with the built-in matchers registered.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// Register adds a widget matcher. Callers override a built-in by registering
// a matcher with a higher priority.
func (r *Registry) Register(name string, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the widget name for a field.
func (r *Registry) Resolve(field model.Field) (string, bool) {
	if r == nil {
		return "", false
	}
	r.mu.RLock()
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()
	if len(rules) == 0 {
		return "", false
	}

	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(field) {
			return entry.name, true
		}
	}
	return "", false
}

// ResolveAll resolves every field of groups, keyed by field id. Fields no
// matcher accepts are left out.
func (r *Registry) ResolveAll(groups []model.Group) map[string]string {
	out := make(map[string]string)
	for _, group := range groups {
		for _, field := range group.Fields {
			if widget, ok := r.Resolve(field); ok {
				out[field.ID] = widget
			}
		}
	}
	return out
}

func ofType(types ...model.FieldType) Matcher {
	return func(field model.Field) bool {
		for _, t := range types {
			if field.Type == t {
				return true
			}
		}
		return false
	}
}

func (r *Registry) registerBuiltins() {
	r.Register(WidgetLabel, 90, ofType(model.FieldTypeLabel))
	r.Register(WidgetTextarea, 80, ofType(model.FieldTypeTextarea))
	r.Register(WidgetSelect, 70, ofType(model.FieldTypeSelect, model.FieldTypeNumberSelect))
	r.Register(WidgetRadio, 70, ofType(model.FieldTypeRadio))

	// A checkbox with a single option reads as a yes/no toggle.
	r.Register(WidgetCheckbox, 65, func(field model.Field) bool {
		return field.Type == model.FieldTypeCheckbox && len(field.Options) <= 1
	})
	r.Register(WidgetCheckboxGroup, 60, ofType(model.FieldTypeCheckbox))

	r.Register(WidgetInput, 10, ofType(model.FieldTypeText, model.FieldTypeNumber, model.FieldTypeDate))
}
