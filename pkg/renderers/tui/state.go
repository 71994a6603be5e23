package tui

import (
	"fmt"
	"maps"
	"net/url"
	"slices"
	"strings"
)

// Answers collects fill-in values keyed by fieldset, then by field.
type Answers struct {
	values map[string]map[string]any
}

// NewAnswers returns an empty answer set.
func NewAnswers() *Answers {
	return &Answers{values: make(map[string]map[string]any)}
}

// Set records value for field inside group.
func (a *Answers) Set(group, field string, value any) {
	if a.values == nil {
		a.values = make(map[string]map[string]any)
	}
	inner, ok := a.values[group]
	if !ok {
		inner = make(map[string]any)
		a.values[group] = inner
	}
	inner[field] = value
}

// Get returns the recorded value for field inside group.
func (a *Answers) Get(group, field string) (any, bool) {
	inner, ok := a.values[group]
	if !ok {
		return nil, false
	}
	value, ok := inner[field]
	return value, ok
}

// Values returns a copy of the answers as nested maps.
func (a *Answers) Values() map[string]any {
	out := make(map[string]any, len(a.values))
	for group, inner := range a.values {
		out[group] = maps.Clone(inner)
	}
	return out
}

// flattenForm encodes values as group[field] pairs; list answers repeat the
// key with a [] suffix.
func flattenForm(values map[string]any) string {
	form := url.Values{}
	for group, raw := range values {
		inner, ok := raw.(map[string]any)
		if !ok {
			form.Set(group, fmt.Sprint(raw))
			continue
		}
		for field, value := range inner {
			key := group + "[" + field + "]"
			if list, ok := value.([]string); ok {
				for _, item := range list {
					form.Add(key+"[]", item)
				}
				continue
			}
			form.Set(key, fmt.Sprint(value))
		}
	}
	return form.Encode()
}

// prettyPrint renders one "group.field=value" line per answer in sorted
// order.
func prettyPrint(values map[string]any) string {
	var b strings.Builder
	for _, group := range slices.Sorted(maps.Keys(values)) {
		inner, ok := values[group].(map[string]any)
		if !ok {
			fmt.Fprintf(&b, "%s=%v\n", group, values[group])
			continue
		}
		for _, field := range slices.Sorted(maps.Keys(inner)) {
			value := inner[field]
			if list, ok := value.([]string); ok {
				value = strings.Join(list, ", ")
			}
			fmt.Fprintf(&b, "%s.%s=%v\n", group, field, value)
		}
	}
	return b.String()
}
