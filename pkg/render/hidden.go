package render

import (
	"fmt"
	"sort"
	"strings"
)

// HiddenField is a hidden input emitted alongside the visible form.
type HiddenField struct {
	Name  string
	Value string
}

// Hidden returns a HiddenField with a trimmed name and the value formatted
// with fmt.Sprint.
func Hidden(name string, value any) HiddenField {
	return HiddenField{Name: strings.TrimSpace(name), Value: fmt.Sprint(value)}
}

// CSRFToken is shorthand for a hidden field carrying a CSRF token under name.
func CSRFToken(name, token string) HiddenField {
	return Hidden(name, token)
}

// VersionField is shorthand for a hidden field carrying a schema version,
// useful when submissions must say which revision of a form they answer.
func VersionField(name string, version any) HiddenField {
	return Hidden(name, version)
}

// MergeHiddenFields copies base and applies fields on top. Blank names are
// dropped and later fields win.
func MergeHiddenFields(base map[string]string, fields ...HiddenField) map[string]string {
	out := make(map[string]string, len(base)+len(fields))
	for name, value := range base {
		if name = strings.TrimSpace(name); name != "" {
			out[name] = value
		}
	}
	for _, field := range fields {
		if name := strings.TrimSpace(field.Name); name != "" {
			out[name] = field.Value
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// SortedHiddenFields returns fields ordered by name so output is stable.
func SortedHiddenFields(fields map[string]string) []HiddenField {
	if len(fields) == 0 {
		return nil
	}
	out := make([]HiddenField, 0, len(fields))
	for name, value := range fields {
		out = append(out, HiddenField{Name: name, Value: value})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
