package render

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/validation"
	"github.com/goliatone/go-formbuilder/pkg/wire"
)

// ErrorMapping splits a feedback payload into field-level, group-level and
// form-level messages. Field and group messages are keyed by id.
type ErrorMapping struct {
	Fields map[string][]string
	Groups map[string][]string
	Form   []string
}

// MergeFormErrors concatenates form-level messages, trimming whitespace and
// removing duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// MapErrorPayload resolves payload keys against groups. A key may be a tree
// path ("fieldsets/1/fields/0", optionally prefixed with "#/" or "/"), an
// item id, the shortened wire id the remote knows items by, or an item name.
// Keys that resolve to nothing are kept as form-level messages so no
// feedback is lost.
func MapErrorPayload(groups []model.Group, payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{
		Fields: make(map[string][]string),
		Groups: make(map[string][]string),
	}
	idx := newItemIndex(groups)

	for key, messages := range payload {
		messages = normalizeMessages(messages)
		if len(messages) == 0 {
			continue
		}
		kind, id := idx.resolve(key)
		switch kind {
		case itemField:
			mapping.Fields[id] = append(mapping.Fields[id], messages...)
		case itemGroup:
			mapping.Groups[id] = append(mapping.Groups[id], messages...)
		default:
			mapping.Form = append(mapping.Form, messages...)
		}
	}

	if len(mapping.Fields) == 0 {
		mapping.Fields = nil
	}
	if len(mapping.Groups) == 0 {
		mapping.Groups = nil
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

// LintPayload turns lint issues into a payload MapErrorPayload understands.
func LintPayload(result validation.SchemaValidationResult) map[string][]string {
	if len(result.Issues) == 0 {
		return nil
	}
	out := make(map[string][]string, len(result.Issues))
	for _, issue := range result.Issues {
		out[issue.Path] = append(out[issue.Path], issue.Message)
	}
	return out
}

type itemKind int

const (
	itemNone itemKind = iota
	itemGroup
	itemField
)

type itemRef struct {
	kind itemKind
	id   string
}

type itemIndex struct {
	groups []model.Group
	keys   map[string]itemRef
}

func newItemIndex(groups []model.Group) itemIndex {
	idx := itemIndex{groups: groups, keys: make(map[string]itemRef)}
	// Names are registered first so ids win when a name happens to equal
	// another item's id.
	for _, group := range groups {
		idx.add(group.Name, itemRef{itemGroup, group.ID})
		for _, field := range group.Fields {
			idx.add(field.Name, itemRef{itemField, field.ID})
		}
	}
	for _, group := range groups {
		idx.add(wire.ShortID(group.ID), itemRef{itemGroup, group.ID})
		idx.add(group.ID, itemRef{itemGroup, group.ID})
		for _, field := range group.Fields {
			idx.add(wire.ShortID(field.ID), itemRef{itemField, field.ID})
			idx.add(field.ID, itemRef{itemField, field.ID})
		}
	}
	return idx
}

func (idx itemIndex) add(key string, ref itemRef) {
	if key = strings.TrimSpace(key); key != "" {
		idx.keys[key] = ref
	}
}

func (idx itemIndex) resolve(raw string) (itemKind, string) {
	key := strings.TrimSpace(raw)
	if isFormLevelKey(key) {
		return itemNone, ""
	}
	if kind, id, ok := idx.resolvePath(key); ok {
		return kind, id
	}
	if ref, ok := idx.keys[key]; ok {
		return ref.kind, ref.id
	}
	return itemNone, ""
}

func (idx itemIndex) resolvePath(key string) (itemKind, string, bool) {
	clean := strings.TrimLeft(strings.TrimPrefix(key, "#"), "/")
	segments := strings.Split(clean, "/")
	if len(segments) < 2 || segments[0] != "fieldsets" {
		return itemNone, "", false
	}
	gi, err := strconv.Atoi(segments[1])
	if err != nil || gi < 0 || gi >= len(idx.groups) {
		return itemNone, "", false
	}
	group := idx.groups[gi]
	if len(segments) < 4 || segments[2] != "fields" {
		return itemGroup, group.ID, true
	}
	fi, err := strconv.Atoi(segments[3])
	if err != nil || fi < 0 || fi >= len(group.Fields) {
		return itemGroup, group.ID, true
	}
	return itemField, group.Fields[fi].ID, true
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

func isFormLevelKey(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", ".", "/", "#", "$", "form", "__all__", "non_field_errors", "non-field-errors":
		return true
	default:
		return false
	}
}
