package model

// FieldType identifies the control a field renders as. The values double as
// palette token identifiers.
type FieldType string

const (
	FieldTypeLabel        FieldType = "label"
	FieldTypeText         FieldType = "text"
	FieldTypeNumber       FieldType = "number"
	FieldTypeRadio        FieldType = "radio"
	FieldTypeNumberSelect FieldType = "number-select"
	FieldTypeSelect       FieldType = "select"
	FieldTypeCheckbox     FieldType = "checkbox"
	FieldTypeDate         FieldType = "date"
	FieldTypeTextarea     FieldType = "textarea"
)

// KindFieldset is the naming key used for groups. It is not a FieldType but
// shares the base-name table with them.
const KindFieldset = "fieldset"

// FieldTypes lists every known field type in palette order.
func FieldTypes() []FieldType {
	return []FieldType{
		FieldTypeLabel,
		FieldTypeText,
		FieldTypeNumber,
		FieldTypeRadio,
		FieldTypeNumberSelect,
		FieldTypeSelect,
		FieldTypeCheckbox,
		FieldTypeDate,
		FieldTypeTextarea,
	}
}

// IsChoice reports whether fields of this type carry an options list.
func (t FieldType) IsChoice() bool {
	switch t {
	case FieldTypeSelect, FieldTypeNumberSelect, FieldTypeRadio, FieldTypeCheckbox:
		return true
	default:
		return false
	}
}

// Valid reports whether t is one of the known field types.
func (t FieldType) Valid() bool {
	for _, known := range FieldTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// Option is a single selectable value of a choice field. Order inside the
// owning field is significant.
type Option struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

// Field is one form control definition.
type Field struct {
	ID          string    `json:"id"`
	Type        FieldType `json:"type"`
	Name        string    `json:"name"`
	Label       string    `json:"label"`
	Placeholder string    `json:"placeholder"`
	Required    bool      `json:"required"`
	Options     []Option  `json:"options"`
}

// Group is a named, ordered container of fields (a fieldset).
type Group struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Fields []Field `json:"fields"`
}

// Clone returns a deep copy of the field so callers can mutate the result
// without touching shared option slices.
func (f Field) Clone() Field {
	out := f
	out.Options = CloneOptions(f.Options)
	return out
}

// Clone returns a deep copy of the group.
func (g Group) Clone() Group {
	out := g
	if g.Fields != nil {
		out.Fields = make([]Field, len(g.Fields))
		for i, field := range g.Fields {
			out.Fields[i] = field.Clone()
		}
	}
	return out
}

// CloneOptions copies an option slice, always returning a non-nil slice.
func CloneOptions(options []Option) []Option {
	out := make([]Option, len(options))
	copy(out, options)
	return out
}

// CloneGroups deep-copies a group slice.
func CloneGroups(groups []Group) []Group {
	if groups == nil {
		return nil
	}
	out := make([]Group, len(groups))
	for i, group := range groups {
		out[i] = group.Clone()
	}
	return out
}
