package builder

import "github.com/goliatone/go-formbuilder/pkg/model"

// FieldPatch is a partial field update. Nil members are left untouched, which
// gives shallow-merge semantics. It decodes directly from JSON request
// bodies.
type FieldPatch struct {
	Type        *model.FieldType `json:"type,omitempty"`
	Name        *string          `json:"name,omitempty"`
	Label       *string          `json:"label,omitempty"`
	Placeholder *string          `json:"placeholder,omitempty"`
	Required    *bool            `json:"required,omitempty"`
	Options     *[]model.Option  `json:"options,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p FieldPatch) Empty() bool {
	return p.Type == nil && p.Name == nil && p.Label == nil &&
		p.Placeholder == nil && p.Required == nil && p.Options == nil
}

// Apply returns field with the patch merged in.
func (p FieldPatch) Apply(field model.Field) model.Field {
	out := field.Clone()
	if p.Type != nil {
		out.Type = *p.Type
	}
	if p.Name != nil {
		out.Name = *p.Name
	}
	if p.Label != nil {
		out.Label = *p.Label
	}
	if p.Placeholder != nil {
		out.Placeholder = *p.Placeholder
	}
	if p.Required != nil {
		out.Required = *p.Required
	}
	if p.Options != nil {
		out.Options = model.CloneOptions(*p.Options)
	}
	return out
}

// GroupPatch is a partial group update.
type GroupPatch struct {
	Name *string `json:"name,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p GroupPatch) Empty() bool {
	return p.Name == nil
}

// Apply returns group with the patch merged in. Fields are shared with the
// input.
func (p GroupPatch) Apply(group model.Group) model.Group {
	out := group
	if p.Name != nil {
		out.Name = *p.Name
	}
	return out
}

// String returns a pointer to v, for building patches inline.
func String(v string) *string { return &v }

// Bool returns a pointer to v, for building patches inline.
func Bool(v bool) *bool { return &v }
