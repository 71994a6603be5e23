package properties

import (
	"github.com/goliatone/go-formbuilder/pkg/builder"
	"github.com/goliatone/go-formbuilder/pkg/model"
)

// Editor buffers edits against one selection. Nothing reaches the builder
// state until Apply. Option additions, option deletions and field deletion
// are immediate.
type Editor struct {
	selection   *model.Selection
	name        *string
	label       *string
	placeholder *string
	required    *bool
	options     map[string]string
}

// New returns an editor for sel. A nil selection yields an editor whose
// actions are no-ops.
func New(sel *model.Selection) *Editor {
	return &Editor{selection: sel.Clone()}
}

// Selection returns the item being edited.
func (e *Editor) Selection() *model.Selection {
	return e.selection.Clone()
}

// Properties lists the attributes editable for the current selection.
func (e *Editor) Properties() []Property {
	return SelectionProperties(e.selection)
}

// Name returns the buffered name, or the selection's.
func (e *Editor) Name() string {
	if e.name != nil {
		return *e.name
	}
	switch {
	case e.selection == nil:
		return ""
	case e.selection.Field != nil:
		return e.selection.Field.Name
	case e.selection.Group != nil:
		return e.selection.Group.Name
	}
	return ""
}

// Label returns the buffered label, or the selected field's.
func (e *Editor) Label() string {
	if e.label != nil {
		return *e.label
	}
	if field := e.field(); field != nil {
		return field.Label
	}
	return ""
}

// Placeholder returns the buffered placeholder, or the selected field's.
func (e *Editor) Placeholder() string {
	if e.placeholder != nil {
		return *e.placeholder
	}
	if field := e.field(); field != nil {
		return field.Placeholder
	}
	return ""
}

// Required returns the buffered flag, or the selected field's.
func (e *Editor) Required() bool {
	if e.required != nil {
		return *e.required
	}
	if field := e.field(); field != nil {
		return field.Required
	}
	return false
}

// Options returns the selected field's options with buffered values applied.
func (e *Editor) Options() []model.Option {
	field := e.field()
	if field == nil {
		return nil
	}
	return e.mergeOptions(field.Options)
}

// SetName buffers a new name.
func (e *Editor) SetName(v string) { e.name = &v }

// SetLabel buffers a new label.
func (e *Editor) SetLabel(v string) { e.label = &v }

// SetPlaceholder buffers a new placeholder.
func (e *Editor) SetPlaceholder(v string) { e.placeholder = &v }

// SetRequired buffers the required flag.
func (e *Editor) SetRequired(v bool) { e.required = &v }

// SetOption buffers a new value for optionID.
func (e *Editor) SetOption(optionID, value string) {
	if e.options == nil {
		e.options = make(map[string]string)
	}
	e.options[optionID] = value
}

// SetChanges buffers every member of c that is set.
func (e *Editor) SetChanges(c Changes) {
	if c.Name != nil {
		e.SetName(*c.Name)
	}
	if c.Label != nil {
		e.SetLabel(*c.Label)
	}
	if c.Placeholder != nil {
		e.SetPlaceholder(*c.Placeholder)
	}
	if c.Required != nil {
		e.SetRequired(*c.Required)
	}
	for id, value := range c.Options {
		e.SetOption(id, value)
	}
}

// Dirty reports whether any edit is buffered.
func (e *Editor) Dirty() bool {
	return e.name != nil || e.label != nil || e.placeholder != nil ||
		e.required != nil || len(e.options) > 0
}

// Discard drops buffered edits.
func (e *Editor) Discard() {
	e.name = nil
	e.label = nil
	e.placeholder = nil
	e.required = nil
	e.options = nil
}

// Apply commits buffered edits to state and clears the buffer. Field edits
// become one UpdateField call; group edits one UpdateGroup call. Option
// values are merged into the field's current options in state, so options
// deleted since they were buffered are skipped.
func (e *Editor) Apply(state builder.State) builder.State {
	if e.selection == nil || !e.Dirty() {
		e.Discard()
		return state
	}

	next := state
	switch e.selection.Kind {
	case model.SelectionField:
		if patch, ok := e.fieldPatch(state); ok {
			next = state.UpdateField(e.selection.GroupID, e.selection.ID(), patch)
		}
	case model.SelectionFieldset:
		if e.name != nil {
			next = state.UpdateGroup(e.selection.ID(), builder.GroupPatch{Name: e.name})
		}
	}

	e.Discard()
	e.rebase(next)
	return next
}

// AddOption appends an option to the selected field immediately.
func (e *Editor) AddOption(state builder.State) builder.State {
	if e.field() == nil {
		return state
	}
	next := state.AddOption(e.selection.GroupID, e.selection.ID())
	e.rebase(next)
	return next
}

// DeleteOption removes optionID from the selected field immediately. A
// buffered value for the option is dropped.
func (e *Editor) DeleteOption(state builder.State, optionID string) builder.State {
	if e.field() == nil {
		return state
	}
	delete(e.options, optionID)
	next := state.DeleteOption(e.selection.GroupID, e.selection.ID(), optionID)
	e.rebase(next)
	return next
}

// Delete removes the selected field. Deleting a group selection does nothing.
func (e *Editor) Delete(state builder.State) builder.State {
	if e.field() == nil {
		return state
	}
	next := state.DeleteField(e.selection.GroupID, e.selection.ID())
	e.Discard()
	e.selection = nil
	return next
}

func (e *Editor) field() *model.Field {
	if e.selection == nil || e.selection.Kind != model.SelectionField {
		return nil
	}
	return e.selection.Field
}

func (e *Editor) fieldPatch(state builder.State) (builder.FieldPatch, bool) {
	patch := builder.FieldPatch{
		Name:        e.name,
		Label:       e.label,
		Placeholder: e.placeholder,
		Required:    e.required,
	}
	if len(e.options) > 0 {
		current, _, ok := state.Field(e.selection.GroupID, e.selection.ID())
		if !ok {
			return builder.FieldPatch{}, false
		}
		merged := e.mergeOptions(current.Options)
		patch.Options = &merged
	}
	return patch, !patch.Empty()
}

func (e *Editor) mergeOptions(options []model.Option) []model.Option {
	out := model.CloneOptions(options)
	for i, option := range out {
		if value, ok := e.options[option.ID]; ok {
			out[i].Value = value
		}
	}
	return out
}

// rebase points the editor at the freshest copy of its item in state.
func (e *Editor) rebase(state builder.State) {
	if e.selection == nil {
		return
	}
	id := e.selection.ID()
	switch e.selection.Kind {
	case model.SelectionField:
		if groupID, field, ok := state.FindField(id); ok {
			e.selection = model.FieldSelection(groupID, field)
			return
		}
	case model.SelectionFieldset:
		if group, ok := state.Group(id); ok {
			e.selection = model.GroupSelection(group)
			return
		}
	}
	e.Discard()
	e.selection = nil
}
