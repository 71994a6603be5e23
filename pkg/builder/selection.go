package builder

import "github.com/goliatone/go-formbuilder/pkg/model"

// SelectField selects the addressed field. Misses leave the selection as is.
func (s State) SelectField(groupID, fieldID string) State {
	field, _, ok := s.Field(groupID, fieldID)
	if !ok {
		return s
	}
	next := s
	next.selection = model.FieldSelection(groupID, field)
	return next
}

// SelectGroup selects the addressed group. Misses leave the selection as is.
func (s State) SelectGroup(groupID string) State {
	group, ok := s.Group(groupID)
	if !ok {
		return s
	}
	next := s
	next.selection = model.GroupSelection(group)
	return next
}

// ClearSelection drops the selection.
func (s State) ClearSelection() State {
	next := s
	next.selection = nil
	return next
}

// syncSelection refreshes the selection copy when its id is one of the
// mutated ids. A selected item that no longer exists is deselected.
func (s State) syncSelection(touched ...string) State {
	sel := s.selection
	if sel == nil {
		return s
	}
	id := sel.ID()
	hit := false
	for _, t := range touched {
		if t != "" && t == id {
			hit = true
			break
		}
	}
	if !hit {
		return s
	}

	next := s
	switch sel.Kind {
	case model.SelectionField:
		// Short wire ids may repeat across groups, so the owning group wins.
		if field, _, ok := s.Field(sel.GroupID, id); ok {
			next.selection = model.FieldSelection(sel.GroupID, field)
			return next
		}
		groupID, field, ok := s.FindField(id)
		if !ok {
			next.selection = nil
			return next
		}
		next.selection = model.FieldSelection(groupID, field)
	case model.SelectionFieldset:
		group, ok := s.Group(id)
		if !ok {
			next.selection = nil
			return next
		}
		next.selection = model.GroupSelection(group)
	}
	return next
}

// Select resolves sel against the tree and selects the item it points at.
// A nil selection clears; a selection that does not resolve is ignored.
func (s State) Select(sel *model.Selection) State {
	if sel == nil {
		return s.ClearSelection()
	}
	switch sel.Kind {
	case model.SelectionField:
		return s.SelectField(sel.GroupID, sel.ID())
	case model.SelectionFieldset:
		return s.SelectGroup(sel.ID())
	}
	return s
}
