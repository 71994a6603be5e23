package builder

import "github.com/goliatone/go-formbuilder/pkg/model"

const defaultOptionCount = 3

// DropField creates a field of type ft. When the tree is empty or groupID is
// blank a new group holding just that field is appended. Otherwise the field
// is inserted into groupID at index. AppendIndex, or any index past the end,
// appends; other negative indices count from the end, as MoveField does. The
// new field becomes the selection. An unknown groupID leaves
// the state unchanged.
func (s State) DropField(ft model.FieldType, groupID string, index int) State {
	if len(s.groups) == 0 || groupID == "" {
		taken := s.nameSet()
		field := s.newField(ft, taken)
		taken[field.Name] = struct{}{}

		group := model.Group{
			ID:     s.newID(),
			Name:   uniqueName(model.KindFieldset, taken),
			Fields: []model.Field{field},
		}

		next := s
		next.groups = make([]model.Group, 0, len(s.groups)+1)
		next.groups = append(next.groups, s.groups...)
		next.groups = append(next.groups, group)
		next.selection = model.FieldSelection(group.ID, field)
		return next
	}

	gi := s.groupIndex(groupID)
	if gi < 0 {
		return s
	}

	field := s.newField(ft, s.nameSet())
	group := s.groups[gi]
	at := len(group.Fields)
	if index != AppendIndex {
		at = spliceIndex(index, at)
	}
	group.Fields = insertField(group.Fields, at, field)

	next := s.replaceGroup(gi, group)
	next.selection = model.FieldSelection(group.ID, field)
	return next
}

func (s State) newField(ft model.FieldType, taken map[string]struct{}) model.Field {
	name := uniqueName(string(ft), taken)
	field := model.Field{
		ID:      s.newID(),
		Type:    ft,
		Name:    name,
		Label:   name,
		Options: []model.Option{},
	}
	if ft.IsChoice() {
		for i := 0; i < defaultOptionCount; i++ {
			field.Options = append(field.Options, s.newOption(i))
		}
	}
	return field
}

// UpdateField shallow-merges patch into the addressed field.
func (s State) UpdateField(groupID, fieldID string, patch FieldPatch) State {
	next, ok := s.updateField(groupID, fieldID, patch.Apply)
	if !ok {
		return s
	}
	return next.syncSelection(fieldID, groupID)
}

// UpdateGroup shallow-merges patch into the addressed group.
func (s State) UpdateGroup(groupID string, patch GroupPatch) State {
	gi := s.groupIndex(groupID)
	if gi < 0 {
		return s
	}
	next := s.replaceGroup(gi, patch.Apply(s.groups[gi]))
	return next.syncSelection(groupID)
}

// DeleteField removes the addressed field. A group left without fields is
// removed as well. The selection is cleared when it pointed at the field.
func (s State) DeleteField(groupID, fieldID string) State {
	gi := s.groupIndex(groupID)
	if gi < 0 {
		return s
	}
	fi := fieldIndex(s.groups[gi], fieldID)
	if fi < 0 {
		return s
	}

	group := s.groups[gi]
	group.Fields = removeField(group.Fields, fi)

	var next State
	if len(group.Fields) == 0 {
		next = s
		next.groups = make([]model.Group, 0, len(s.groups)-1)
		next.groups = append(next.groups, s.groups[:gi]...)
		next.groups = append(next.groups, s.groups[gi+1:]...)
	} else {
		next = s.replaceGroup(gi, group)
	}

	if next.selection.IsField(fieldID) {
		next.selection = nil
		return next
	}
	return next.syncSelection(groupID)
}

// DuplicateField inserts a copy of the addressed field right after it. The
// copy gets a fresh id and a freshly generated unique name; everything else,
// including the label and options, is copied.
func (s State) DuplicateField(groupID, fieldID string) State {
	gi := s.groupIndex(groupID)
	if gi < 0 {
		return s
	}
	fi := fieldIndex(s.groups[gi], fieldID)
	if fi < 0 {
		return s
	}

	original := s.groups[gi].Fields[fi]
	dup := original.Clone()
	dup.ID = s.newID()
	dup.Name = s.GenerateUniqueName(string(original.Type))

	group := s.groups[gi]
	group.Fields = insertField(group.Fields, fi+1, dup)
	return s.replaceGroup(gi, group).syncSelection(groupID)
}
