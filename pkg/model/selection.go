package model

// SelectionKind distinguishes the two selectable item kinds.
type SelectionKind string

const (
	SelectionField    SelectionKind = "field"
	SelectionFieldset SelectionKind = KindFieldset
)

// Selection is the item currently open in the properties editor. It holds a
// copy of the item's data; the builder keeps the copy in sync with the tree
// when the selected item is mutated.
type Selection struct {
	Kind SelectionKind `json:"kind"`
	// GroupID addresses the owning group for field selections. For group
	// selections it equals the group id.
	GroupID string `json:"groupId"`
	Field   *Field `json:"field,omitempty"`
	Group   *Group `json:"fieldset,omitempty"`
}

// ID returns the id of the selected item.
func (s *Selection) ID() string {
	if s == nil {
		return ""
	}
	switch s.Kind {
	case SelectionField:
		if s.Field != nil {
			return s.Field.ID
		}
	case SelectionFieldset:
		if s.Group != nil {
			return s.Group.ID
		}
	}
	return ""
}

// IsField reports whether the selection points at fieldID.
func (s *Selection) IsField(fieldID string) bool {
	return s != nil && s.Kind == SelectionField && s.Field != nil && s.Field.ID == fieldID
}

// IsGroup reports whether the selection points at groupID as a group.
func (s *Selection) IsGroup(groupID string) bool {
	return s != nil && s.Kind == SelectionFieldset && s.Group != nil && s.Group.ID == groupID
}

// Clone returns a deep copy of the selection.
func (s *Selection) Clone() *Selection {
	if s == nil {
		return nil
	}
	out := *s
	if s.Field != nil {
		field := s.Field.Clone()
		out.Field = &field
	}
	if s.Group != nil {
		group := s.Group.Clone()
		out.Group = &group
	}
	return &out
}

// FieldSelection builds a selection for a field inside groupID.
func FieldSelection(groupID string, field Field) *Selection {
	copied := field.Clone()
	return &Selection{Kind: SelectionField, GroupID: groupID, Field: &copied}
}

// GroupSelection builds a selection for a group.
func GroupSelection(group Group) *Selection {
	copied := group.Clone()
	return &Selection{Kind: SelectionFieldset, GroupID: group.ID, Group: &copied}
}
