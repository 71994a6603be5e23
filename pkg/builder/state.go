package builder

import (
	"github.com/goliatone/go-formbuilder/pkg/model"
)

// AppendIndex asks DropField to append to the end of the target group.
const AppendIndex = -1

// Option configures a State at construction.
type Option func(*State)

// WithIDGenerator overrides the id source used for new items.
func WithIDGenerator(ids IDGenerator) Option {
	return func(s *State) {
		if ids != nil {
			s.ids = ids
		}
	}
}

// State is one immutable snapshot of the builder: the ordered groups and the
// current selection. The zero value is an empty tree using UUID ids.
type State struct {
	groups    []model.Group
	selection *model.Selection
	ids       IDGenerator
}

// New returns an empty state.
func New(options ...Option) State {
	return FromGroups(nil, options...)
}

// FromGroups returns a state holding a deep copy of groups and no selection.
func FromGroups(groups []model.Group, options ...Option) State {
	s := State{groups: model.CloneGroups(groups)}
	for _, opt := range options {
		if opt != nil {
			opt(&s)
		}
	}
	return s
}

// Groups returns the ordered groups. The slice is shared with the snapshot and
// must be treated as read-only; use model.CloneGroups before modifying it.
func (s State) Groups() []model.Group {
	return s.groups
}

// Len returns the number of groups.
func (s State) Len() int {
	return len(s.groups)
}

// Selection returns a copy of the current selection, or nil.
func (s State) Selection() *model.Selection {
	return s.selection.Clone()
}

// WithGroups returns a snapshot holding groups instead of the current tree.
// The selection is dropped because its addressing may no longer resolve.
func (s State) WithGroups(groups []model.Group) State {
	next := s
	next.groups = model.CloneGroups(groups)
	next.selection = nil
	return next
}

// Group looks up a group by id.
func (s State) Group(groupID string) (model.Group, bool) {
	idx := s.groupIndex(groupID)
	if idx < 0 {
		return model.Group{}, false
	}
	return s.groups[idx], true
}

// Field looks up a field inside a group, returning its index.
func (s State) Field(groupID, fieldID string) (model.Field, int, bool) {
	gi := s.groupIndex(groupID)
	if gi < 0 {
		return model.Field{}, -1, false
	}
	fi := fieldIndex(s.groups[gi], fieldID)
	if fi < 0 {
		return model.Field{}, -1, false
	}
	return s.groups[gi].Fields[fi], fi, true
}

// FindField searches every group for fieldID and returns the owning group id.
func (s State) FindField(fieldID string) (string, model.Field, bool) {
	for _, group := range s.groups {
		if fi := fieldIndex(group, fieldID); fi >= 0 {
			return group.ID, group.Fields[fi], true
		}
	}
	return "", model.Field{}, false
}

// Names returns every group and field name in tree order.
func (s State) Names() []string {
	var names []string
	for _, group := range s.groups {
		names = append(names, group.Name)
		for _, field := range group.Fields {
			names = append(names, field.Name)
		}
	}
	return names
}

func (s State) idGenerator() IDGenerator {
	if s.ids == nil {
		return UUIDGenerator{}
	}
	return s.ids
}

func (s State) newID() string {
	return s.idGenerator().NewID()
}

func (s State) groupIndex(groupID string) int {
	for i, group := range s.groups {
		if group.ID == groupID {
			return i
		}
	}
	return -1
}

func fieldIndex(group model.Group, fieldID string) int {
	for i, field := range group.Fields {
		if field.ID == fieldID {
			return i
		}
	}
	return -1
}

func optionIndex(field model.Field, optionID string) int {
	for i, option := range field.Options {
		if option.ID == optionID {
			return i
		}
	}
	return -1
}

// replaceGroup copies the group slice and swaps in group at idx.
func (s State) replaceGroup(idx int, group model.Group) State {
	next := s
	next.groups = make([]model.Group, len(s.groups))
	copy(next.groups, s.groups)
	next.groups[idx] = group
	return next
}

// replaceField copies the field slice of group gi and swaps in field at fi.
func (s State) replaceField(gi, fi int, field model.Field) State {
	group := s.groups[gi]
	fields := make([]model.Field, len(group.Fields))
	copy(fields, group.Fields)
	fields[fi] = field
	group.Fields = fields
	return s.replaceGroup(gi, group)
}

// updateField applies fn to the addressed field. Misses return s unchanged.
func (s State) updateField(groupID, fieldID string, fn func(model.Field) model.Field) (State, bool) {
	gi := s.groupIndex(groupID)
	if gi < 0 {
		return s, false
	}
	fi := fieldIndex(s.groups[gi], fieldID)
	if fi < 0 {
		return s, false
	}
	return s.replaceField(gi, fi, fn(s.groups[gi].Fields[fi])), true
}

// spliceIndex normalises an insertion index the way Array.prototype.splice
// does: negative values count from the end, the result is clamped to [0, n].
func spliceIndex(idx, n int) int {
	if idx < 0 {
		idx += n
		if idx < 0 {
			idx = 0
		}
	}
	if idx > n {
		idx = n
	}
	return idx
}

func insertField(fields []model.Field, idx int, field model.Field) []model.Field {
	out := make([]model.Field, 0, len(fields)+1)
	out = append(out, fields[:idx]...)
	out = append(out, field)
	out = append(out, fields[idx:]...)
	return out
}

func removeField(fields []model.Field, idx int) []model.Field {
	out := make([]model.Field, 0, len(fields)-1)
	out = append(out, fields[:idx]...)
	out = append(out, fields[idx+1:]...)
	return out
}
