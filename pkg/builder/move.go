package builder

import "github.com/goliatone/go-formbuilder/pkg/model"

// MoveField removes the field at srcIndex of srcGroupID and inserts it at
// dstIndex of dstGroupID. Same-group moves use remove-then-insert splice
// ordering: removing an earlier index shifts later ones down by one, so
// MoveField(g, 0, g, 2) on [A B C D] yields [B C A D]. dstIndex follows
// splice clamping. Unknown groups or an out-of-range srcIndex leave the state
// unchanged. A source group emptied by the move is kept.
func (s State) MoveField(srcGroupID string, srcIndex int, dstGroupID string, dstIndex int) State {
	si := s.groupIndex(srcGroupID)
	di := s.groupIndex(dstGroupID)
	if si < 0 || di < 0 {
		return s
	}
	if srcIndex < 0 || srcIndex >= len(s.groups[si].Fields) {
		return s
	}

	src := s.groups[si]
	moved := src.Fields[srcIndex]
	src.Fields = removeField(src.Fields, srcIndex)
	next := s.replaceGroup(si, src)

	dst := next.groups[di]
	dst.Fields = insertField(dst.Fields, spliceIndex(dstIndex, len(dst.Fields)), moved)
	next.groups[di] = dst

	return next.syncSelection(moved.ID, srcGroupID, dstGroupID)
}

// MoveGroup repositions the group at from so it ends up at index to.
// Out-of-range indices leave the state unchanged.
func (s State) MoveGroup(from, to int) State {
	n := len(s.groups)
	if from < 0 || from >= n || to < 0 || to >= n || from == to {
		return s
	}
	moved := s.groups[from]

	next := s
	next.groups = make([]model.Group, 0, n)
	for i, group := range s.groups {
		if i == from {
			continue
		}
		next.groups = append(next.groups, group)
	}
	next.groups = append(next.groups[:to], append([]model.Group{moved}, next.groups[to:]...)...)
	return next
}
