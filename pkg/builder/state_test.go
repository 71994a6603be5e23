package builder

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

func newState() State {
	return New(WithIDGenerator(NewSequenceGenerator("id")))
}

func fieldIDs(group model.Group) []string {
	ids := make([]string, 0, len(group.Fields))
	for _, field := range group.Fields {
		ids = append(ids, field.ID)
	}
	return ids
}

func optionValues(field model.Field) []string {
	values := make([]string, 0, len(field.Options))
	for _, option := range field.Options {
		values = append(values, option.Value)
	}
	return values
}

func fourFieldGroup() State {
	return FromGroups([]model.Group{{
		ID:   "g",
		Name: "Field-set",
		Fields: []model.Field{
			{ID: "A", Type: model.FieldTypeText, Name: "A"},
			{ID: "B", Type: model.FieldTypeText, Name: "B"},
			{ID: "C", Type: model.FieldTypeText, Name: "C"},
			{ID: "D", Type: model.FieldTypeText, Name: "D"},
		},
	}}, WithIDGenerator(NewSequenceGenerator("id")))
}

func TestDropFieldOnEmptyTreeCreatesGroup(t *testing.T) {
	s := newState().DropField(model.FieldTypeSelect, "", AppendIndex)

	if s.Len() != 1 {
		t.Fatalf("expected one group, got %d", s.Len())
	}
	group := s.Groups()[0]
	if group.Name != "Field-set" {
		t.Fatalf("group name = %q, want Field-set", group.Name)
	}
	if len(group.Fields) != 1 {
		t.Fatalf("expected one field, got %d", len(group.Fields))
	}
	field := group.Fields[0]
	want := model.Field{
		ID:    field.ID,
		Type:  model.FieldTypeSelect,
		Name:  "Combo Box / Dropdown",
		Label: "Combo Box / Dropdown",
		Options: []model.Option{
			{ID: field.Options[0].ID, Value: "Option 1"},
			{ID: field.Options[1].ID, Value: "Option 2"},
			{ID: field.Options[2].ID, Value: "Option 3"},
		},
	}
	if diff := cmp.Diff(want, field); diff != "" {
		t.Fatalf("new field mismatch (-want +got):\n%s", diff)
	}

	sel := s.Selection()
	if !sel.IsField(field.ID) || sel.GroupID != group.ID {
		t.Fatalf("new field should be selected, got %+v", sel)
	}
}

func TestDropFieldNonChoiceHasNoOptions(t *testing.T) {
	s := newState().DropField(model.FieldTypeText, "", AppendIndex)
	field := s.Groups()[0].Fields[0]
	if len(field.Options) != 0 || field.Options == nil {
		t.Fatalf("expected empty non-nil options, got %#v", field.Options)
	}
	if field.Placeholder != "" || field.Required {
		t.Fatalf("unexpected defaults: %+v", field)
	}
}

func TestDropFieldIntoGroupAtIndex(t *testing.T) {
	s := fourFieldGroup()

	s = s.DropField(model.FieldTypeNumber, "g", 1)
	got := fieldIDs(s.Groups()[0])
	if len(got) != 5 || got[1] == "B" || got[0] != "A" || got[2] != "B" {
		t.Fatalf("unexpected order after insert: %v", got)
	}

	s = s.DropField(model.FieldTypeDate, "g", AppendIndex)
	last := s.Groups()[0].Fields[5]
	if last.Type != model.FieldTypeDate {
		t.Fatalf("expected date appended last, got %+v", last)
	}
	if !s.Selection().IsField(last.ID) {
		t.Fatalf("appended field should be selected")
	}

	s = s.DropField(model.FieldTypeLabel, "g", 99)
	if s.Groups()[0].Fields[6].Type != model.FieldTypeLabel {
		t.Fatalf("index past the end should append")
	}
}

func TestDropFieldNegativeIndexCountsFromEnd(t *testing.T) {
	cases := []struct {
		index int
		at    int
	}{
		{index: -2, at: 2},
		{index: -4, at: 0},
		{index: -9, at: 0},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprint(tc.index), func(t *testing.T) {
			s := fourFieldGroup().DropField(model.FieldTypeNumber, "g", tc.index)
			fields := s.Groups()[0].Fields
			if len(fields) != 5 || fields[tc.at].Type != model.FieldTypeNumber {
				t.Fatalf("expected new field at %d, got %v", tc.at, fieldIDs(s.Groups()[0]))
			}
		})
	}
}

func TestUpdateFieldKeepsSelectionInOwningGroup(t *testing.T) {
	s := FromGroups([]model.Group{
		{ID: "g1", Name: "First", Fields: []model.Field{{ID: "dup", Type: model.FieldTypeText, Name: "One"}}},
		{ID: "g2", Name: "Second", Fields: []model.Field{{ID: "dup", Type: model.FieldTypeText, Name: "Two"}}},
	}).SelectField("g2", "dup")

	s = s.UpdateField("g2", "dup", FieldPatch{Label: String("Second label")})

	sel := s.Selection()
	if sel.GroupID != "g2" || sel.Field.Name != "Two" || sel.Field.Label != "Second label" {
		t.Fatalf("selection jumped groups: %+v", sel)
	}
}

func TestDropFieldUnknownGroupIsNoop(t *testing.T) {
	s := fourFieldGroup()
	next := s.DropField(model.FieldTypeText, "missing", AppendIndex)
	if diff := cmp.Diff(s.Groups(), next.Groups()); diff != "" {
		t.Fatalf("tree changed on unknown group (-want +got):\n%s", diff)
	}
	if next.Selection() != nil {
		t.Fatalf("selection should be untouched")
	}
}

func TestDropFieldDoesNotMutateReceiver(t *testing.T) {
	s := fourFieldGroup()
	before := model.CloneGroups(s.Groups())

	_ = s.DropField(model.FieldTypeText, "g", 0)
	_ = s.DeleteField("g", "A")
	_ = s.MoveField("g", 0, "g", 3)
	_ = s.UpdateField("g", "B", FieldPatch{Name: String("renamed")})

	if diff := cmp.Diff(before, s.Groups()); diff != "" {
		t.Fatalf("receiver mutated (-want +got):\n%s", diff)
	}
}

func TestGenerateUniqueNameSuffixes(t *testing.T) {
	s := newState()
	if got := s.GenerateUniqueName("text"); got != "Text Field" {
		t.Fatalf("first name = %q", got)
	}

	s = s.DropField(model.FieldTypeText, "", AppendIndex)
	groupID := s.Groups()[0].ID
	if got := s.GenerateUniqueName("text"); got != "Text Field 1" {
		t.Fatalf("second name = %q", got)
	}

	s = s.DropField(model.FieldTypeText, groupID, AppendIndex)
	s = s.DropField(model.FieldTypeText, groupID, AppendIndex)
	names := s.Names()
	want := []string{"Field-set", "Text Field", "Text Field 1", "Text Field 2"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}

	if got := s.GenerateUniqueName("fieldset"); got != "Field-set 1" {
		t.Fatalf("fieldset name = %q", got)
	}
	if got := s.GenerateUniqueName("signature"); got != "signature" {
		t.Fatalf("unknown kind name = %q", got)
	}
}

func TestGenerateUniqueNameNeverCollides(t *testing.T) {
	s := newState()
	seen := map[string]bool{}
	for i := 0; i < 25; i++ {
		ft := model.FieldTypes()[i%len(model.FieldTypes())]
		name := s.GenerateUniqueName(string(ft))
		for _, existing := range s.Names() {
			if existing == name {
				t.Fatalf("iteration %d: %q already present", i, name)
			}
		}
		s = s.DropField(ft, "", AppendIndex)
		for _, n := range s.Names() {
			seen[n] = true
		}
	}
	if len(seen) != len(s.Names()) {
		t.Fatalf("names are not unique: %v", s.Names())
	}
}

func TestUpdateFieldMergesAndSyncsSelection(t *testing.T) {
	s := newState().DropField(model.FieldTypeText, "", AppendIndex)
	group := s.Groups()[0]
	fieldID := group.Fields[0].ID

	s = s.UpdateField(group.ID, fieldID, FieldPatch{
		Placeholder: String("Your name"),
		Required:    Bool(true),
	})

	field, _, ok := s.Field(group.ID, fieldID)
	if !ok {
		t.Fatalf("field missing after update")
	}
	if field.Placeholder != "Your name" || !field.Required || field.Name != "Text Field" {
		t.Fatalf("unexpected merge result: %+v", field)
	}
	sel := s.Selection()
	if diff := cmp.Diff(field, *sel.Field); diff != "" {
		t.Fatalf("selection out of sync (-want +got):\n%s", diff)
	}
}

func TestUpdateFieldMissIsSilent(t *testing.T) {
	s := fourFieldGroup()
	next := s.UpdateField("g", "nope", FieldPatch{Name: String("x")})
	next = next.UpdateField("nope", "A", FieldPatch{Name: String("x")})
	if diff := cmp.Diff(s.Groups(), next.Groups()); diff != "" {
		t.Fatalf("tree changed (-want +got):\n%s", diff)
	}
}

func TestUpdateGroupSyncsGroupSelection(t *testing.T) {
	s := fourFieldGroup().SelectGroup("g")
	s = s.UpdateGroup("g", GroupPatch{Name: String("Contact")})

	group, _ := s.Group("g")
	if group.Name != "Contact" {
		t.Fatalf("group name = %q", group.Name)
	}
	if sel := s.Selection(); sel.Group == nil || sel.Group.Name != "Contact" {
		t.Fatalf("group selection not refreshed: %+v", sel)
	}
}

func TestDeleteFieldPrunesEmptyGroup(t *testing.T) {
	s := newState().DropField(model.FieldTypeText, "", AppendIndex)
	group := s.Groups()[0]

	s = s.DeleteField(group.ID, group.Fields[0].ID)
	if s.Len() != 0 {
		t.Fatalf("expected group pruned, got %d groups", s.Len())
	}
	if s.Selection() != nil {
		t.Fatalf("selection should be cleared")
	}
}

func TestDeleteFieldKeepsGroupWithRemainingFields(t *testing.T) {
	s := fourFieldGroup().SelectField("g", "C")
	s = s.DeleteField("g", "B")

	if s.Len() != 1 {
		t.Fatalf("group should remain")
	}
	if diff := cmp.Diff([]string{"A", "C", "D"}, fieldIDs(s.Groups()[0])); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
	if !s.Selection().IsField("C") {
		t.Fatalf("unrelated selection should survive")
	}
}

func TestDeleteFieldNeverPrunesOtherGroups(t *testing.T) {
	s := FromGroups([]model.Group{
		{ID: "empty", Name: "Empty"},
		{ID: "g", Name: "G", Fields: []model.Field{{ID: "A"}, {ID: "B"}}},
	})
	s = s.DeleteField("g", "A")
	if s.Len() != 2 {
		t.Fatalf("only the owning group may be pruned, got %d groups", s.Len())
	}
}

func TestDuplicateFieldInsertsAfterOriginal(t *testing.T) {
	s := newState().DropField(model.FieldTypeRadio, "", AppendIndex)
	group := s.Groups()[0]
	original := group.Fields[0]
	s = s.UpdateField(group.ID, original.ID, FieldPatch{Label: String("Pick one")})

	s = s.DuplicateField(group.ID, original.ID)
	fields := s.Groups()[0].Fields
	if len(fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(fields))
	}
	dup := fields[1]
	if dup.ID == original.ID {
		t.Fatalf("duplicate must have a fresh id")
	}
	if dup.Name != "Radio Button 1" {
		t.Fatalf("duplicate name = %q", dup.Name)
	}
	if dup.Label != "Pick one" {
		t.Fatalf("duplicate label = %q", dup.Label)
	}
	if diff := cmp.Diff(optionValues(fields[0]), optionValues(dup)); diff != "" {
		t.Fatalf("options not copied (-want +got):\n%s", diff)
	}

	s = s.UpdateOption(group.ID, dup.ID, dup.Options[0].ID, "changed")
	orig, _, _ := s.Field(group.ID, original.ID)
	if orig.Options[0].Value != "Option 1" {
		t.Fatalf("duplicate shares options with original")
	}
}

func TestMoveFieldSameGroupSpliceOrdering(t *testing.T) {
	s := fourFieldGroup().MoveField("g", 0, "g", 2)
	if diff := cmp.Diff([]string{"B", "C", "A", "D"}, fieldIDs(s.Groups()[0])); diff != "" {
		t.Fatalf("move mismatch (-want +got):\n%s", diff)
	}

	s = fourFieldGroup().MoveField("g", 3, "g", 0)
	if diff := cmp.Diff([]string{"D", "A", "B", "C"}, fieldIDs(s.Groups()[0])); diff != "" {
		t.Fatalf("move mismatch (-want +got):\n%s", diff)
	}
}

func TestMoveFieldAcrossGroups(t *testing.T) {
	s := FromGroups([]model.Group{
		{ID: "g1", Name: "One", Fields: []model.Field{{ID: "A"}}},
		{ID: "g2", Name: "Two", Fields: []model.Field{{ID: "B"}, {ID: "C"}}},
	}).SelectField("g1", "A")

	s = s.MoveField("g1", 0, "g2", 1)
	if s.Len() != 2 {
		t.Fatalf("emptied source group must not be pruned by a move")
	}
	if len(s.Groups()[0].Fields) != 0 {
		t.Fatalf("source should be empty")
	}
	if diff := cmp.Diff([]string{"B", "A", "C"}, fieldIDs(s.Groups()[1])); diff != "" {
		t.Fatalf("target mismatch (-want +got):\n%s", diff)
	}
	if sel := s.Selection(); sel.GroupID != "g2" {
		t.Fatalf("selection should follow the moved field, got group %q", sel.GroupID)
	}
}

func TestMoveFieldNoops(t *testing.T) {
	s := fourFieldGroup()
	cases := []State{
		s.MoveField("missing", 0, "g", 1),
		s.MoveField("g", 0, "missing", 1),
		s.MoveField("g", 7, "g", 1),
		s.MoveField("g", -1, "g", 1),
	}
	for i, next := range cases {
		if diff := cmp.Diff(s.Groups(), next.Groups()); diff != "" {
			t.Fatalf("case %d changed tree (-want +got):\n%s", i, diff)
		}
	}
}

func TestMoveGroup(t *testing.T) {
	var groups []model.Group
	for i := 0; i < 4; i++ {
		groups = append(groups, model.Group{ID: fmt.Sprintf("g%d", i)})
	}
	s := FromGroups(groups)

	moved := s.MoveGroup(0, 2)
	var got []string
	for _, g := range moved.Groups() {
		got = append(got, g.ID)
	}
	if diff := cmp.Diff([]string{"g1", "g2", "g0", "g3"}, got); diff != "" {
		t.Fatalf("move group mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff(s.Groups(), s.MoveGroup(0, 9).Groups()); diff != "" {
		t.Fatalf("out of range move should be a no-op")
	}
}

func TestAddOptionNaming(t *testing.T) {
	s := newState().DropField(model.FieldTypeCheckbox, "", AppendIndex)
	group := s.Groups()[0]
	fieldID := group.Fields[0].ID

	for i := 0; i < 4; i++ {
		before, _, _ := s.Field(group.ID, fieldID)
		s = s.AddOption(group.ID, fieldID)
		after, _, _ := s.Field(group.ID, fieldID)
		if len(after.Options) != len(before.Options)+1 {
			t.Fatalf("option count did not grow by one")
		}
		want := fmt.Sprintf("Option %d", len(before.Options)+1)
		if got := after.Options[len(after.Options)-1].Value; got != want {
			t.Fatalf("new option = %q, want %q", got, want)
		}
	}

	field, _, _ := s.Field(group.ID, fieldID)
	if diff := cmp.Diff(field, *s.Selection().Field); diff != "" {
		t.Fatalf("selection out of sync (-want +got):\n%s", diff)
	}
}

func TestAddOptionAfterDeleteMayCollide(t *testing.T) {
	s := newState().DropField(model.FieldTypeSelect, "", AppendIndex)
	group := s.Groups()[0]
	field := group.Fields[0]

	s = s.DeleteOption(group.ID, field.ID, field.Options[0].ID)
	s = s.AddOption(group.ID, field.ID)
	got, _, _ := s.Field(group.ID, field.ID)

	if diff := cmp.Diff([]string{"Option 2", "Option 3", "Option 3"}, optionValues(got)); diff != "" {
		t.Fatalf("option values mismatch (-want +got):\n%s", diff)
	}
}

func TestUpdateAndDeleteOption(t *testing.T) {
	s := newState().DropField(model.FieldTypeRadio, "", AppendIndex)
	group := s.Groups()[0]
	field := group.Fields[0]

	s = s.UpdateOption(group.ID, field.ID, field.Options[1].ID, "Maybe")
	s = s.DeleteOption(group.ID, field.ID, field.Options[0].ID)
	s = s.DeleteOption(group.ID, field.ID, "missing")

	got, _, _ := s.Field(group.ID, field.ID)
	if diff := cmp.Diff([]string{"Maybe", "Option 3"}, optionValues(got)); diff != "" {
		t.Fatalf("option values mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(optionValues(got), optionValues(*s.Selection().Field)); diff != "" {
		t.Fatalf("selection options out of sync (-want +got):\n%s", diff)
	}
}

func TestSelectionHelpers(t *testing.T) {
	s := fourFieldGroup()
	if s.SelectField("g", "missing").Selection() != nil {
		t.Fatalf("selecting a missing field must not select")
	}
	s = s.SelectField("g", "B")
	if !s.Selection().IsField("B") {
		t.Fatalf("expected B selected")
	}
	if s.ClearSelection().Selection() != nil {
		t.Fatalf("expected cleared selection")
	}
	if !s.SelectGroup("g").Selection().IsGroup("g") {
		t.Fatalf("expected group selected")
	}
}

func TestWithGroupsDropsSelection(t *testing.T) {
	s := fourFieldGroup().SelectField("g", "A")
	next := s.WithGroups(nil)
	if next.Len() != 0 || next.Selection() != nil {
		t.Fatalf("expected empty tree without selection")
	}
}
