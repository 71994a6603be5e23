package wire

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

func demoGroup() model.Group {
	return model.Group{
		ID:   "11111111-aaaa",
		Name: "Demo",
		Fields: []model.Field{{
			ID:          "22222222-bbbb",
			Type:        model.FieldTypeSelect,
			Name:        "Pick",
			Label:       "Pick",
			Placeholder: "",
			Required:    false,
			Options: []model.Option{
				{ID: "o1", Value: "Option 1"},
				{ID: "o2", Value: "Option 2"},
			},
		}},
	}
}

func TestShortID(t *testing.T) {
	cases := map[string]string{
		"11111111-aaaa":                        "11111111aa",
		"3F2504E0-4F89-11D3-9A0C-0305E82C3301": "3f2504e04f",
		"abc":                                  "abc",
		"":                                     "",
		"a-b-c-d-e-f-g-h-i-j-k-l":              "abcdefghij",
	}
	for in, want := range cases {
		if got := ShortID(in); got != want {
			t.Fatalf("ShortID(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestToWireRoundTripScenario(t *testing.T) {
	wire := ToWire([]model.Group{demoGroup()})

	want := []Group{{
		FieldsetName:   "Demo",
		FieldsetTextID: "11111111aa",
		Fields: []Field{{
			LabelName:   "Pick",
			LabelTextID: "22222222bb",
			InputType:   "select",
			Options:     Choices("Option 1", "Option 2"),
		}},
	}}
	if diff := cmp.Diff(want, wire); diff != "" {
		t.Fatalf("wire mismatch (-want +got):\n%s", diff)
	}

	back := FromWire(wire)
	wantOptions := []model.Option{
		{ID: "option-0", Value: "Option 1"},
		{ID: "option-1", Value: "Option 2"},
	}
	if diff := cmp.Diff(wantOptions, back[0].Fields[0].Options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
	if back[0].ID != "11111111aa" || back[0].Fields[0].ID != "22222222bb" {
		t.Fatalf("ids should come back shortened, got %q / %q", back[0].ID, back[0].Fields[0].ID)
	}
}

func TestNumberSelectCollapsesToSelect(t *testing.T) {
	group := model.Group{ID: "g", Name: "G", Fields: []model.Field{{
		ID:      "f",
		Type:    model.FieldTypeNumberSelect,
		Name:    "N",
		Options: []model.Option{{ID: "1", Value: "1"}},
	}}}

	wire := ToWire([]model.Group{group})
	if wire[0].Fields[0].InputType != "select" {
		t.Fatalf("number-select should be sent as select, got %q", wire[0].Fields[0].InputType)
	}
	back := FromWire(wire)
	if back[0].Fields[0].Type != model.FieldTypeSelect {
		t.Fatalf("select should come back as select, got %q", back[0].Fields[0].Type)
	}
}

func TestNonChoiceFieldsSendEmptyString(t *testing.T) {
	group := model.Group{ID: "g", Name: "G", Fields: []model.Field{{
		ID:      "f",
		Type:    model.FieldTypeText,
		Name:    "T",
		Options: []model.Option{{ID: "stale", Value: "ignored"}},
	}}}

	payload, err := EncodePayload(ToWire([]model.Group{group}))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := `[{"fieldsetName":"G","fieldsetTextId":"g","fields":[{"labelName":"T","labelTextId":"f","inputType":"text","options":""}]}]`
	if diff := cmp.Diff(want, string(payload)); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
}

func TestChoiceFieldWithoutOptionsSendsEmptyArray(t *testing.T) {
	group := model.Group{ID: "g", Name: "G", Fields: []model.Field{{
		ID: "f", Type: model.FieldTypeCheckbox, Name: "C",
	}}}
	payload, err := EncodePayload(ToWire([]model.Group{group}))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := `[{"fieldsetName":"G","fieldsetTextId":"g","fields":[{"labelName":"C","labelTextId":"f","inputType":"checkbox","options":[]}]}]`
	if diff := cmp.Diff(want, string(payload)); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
}

func TestFromWireDefaults(t *testing.T) {
	groups := FromWire([]Group{{
		FieldsetName:   "Contact",
		FieldsetTextID: "abc",
		Fields: []Field{
			{LabelName: "Email", LabelTextID: "e1", InputType: "text"},
			{LabelName: "Color", LabelTextID: "c1", InputType: "radio", Options: Choices("Red")},
			{LabelName: "Stray", LabelTextID: "s1", InputType: "date", Options: Choices("x")},
			{LabelName: "Sig", LabelTextID: "z1", InputType: "signature"},
		},
	}})

	want := []model.Group{{
		ID:   "abc",
		Name: "Contact",
		Fields: []model.Field{
			{ID: "e1", Type: model.FieldTypeText, Name: "Email", Label: "Email", Options: []model.Option{}},
			{ID: "c1", Type: model.FieldTypeRadio, Name: "Color", Label: "Color", Options: []model.Option{{ID: "option-0", Value: "Red"}}},
			{ID: "s1", Type: model.FieldTypeDate, Name: "Stray", Label: "Stray", Options: []model.Option{}},
			{ID: "z1", Type: model.FieldType("signature"), Name: "Sig", Label: "Sig", Options: []model.Option{}},
		},
	}}
	if diff := cmp.Diff(want, groups); diff != "" {
		t.Fatalf("FromWire mismatch (-want +got):\n%s", diff)
	}
}

func TestShortIDCollisionIsLossy(t *testing.T) {
	groups := []model.Group{
		{ID: "ABCDEFGHIJ-1", Name: "One"},
		{ID: "abcde-fghij-2", Name: "Two"},
	}
	wire := ToWire(groups)
	if wire[0].FieldsetTextID != wire[1].FieldsetTextID {
		t.Fatalf("expected colliding short ids, got %q and %q", wire[0].FieldsetTextID, wire[1].FieldsetTextID)
	}
}
