package validation

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/testsupport"
)

func TestLintCleanTree(t *testing.T) {
	result := Lint(testsupport.ContactForm())
	if !result.Valid {
		t.Fatalf("expected clean tree, got %+v", result.Issues)
	}
}

func TestLintFindings(t *testing.T) {
	groups := []model.Group{
		{ID: "aaaaaaaaaa-1", Name: "Shared", Fields: []model.Field{
			{ID: "f1", Type: model.FieldTypeText, Name: "Shared"},
			{ID: "f2", Type: model.FieldTypeRadio, Name: ""},
			{ID: "f3", Type: model.FieldTypeDate, Name: "When", Options: []model.Option{{ID: "o", Value: "x"}}},
			{ID: "f4", Type: "signature", Name: "Sig"},
		}},
		{ID: "aaaaa-aaaaa-2", Name: "Empty"},
	}

	result := Lint(groups)
	if result.Valid {
		t.Fatalf("expected issues")
	}

	var got []Code
	for _, issue := range result.Issues {
		got = append(got, issue.Code)
	}
	want := []Code{
		CodeDuplicateName,
		CodeEmptyName,
		CodeMissingOptions,
		CodeUnexpectedOptions,
		CodeUnknownType,
		CodeShortIDCollision,
		CodeEmptyFieldset,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("codes mismatch (-want +got):\n%s", diff)
	}

	if result.Issues[0].Path != "fieldsets/0/fields/0" || result.Issues[0].ID != "f1" {
		t.Fatalf("unexpected location %+v", result.Issues[0])
	}
	if result.Count(CodeShortIDCollision) != 1 {
		t.Fatalf("expected one collision")
	}
}
