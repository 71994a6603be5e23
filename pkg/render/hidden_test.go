package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/render"
)

func TestMergeAndSortHiddenFields(t *testing.T) {
	base := map[string]string{
		" existing ": "keep",
		"":           "ignored",
	}

	merged := render.MergeHiddenFields(base,
		render.CSRFToken("_csrf", "token123"),
		render.VersionField("schema_version", 4),
		render.Hidden("  ", "skip"),
		render.Hidden("existing", "override"),
	)

	wantMerged := map[string]string{
		"existing":       "override",
		"_csrf":          "token123",
		"schema_version": "4",
	}
	if diff := cmp.Diff(wantMerged, merged); diff != "" {
		t.Fatalf("merged hidden fields mismatch (-want +got):\n%s", diff)
	}

	wantSorted := []render.HiddenField{
		{Name: "_csrf", Value: "token123"},
		{Name: "existing", Value: "override"},
		{Name: "schema_version", Value: "4"},
	}
	if diff := cmp.Diff(wantSorted, render.SortedHiddenFields(merged)); diff != "" {
		t.Fatalf("sorted hidden fields mismatch (-want +got):\n%s", diff)
	}

	if render.MergeHiddenFields(nil) != nil {
		t.Fatalf("empty merge should be nil")
	}
}
