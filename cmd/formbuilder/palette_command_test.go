package main

import (
	"testing"

	json "github.com/goccy/go-json"

	"github.com/goliatone/go-formbuilder/pkg/dnd"
	"github.com/goliatone/go-formbuilder/pkg/model"
)

func TestPaletteTable(t *testing.T) {
	isolate(t)
	out, _, err := runCLI(t, "palette")
	if err != nil {
		t.Fatalf("palette: %v", err)
	}
	requireContains(t, out, "number-select")
	requireContains(t, out, "Combo Box / Dropdown")
	requireContains(t, out, "name, options")
}

func TestPaletteJSON(t *testing.T) {
	isolate(t)
	out, _, err := runCLI(t, "palette", "--json")
	if err != nil {
		t.Fatalf("palette --json: %v", err)
	}
	var tokens []dnd.Token
	if err := json.Unmarshal([]byte(out), &tokens); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(tokens) != len(model.FieldTypes()) {
		t.Fatalf("expected %d tokens, got %d", len(model.FieldTypes()), len(tokens))
	}
}

func TestPaletteIgnoresBrokenConfig(t *testing.T) {
	isolate(t)
	if _, _, err := runCLI(t, "--config", "/does/not/exist.yaml", "palette"); err != nil {
		t.Fatalf("palette should not load config: %v", err)
	}
}
