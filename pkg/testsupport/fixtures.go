package testsupport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/wire"
)

// ContactForm returns a small tree covering every field type: a contact
// fieldset and a preferences fieldset. Ids are stable and collision free on
// the wire.
func ContactForm() []model.Group {
	return []model.Group{
		{
			ID:   "c0ffee00-0000-4000-8000-000000000001",
			Name: "Contact",
			Fields: []model.Field{
				{ID: "a1000001-0000-4000-8000-000000000000", Type: model.FieldTypeLabel, Name: "Intro", Label: "Tell us about you", Options: []model.Option{}},
				{ID: "a1000002-0000-4000-8000-000000000000", Type: model.FieldTypeText, Name: "Full name", Label: "Full name", Placeholder: "Jane Doe", Required: true, Options: []model.Option{}},
				{ID: "a1000003-0000-4000-8000-000000000000", Type: model.FieldTypeNumber, Name: "Age", Label: "Age", Options: []model.Option{}},
				{ID: "a1000004-0000-4000-8000-000000000000", Type: model.FieldTypeDate, Name: "Birthday", Label: "Birthday", Options: []model.Option{}},
				{ID: "a1000005-0000-4000-8000-000000000000", Type: model.FieldTypeTextarea, Name: "About", Label: "About", Placeholder: "A few words", Options: []model.Option{}},
			},
		},
		{
			ID:   "c0ffee01-0000-4000-8000-000000000002",
			Name: "Preferences",
			Fields: []model.Field{
				{ID: "b2000001-0000-4000-8000-000000000000", Type: model.FieldTypeRadio, Name: "Contact by", Label: "Contact by", Options: []model.Option{
					{ID: "o1", Value: "Email"}, {ID: "o2", Value: "Phone"},
				}},
				{ID: "b2000002-0000-4000-8000-000000000000", Type: model.FieldTypeSelect, Name: "Country", Label: "Country", Required: true, Options: []model.Option{
					{ID: "o1", Value: "Norway"}, {ID: "o2", Value: "Spain"},
				}},
				{ID: "b2000003-0000-4000-8000-000000000000", Type: model.FieldTypeNumberSelect, Name: "Guests", Label: "Guests", Options: []model.Option{
					{ID: "o1", Value: "1"}, {ID: "o2", Value: "2"}, {ID: "o3", Value: "3"},
				}},
				{ID: "b2000004-0000-4000-8000-000000000000", Type: model.FieldTypeCheckbox, Name: "Topics", Label: "Topics", Options: []model.Option{
					{ID: "o1", Value: "News"}, {ID: "o2", Value: "Offers"},
				}},
			},
		},
	}
}

// ContactPayload returns ContactForm encoded as the remote's bare array.
func ContactPayload(t *testing.T) []byte {
	t.Helper()

	data, err := wire.EncodePayload(wire.ToWire(ContactForm()))
	if err != nil {
		t.Fatalf("encode contact payload: %v", err)
	}
	return data
}

// MustLoadGroups loads a JSON fixture holding builder groups.
func MustLoadGroups(t *testing.T, path string) []model.Group {
	t.Helper()

	groups, err := LoadGroups(path)
	if err != nil {
		t.Fatalf("load groups: %v", err)
	}
	return groups
}

// LoadGroups reads a JSON fixture into builder groups, returning an error for
// callers managing setup outside of *testing.T.
func LoadGroups(path string) ([]model.Group, error) {
	if path == "" {
		return nil, errors.New("testsupport: groups path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("testsupport: read groups: %w", err)
	}
	var out []model.Group
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("testsupport: unmarshal groups: %w", err)
	}
	return out, nil
}

// LoadPayload reads a remote payload fixture through wire.DecodePayload.
func LoadPayload(path string) ([]wire.Group, error) {
	if path == "" {
		return nil, errors.New("testsupport: payload path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("testsupport: read payload: %w", err)
	}
	return wire.DecodePayload(data)
}

// WriteGolden writes arbitrary data to a golden file when UPDATE_GOLDENS is set.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	WriteMaybeGolden(t, path, payload)
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureOutput executes a render function that writes to an io.Writer and
// returns what was written.
func CaptureOutput(t *testing.T, render func(io.Writer) error) string {
	t.Helper()

	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	return buf.String()
}
