package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-formbuilder/pkg/testsupport"
	"github.com/goliatone/go-formbuilder/pkg/wire"
)

func TestShowOutline(t *testing.T) {
	isolate(t)
	fake := testsupport.NewRemote(t, testsupport.ContactPayload(t))

	out, _, err := runCLI(t, "--endpoint", fake.URL, "show")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	requireContains(t, out, "Contact")
	requireContains(t, out, "│ Full name ")
	if strings.Contains(out, "Full name *") {
		t.Fatalf("wire schemas carry no required flag, so no marker is expected:\n%s", out)
	}
	requireContains(t, out, "Combo Box")
	requireContains(t, out, "c0ffee0000")
	requireContains(t, out, "Norway, Spain")
	requireContains(t, out, "2 fieldsets, 9 fields")
}

func TestShowJSONFromFile(t *testing.T) {
	dir := isolate(t)
	path := writeSchemaFile(t, dir, testsupport.ContactPayload(t))

	out, _, err := runCLI(t, "show", "--file", path, "--json")
	if err != nil {
		t.Fatalf("show --json: %v", err)
	}
	groups, err := wire.DecodePayload([]byte(out))
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if len(groups) != 2 || groups[0].FieldsetName != "Contact" {
		t.Fatalf("unexpected groups: %+v", groups)
	}
}

func TestShowEmptySchema(t *testing.T) {
	isolate(t)
	fake := testsupport.NewRemote(t, []byte(`[]`))

	out, _, err := runCLI(t, "--endpoint", fake.URL, "show")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	requireContains(t, out, "Schema is empty")
}

func TestPullNormalisesWrappedPayload(t *testing.T) {
	dir := isolate(t)
	body := append(append([]byte(`{"data":`), testsupport.ContactPayload(t)...), '}')
	fake := testsupport.NewRemote(t, body)
	target := filepath.Join(dir, "out", "schema.json")

	_, stderr, err := runCLI(t, "--endpoint", fake.URL, "pull", "-o", target)
	if err != nil {
		t.Fatalf("pull: %v", err)
	}
	requireContains(t, stderr, "Wrote")

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read pulled file: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("[")) {
		t.Fatalf("expected a bare array, got %s", data)
	}

	out, _, err := runCLI(t, "--endpoint", fake.URL, "pull", "--raw")
	if err != nil {
		t.Fatalf("pull --raw: %v", err)
	}
	if out != string(body) {
		t.Fatalf("expected raw body, got %s", out)
	}
}

func TestPushUploadsFile(t *testing.T) {
	dir := isolate(t)
	fake := testsupport.NewRemote(t, []byte(`[]`))
	path := writeSchemaFile(t, dir, testsupport.ContactPayload(t))

	out, _, err := runCLI(t, "--endpoint", fake.URL, "push", path)
	if err != nil {
		t.Fatalf("push: %v", err)
	}
	requireContains(t, out, "Pushed 2 fieldsets, 9 fields")
	if got := len(fake.Pushes()); got != 1 {
		t.Fatalf("expected 1 push, got %d", got)
	}
	groups, err := wire.DecodePayload(fake.Body())
	if err != nil {
		t.Fatalf("decode pushed body: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("expected 2 fieldsets on the remote, got %d", len(groups))
	}
}

func TestPushDryRunSkipsRemote(t *testing.T) {
	dir := isolate(t)
	path := writeSchemaFile(t, dir, testsupport.ContactPayload(t))

	out, _, err := runCLI(t, "push", "--dry-run", path)
	if err != nil {
		t.Fatalf("push --dry-run: %v", err)
	}
	requireContains(t, out, "Would push 2 fieldsets, 9 fields")
}

func TestPushRejectsInvalidFile(t *testing.T) {
	dir := isolate(t)
	path := writeSchemaFile(t, dir, []byte(`"nope"`))

	if _, _, err := runCLI(t, "push", "--dry-run", path); err == nil {
		t.Fatal("expected decode error")
	}
}
