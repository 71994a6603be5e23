package validation

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/wire"
)

// Code classifies a lint issue.
type Code string

const (
	CodeDuplicateName     Code = "duplicate_name"
	CodeEmptyName         Code = "empty_name"
	CodeShortIDCollision  Code = "short_id_collision"
	CodeMissingOptions    Code = "missing_options"
	CodeUnexpectedOptions Code = "unexpected_options"
	CodeUnknownType       Code = "unknown_type"
	CodeEmptyFieldset     Code = "empty_fieldset"
)

// SchemaIssue is one lint finding with its location in the tree.
type SchemaIssue struct {
	Code    Code   `json:"code"`
	Path    string `json:"path"`
	ID      string `json:"id,omitempty"`
	Message string `json:"message"`
}

// SchemaValidationResult is the outcome of Lint. Valid is true when no issue
// was found; issues never block a save.
type SchemaValidationResult struct {
	Valid  bool          `json:"valid"`
	Issues []SchemaIssue `json:"issues,omitempty"`
}

// Count returns the number of issues carrying code.
func (r SchemaValidationResult) Count(code Code) int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Code == code {
			n++
		}
	}
	return n
}

// Lint inspects groups for problems the builder tolerates but the remote or
// a renderer may trip over. Issues are reported in tree order.
func Lint(groups []model.Group) SchemaValidationResult {
	l := linter{
		names:    make(map[string]string),
		shortIDs: make(map[string]string),
	}
	for gi, group := range groups {
		path := fmt.Sprintf("fieldsets/%d", gi)
		l.checkName(path, group.ID, group.Name)
		l.checkShortID(path, group.ID)
		if len(group.Fields) == 0 {
			l.add(CodeEmptyFieldset, path, group.ID, fmt.Sprintf("fieldset %q has no fields", group.Name))
		}
		for fi, field := range group.Fields {
			l.checkField(fmt.Sprintf("%s/fields/%d", path, fi), field)
		}
	}
	return SchemaValidationResult{Valid: len(l.issues) == 0, Issues: l.issues}
}

type linter struct {
	names    map[string]string
	shortIDs map[string]string
	issues   []SchemaIssue
}

func (l *linter) add(code Code, path, id, message string) {
	l.issues = append(l.issues, SchemaIssue{Code: code, Path: path, ID: id, Message: message})
}

func (l *linter) checkName(path, id, name string) {
	if strings.TrimSpace(name) == "" {
		l.add(CodeEmptyName, path, id, "name is empty")
		return
	}
	if first, ok := l.names[name]; ok {
		l.add(CodeDuplicateName, path, id, fmt.Sprintf("name %q already used at %s", name, first))
		return
	}
	l.names[name] = path
}

func (l *linter) checkShortID(path, id string) {
	short := wire.ShortID(id)
	if first, ok := l.shortIDs[short]; ok {
		l.add(CodeShortIDCollision, path, id, fmt.Sprintf("wire id %q collides with %s", short, first))
		return
	}
	l.shortIDs[short] = path
}

func (l *linter) checkField(path string, field model.Field) {
	l.checkName(path, field.ID, field.Name)
	l.checkShortID(path, field.ID)

	if !field.Type.Valid() {
		l.add(CodeUnknownType, path, field.ID, fmt.Sprintf("unknown field type %q", field.Type))
		return
	}
	switch {
	case field.Type.IsChoice() && len(field.Options) == 0:
		l.add(CodeMissingOptions, path, field.ID, fmt.Sprintf("%s field has no options", field.Type))
	case !field.Type.IsChoice() && len(field.Options) > 0:
		l.add(CodeUnexpectedOptions, path, field.ID, fmt.Sprintf("%s field carries options that will not be sent", field.Type))
	}
}
