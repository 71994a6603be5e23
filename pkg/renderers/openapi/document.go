package openapi

import (
	"slices"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/wire"
)

const (
	// SubmissionPath is the single path the exported document describes.
	SubmissionPath = "/submissions"
	// SubmissionSchema names the request body schema under components.
	SubmissionSchema = "FormSubmission"
	// OperationID identifies the submit operation.
	OperationID = "submitForm"

	openAPIVersion = "3.0.3"
	defaultTitle   = "Form submissions"
	defaultVersion = "1.0.0"
)

// Build describes a submission of the form as an OpenAPI 3.0 document: one
// object property per fieldset and one property per field inside it. Static
// label fields are left out.
func Build(groups []model.Group, options render.RenderOptions) *openapi3.T {
	title := strings.TrimSpace(options.Title)
	if title == "" {
		title = defaultTitle
	}

	submission := openapi3.NewObjectSchema()
	submission.Title = title
	groupKeys := newKeySet()
	for _, group := range groups {
		groupSchema, required := groupSchema(group)
		key := groupKeys.claim(group.Name, group.ID)
		submission.WithProperty(key, groupSchema)
		if required {
			submission.Required = append(submission.Required, key)
		}
	}

	body := openapi3.NewRequestBody().
		WithRequired(true).
		WithDescription("Answers keyed by fieldset, then by field name.").
		WithJSONSchemaRef(openapi3.NewSchemaRef("#/components/schemas/"+SubmissionSchema, submission))

	operation := &openapi3.Operation{
		OperationID: OperationID,
		Summary:     "Submit " + title,
		RequestBody: &openapi3.RequestBodyRef{Value: body},
		Responses: openapi3.NewResponses(
			openapi3.WithStatus(201, &openapi3.ResponseRef{Value: openapi3.NewResponse().WithDescription("Submission accepted")}),
			openapi3.WithStatus(422, &openapi3.ResponseRef{Value: openapi3.NewResponse().WithDescription("Submission rejected")}),
		),
	}

	doc := &openapi3.T{
		OpenAPI: openAPIVersion,
		Info: &openapi3.Info{
			Title:   title,
			Version: defaultVersion,
		},
		Paths: openapi3.NewPaths(openapi3.WithPath(SubmissionPath, &openapi3.PathItem{Post: operation})),
		Components: &openapi3.Components{
			Schemas: openapi3.Schemas{
				SubmissionSchema: openapi3.NewSchemaRef("", submission),
			},
		},
	}
	if url := strings.TrimSpace(options.ServerURL); url != "" {
		doc.Servers = openapi3.Servers{{URL: url}}
	}
	return doc
}

func groupSchema(group model.Group) (*openapi3.Schema, bool) {
	schema := openapi3.NewObjectSchema()
	schema.Title = group.Name
	keys := newKeySet()
	for _, field := range group.Fields {
		property := fieldSchema(field)
		if property == nil {
			continue
		}
		key := keys.claim(field.Name, field.ID)
		schema.WithProperty(key, property)
		if field.Required {
			schema.Required = append(schema.Required, key)
		}
	}
	return schema, len(schema.Required) > 0
}

// fieldSchema maps a field to its property schema. It returns nil for
// fields that take no input.
func fieldSchema(field model.Field) *openapi3.Schema {
	var schema *openapi3.Schema
	switch field.Type {
	case model.FieldTypeLabel:
		return nil
	case model.FieldTypeNumber:
		schema = openapi3.NewFloat64Schema()
	case model.FieldTypeDate:
		schema = openapi3.NewStringSchema().WithFormat("date")
	case model.FieldTypeSelect, model.FieldTypeRadio:
		schema = enumSchema(optionValues(field), false)
	case model.FieldTypeNumberSelect:
		schema = enumSchema(optionValues(field), true)
	case model.FieldTypeCheckbox:
		schema = openapi3.NewArraySchema().WithItems(enumSchema(optionValues(field), false))
		schema.UniqueItems = true
	default:
		schema = openapi3.NewStringSchema()
	}
	schema.Title = field.Label
	if field.Placeholder != "" {
		schema.Description = field.Placeholder
	}
	return schema
}

// enumSchema restricts a schema to values. Numeric enums are used only when
// every value parses as a number.
func enumSchema(values []string, numeric bool) *openapi3.Schema {
	if numeric {
		numbers := make([]any, 0, len(values))
		for _, value := range values {
			n, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
			if err != nil {
				numbers = nil
				break
			}
			numbers = append(numbers, n)
		}
		if numbers != nil {
			schema := openapi3.NewFloat64Schema()
			if len(numbers) > 0 {
				schema.WithEnum(numbers...)
			}
			return schema
		}
	}

	schema := openapi3.NewStringSchema()
	if len(values) > 0 {
		enum := make([]any, len(values))
		for i, value := range values {
			enum[i] = value
		}
		schema.WithEnum(enum...)
	}
	return schema
}

// optionValues returns the distinct option values in order.
func optionValues(field model.Field) []string {
	var values []string
	for _, option := range field.Options {
		if !slices.Contains(values, option.Value) {
			values = append(values, option.Value)
		}
	}
	return values
}

// keySet hands out unique property keys. Repeated names get the item's wire
// id appended, then a counter if that still collides.
type keySet map[string]struct{}

func newKeySet() keySet {
	return make(keySet)
}

func (k keySet) claim(name, id string) string {
	key := strings.TrimSpace(name)
	if key == "" {
		key = "item"
	}
	if _, taken := k[key]; taken {
		if short := wire.ShortID(id); short != "" {
			key += "_" + short
		}
	}
	candidate := key
	for i := 2; ; i++ {
		if _, taken := k[candidate]; !taken {
			break
		}
		candidate = key + "_" + strconv.Itoa(i)
	}
	k[candidate] = struct{}{}
	return candidate
}
