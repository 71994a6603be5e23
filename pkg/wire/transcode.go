package wire

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// ShortIDLength is the number of characters kept by ShortID.
const ShortIDLength = 10

// ShortID strips hyphens from id, keeps the first ShortIDLength characters and
// lowercases the result.
func ShortID(id string) string {
	stripped := []rune(strings.ReplaceAll(id, "-", ""))
	if len(stripped) > ShortIDLength {
		stripped = stripped[:ShortIDLength]
	}
	return strings.ToLower(string(stripped))
}

// Type maps an internal field type to its wire input type.
func Type(ft model.FieldType) string {
	if ft == model.FieldTypeNumberSelect {
		return string(model.FieldTypeSelect)
	}
	return string(ft)
}

// FieldType maps a wire input type back to an internal type. Unknown values
// pass through unchanged.
func FieldType(inputType string) model.FieldType {
	return model.FieldType(inputType)
}

// ToWire converts groups to the wire representation.
func ToWire(groups []model.Group) []Group {
	out := make([]Group, 0, len(groups))
	for _, group := range groups {
		fields := make([]Field, 0, len(group.Fields))
		for _, field := range group.Fields {
			fields = append(fields, Field{
				LabelName:   field.Name,
				LabelTextID: ShortID(field.ID),
				InputType:   Type(field.Type),
				Options:     wireOptions(field),
			})
		}
		out = append(out, Group{
			FieldsetName:   group.Name,
			FieldsetTextID: ShortID(group.ID),
			Fields:         fields,
		})
	}
	return out
}

// FromWire converts wire groups to the editing representation. Labels mirror
// names, placeholders are empty and nothing is required.
func FromWire(groups []Group) []model.Group {
	out := make([]model.Group, 0, len(groups))
	for _, group := range groups {
		fields := make([]model.Field, 0, len(group.Fields))
		for _, field := range group.Fields {
			ft := FieldType(field.InputType)
			fields = append(fields, model.Field{
				ID:          field.LabelTextID,
				Type:        ft,
				Name:        field.LabelName,
				Label:       field.LabelName,
				Placeholder: "",
				Required:    false,
				Options:     modelOptions(ft, field.Options),
			})
		}
		out = append(out, model.Group{
			ID:     group.FieldsetTextID,
			Name:   group.FieldsetName,
			Fields: fields,
		})
	}
	return out
}

func wireOptions(field model.Field) Options {
	if !field.Type.IsChoice() {
		return Options{}
	}
	values := make([]string, 0, len(field.Options))
	for _, option := range field.Options {
		values = append(values, option.Value)
	}
	return Choices(values...)
}

func modelOptions(ft model.FieldType, values Options) []model.Option {
	out := []model.Option{}
	if !ft.IsChoice() || !values.IsList() {
		return out
	}
	for i, value := range values.Values {
		out = append(out, model.Option{
			ID:    "option-" + strconv.Itoa(i),
			Value: value,
		})
	}
	return out
}
