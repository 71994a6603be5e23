package properties

import "github.com/goliatone/go-formbuilder/pkg/model"

// Property names one editable attribute.
type Property string

const (
	PropertyName        Property = "name"
	PropertyLabel       Property = "label"
	PropertyPlaceholder Property = "placeholder"
	PropertyRequired    Property = "required"
	PropertyOptions     Property = "options"
)

// EditableProperties lists the attributes the panel exposes for kind, which
// is either a field type or model.KindFieldset. Unknown kinds expose the
// name only.
func EditableProperties(kind string) []Property {
	switch model.FieldType(kind) {
	case model.FieldTypeText, model.FieldTypeNumber, model.FieldTypeTextarea, model.FieldTypeDate:
		return []Property{PropertyName, PropertyPlaceholder}
	case model.FieldTypeSelect, model.FieldTypeNumberSelect, model.FieldTypeRadio, model.FieldTypeCheckbox:
		return []Property{PropertyName, PropertyOptions}
	default:
		return []Property{PropertyName}
	}
}

// SelectionProperties returns EditableProperties for the selected item.
func SelectionProperties(sel *model.Selection) []Property {
	if sel == nil {
		return nil
	}
	if sel.Kind == model.SelectionFieldset || sel.Field == nil {
		return EditableProperties(model.KindFieldset)
	}
	return EditableProperties(string(sel.Field.Type))
}

// Changes is a set of buffered edits, as submitted by a client in one go.
// Options maps option id to the new value.
type Changes struct {
	Name        *string           `json:"name,omitempty"`
	Label       *string           `json:"label,omitempty"`
	Placeholder *string           `json:"placeholder,omitempty"`
	Required    *bool             `json:"required,omitempty"`
	Options     map[string]string `json:"options,omitempty"`
}
