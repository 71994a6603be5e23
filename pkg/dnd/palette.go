package dnd

import "github.com/goliatone/go-formbuilder/pkg/model"

// Token is one palette entry.
type Token struct {
	Type        model.FieldType `json:"type"`
	DisplayName string          `json:"displayName"`
}

var displayNames = map[model.FieldType]string{
	model.FieldTypeLabel:        "Label",
	model.FieldTypeText:         "Text Field",
	model.FieldTypeNumber:       "Number Input",
	model.FieldTypeRadio:        "Radio Button",
	model.FieldTypeNumberSelect: "Number Combo Box",
	model.FieldTypeSelect:       "Combo Box",
	model.FieldTypeCheckbox:     "Checkbox",
	model.FieldTypeDate:         "Datepicker",
	model.FieldTypeTextarea:     "Text Area",
}

// Palette returns the draggable tokens in display order.
func Palette() []Token {
	types := model.FieldTypes()
	tokens := make([]Token, 0, len(types))
	for _, ft := range types {
		tokens = append(tokens, Token{Type: ft, DisplayName: DisplayName(ft)})
	}
	return tokens
}

// DisplayName returns the palette caption for ft.
func DisplayName(ft model.FieldType) string {
	if name, ok := displayNames[ft]; ok {
		return name
	}
	return string(ft)
}
