package model

var baseNames = map[string]string{
	string(FieldTypeText):         "Text Field",
	string(FieldTypeNumber):       "Number Input",
	string(FieldTypeSelect):       "Combo Box / Dropdown",
	string(FieldTypeNumberSelect): "Number Combo Box",
	string(FieldTypeRadio):        "Radio Button",
	string(FieldTypeCheckbox):     "Checkbox",
	string(FieldTypeDate):         "Datepicker",
	string(FieldTypeLabel):        "Label",
	string(FieldTypeTextarea):     "Text Area",
	KindFieldset:                  "Field-set",
}

// BaseName returns the human label used as the stem for generated names.
// Unknown kinds fall back to the raw kind string.
func BaseName(kind string) string {
	if name, ok := baseNames[kind]; ok {
		return name
	}
	return kind
}
