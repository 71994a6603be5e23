package wire

import (
	"bytes"

	json "github.com/goccy/go-json"
)

// Group is the wire form of a fieldset.
type Group struct {
	FieldsetName   string  `json:"fieldsetName"`
	FieldsetTextID string  `json:"fieldsetTextId"`
	Fields         []Field `json:"fields"`
}

// Field is the wire form of a field.
type Field struct {
	LabelName   string  `json:"labelName"`
	LabelTextID string  `json:"labelTextId"`
	InputType   string  `json:"inputType"`
	Options     Options `json:"options"`
}

// Options carries option values. Nil Values encode as the empty string
// literal the remote uses for fields without choices; non-nil Values, even
// empty ones, encode as an array.
type Options struct {
	Values []string
}

// Choices builds an Options value that always encodes as an array.
func Choices(values ...string) Options {
	if values == nil {
		values = []string{}
	}
	return Options{Values: values}
}

// IsList reports whether the options were (or will be) sent as an array.
func (o Options) IsList() bool {
	return o.Values != nil
}

// MarshalJSON implements json.Marshaler.
func (o Options) MarshalJSON() ([]byte, error) {
	if o.Values == nil {
		return []byte(`""`), nil
	}
	return json.Marshal(o.Values)
}

// UnmarshalJSON implements json.Unmarshaler. Arrays decode to values; strings
// and null leave Values nil.
func (o *Options) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		o.Values = nil
		return nil
	}
	var values []string
	if err := json.Unmarshal(trimmed, &values); err != nil {
		return err
	}
	if values == nil {
		values = []string{}
	}
	o.Values = values
	return nil
}
