package wire

import (
	"bytes"
	"errors"
	"fmt"
	"sort"

	json "github.com/goccy/go-json"
)

// ErrUnexpectedPayload is returned when a payload is neither an array nor an
// object.
var ErrUnexpectedPayload = errors.New("wire: payload is neither an array nor an object")

// WrapperKeys lists the object keys checked, in order, when the remote wraps
// the schema array in an object.
var WrapperKeys = []string{"data", "fieldsets", "schema", "form", "formData", "items", "result"}

const maxWrapDepth = 3

// DecodePayload parses a remote payload. It accepts a bare array of groups or
// an object wrapping that array, either under one of WrapperKeys or as its
// only array-valued member. Empty bodies, null and objects without an array
// yield an empty schema.
func DecodePayload(raw []byte) ([]Group, error) {
	return decodePayload(raw, 0)
}

func decodePayload(raw []byte, depth int) ([]Group, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []Group{}, nil
	}

	switch trimmed[0] {
	case '[':
		var groups []Group
		if err := json.Unmarshal(trimmed, &groups); err != nil {
			return nil, fmt.Errorf("wire: decode schema array: %w", err)
		}
		if groups == nil {
			groups = []Group{}
		}
		return groups, nil
	case '{':
		if depth >= maxWrapDepth {
			return []Group{}, nil
		}
		var envelope map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return nil, fmt.Errorf("wire: decode schema envelope: %w", err)
		}
		inner, ok := unwrap(envelope)
		if !ok {
			return []Group{}, nil
		}
		return decodePayload(inner, depth+1)
	default:
		return nil, ErrUnexpectedPayload
	}
}

func unwrap(envelope map[string]json.RawMessage) (json.RawMessage, bool) {
	for _, key := range WrapperKeys {
		if value, ok := envelope[key]; ok && isContainer(value) {
			return value, true
		}
	}

	var arrays []string
	for key, value := range envelope {
		if startsWith(value, '[') {
			arrays = append(arrays, key)
		}
	}
	if len(arrays) == 1 {
		return envelope[arrays[0]], true
	}
	if len(arrays) > 1 {
		// Ambiguous envelopes fall back to the first key in sorted order so
		// decoding stays deterministic.
		sort.Strings(arrays)
		return envelope[arrays[0]], true
	}
	return nil, false
}

func isContainer(value json.RawMessage) bool {
	return startsWith(value, '[') || startsWith(value, '{')
}

func startsWith(value json.RawMessage, b byte) bool {
	trimmed := bytes.TrimSpace(value)
	return len(trimmed) > 0 && trimmed[0] == b
}

// EncodePayload serialises groups as the bare array the remote expects.
func EncodePayload(groups []Group) ([]byte, error) {
	if groups == nil {
		groups = []Group{}
	}
	data, err := json.Marshal(groups)
	if err != nil {
		return nil, fmt.Errorf("wire: encode schema: %w", err)
	}
	return data, nil
}
