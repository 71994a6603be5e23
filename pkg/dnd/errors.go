package dnd

import "errors"

var (
	// ErrUnknownFieldType is returned when a new-field payload names a token
	// that is not on the palette.
	ErrUnknownFieldType = errors.New("dnd: unknown field type")
	// ErrUnsupportedPayload is returned for payloads the surface cannot route.
	ErrUnsupportedPayload = errors.New("dnd: unsupported payload")
	// ErrUnsupportedTarget is returned for drop targets the surface cannot route.
	ErrUnsupportedTarget = errors.New("dnd: unsupported target")
)
