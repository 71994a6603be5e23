// Package dnd models the drag-and-drop surface: palette tokens, the payloads
// a drag carries and the places it can land. Surface.Drop translates a drop
// into the corresponding builder mutation; it never changes state itself.
package dnd
