package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrNoSelection is returned when editing is requested with nothing
	// selected.
	ErrNoSelection = errors.New("tui: nothing is selected")
	// ErrEmptyForm is returned when there is nothing to pick from.
	ErrEmptyForm = errors.New("tui: the form has no fields")
)
