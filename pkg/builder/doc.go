// Package builder implements the form builder's state store: an immutable
// tree of groups, fields and options plus the current selection.
//
// Every operation is a method on State with a value receiver that returns a
// new State. The receiver is never modified; slices along the changed path
// are copied and untouched groups are shared between snapshots. Operations
// addressing ids that do not resolve return the state unchanged.
//
// After each mutation the selection is synchronised: when the mutated item is
// the selected one, the selection's copy is refreshed so editors see the
// change without a separate lookup.
package builder
