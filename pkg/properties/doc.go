// Package properties implements the properties panel: a buffer of pending
// edits against the selected field or group that is committed to the builder
// state in one step, or thrown away.
package properties
