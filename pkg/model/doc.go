// Package model defines the editing representation of a form schema: ordered
// groups (fieldsets) of fields, each optionally carrying ordered options, and
// the single-item selection the properties editor works on.
package model
