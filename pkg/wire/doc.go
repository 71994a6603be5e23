// Package wire converts between the builder's editing representation and the
// JSON shape exchanged with the remote schema endpoint.
//
// The conversion is lossy by contract. Ids are shortened to their first ten
// hyphen-stripped, lowercased characters, so two ids sharing such a prefix
// collide on the wire; the remote side depends on this format, so it is kept
// as is. The number-select type is sent as "select" and comes back as
// select. Option ids are not transmitted and are rebuilt as "option-<index>".
package wire
