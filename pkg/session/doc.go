// Package session ties the builder state to the remote endpoint. A Session
// holds the current snapshot, serialises mutations, gates saves so only one
// push is in flight and fans out change events to subscribers.
package session
