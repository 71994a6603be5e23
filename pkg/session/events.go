package session

import "github.com/goliatone/go-formbuilder/pkg/builder"

// EventType names a session event.
type EventType string

const (
	EventLoaded     EventType = "loaded"
	EventChanged    EventType = "changed"
	EventSaving     EventType = "saving"
	EventSaved      EventType = "saved"
	EventSaveFailed EventType = "save_failed"
)

// SaveKind distinguishes a draft save from a final one. Both push the same
// payload; the kind is reported to observers and logs.
type SaveKind string

const (
	SaveDraft SaveKind = "draft"
	SaveFinal SaveKind = "final"
)

// Event is delivered to subscribers. State is the snapshot current when the
// event fired. Kind is set for save events and Err for failures.
type Event struct {
	Type  EventType
	State builder.State
	Kind  SaveKind
	Err   error
}

const subscriberBuffer = 32

type subscriber struct {
	ch chan Event
}
