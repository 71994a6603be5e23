package server

import (
	"github.com/goliatone/go-formbuilder/pkg/builder"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/session"
)

// stateView is the JSON shape of GET /api/state and of every mutation
// response.
type stateView struct {
	Fieldsets []model.Group    `json:"fieldsets"`
	Selection *model.Selection `json:"selection"`
	Saving    bool             `json:"saving"`
	LoadError string           `json:"loadError,omitempty"`
	SaveError string           `json:"saveError,omitempty"`
}

func newStateView(state builder.State, status session.Status) stateView {
	groups := state.Groups()
	if groups == nil {
		groups = []model.Group{}
	}
	view := stateView{
		Fieldsets: groups,
		Selection: state.Selection(),
		Saving:    status.Saving,
	}
	if status.LoadErr != nil {
		view.LoadError = status.LoadErr.Error()
	}
	if status.SaveErr != nil {
		view.SaveError = status.SaveErr.Error()
	}
	return view
}

// eventView is one websocket message.
type eventView struct {
	Type  string    `json:"type"`
	Kind  string    `json:"kind,omitempty"`
	Error string    `json:"error,omitempty"`
	State stateView `json:"state"`
}

func newEventView(event session.Event, status session.Status) eventView {
	view := eventView{
		Type:  string(event.Type),
		Kind:  string(event.Kind),
		State: newStateView(event.State, status),
	}
	if event.Err != nil {
		view.Error = event.Err.Error()
	}
	return view
}

type dropRequest struct {
	Payload jsonRaw `json:"payload"`
	Target  jsonRaw `json:"target"`
}

type moveFieldRequest struct {
	SourceGroupID string `json:"sourceGroupId"`
	SourceIndex   int    `json:"sourceIndex"`
	TargetGroupID string `json:"targetGroupId"`
	TargetIndex   int    `json:"targetIndex"`
}

type moveFieldsetRequest struct {
	From int `json:"from"`
	To   int `json:"to"`
}

type selectionRequest struct {
	GroupID string `json:"groupId"`
	FieldID string `json:"fieldId,omitempty"`
}

type optionRequest struct {
	Value string `json:"value"`
}

type saveRequest struct {
	Kind session.SaveKind `json:"kind"`
}
