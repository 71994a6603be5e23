package dnd

import (
	"fmt"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// Payload is what a drag carries.
type Payload interface {
	payload()
}

// NewFieldPayload is a palette token being dragged onto the canvas.
type NewFieldPayload struct {
	Type model.FieldType
}

// ExistingFieldPayload is a field already on the canvas, addressed by its
// group and position.
type ExistingFieldPayload struct {
	GroupID string
	Index   int
}

func (NewFieldPayload) payload()      {}
func (ExistingFieldPayload) payload() {}

// Target is where a drag is released.
type Target interface {
	target()
}

// CanvasTarget is the empty canvas area.
type CanvasTarget struct{}

// GroupTarget is a group's drop zone.
type GroupTarget struct {
	GroupID string
}

// FieldTarget is an existing field; dropping on it inserts at its position.
type FieldTarget struct {
	GroupID string
	Index   int
}

func (CanvasTarget) target() {}
func (GroupTarget) target()  {}
func (FieldTarget) target()  {}

const (
	kindNew      = "new"
	kindExisting = "existing"
	kindCanvas   = "canvas"
	kindGroup    = "group"
	kindField    = "field"
)

type envelope struct {
	Kind    string `json:"kind"`
	Type    string `json:"type,omitempty"`
	GroupID string `json:"groupId,omitempty"`
	Index   *int   `json:"index,omitempty"`
}

// DecodePayload parses a payload envelope such as {"kind":"new","type":"text"}
// or {"kind":"existing","groupId":"g1","index":2}.
func DecodePayload(data []byte) (Payload, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("dnd: decode payload: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(env.Kind)) {
	case kindNew:
		ft := model.FieldType(strings.TrimSpace(env.Type))
		if !ft.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownFieldType, env.Type)
		}
		return NewFieldPayload{Type: ft}, nil
	case kindExisting:
		if env.GroupID == "" || env.Index == nil {
			return nil, fmt.Errorf("%w: existing payload needs groupId and index", ErrUnsupportedPayload)
		}
		return ExistingFieldPayload{GroupID: env.GroupID, Index: *env.Index}, nil
	default:
		return nil, fmt.Errorf("%w: kind %q", ErrUnsupportedPayload, env.Kind)
	}
}

// DecodeTarget parses a target envelope: {"kind":"canvas"},
// {"kind":"group","groupId":"g1"} or {"kind":"field","groupId":"g1","index":0}.
func DecodeTarget(data []byte) (Target, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("dnd: decode target: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(env.Kind)) {
	case kindCanvas:
		return CanvasTarget{}, nil
	case kindGroup:
		if env.GroupID == "" {
			return nil, fmt.Errorf("%w: group target needs groupId", ErrUnsupportedTarget)
		}
		return GroupTarget{GroupID: env.GroupID}, nil
	case kindField:
		if env.GroupID == "" || env.Index == nil {
			return nil, fmt.Errorf("%w: field target needs groupId and index", ErrUnsupportedTarget)
		}
		return FieldTarget{GroupID: env.GroupID, Index: *env.Index}, nil
	default:
		return nil, fmt.Errorf("%w: kind %q", ErrUnsupportedTarget, env.Kind)
	}
}

// EncodePayload renders p as its JSON envelope.
func EncodePayload(p Payload) ([]byte, error) {
	switch v := p.(type) {
	case NewFieldPayload:
		return json.Marshal(envelope{Kind: kindNew, Type: string(v.Type)})
	case ExistingFieldPayload:
		idx := v.Index
		return json.Marshal(envelope{Kind: kindExisting, GroupID: v.GroupID, Index: &idx})
	default:
		return nil, ErrUnsupportedPayload
	}
}

// EncodeTarget renders t as its JSON envelope.
func EncodeTarget(t Target) ([]byte, error) {
	switch v := t.(type) {
	case CanvasTarget:
		return json.Marshal(envelope{Kind: kindCanvas})
	case GroupTarget:
		return json.Marshal(envelope{Kind: kindGroup, GroupID: v.GroupID})
	case FieldTarget:
		idx := v.Index
		return json.Marshal(envelope{Kind: kindField, GroupID: v.GroupID, Index: &idx})
	default:
		return nil, ErrUnsupportedTarget
	}
}
