package dnd

import (
	"fmt"
	"log/slog"

	"github.com/goliatone/go-formbuilder/pkg/builder"
)

// SurfaceOption configures a Surface.
type SurfaceOption func(*Surface)

// WithLogger attaches a logger that records ignored drops.
func WithLogger(logger *slog.Logger) SurfaceOption {
	return func(s *Surface) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Surface routes drops to builder mutations.
type Surface struct {
	logger *slog.Logger
}

// NewSurface constructs a Surface.
func NewSurface(opts ...SurfaceOption) *Surface {
	s := &Surface{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Drop applies the mutation implied by releasing payload over target.
//
// New fields dropped on the canvas start a new group, on a group they are
// appended, on a field they are inserted at that field's index. Existing
// fields dropped on a group move to its end; dropped on another field of the
// same group they are reordered. Every other combination leaves the state
// untouched.
func (s *Surface) Drop(state builder.State, payload Payload, target Target) (builder.State, error) {
	switch p := payload.(type) {
	case NewFieldPayload:
		if !p.Type.Valid() {
			return state, fmt.Errorf("%w: %q", ErrUnknownFieldType, p.Type)
		}
		return s.dropNew(state, p, target)
	case ExistingFieldPayload:
		return s.dropExisting(state, p, target)
	default:
		return state, fmt.Errorf("%w: %T", ErrUnsupportedPayload, payload)
	}
}

func (s *Surface) dropNew(state builder.State, p NewFieldPayload, target Target) (builder.State, error) {
	switch t := target.(type) {
	case CanvasTarget:
		return state.DropField(p.Type, "", builder.AppendIndex), nil
	case GroupTarget:
		return state.DropField(p.Type, t.GroupID, builder.AppendIndex), nil
	case FieldTarget:
		return state.DropField(p.Type, t.GroupID, t.Index), nil
	default:
		return state, fmt.Errorf("%w: %T", ErrUnsupportedTarget, target)
	}
}

func (s *Surface) dropExisting(state builder.State, p ExistingFieldPayload, target Target) (builder.State, error) {
	switch t := target.(type) {
	case CanvasTarget:
		s.logger.Debug("ignored drop of existing field on canvas", "group", p.GroupID, "index", p.Index)
		return state, nil
	case GroupTarget:
		group, ok := state.Group(t.GroupID)
		if !ok {
			return state, nil
		}
		return state.MoveField(p.GroupID, p.Index, t.GroupID, len(group.Fields)), nil
	case FieldTarget:
		if t.GroupID != p.GroupID || t.Index == p.Index {
			s.logger.Debug("ignored field-on-field drop",
				"source_group", p.GroupID, "source_index", p.Index,
				"target_group", t.GroupID, "target_index", t.Index)
			return state, nil
		}
		return state.MoveField(p.GroupID, p.Index, t.GroupID, t.Index), nil
	default:
		return state, fmt.Errorf("%w: %T", ErrUnsupportedTarget, target)
	}
}
