package builder

import (
	"strconv"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

func (s State) newOption(existing int) model.Option {
	return model.Option{
		ID:    s.newID(),
		Value: "Option " + strconv.Itoa(existing+1),
	}
}

// AddOption appends an option named "Option N" to the addressed field, where
// N is the option count before the call plus one. Names are not reindexed
// after deletions, so duplicates are possible.
func (s State) AddOption(groupID, fieldID string) State {
	next, ok := s.updateField(groupID, fieldID, func(field model.Field) model.Field {
		out := field.Clone()
		out.Options = append(out.Options, s.newOption(len(field.Options)))
		return out
	})
	if !ok {
		return s
	}
	return next.syncSelection(fieldID, groupID)
}

// UpdateOption sets the value of the addressed option.
func (s State) UpdateOption(groupID, fieldID, optionID, value string) State {
	field, _, ok := s.Field(groupID, fieldID)
	if !ok || optionIndex(field, optionID) < 0 {
		return s
	}
	next, _ := s.updateField(groupID, fieldID, func(field model.Field) model.Field {
		out := field.Clone()
		out.Options[optionIndex(out, optionID)].Value = value
		return out
	})
	return next.syncSelection(fieldID, groupID)
}

// DeleteOption removes the addressed option.
func (s State) DeleteOption(groupID, fieldID, optionID string) State {
	field, _, ok := s.Field(groupID, fieldID)
	if !ok {
		return s
	}
	oi := optionIndex(field, optionID)
	if oi < 0 {
		return s
	}
	next, _ := s.updateField(groupID, fieldID, func(field model.Field) model.Field {
		out := field
		out.Options = make([]model.Option, 0, len(field.Options)-1)
		out.Options = append(out.Options, field.Options[:oi]...)
		out.Options = append(out.Options, field.Options[oi+1:]...)
		return out
	})
	return next.syncSelection(fieldID, groupID)
}
