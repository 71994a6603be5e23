package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"

	"github.com/goliatone/go-formbuilder/pkg/builder"
	"github.com/goliatone/go-formbuilder/pkg/dnd"
	"github.com/goliatone/go-formbuilder/pkg/properties"
	"github.com/goliatone/go-formbuilder/pkg/remote"
	"github.com/goliatone/go-formbuilder/pkg/session"
	"github.com/goliatone/go-formbuilder/pkg/validation"
)

type jsonRaw = json.RawMessage

func (s *Server) palette(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, dnd.Palette())
}

func (s *Server) state(w http.ResponseWriter, _ *http.Request) {
	s.writeState(w, s.session.Snapshot())
}

func (s *Server) lint(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, validation.Lint(s.session.Snapshot().Groups()))
}

func (s *Server) writeState(w http.ResponseWriter, state builder.State) {
	writeJSON(w, http.StatusOK, newStateView(state, s.session.Status()))
}

// apply runs a total mutation and responds with the resulting state.
func (s *Server) apply(w http.ResponseWriter, fn func(builder.State) builder.State) {
	s.writeState(w, s.session.Apply(fn))
}

func (s *Server) drop(w http.ResponseWriter, r *http.Request) {
	var req dropRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidBody, err.Error())
		return
	}
	payload, err := dnd.DecodePayload(req.Payload)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidPayload, err.Error())
		return
	}
	target, err := dnd.DecodeTarget(req.Target)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidPayload, err.Error())
		return
	}
	next, err := s.session.Update(func(state builder.State) (builder.State, error) {
		return s.surface.Drop(state, payload, target)
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidPayload, err.Error())
		return
	}
	s.writeState(w, next)
}

func (s *Server) patchGroup(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupID")
	var patch builder.GroupPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidBody, err.Error())
		return
	}
	if _, ok := s.session.Snapshot().Group(groupID); !ok {
		writeError(w, http.StatusNotFound, CodeNotFound, fmt.Sprintf("fieldset %q not found", groupID))
		return
	}
	s.apply(w, func(state builder.State) builder.State {
		return state.UpdateGroup(groupID, patch)
	})
}

// fieldAddress reads the group and field ids from the path and reports a 404
// when the field is not in the current tree.
func (s *Server) fieldAddress(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	groupID := chi.URLParam(r, "groupID")
	fieldID := chi.URLParam(r, "fieldID")
	if _, _, ok := s.session.Snapshot().Field(groupID, fieldID); !ok {
		writeError(w, http.StatusNotFound, CodeNotFound, fmt.Sprintf("field %q not found in fieldset %q", fieldID, groupID))
		return "", "", false
	}
	return groupID, fieldID, true
}

func (s *Server) patchField(w http.ResponseWriter, r *http.Request) {
	groupID, fieldID, ok := s.fieldAddress(w, r)
	if !ok {
		return
	}
	var patch builder.FieldPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidBody, err.Error())
		return
	}
	if patch.Type != nil && !patch.Type.Valid() {
		writeError(w, http.StatusBadRequest, CodeInvalidPayload, fmt.Sprintf("unknown field type %q", *patch.Type))
		return
	}
	s.apply(w, func(state builder.State) builder.State {
		return state.UpdateField(groupID, fieldID, patch)
	})
}

func (s *Server) deleteField(w http.ResponseWriter, r *http.Request) {
	groupID, fieldID, ok := s.fieldAddress(w, r)
	if !ok {
		return
	}
	s.apply(w, func(state builder.State) builder.State {
		return state.DeleteField(groupID, fieldID)
	})
}

func (s *Server) duplicateField(w http.ResponseWriter, r *http.Request) {
	groupID, fieldID, ok := s.fieldAddress(w, r)
	if !ok {
		return
	}
	s.apply(w, func(state builder.State) builder.State {
		return state.DuplicateField(groupID, fieldID)
	})
}

func (s *Server) addOption(w http.ResponseWriter, r *http.Request) {
	groupID, fieldID, ok := s.fieldAddress(w, r)
	if !ok {
		return
	}
	s.apply(w, func(state builder.State) builder.State {
		return state.AddOption(groupID, fieldID)
	})
}

func (s *Server) updateOption(w http.ResponseWriter, r *http.Request) {
	groupID, fieldID, ok := s.fieldAddress(w, r)
	if !ok {
		return
	}
	var req optionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidBody, err.Error())
		return
	}
	optionID := chi.URLParam(r, "optionID")
	s.apply(w, func(state builder.State) builder.State {
		return state.UpdateOption(groupID, fieldID, optionID, req.Value)
	})
}

func (s *Server) deleteOption(w http.ResponseWriter, r *http.Request) {
	groupID, fieldID, ok := s.fieldAddress(w, r)
	if !ok {
		return
	}
	optionID := chi.URLParam(r, "optionID")
	s.apply(w, func(state builder.State) builder.State {
		return state.DeleteOption(groupID, fieldID, optionID)
	})
}

func (s *Server) moveField(w http.ResponseWriter, r *http.Request) {
	var req moveFieldRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidBody, err.Error())
		return
	}
	s.apply(w, func(state builder.State) builder.State {
		return state.MoveField(req.SourceGroupID, req.SourceIndex, req.TargetGroupID, req.TargetIndex)
	})
}

func (s *Server) moveFieldset(w http.ResponseWriter, r *http.Request) {
	var req moveFieldsetRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidBody, err.Error())
		return
	}
	s.apply(w, func(state builder.State) builder.State {
		return state.MoveGroup(req.From, req.To)
	})
}

func (s *Server) selectItem(w http.ResponseWriter, r *http.Request) {
	var req selectionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidBody, err.Error())
		return
	}
	snap := s.session.Snapshot()
	if req.FieldID == "" {
		if _, ok := snap.Group(req.GroupID); !ok {
			writeError(w, http.StatusNotFound, CodeNotFound, fmt.Sprintf("fieldset %q not found", req.GroupID))
			return
		}
		s.apply(w, func(state builder.State) builder.State { return state.SelectGroup(req.GroupID) })
		return
	}
	if _, _, ok := snap.Field(req.GroupID, req.FieldID); !ok {
		writeError(w, http.StatusNotFound, CodeNotFound, fmt.Sprintf("field %q not found in fieldset %q", req.FieldID, req.GroupID))
		return
	}
	s.apply(w, func(state builder.State) builder.State { return state.SelectField(req.GroupID, req.FieldID) })
}

func (s *Server) clearSelection(w http.ResponseWriter, _ *http.Request) {
	s.apply(w, builder.State.ClearSelection)
}

type propertiesRequest struct {
	Changes properties.Changes `json:"changes"`
}

var errNoSelection = errors.New("nothing is selected")

func (s *Server) commitProperties(w http.ResponseWriter, r *http.Request) {
	var req propertiesRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidBody, err.Error())
		return
	}
	next, err := s.session.Update(func(state builder.State) (builder.State, error) {
		sel := state.Selection()
		if sel == nil {
			return state, errNoSelection
		}
		editor := properties.New(sel)
		editor.SetChanges(req.Changes)
		return editor.Apply(state), nil
	})
	if err != nil {
		writeError(w, http.StatusConflict, CodeNoSelection, err.Error())
		return
	}
	s.writeState(w, next)
}

func (s *Server) save(w http.ResponseWriter, r *http.Request) {
	var req saveRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidBody, err.Error())
		return
	}
	if req.Kind != "" && req.Kind != session.SaveDraft && req.Kind != session.SaveFinal {
		writeError(w, http.StatusBadRequest, CodeInvalidBody, fmt.Sprintf("unknown save kind %q", req.Kind))
		return
	}
	if err := s.session.Save(r.Context(), req.Kind); err != nil {
		s.writeRemoteError(w, err)
		return
	}
	s.writeState(w, s.session.Snapshot())
}

func (s *Server) reload(w http.ResponseWriter, r *http.Request) {
	if err := s.session.Reload(r.Context()); err != nil {
		s.writeRemoteError(w, err)
		return
	}
	s.writeState(w, s.session.Snapshot())
}

func (s *Server) writeRemoteError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrSaveInProgress):
		writeError(w, http.StatusConflict, CodeSaveInProgress, err.Error())
	case remote.IsNetworkError(err):
		writeError(w, http.StatusBadGateway, CodeNetworkError, err.Error())
	default:
		s.logger.Error("remote operation failed", "error", err)
		writeError(w, http.StatusInternalServerError, CodeInternalError, err.Error())
	}
}
