package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/builder"
	"github.com/goliatone/go-formbuilder/pkg/dnd"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/session"
)

// Menu actions offered by Interact, in display order.
const (
	ActionShow          = "Show form"
	ActionAddField      = "Add field"
	ActionSelect        = "Select item"
	ActionEdit          = "Edit selection"
	ActionDuplicate     = "Duplicate field"
	ActionDelete        = "Delete field"
	ActionMoveField     = "Move field"
	ActionMoveFieldset  = "Move fieldset"
	ActionSaveDraft     = "Save draft"
	ActionSave          = "Save form"
	ActionReload        = "Reload from remote"
	ActionQuit          = "Quit"
	newFieldsetChoice   = "New fieldset"
	defaultMenuPageSize = 12
)

// Actions lists the menu entries in display order.
func Actions() []string {
	return []string{
		ActionShow, ActionAddField, ActionSelect, ActionEdit, ActionDuplicate,
		ActionDelete, ActionMoveField, ActionMoveFieldset, ActionSaveDraft,
		ActionSave, ActionReload, ActionQuit,
	}
}

// Interact runs the editing menu against sess until the user quits. Every
// change goes through the session, so observers see it as it happens.
// Aborting a sub-prompt returns to the menu; aborting the menu itself ends
// the loop with ErrAborted.
func Interact(ctx context.Context, driver PromptDriver, sess *session.Session) error {
	surface := dnd.NewSurface()
	actions := Actions()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		idx, err := driver.Select(ctx, SelectConfig{
			Message:      "What next?",
			Options:      actions,
			DefaultIndex: 0,
			PageSize:     defaultMenuPageSize,
		})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(actions) {
			continue
		}
		action := actions[idx]
		if action == ActionQuit {
			return nil
		}

		err = runAction(ctx, driver, sess, surface, action)
		switch {
		case err == nil:
		case errors.Is(err, ErrAborted):
			if err := driver.Info(ctx, "Cancelled"); err != nil {
				return err
			}
		case errors.Is(err, ErrNoSelection), errors.Is(err, ErrEmptyForm), errors.Is(err, dnd.ErrUnknownFieldType):
			if err := driver.Info(ctx, err.Error()); err != nil {
				return err
			}
		default:
			return err
		}
	}
}

func runAction(ctx context.Context, driver PromptDriver, sess *session.Session, surface *dnd.Surface, action string) error {
	switch action {
	case ActionShow:
		return driver.Info(ctx, Outline(sess.Snapshot()))
	case ActionAddField:
		return addField(ctx, driver, sess, surface)
	case ActionSelect:
		sel, err := pickItem(ctx, driver, sess.Snapshot(), true)
		if err != nil {
			return err
		}
		sess.Apply(func(state builder.State) builder.State { return state.Select(sel) })
		return nil
	case ActionEdit:
		return editSelection(ctx, driver, sess.Snapshot().Selection(), sess.Apply)
	case ActionDuplicate:
		groupID, fieldID, err := pickField(ctx, driver, sess.Snapshot())
		if err != nil {
			return err
		}
		sess.Apply(func(state builder.State) builder.State { return state.DuplicateField(groupID, fieldID) })
		return nil
	case ActionDelete:
		groupID, fieldID, err := pickField(ctx, driver, sess.Snapshot())
		if err != nil {
			return err
		}
		ok, err := driver.Confirm(ctx, ConfirmConfig{Message: "Delete this field?"})
		if err != nil || !ok {
			return err
		}
		sess.Apply(func(state builder.State) builder.State { return state.DeleteField(groupID, fieldID) })
		return nil
	case ActionMoveField:
		return moveField(ctx, driver, sess)
	case ActionMoveFieldset:
		return moveFieldset(ctx, driver, sess)
	case ActionSaveDraft, ActionSave:
		kind := session.SaveFinal
		if action == ActionSaveDraft {
			kind = session.SaveDraft
		}
		if err := sess.Save(ctx, kind); err != nil {
			return driver.Info(ctx, "Save failed: "+err.Error())
		}
		return driver.Info(ctx, fmt.Sprintf("Saved (%s)", kind))
	case ActionReload:
		ok, err := driver.Confirm(ctx, ConfirmConfig{Message: "Discard local changes and reload?"})
		if err != nil || !ok {
			return err
		}
		if err := sess.Reload(ctx); err != nil {
			return driver.Info(ctx, "Reload failed: "+err.Error())
		}
		return driver.Info(ctx, Outline(sess.Snapshot()))
	default:
		return nil
	}
}

func addField(ctx context.Context, driver PromptDriver, sess *session.Session, surface *dnd.Surface) error {
	palette := dnd.Palette()
	names := make([]string, len(palette))
	for i, token := range palette {
		names[i] = token.DisplayName
	}
	idx, err := driver.Select(ctx, SelectConfig{Message: "Field type", Options: names, DefaultIndex: 0, PageSize: len(names)})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(palette) {
		return nil
	}

	groups := sess.Snapshot().Groups()
	targets := []string{newFieldsetChoice}
	for _, group := range groups {
		targets = append(targets, group.Name)
	}
	at, err := driver.Select(ctx, SelectConfig{Message: "Add to", Options: targets, DefaultIndex: len(targets) - 1})
	if err != nil {
		return err
	}

	var target dnd.Target = dnd.CanvasTarget{}
	if at > 0 && at <= len(groups) {
		target = dnd.GroupTarget{GroupID: groups[at-1].ID}
	}
	payload := dnd.NewFieldPayload{Type: palette[idx].Type}
	_, err = sess.Update(func(state builder.State) (builder.State, error) {
		return surface.Drop(state, payload, target)
	})
	return err
}

func moveField(ctx context.Context, driver PromptDriver, sess *session.Session) error {
	state := sess.Snapshot()
	srcGroupID, fieldID, err := pickField(ctx, driver, state)
	if err != nil {
		return err
	}
	_, srcIndex, _ := state.Field(srcGroupID, fieldID)

	groups := state.Groups()
	names := make([]string, len(groups))
	for i, group := range groups {
		names[i] = group.Name
	}
	gi, err := driver.Select(ctx, SelectConfig{Message: "Move to fieldset", Options: names, DefaultIndex: 0})
	if err != nil {
		return err
	}
	if gi < 0 || gi >= len(groups) {
		return nil
	}
	dst := groups[gi]
	limit := len(dst.Fields)
	if dst.ID == srcGroupID {
		limit--
	}
	pos, err := pickPosition(ctx, driver, limit)
	if err != nil {
		return err
	}
	sess.Apply(func(state builder.State) builder.State {
		return state.MoveField(srcGroupID, srcIndex, dst.ID, pos)
	})
	return nil
}

func moveFieldset(ctx context.Context, driver PromptDriver, sess *session.Session) error {
	groups := sess.Snapshot().Groups()
	if len(groups) == 0 {
		return ErrEmptyForm
	}
	names := make([]string, len(groups))
	for i, group := range groups {
		names[i] = group.Name
	}
	from, err := driver.Select(ctx, SelectConfig{Message: "Move which fieldset?", Options: names, DefaultIndex: 0})
	if err != nil {
		return err
	}
	if from < 0 || from >= len(groups) {
		return nil
	}
	to, err := pickPosition(ctx, driver, len(groups)-1)
	if err != nil {
		return err
	}
	sess.Apply(func(state builder.State) builder.State { return state.MoveGroup(from, to) })
	return nil
}

// pickPosition asks for a 1-based position among n+1 slots and returns the
// 0-based index.
func pickPosition(ctx context.Context, driver PromptDriver, n int) (int, error) {
	if n < 0 {
		n = 0
	}
	positions := make([]string, n+1)
	for i := range positions {
		positions[i] = strconv.Itoa(i + 1)
	}
	idx, err := driver.Select(ctx, SelectConfig{Message: "Position", Options: positions, DefaultIndex: n})
	if err != nil {
		return 0, err
	}
	if idx < 0 {
		return n, nil
	}
	return idx, nil
}

type item struct {
	label string
	sel   *model.Selection
}

func listItems(state builder.State, includeGroups bool) []item {
	var items []item
	for _, group := range state.Groups() {
		if includeGroups {
			items = append(items, item{label: "[" + group.Name + "]", sel: model.GroupSelection(group)})
		}
		for _, field := range group.Fields {
			label := fmt.Sprintf("%s (%s)", field.Name, dnd.DisplayName(field.Type))
			if includeGroups {
				label = "  " + label
			} else {
				label = group.Name + " / " + label
			}
			items = append(items, item{label: label, sel: model.FieldSelection(group.ID, field)})
		}
	}
	return items
}

func pickItem(ctx context.Context, driver PromptDriver, state builder.State, includeGroups bool) (*model.Selection, error) {
	items := listItems(state, includeGroups)
	if len(items) == 0 {
		return nil, ErrEmptyForm
	}
	labels := make([]string, len(items))
	for i, it := range items {
		labels[i] = it.label
	}
	idx, err := driver.Select(ctx, SelectConfig{Message: "Pick an item", Options: labels, DefaultIndex: 0, PageSize: defaultMenuPageSize})
	if err != nil {
		return nil, err
	}
	if idx < 0 || idx >= len(items) {
		return nil, ErrNoSelection
	}
	return items[idx].sel, nil
}

// pickField uses the current field selection when there is one and asks
// otherwise.
func pickField(ctx context.Context, driver PromptDriver, state builder.State) (string, string, error) {
	if sel := state.Selection(); sel != nil && sel.Kind == model.SelectionField {
		return sel.GroupID, sel.ID(), nil
	}
	sel, err := pickItem(ctx, driver, state, false)
	if err != nil {
		return "", "", err
	}
	return sel.GroupID, sel.ID(), nil
}

// Outline renders the tree as indented text with the selection marked.
func Outline(state builder.State) string {
	groups := state.Groups()
	if len(groups) == 0 {
		return "(empty form)"
	}
	sel := state.Selection()
	var b strings.Builder
	for gi, group := range groups {
		marker := " "
		if sel.IsGroup(group.ID) {
			marker = "*"
		}
		fmt.Fprintf(&b, "%s %d. %s\n", marker, gi+1, group.Name)
		for fi, field := range group.Fields {
			marker = " "
			if sel.IsField(field.ID) {
				marker = "*"
			}
			line := fmt.Sprintf("%s    %d.%d %s (%s)", marker, gi+1, fi+1, field.Name, dnd.DisplayName(field.Type))
			if field.Required {
				line += " required"
			}
			if len(field.Options) > 0 {
				values := make([]string, len(field.Options))
				for i, option := range field.Options {
					values[i] = option.Value
				}
				line += ": " + strings.Join(values, ", ")
			}
			b.WriteString(line + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
