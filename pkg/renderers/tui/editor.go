package tui

import (
	"context"
	"fmt"

	"github.com/goliatone/go-formbuilder/pkg/builder"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/properties"
)

// mutator applies fn to the state being edited and returns the result.
type mutator func(fn func(builder.State) builder.State) builder.State

// EditSelection walks the editable properties of the selected item and
// returns state with the edits applied. Option additions and deletions take
// effect as they are made; the remaining edits are committed together at the
// end. On error the original state is returned.
func EditSelection(ctx context.Context, driver PromptDriver, state builder.State) (builder.State, error) {
	current := state
	apply := func(fn func(builder.State) builder.State) builder.State {
		current = fn(current)
		return current
	}
	if err := editSelection(ctx, driver, state.Selection(), apply); err != nil {
		return state, err
	}
	return current, nil
}

func editSelection(ctx context.Context, driver PromptDriver, sel *model.Selection, apply mutator) error {
	if sel == nil {
		return ErrNoSelection
	}
	editor := properties.New(sel)

	for _, property := range editor.Properties() {
		switch property {
		case properties.PropertyName:
			value, err := driver.Input(ctx, InputConfig{Message: "Name", Default: editor.Name()})
			if err != nil {
				return err
			}
			if value != editor.Name() {
				editor.SetName(value)
			}
		case properties.PropertyLabel:
			value, err := driver.Input(ctx, InputConfig{Message: "Label", Default: editor.Label()})
			if err != nil {
				return err
			}
			if value != editor.Label() {
				editor.SetLabel(value)
			}
		case properties.PropertyPlaceholder:
			value, err := driver.Input(ctx, InputConfig{Message: "Placeholder", Default: editor.Placeholder()})
			if err != nil {
				return err
			}
			if value != editor.Placeholder() {
				editor.SetPlaceholder(value)
			}
		case properties.PropertyRequired:
			value, err := driver.Confirm(ctx, ConfirmConfig{Message: "Required?", Default: editor.Required()})
			if err != nil {
				return err
			}
			if value != editor.Required() {
				editor.SetRequired(value)
			}
		case properties.PropertyOptions:
			if err := editOptions(ctx, driver, editor, apply); err != nil {
				return err
			}
		}
	}

	apply(editor.Apply)
	return nil
}

const (
	optionsDone = iota
	optionsEdit
	optionsAdd
	optionsDelete
)

var optionsMenu = []string{"Done", "Edit values", "Add option", "Delete option"}

func editOptions(ctx context.Context, driver PromptDriver, editor *properties.Editor, apply mutator) error {
	for {
		if err := driver.Info(ctx, describeOptions(editor.Options())); err != nil {
			return err
		}
		choice, err := driver.Select(ctx, SelectConfig{Message: "Options", Options: optionsMenu, DefaultIndex: optionsDone})
		if err != nil {
			return err
		}

		switch choice {
		case optionsEdit:
			for i, option := range editor.Options() {
				value, err := driver.Input(ctx, InputConfig{Message: fmt.Sprintf("Option %d", i+1), Default: option.Value})
				if err != nil {
					return err
				}
				if value != option.Value {
					editor.SetOption(option.ID, value)
				}
			}
		case optionsAdd:
			apply(editor.AddOption)
		case optionsDelete:
			options := editor.Options()
			if len(options) == 0 {
				if err := driver.Info(ctx, "There are no options to delete"); err != nil {
					return err
				}
				continue
			}
			idx, err := driver.Select(ctx, SelectConfig{Message: "Delete which option?", Options: optionLabels(options), DefaultIndex: -1})
			if err != nil {
				return err
			}
			if idx < 0 || idx >= len(options) {
				continue
			}
			optionID := options[idx].ID
			apply(func(state builder.State) builder.State {
				return editor.DeleteOption(state, optionID)
			})
		default:
			return nil
		}
	}
}

func describeOptions(options []model.Option) string {
	if len(options) == 0 {
		return "No options yet"
	}
	out := "Options:"
	for i, option := range options {
		out += fmt.Sprintf("\n  %d. %s", i+1, option.Value)
	}
	return out
}

func optionLabels(options []model.Option) []string {
	out := make([]string, len(options))
	for i, option := range options {
		out[i] = fmt.Sprintf("%d. %s", i+1, option.Value)
	}
	return out
}
