package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/wire"
)

// Name identifies the fill-in renderer in a render.Registry.
const Name = "tui"

const dateLayout = "2006-01-02"

// Renderer implements render.Renderer by asking the form's questions in the
// terminal and serializing the answers. It lets authors try a form the way
// its users will.
type Renderer struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	answerKeys        AnswerKeys
	submitTransformer SubmitTransformer
	theme             Theme
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) *Renderer {
	r := &Renderer{outputFormat: OutputFormatJSON, answerKeys: AnswerKeysByName}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}
	return r
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return Name
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Render prompts for every field of groups in order. Feedback from
// options.Errors is printed before the question it concerns.
func (r *Renderer) Render(ctx context.Context, groups []model.Group, options render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}

	mapping := render.MapErrorPayload(groups, options.Errors)
	if title := strings.TrimSpace(options.Title); title != "" {
		if err := r.info(ctx, title); err != nil {
			return nil, err
		}
	}
	for _, message := range render.MergeFormErrors(mapping.Form, options.FormErrors...) {
		if err := r.problem(ctx, message); err != nil {
			return nil, err
		}
	}

	answers := NewAnswers()
	for _, group := range groups {
		groupKey := r.answerKey(group.Name, group.ID)
		if err := r.info(ctx, displayName(group.Name, group.ID)); err != nil {
			return nil, err
		}
		for _, message := range mapping.Groups[group.ID] {
			if err := r.problem(ctx, message); err != nil {
				return nil, err
			}
		}
		for _, field := range group.Fields {
			for _, message := range mapping.Fields[field.ID] {
				if err := r.problem(ctx, message); err != nil {
					return nil, err
				}
			}
			value, ok, err := r.promptField(ctx, field)
			if err != nil {
				return nil, err
			}
			if ok {
				answers.Set(groupKey, r.answerKey(field.Name, field.ID), value)
			}
		}
	}

	values := answers.Values()
	if r.submitTransformer != nil {
		var err error
		values, err = r.submitTransformer(values)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}
	return r.serialize(values)
}

// promptField asks for one field. ok is false when the field produced no
// answer.
func (r *Renderer) promptField(ctx context.Context, field model.Field) (any, bool, error) {
	switch field.Type {
	case model.FieldTypeLabel:
		return nil, false, r.info(ctx, displayLabel(field))
	case model.FieldTypeTextarea:
		return r.promptText(ctx, field, true)
	case model.FieldTypeNumber:
		return r.promptNumber(ctx, field)
	case model.FieldTypeDate:
		return r.promptDate(ctx, field)
	case model.FieldTypeSelect, model.FieldTypeRadio, model.FieldTypeNumberSelect:
		return r.promptChoice(ctx, field)
	case model.FieldTypeCheckbox:
		return r.promptCheckbox(ctx, field)
	default:
		return r.promptText(ctx, field, false)
	}
}

func (r *Renderer) promptText(ctx context.Context, field model.Field, multiline bool) (any, bool, error) {
	label := displayLabel(field)
	for {
		var response string
		var err error
		if multiline {
			response, err = r.driver.TextArea(ctx, TextAreaConfig{Message: label, Help: field.Placeholder})
		} else {
			response, err = r.driver.Input(ctx, InputConfig{Message: label, Help: field.Placeholder})
		}
		if err != nil {
			return nil, false, err
		}
		if strings.TrimSpace(response) == "" {
			if field.Required {
				if err := r.problem(ctx, label+" is required"); err != nil {
					return nil, false, err
				}
				continue
			}
			return nil, false, nil
		}
		return response, true, nil
	}
}

func (r *Renderer) promptNumber(ctx context.Context, field model.Field) (any, bool, error) {
	label := displayLabel(field)
	for {
		input, err := r.driver.Input(ctx, InputConfig{Message: label, Help: field.Placeholder})
		if err != nil {
			return nil, false, err
		}
		input = strings.TrimSpace(input)
		if input == "" {
			if field.Required {
				if err := r.problem(ctx, label+" is required"); err != nil {
					return nil, false, err
				}
				continue
			}
			return nil, false, nil
		}
		parsed, err := strconv.ParseFloat(input, 64)
		if err != nil {
			if err := r.problem(ctx, fmt.Sprintf("%s must be a number", label)); err != nil {
				return nil, false, err
			}
			continue
		}
		return parsed, true, nil
	}
}

func (r *Renderer) promptDate(ctx context.Context, field model.Field) (any, bool, error) {
	label := displayLabel(field)
	for {
		input, err := r.driver.Input(ctx, InputConfig{Message: label, Help: "YYYY-MM-DD"})
		if err != nil {
			return nil, false, err
		}
		input = strings.TrimSpace(input)
		if input == "" {
			if field.Required {
				if err := r.problem(ctx, label+" is required"); err != nil {
					return nil, false, err
				}
				continue
			}
			return nil, false, nil
		}
		if _, err := time.Parse(dateLayout, input); err != nil {
			if err := r.problem(ctx, fmt.Sprintf("%s must be a date like 2024-01-31", label)); err != nil {
				return nil, false, err
			}
			continue
		}
		return input, true, nil
	}
}

func (r *Renderer) promptChoice(ctx context.Context, field model.Field) (any, bool, error) {
	label := displayLabel(field)
	options := optionValues(field)
	if len(options) == 0 {
		return nil, false, r.info(ctx, label+" has no options")
	}
	for {
		idx, err := r.driver.Select(ctx, SelectConfig{Message: label, Options: options, DefaultIndex: -1, Help: field.Placeholder})
		if err != nil {
			return nil, false, err
		}
		if idx < 0 || idx >= len(options) {
			if err := r.problem(ctx, "Invalid selection for "+label); err != nil {
				return nil, false, err
			}
			continue
		}
		selected := options[idx]
		if field.Type == model.FieldTypeNumberSelect {
			if n, err := strconv.ParseFloat(strings.TrimSpace(selected), 64); err == nil {
				return n, true, nil
			}
		}
		return selected, true, nil
	}
}

func (r *Renderer) promptCheckbox(ctx context.Context, field model.Field) (any, bool, error) {
	label := displayLabel(field)
	options := optionValues(field)
	if len(options) <= 1 {
		for {
			checked, err := r.driver.Confirm(ctx, ConfirmConfig{Message: label})
			if err != nil {
				return nil, false, err
			}
			if !checked && field.Required {
				if err := r.problem(ctx, label+" must be checked"); err != nil {
					return nil, false, err
				}
				continue
			}
			if len(options) == 0 {
				return checked, true, nil
			}
			if checked {
				return []string{options[0]}, true, nil
			}
			return []string{}, true, nil
		}
	}

	for {
		indices, err := r.driver.MultiSelect(ctx, SelectConfig{Message: label, Options: options})
		if err != nil {
			return nil, false, err
		}
		selected := valuesFromIndices(options, indices)
		if len(selected) == 0 && field.Required {
			if err := r.problem(ctx, "Pick at least one "+label); err != nil {
				return nil, false, err
			}
			continue
		}
		return selected, true, nil
	}
}

func (r *Renderer) info(ctx context.Context, msg string) error {
	return r.driver.Info(ctx, r.theme.InfoPrefix+msg)
}

func (r *Renderer) problem(ctx context.Context, msg string) error {
	return r.driver.Info(ctx, r.theme.ErrorPrefix+msg)
}

func (r *Renderer) serialize(values map[string]any) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return []byte(flattenForm(values)), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(values)), nil
	default:
		data, err := json.Marshal(values)
		if err != nil {
			return nil, fmt.Errorf("tui: encode answers: %w", err)
		}
		return data, nil
	}
}

func displayLabel(field model.Field) string {
	if field.Label != "" {
		return field.Label
	}
	return displayName(field.Name, field.ID)
}

func displayName(name, id string) string {
	if strings.TrimSpace(name) != "" {
		return name
	}
	return wire.ShortID(id)
}

// answerKey names an answer after its item, falling back to the wire id for
// unnamed items.
func (r *Renderer) answerKey(name, id string) string {
	if r.answerKeys == AnswerKeysByWireID {
		return wire.ShortID(id)
	}
	if key := strings.TrimSpace(name); key != "" {
		return key
	}
	return wire.ShortID(id)
}

func optionValues(field model.Field) []string {
	out := make([]string, 0, len(field.Options))
	for _, option := range field.Options {
		out = append(out, option.Value)
	}
	return out
}

func valuesFromIndices(options []string, indices []int) []string {
	out := make([]string, 0, len(indices))
	for _, idx := range indices {
		if idx >= 0 && idx < len(options) {
			out = append(out, options[idx])
		}
	}
	return out
}
