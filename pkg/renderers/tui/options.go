package tui

import (
	"fmt"
	"strings"
)

// OutputFormat names the encoding Render uses for the collected answers.
type OutputFormat string

const (
	OutputFormatJSON           OutputFormat = "json"
	OutputFormatFormURLEncoded OutputFormat = "form"
	OutputFormatPrettyText     OutputFormat = "pretty"
)

// ParseOutputFormat accepts the names used on the command line. Blank input
// selects JSON.
func ParseOutputFormat(value string) (OutputFormat, error) {
	switch OutputFormat(strings.ToLower(strings.TrimSpace(value))) {
	case "", OutputFormatJSON:
		return OutputFormatJSON, nil
	case OutputFormatFormURLEncoded:
		return OutputFormatFormURLEncoded, nil
	case OutputFormatPrettyText:
		return OutputFormatPrettyText, nil
	}
	return "", fmt.Errorf("tui: unsupported answer format %q (want json, form or pretty)", value)
}

// AnswerKeys decides what a fieldset or field answer is keyed by.
type AnswerKeys string

const (
	// AnswerKeysByName keys answers by the item name, using the short wire id
	// only for unnamed items.
	AnswerKeysByName AnswerKeys = "name"
	// AnswerKeysByWireID keys answers by the short id the endpoint stores,
	// which stays stable when authors rename items.
	AnswerKeysByWireID AnswerKeys = "id"
)

// ParseAnswerKeys accepts "name" or "id". Blank input selects names.
func ParseAnswerKeys(value string) (AnswerKeys, error) {
	switch AnswerKeys(strings.ToLower(strings.TrimSpace(value))) {
	case "", AnswerKeysByName:
		return AnswerKeysByName, nil
	case AnswerKeysByWireID:
		return AnswerKeysByWireID, nil
	}
	return "", fmt.Errorf("tui: unsupported answer keys %q (want name or id)", value)
}

// Theme holds the prefixes printed before headings and validation messages.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// SubmitTransformer rewrites the answers before they are encoded.
type SubmitTransformer func(map[string]any) (map[string]any, error)

// Option configures the renderer.
type Option func(*Renderer)

// WithPromptDriver replaces the survey-backed driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

func WithOutputFormat(format OutputFormat) Option {
	return func(r *Renderer) {
		if format != "" {
			r.outputFormat = format
		}
	}
}

// WithAnswerKeys selects how answers are keyed. The default is
// AnswerKeysByName.
func WithAnswerKeys(keys AnswerKeys) Option {
	return func(r *Renderer) {
		if keys != "" {
			r.answerKeys = keys
		}
	}
}

func WithSubmitTransformer(fn SubmitTransformer) Option {
	return func(r *Renderer) {
		r.submitTransformer = fn
	}
}

func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}
