package components

// Field is the render-ready view of a builder field. Every string has already
// been sanitised, so templates may emit them with the safe filter. Value is
// the submitted value of a single checkbox.
type Field struct {
	ID          string   `json:"id"`
	ControlID   string   `json:"control_id"`
	Name        string   `json:"name"`
	Label       string   `json:"label"`
	LabelHTML   string   `json:"label_html"`
	Type        string   `json:"type"`
	InputType   string   `json:"input_type"`
	Widget      string   `json:"widget"`
	Placeholder string   `json:"placeholder"`
	Required    bool     `json:"required"`
	Value       string   `json:"value"`
	Options     []Option `json:"options"`
	Errors      []string `json:"errors"`
}

// Option is the render-ready view of one choice.
type Option struct {
	ID        string `json:"id"`
	ControlID string `json:"control_id"`
	Value     string `json:"value"`
}
