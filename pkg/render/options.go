package render

// RenderOptions describe per-request data that renderers can use to customise
// their output without touching the builder tree.
type RenderOptions struct {
	// Title is shown above the form by document renderers.
	Title string
	// Action and Method describe where a rendered HTML form submits. Empty
	// values leave the attributes off.
	Action string
	Method string
	// Theme and Variant select a theme manifest for renderers that support
	// theming.
	Theme   string
	Variant string
	// Errors surfaces feedback keyed by field id. MapErrorPayload builds it
	// from looser payloads.
	Errors map[string][]string
	// FormErrors is feedback that applies to the whole form.
	FormErrors []string
	// HiddenFields are emitted as hidden inputs, see MergeHiddenFields.
	HiddenFields map[string]string
	// ServerURL is advertised by renderers that describe an API.
	ServerURL string
}
