package render

// RenderOptions describe per-request data that renderers can use to customise
// their output without mutating the form descriptors.
type RenderOptions struct {
	// Values pre-populates controls by field name. Missing entries fall back to
	// the sample value of the field.
	Values map[string]string
	// Errors surfaces validation feedback keyed by field name.
	Errors map[string][]string
	// FormErrors are messages not bound to a single field.
	FormErrors []string
	// Hidden lists extra hidden inputs emitted with the form.
	Hidden map[string]string
	// Intro is optional markup shown above the fields. HTML renderers sanitise
	// it before output.
	Intro string
	// Theme and Variant select a theme when the renderer supports theming.
	Theme   string
	Variant string
}
