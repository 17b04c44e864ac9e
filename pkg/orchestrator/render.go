package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-clmform/pkg/encoder"
	"github.com/goliatone/go-clmform/pkg/render"
	"github.com/goliatone/go-clmform/pkg/renderers/html"
	jsonrenderer "github.com/goliatone/go-clmform/pkg/renderers/json"
	"github.com/goliatone/go-clmform/pkg/validation"
)

const defaultRendererName = "html"

type renderConfig struct {
	registry        *render.Registry
	defaultRenderer string
}

// WithRegistry injects a renderer registry. Without it the html and json
// renderers are registered on first use.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.renderers.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		if name != "" {
			o.renderers.defaultRenderer = name
		}
	}
}

// RenderRequest describes the form to draw for a set of current values.
type RenderRequest struct {
	// Renderer names the renderer to use. Empty selects the default.
	Renderer string
	// Values are the current form values; they also drive mode selection.
	Values encoder.Values
	// Title and Action are copied onto the form.
	Title  string
	Action string
	// Options are passed to the renderer. Values found in Values are merged
	// into Options.Values when not already set.
	Options render.RenderOptions
}

// Output is a rendered form.
type Output struct {
	ContentType string
	Body        []byte
	Mode        encoder.Mode
}

// Form builds the renderer-neutral form for values.
func (o *Orchestrator) Form(values encoder.Values) (render.Form, encoder.Mode, error) {
	mode := o.Mode(values)
	fields, err := o.encoder.Fields(mode)
	if err != nil {
		return render.Form{}, mode, fmt.Errorf("orchestrator: form fields: %w", err)
	}
	form := render.NewForm("", fields)
	form.WorkflowName = mode.WorkflowName(o.legacyNames)
	form.Mode = mode.String()
	return form, mode, nil
}

// Render draws the form for req through the renderer registry.
func (o *Orchestrator) Render(ctx context.Context, req RenderRequest) (Output, error) {
	form, mode, err := o.Form(req.Values)
	if err != nil {
		return Output{}, err
	}
	form.Title = req.Title
	form.Action = req.Action

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return Output{}, err
	}

	opts := req.Options
	if len(req.Values) > 0 {
		merged := make(map[string]string, len(req.Values)+len(opts.Values))
		for key := range req.Values {
			merged[key] = req.Values.String(key)
		}
		for key, value := range opts.Values {
			merged[key] = value
		}
		opts.Values = merged
	}

	body, err := renderer.Render(ctx, form, opts)
	if err != nil {
		return Output{}, fmt.Errorf("orchestrator: render %q: %w", renderer.Name(), err)
	}
	return Output{ContentType: renderer.ContentType(), Body: body, Mode: mode}, nil
}

// ValidationErrors maps the failures of a validation Result onto form field
// messages. Other failures become a single form-level message.
func ValidationErrors(form render.Form, result Result) render.ErrorMapping {
	if result.Success {
		return render.ErrorMapping{}
	}
	var verr *validation.ValidationError
	if !errors.As(result.Err, &verr) {
		return render.ErrorMapping{Form: render.MergeFormErrors(nil, result.Message)}
	}
	payload := make(map[string][]string)
	for _, issue := range verr.Issues() {
		payload[issue.Field] = append(payload[issue.Field], issue.Message)
	}
	return render.MapErrors(form, payload)
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.renderers.registry == nil {
		registry := render.NewRegistry()
		registry.MustRegister(html.New())
		registry.MustRegister(jsonrenderer.New())
		o.renderers.registry = registry
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = o.renderers.defaultRenderer
	}
	renderer, err := o.renderers.registry.Get(name)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}
	return renderer, nil
}
