package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/goliatone/go-clmform/pkg/model"
	"github.com/goliatone/go-clmform/pkg/render"
	"github.com/goliatone/go-clmform/pkg/validation"
)

const requiredMessage = "This field is required"

// Renderer implements render.Renderer for terminal sessions. Rendering a form
// prompts for every field and returns the collected values.
type Renderer struct {
	driver       PromptDriver
	out          io.Writer
	outputFormat OutputFormat
	maxAttempts  int
	secret       map[string]struct{}
	theme        Theme
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) *Renderer {
	r := &Renderer{
		outputFormat: OutputFormatJSON,
		maxAttempts:  DefaultMaxAttempts,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver(r.out)
	}
	return r
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain; charset=utf-8"
	default:
		return "application/json"
	}
}

// Render collects values for form and serializes them.
func (r *Renderer) Render(ctx context.Context, form render.Form, opts render.RenderOptions) ([]byte, error) {
	values, err := r.Collect(ctx, form, opts)
	if err != nil {
		return nil, err
	}
	return r.serialize(form, values)
}

// Collect prompts for each field of form in order. opts.Values seed the
// defaults and opts.Errors are shown before the matching prompt.
func (r *Renderer) Collect(ctx context.Context, form render.Form, opts render.RenderOptions) (map[string]string, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	form = render.Apply(form, opts)
	if form.Title != "" {
		if err := r.info(ctx, r.theme.InfoPrefix+form.Title); err != nil {
			return nil, err
		}
	}
	for _, message := range opts.FormErrors {
		if err := r.info(ctx, r.theme.ErrorPrefix+message); err != nil {
			return nil, err
		}
	}

	values := make(map[string]string, len(form.Fields))
	for _, field := range form.Fields {
		for _, message := range field.Errors {
			if err := r.info(ctx, fmt.Sprintf("%s%s: %s", r.theme.ErrorPrefix, field.Label, message)); err != nil {
				return nil, err
			}
		}
		value, err := r.promptField(ctx, field)
		if err != nil {
			return nil, err
		}
		values[field.Name] = value
	}
	return values, nil
}

func (r *Renderer) promptField(ctx context.Context, field render.FieldDescriptor) (string, error) {
	for attempt := 0; attempt < r.maxAttempts; attempt++ {
		value, err := r.ask(ctx, field)
		if err != nil {
			return "", err
		}
		if err := check(field, value); err != nil {
			if err := r.info(ctx, fmt.Sprintf("%s%s: %v", r.theme.ErrorPrefix, field.Label, err)); err != nil {
				return "", err
			}
			continue
		}
		return value, nil
	}
	return "", fmt.Errorf("%w: %s", ErrTooManyAttempts, field.Name)
}

func (r *Renderer) ask(ctx context.Context, field render.FieldDescriptor) (string, error) {
	label := field.DisplayLabel()
	switch field.Control {
	case render.ControlSelect:
		options := make([]string, len(field.Options))
		selected := -1
		for i, option := range field.Options {
			options[i] = option.Label
			if option.Selected {
				selected = i
			}
		}
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      label,
			Options:      options,
			DefaultIndex: selected,
		})
		if err != nil {
			return "", err
		}
		if idx < 0 || idx >= len(field.Options) {
			return "", nil
		}
		return field.Options[idx].Value, nil
	case render.ControlTextarea:
		return r.driver.TextArea(ctx, TextAreaConfig{
			Message: label,
			Default: field.Value,
			Help:    field.Placeholder,
		})
	default:
		cfg := InputConfig{
			Message: label,
			Default: field.Value,
			Help:    field.Placeholder,
		}
		if _, ok := r.secret[field.Name]; ok {
			return r.driver.Password(ctx, cfg)
		}
		return r.driver.Input(ctx, cfg)
	}
}

func check(field render.FieldDescriptor, value string) error {
	if strings.TrimSpace(value) == "" {
		if field.Required {
			return errors.New(requiredMessage)
		}
		return nil
	}
	return validation.CheckType(model.FieldType(field.InputType), value)
}

func (r *Renderer) info(ctx context.Context, msg string) error {
	return r.driver.Info(ctx, msg)
}

func (r *Renderer) serialize(form render.Form, values map[string]string) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		encoded := url.Values{}
		for _, field := range form.Fields {
			encoded.Set(field.Name, values[field.Name])
		}
		return []byte(encoded.Encode()), nil
	case OutputFormatPrettyText:
		var b strings.Builder
		for _, field := range form.Fields {
			fmt.Fprintf(&b, "%s: %s\n", field.Label, values[field.Name])
		}
		return []byte(b.String()), nil
	default:
		out, err := json.MarshalIndent(values, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("tui: encode values: %w", err)
		}
		return out, nil
	}
}
