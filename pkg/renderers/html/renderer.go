package html

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"sync"

	"github.com/flosch/pongo2/v6"
	theme "github.com/goliatone/go-theme"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-clmform/pkg/render"
)

const (
	templateName       = "templates/form.tmpl"
	defaultSubmitLabel = "Submit"
)

// Option configures the HTML renderer.
type Option func(*Renderer)

// WithTemplatesFS supplies an alternate template bundle. It must contain
// templates/form.tmpl.
func WithTemplatesFS(files fs.FS) Option {
	return func(r *Renderer) {
		if files != nil {
			r.templates = files
		}
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(r *Renderer) {
		if path == "" {
			return
		}
		r.templates = os.DirFS(path)
	}
}

// WithThemeSelector resolves RenderOptions.Theme and Variant into CSS
// variables applied to the form element.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(r *Renderer) {
		r.themes = selector
	}
}

// WithPolicy replaces the sanitising policy used for intro markup.
func WithPolicy(policy *bluemonday.Policy) Option {
	return func(r *Renderer) {
		if policy != nil {
			r.policy = policy
		}
	}
}

// WithPage wraps the form in a standalone HTML document that inlines the
// default stylesheet.
func WithPage(enabled bool) Option {
	return func(r *Renderer) {
		r.page = enabled
	}
}

// WithSubmitLabel overrides the submit button text.
func WithSubmitLabel(label string) Option {
	return func(r *Renderer) {
		if label != "" {
			r.submitLabel = label
		}
	}
}

// Renderer emits plain HTML forms through a pongo2 template.
type Renderer struct {
	templates   fs.FS
	themes      theme.ThemeSelector
	policy      *bluemonday.Policy
	page        bool
	submitLabel string

	once sync.Once
	tmpl *pongo2.Template
	err  error
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the HTML renderer applying any provided options.
func New(options ...Option) *Renderer {
	r := &Renderer{
		templates:   TemplatesFS(),
		policy:      bluemonday.UGCPolicy(),
		submitLabel: defaultSubmitLabel,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

func (r *Renderer) Name() string {
	return "html"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render applies opts to form and executes the form template.
func (r *Renderer) Render(ctx context.Context, form render.Form, opts render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tmpl, err := r.template()
	if err != nil {
		return nil, err
	}

	palette, err := r.resolveTheme(opts.Theme, opts.Variant)
	if err != nil {
		return nil, err
	}

	form = render.Apply(form, opts)
	data := pongo2.Context{
		"form": map[string]any{
			"title":    form.Title,
			"workflow": form.WorkflowName,
			"action":   form.Action,
			"method":   methodOrDefault(form.Method),
		},
		"fields":       fieldViews(form.Fields),
		"form_errors":  opts.FormErrors,
		"hidden":       hiddenInputs(opts.Hidden),
		"intro":        r.sanitize(opts.Intro),
		"css_vars":     palette.style,
		"theme":        palette.name,
		"variant":      palette.variant,
		"submit_label": r.submitLabel,
		"page":         r.page,
	}
	if r.page {
		data["stylesheet"] = defaultStylesheet()
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteWriter(data, &buf); err != nil {
		return nil, fmt.Errorf("html renderer: render template: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) template() (*pongo2.Template, error) {
	r.once.Do(func() {
		set := pongo2.NewSet("clmform", pongo2.NewFSLoader(r.templates))
		r.tmpl, r.err = set.FromFile(templateName)
		if r.err != nil {
			r.err = fmt.Errorf("html renderer: load template %q: %w", templateName, r.err)
		}
	})
	return r.tmpl, r.err
}

func (r *Renderer) sanitize(markup string) string {
	if markup == "" {
		return ""
	}
	return r.policy.Sanitize(markup)
}

func methodOrDefault(method string) string {
	if method == "" {
		return "post"
	}
	return method
}

func fieldViews(fields []render.FieldDescriptor) []map[string]any {
	out := make([]map[string]any, 0, len(fields))
	for _, field := range fields {
		options := make([]map[string]any, 0, len(field.Options))
		for _, option := range field.Options {
			options = append(options, map[string]any{
				"value":    option.Value,
				"label":    option.Label,
				"selected": option.Selected,
			})
		}
		out = append(out, map[string]any{
			"name":        field.Name,
			"label":       field.DisplayLabel(),
			"control":     field.Control,
			"input_type":  field.InputType,
			"placeholder": field.Placeholder,
			"value":       field.Value,
			"required":    field.Required,
			"options":     options,
			"errors":      field.Errors,
		})
	}
	return out
}

func hiddenInputs(hidden map[string]string) []map[string]string {
	if len(hidden) == 0 {
		return nil
	}
	names := make([]string, 0, len(hidden))
	for name := range hidden {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]map[string]string, 0, len(names))
	for _, name := range names {
		out = append(out, map[string]string{"name": name, "value": hidden[name]})
	}
	return out
}
