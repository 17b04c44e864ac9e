package json

import (
	"context"
	stdjson "encoding/json"
	"fmt"

	"github.com/goliatone/go-clmform/pkg/render"
)

// Document is the payload emitted for external UIs.
type Document struct {
	Form       render.Form       `json:"form"`
	FormErrors []string          `json:"formErrors,omitempty"`
	Hidden     map[string]string `json:"hidden,omitempty"`
	Intro      string            `json:"intro,omitempty"`
}

// Option configures the JSON renderer.
type Option func(*Renderer)

// WithIndent pretty-prints the output using indent.
func WithIndent(indent string) Option {
	return func(r *Renderer) {
		r.indent = indent
	}
}

// Renderer emits form descriptors as JSON.
type Renderer struct {
	indent string
}

var _ render.Renderer = (*Renderer)(nil)

func New(options ...Option) *Renderer {
	r := &Renderer{indent: "  "}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

func (r *Renderer) Name() string        { return "json" }
func (r *Renderer) ContentType() string { return "application/json" }

func (r *Renderer) Render(ctx context.Context, form render.Form, opts render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc := Document{
		Form:       render.Apply(form, opts),
		FormErrors: opts.FormErrors,
		Hidden:     opts.Hidden,
		Intro:      opts.Intro,
	}
	var (
		out []byte
		err error
	)
	if r.indent != "" {
		out, err = stdjson.MarshalIndent(doc, "", r.indent)
	} else {
		out, err = stdjson.Marshal(doc)
	}
	if err != nil {
		return nil, fmt.Errorf("json renderer: encode form: %w", err)
	}
	return out, nil
}
