package clmform

import (
	"context"
	"fmt"
	"io/fs"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-clmform/pkg/encoder"
	"github.com/goliatone/go-clmform/pkg/infer"
	"github.com/goliatone/go-clmform/pkg/model"
	"github.com/goliatone/go-clmform/pkg/orchestrator"
	"github.com/goliatone/go-clmform/pkg/render"
	"github.com/goliatone/go-clmform/pkg/renderers/html"
	jsonrenderer "github.com/goliatone/go-clmform/pkg/renderers/json"
)

// FieldSpec describes one form field; alias exported via the root package
// for convenience.
type FieldSpec = model.FieldSpec

// WorkflowConfiguration binds a CLM workflow to its field schema.
type WorkflowConfiguration = model.WorkflowConfiguration

// Values holds submitted form values keyed by field name.
type Values = encoder.Values

// Result is the outcome of one submission.
type Result = orchestrator.Result

// RenderOptions describes per-request overrides that renderers can use to
// prefill values or surface server-side validation errors.
type RenderOptions = render.RenderOptions

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Configure infers the fields of sample and binds them to workflowName. The
// returned configuration is validated but not persisted.
func Configure(workflowName, sample string) (WorkflowConfiguration, error) {
	fields, err := infer.Infer(sample)
	if err != nil {
		return WorkflowConfiguration{}, err
	}
	cfg := WorkflowConfiguration{WorkflowName: workflowName, Fields: fields, SampleXML: sample}
	if err := cfg.Validate(); err != nil {
		return WorkflowConfiguration{}, fmt.Errorf("clmform: %w", err)
	}
	return cfg, nil
}

// GenerateHTML renders the form of cfg pre-filled with values using the html
// renderer. It is the simplest entry point for callers that just want markup.
func GenerateHTML(ctx context.Context, cfg WorkflowConfiguration, values Values, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(append([]orchestrator.Option{orchestrator.WithWorkflow(cfg)}, options...)...)
	out, err := gen.Render(ctx, orchestrator.RenderRequest{
		Renderer: "html",
		Values:   values,
		Title:    cfg.WorkflowName,
	})
	if err != nil {
		return nil, err
	}
	return out.Body, nil
}

// EncodeParams returns the XML parameters a submission of values would carry.
func EncodeParams(cfg WorkflowConfiguration, values Values) (string, error) {
	return encoder.Encode(values, encoder.SelectMode(cfg, values))
}

// WithThemeSelector registers html and json renderers where the html renderer
// resolves RenderOptions.Theme through selector.
func WithThemeSelector(selector theme.ThemeSelector, options ...html.Option) orchestrator.Option {
	registry := render.NewRegistry()
	registry.MustRegister(html.New(append([]html.Option{html.WithThemeSelector(selector)}, options...)...))
	registry.MustRegister(jsonrenderer.New())
	return orchestrator.WithRegistry(registry)
}

// AssetsFS exposes the default stylesheet of the html renderer so Go
// applications can serve it without copying files.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(clmform.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return html.AssetsFS()
}
