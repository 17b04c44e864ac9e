package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-clmform/pkg/orchestrator"
	"github.com/goliatone/go-clmform/pkg/render"
	"github.com/goliatone/go-clmform/pkg/renderers/html"
	jsonrenderer "github.com/goliatone/go-clmform/pkg/renderers/json"
)

type renderFlags struct {
	renderer    string
	valuesFile  string
	title       string
	action      string
	intro       string
	theme       string
	variant     string
	templates   string
	submitLabel string
	page        bool
	output      string
}

func newRenderCommand(a *app) *cobra.Command {
	var f renderFlags
	cmd := &cobra.Command{
		Use:   "render [key=value...]",
		Short: "Render the current form as HTML or JSON",
		Long: `Render the form a submission would use. The stored dynamic configuration
drives the fields when present; otherwise the built-in workflow chosen by the
values is rendered. Values pre-fill the controls.

EXAMPLES:
  # HTML fragment on stdout
  clmform render

  # Standalone page written to a file
  clmform render --page --title "Customer Onboarding" --output form.html

  # Form description for a client-side renderer
  clmform render --renderer json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := readValues(a.stdin, f.valuesFile, args)
			if err != nil {
				return err
			}
			registry, err := cliRegistry(f)
			if err != nil {
				return err
			}
			orch, err := a.orchestrator(cmd.Context(), orchestrator.WithRegistry(registry))
			if err != nil {
				return err
			}
			out, err := orch.Render(cmd.Context(), orchestrator.RenderRequest{
				Renderer: f.renderer,
				Values:   values,
				Title:    f.title,
				Action:   f.action,
				Options: render.RenderOptions{
					Intro:   f.intro,
					Theme:   f.theme,
					Variant: f.variant,
				},
			})
			if err != nil {
				return err
			}
			a.logger.Debug("form rendered", "renderer", f.renderer, "mode", out.Mode.String(), "bytes", len(out.Body))
			return writeOutput(a.stdout, f.output, out.Body)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&f.renderer, "renderer", "html", "renderer name: html or json")
	flags.StringVar(&f.valuesFile, "values", "", `JSON object with form values ("-" for stdin)`)
	flags.StringVar(&f.title, "title", "", "form title")
	flags.StringVar(&f.action, "action", "", "form action URL")
	flags.StringVar(&f.intro, "intro", "", "intro markup shown above the fields (sanitised)")
	flags.StringVar(&f.theme, "theme", "", "theme name")
	flags.StringVar(&f.variant, "variant", "", "theme variant")
	flags.StringVar(&f.templates, "templates", "", "directory with a templates/form.tmpl override")
	flags.StringVar(&f.submitLabel, "submit-label", "", "submit button text")
	flags.BoolVar(&f.page, "page", false, "wrap the form in a standalone HTML page")
	flags.StringVar(&f.output, "output", "", "write to this file instead of stdout")
	return cmd
}

func cliRegistry(f renderFlags) (*render.Registry, error) {
	registry := render.NewRegistry()
	renderers := []render.Renderer{
		html.New(
			html.WithPage(f.page),
			html.WithTemplatesDir(f.templates),
			html.WithSubmitLabel(f.submitLabel),
		),
		jsonrenderer.New(),
	}
	for _, r := range renderers {
		if err := registry.Register(r); err != nil {
			return nil, fmt.Errorf("register renderer: %w", err)
		}
	}
	return registry, nil
}
