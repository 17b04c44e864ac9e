package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-clmform/pkg/encoder"
	"github.com/goliatone/go-clmform/pkg/orchestrator"
	"github.com/goliatone/go-clmform/pkg/render"
	"github.com/goliatone/go-clmform/pkg/renderers/tui"
	"github.com/goliatone/go-clmform/pkg/validation"
)

const fillRounds = 3

func newFillCommand(a *app) *cobra.Command {
	var (
		valuesFile string
		token      string
		dryRun     bool
		yes        bool
	)
	cmd := &cobra.Command{
		Use:   "fill [key=value...]",
		Short: "Fill in the form interactively and submit it",
		Long: `Prompt for every field of the current form, then start the workflow.
Preset values become the prompt defaults; agentName and agentRole presets
select the agent contract form when no dynamic configuration is stored.

When the relay rejects the values as invalid the affected fields are asked
again with the validation messages shown.

EXAMPLES:
  clmform fill
  clmform fill agentName="Sam" agentRole="Sales"
  clmform fill --dry-run`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			presets, err := readValues(a.stdin, valuesFile, args)
			if err != nil {
				return err
			}
			orch, err := a.orchestrator(ctx)
			if err != nil {
				return err
			}
			form, mode, err := orch.Form(presets)
			if err != nil {
				return err
			}
			form.Title = form.WorkflowName

			rawToken := ""
			if !dryRun {
				if rawToken, err = a.storedToken(ctx, token); err != nil {
					return err
				}
			}

			collector := tui.New(tui.WithPromptDriver(a.prompt), tui.WithOutput(a.stderr))
			opts := render.RenderOptions{Values: stringValues(presets)}
			for round := 0; round < fillRounds; round++ {
				collected, err := collector.Collect(ctx, form, opts)
				if err != nil {
					return err
				}
				values := mergeValues(presets, collected)

				var result orchestrator.Result
				if dryRun {
					result = dryRunResult(mode, values, a.now)
				} else {
					if !yes {
						ok, err := a.prompt.Confirm(ctx, tui.ConfirmConfig{
							Message: fmt.Sprintf("Start workflow %q?", form.WorkflowName),
							Default: true,
						})
						if err != nil {
							return err
						}
						if !ok {
							return tui.ErrAborted
						}
					}
					result = orch.Submit(ctx, values, rawToken)
				}
				if result.Kind != orchestrator.KindValidation {
					if dryRun && result.Success {
						return writeOutput(a.stdout, "", []byte(result.Body+"\n"))
					}
					return a.report(result)
				}

				mapping := orchestrator.ValidationErrors(form, result)
				opts = render.RenderOptions{
					Values:     collected,
					Errors:     mapping.Fields,
					FormErrors: mapping.Form,
				}
			}
			return errors.New("too many invalid attempts")
		},
	}
	cmd.Flags().StringVar(&valuesFile, "values", "", `JSON object with preset values ("-" for stdin)`)
	cmd.Flags().StringVar(&token, "token", "", "API token (defaults to the stored token)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the encoded parameters instead of submitting")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "submit without asking for confirmation")
	return cmd
}

func dryRunResult(mode encoder.Mode, values encoder.Values, now func() time.Time) orchestrator.Result {
	if err := validation.Validate(mode, values); err != nil {
		return orchestrator.Result{Kind: orchestrator.KindValidation, Message: err.Error(), Err: err}
	}
	params, err := encoder.New(encoder.WithClock(now)).Encode(values, mode)
	if err != nil {
		return orchestrator.Result{Kind: orchestrator.KindConfiguration, Message: err.Error(), Err: err}
	}
	return orchestrator.Result{Success: true, Body: params}
}

func stringValues(values encoder.Values) map[string]string {
	if len(values) == 0 {
		return nil
	}
	out := make(map[string]string, len(values))
	for key := range values {
		out[key] = values.String(key)
	}
	return out
}

func mergeValues(presets encoder.Values, collected map[string]string) encoder.Values {
	merged := make(encoder.Values, len(presets)+len(collected))
	for key, value := range presets {
		merged[key] = value
	}
	for key, value := range collected {
		merged[key] = value
	}
	return merged
}
