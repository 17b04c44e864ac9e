package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-clmform/pkg/infer"
	"github.com/goliatone/go-clmform/pkg/model"
)

func newInferCommand(a *app) *cobra.Command {
	var (
		asJSON   bool
		save     bool
		workflow string
	)
	cmd := &cobra.Command{
		Use:   "infer [sample.xml]",
		Short: "Derive form fields from a sample parameter document",
		Long: `Parse a sample workflow parameter document and list the form fields it
produces. Leaf elements become fields; elements that cannot be encoded back
(nested markup, attributes, namespaces, invalid names) are listed as skipped.

The sample is read from the file argument, or from stdin when it is "-" or
omitted.

EXAMPLES:
  # Show the inferred fields
  clmform infer params.xml

  # Store them as the dynamic workflow configuration
  clmform infer params.xml --save --workflow "Customer Onboarding"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "-"
			if len(args) == 1 {
				path = args[0]
			}
			data, err := readInput(a.stdin, path)
			if err != nil {
				return err
			}
			sample := string(data)
			result, err := infer.New().Analyze(sample)
			if err != nil {
				return err
			}

			if asJSON {
				out, err := json.MarshalIndent(result, "", "  ")
				if err != nil {
					return err
				}
				if err := writeOutput(a.stdout, "", append(out, '\n')); err != nil {
					return err
				}
			} else {
				printInference(a, result)
			}

			if !save {
				return nil
			}
			if strings.TrimSpace(workflow) == "" {
				return errors.New("--workflow is required with --save")
			}
			workflows, err := a.workflows()
			if err != nil {
				return err
			}
			cfg := model.WorkflowConfiguration{
				WorkflowName: strings.TrimSpace(workflow),
				Fields:       result.Fields,
				SampleXML:    sample,
			}
			if err := workflows.Save(cmd.Context(), cfg); err != nil {
				return err
			}
			if !cfg.Dynamic() {
				a.ui.Warning("No fields found; submissions keep using the built-in workflows")
			}
			a.ui.Success(fmt.Sprintf("Saved %d fields for workflow %q", len(cfg.Fields), cfg.WorkflowName))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the analysis as JSON")
	cmd.Flags().BoolVar(&save, "save", false, "store the fields as the workflow configuration")
	cmd.Flags().StringVar(&workflow, "workflow", "", "CLM workflow name used with --save")
	return cmd
}

func printInference(a *app, result infer.Result) {
	if len(result.Fields) == 0 {
		a.ui.Warning("No fields found in sample")
	} else {
		a.ui.Infof("Root element: %s", result.RootElement)
		tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tTYPE\tLABEL\tOPTIONS\tSAMPLE")
		for _, field := range result.Fields {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
				field.Name, field.Type, field.Label, strings.Join(field.Options, "/"), truncate(field.SampleValue, 40))
		}
		tw.Flush()
	}
	for _, skipped := range result.Skipped {
		a.ui.Warning(fmt.Sprintf("Skipped %s (%s)", skipped.Name, skipped.Reason))
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
