package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

func newSubmitCommand(a *app) *cobra.Command {
	var (
		valuesFile string
		token      string
		asJSON     bool
	)
	cmd := &cobra.Command{
		Use:   "submit [key=value...]",
		Short: "Validate, encode and start the workflow",
		Long: `Submit form values through the relay. The stored API token and the
configured account id are required; both are checked before any request is
sent. Successful submissions that return a workflow id are appended to the
local submission log.

EXAMPLES:
  clmform submit --values values.json
  clmform submit clientName="Acme" email=ops@acme.test --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			values, err := readValues(a.stdin, valuesFile, args)
			if err != nil {
				return err
			}
			rawToken, err := a.storedToken(ctx, token)
			if err != nil {
				return err
			}
			orch, err := a.orchestrator(ctx)
			if err != nil {
				return err
			}
			result := orch.Submit(ctx, values, rawToken)
			if asJSON {
				out, err := json.MarshalIndent(result, "", "  ")
				if err != nil {
					return err
				}
				if err := writeOutput(a.stdout, "", append(out, '\n')); err != nil {
					return err
				}
				if result.Success {
					return nil
				}
			}
			return a.report(result)
		},
	}
	cmd.Flags().StringVar(&valuesFile, "values", "", `JSON object with form values ("-" for stdin)`)
	cmd.Flags().StringVar(&token, "token", "", "API token (defaults to the stored token)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the submission result as JSON")
	return cmd
}
