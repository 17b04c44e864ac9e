package cli

import (
	"encoding/json"
	"errors"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-clmform/pkg/openapi"
)

func newOpenAPICommand(a *app) *cobra.Command {
	var (
		output  string
		version string
	)
	cmd := &cobra.Command{
		Use:   "openapi",
		Short: "Print the OpenAPI document of the configured workflow",
		Long: `Describe the relay workflow endpoint and the form values of the stored
dynamic configuration as an OpenAPI 3 document. The relay URL is listed as
the server.

EXAMPLES:
  clmform openapi --output openapi.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := a.loadWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			if !ws.workflow.Dynamic() {
				return errors.New("no dynamic workflow configuration is stored")
			}
			doc, err := openapi.BuildDocument(cmd.Context(), ws.workflow,
				openapi.WithServer(a.cfg.RelayURL),
				openapi.WithVersion(version),
			)
			if err != nil {
				return err
			}
			out, err := json.MarshalIndent(doc, "", "  ")
			if err != nil {
				return err
			}
			return writeOutput(a.stdout, output, append(out, '\n'))
		},
	}
	cmd.Flags().StringVar(&output, "output", "", "write to this file instead of stdout")
	cmd.Flags().StringVar(&version, "api-version", "", "info.version of the document")
	return cmd
}
