package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-clmform/pkg/encoder"
	"github.com/goliatone/go-clmform/pkg/model"
)

func newEncodeCommand(a *app) *cobra.Command {
	var (
		valuesFile string
		modeName   string
		payload    bool
	)
	cmd := &cobra.Command{
		Use:   "encode [key=value...]",
		Short: "Print the XML parameters a set of values encodes to",
		Long: `Encode form values into the workflow parameter document without
submitting anything. Values come from a JSON object (--values) and key=value
arguments; arguments win.

The mode defaults to the one a submission would use: the stored dynamic
configuration when present, else the agent contract when agentName and
agentRole are set, else the general product signup.

EXAMPLES:
  clmform encode fullName="Ada Lovelace" email=ada@example.com
  clmform encode --values values.json --mode agent
  clmform encode --values values.json --payload`,
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := readValues(a.stdin, valuesFile, args)
			if err != nil {
				return err
			}
			ws, err := a.loadWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			mode, err := resolveMode(modeName, ws.workflow, values)
			if err != nil {
				return err
			}
			params, err := encoder.New(encoder.WithClock(a.now)).Encode(values, mode)
			if err != nil {
				return err
			}
			if !payload {
				return writeOutput(a.stdout, "", []byte(params+"\n"))
			}
			out, err := json.MarshalIndent(model.SubmissionPayload{
				Name:   mode.WorkflowName(ws.names),
				Params: params,
			}, "", "  ")
			if err != nil {
				return err
			}
			return writeOutput(a.stdout, "", append(out, '\n'))
		},
	}
	cmd.Flags().StringVar(&valuesFile, "values", "", `JSON object with form values ("-" for stdin)`)
	cmd.Flags().StringVar(&modeName, "mode", "auto", "encoding mode: auto, dynamic, general or agent")
	cmd.Flags().BoolVar(&payload, "payload", false, "print the full CLM submission payload")
	return cmd
}

func resolveMode(name string, cfg model.WorkflowConfiguration, values encoder.Values) (encoder.Mode, error) {
	switch name {
	case "", "auto":
		return encoder.SelectMode(cfg, values), nil
	case "dynamic":
		if !cfg.Dynamic() {
			return encoder.Mode{}, errors.New("no dynamic workflow configuration is stored")
		}
		return encoder.Dynamic(cfg), nil
	case model.LegacyWorkflowGeneral:
		return encoder.LegacyGeneral(), nil
	case model.LegacyWorkflowAgent:
		return encoder.LegacyAgent(), nil
	default:
		return encoder.Mode{}, fmt.Errorf("unknown mode %q", name)
	}
}
