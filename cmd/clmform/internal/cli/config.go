package cli

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-clmform/internal/config"
	"github.com/goliatone/go-clmform/pkg/infer"
	"github.com/goliatone/go-clmform/pkg/model"
)

func newConfigCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the stored workflow configuration",
		Long: `Show or change the dynamic workflow configuration and the names of the
built-in workflows.

EXAMPLES:
  clmform config show
  clmform config set --workflow "Customer Onboarding" --sample params.xml
  clmform config set --fields fields.yaml
  clmform config legacy-name agent "Partner Agent Workflow"
  clmform config clear`,
	}
	cmd.AddCommand(
		newConfigShowCommand(a),
		newConfigSetCommand(a),
		newConfigClearCommand(a),
		newConfigLegacyNameCommand(a),
	)
	return cmd
}

type configView struct {
	Settings    config.Config               `yaml:"settings"`
	Workflow    model.WorkflowConfiguration `yaml:"workflow"`
	Dynamic     bool                        `yaml:"dynamic"`
	LegacyNames map[string]string           `yaml:"legacyNames"`
}

func newConfigShowCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the resolved settings and stored workflow configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := a.loadWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			view := configView{
				Settings: a.cfg,
				Workflow: ws.workflow,
				Dynamic:  ws.workflow.Dynamic(),
				LegacyNames: map[string]string{
					model.LegacyWorkflowGeneral: ws.names.Name(model.LegacyWorkflowGeneral),
					model.LegacyWorkflowAgent:   ws.names.Name(model.LegacyWorkflowAgent),
				},
			}
			var buf bytes.Buffer
			enc := yaml.NewEncoder(&buf)
			enc.SetIndent(2)
			if err := enc.Encode(view); err != nil {
				return fmt.Errorf("encode configuration: %w", err)
			}
			if err := enc.Close(); err != nil {
				return err
			}
			return writeOutput(a.stdout, "", buf.Bytes())
		},
	}
}

func newConfigSetCommand(a *app) *cobra.Command {
	var (
		workflow   string
		samplePath string
		fieldsPath string
		root       string
	)
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Replace the dynamic workflow configuration",
		Long: `Replace the stored configuration. Flags that are not given keep their
stored value. --sample infers the fields from a sample document; --fields
reads a YAML list of field definitions instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if samplePath != "" && fieldsPath != "" {
				return errors.New("--sample and --fields are mutually exclusive")
			}
			workflows, err := a.workflows()
			if err != nil {
				return err
			}
			cfg, err := workflows.Load(cmd.Context())
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("workflow") {
				cfg.WorkflowName = strings.TrimSpace(workflow)
			}
			if cmd.Flags().Changed("root-element") {
				cfg.RootElement = strings.TrimSpace(root)
			}
			if samplePath != "" {
				data, err := readInput(a.stdin, samplePath)
				if err != nil {
					return err
				}
				result, err := infer.New().Analyze(string(data))
				if err != nil {
					return err
				}
				for _, skipped := range result.Skipped {
					a.ui.Warning(fmt.Sprintf("Skipped %s (%s)", skipped.Name, skipped.Reason))
				}
				cfg.Fields = result.Fields
				cfg.SampleXML = string(data)
			}
			if fieldsPath != "" {
				fields, err := readFields(a, fieldsPath)
				if err != nil {
					return err
				}
				cfg.Fields = fields
			}

			if err := workflows.Save(cmd.Context(), cfg); err != nil {
				return err
			}
			if cfg.Dynamic() {
				a.ui.Success(fmt.Sprintf("Dynamic workflow %q configured with %d fields", cfg.WorkflowName, len(cfg.Fields)))
			} else {
				a.ui.Warning("Configuration saved but dynamic mode is disabled (workflow name and fields are both required)")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&workflow, "workflow", "", "CLM workflow name")
	cmd.Flags().StringVar(&samplePath, "sample", "", `sample parameter document ("-" for stdin)`)
	cmd.Flags().StringVar(&fieldsPath, "fields", "", "YAML file with a list of field definitions")
	cmd.Flags().StringVar(&root, "root-element", "", "root element wrapping the encoded fields")
	return cmd
}

func readFields(a *app, path string) ([]model.FieldSpec, error) {
	data, err := readInput(a.stdin, path)
	if err != nil {
		return nil, err
	}
	var fields []model.FieldSpec
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fields); err != nil {
		return nil, fmt.Errorf("parse fields %s: %w", path, err)
	}
	for i := range fields {
		if fields[i].Label == "" {
			fields[i].Label = model.DefaultLabeler(fields[i].Name)
		}
		if fields[i].Type == "" {
			fields[i].Type, fields[i].Options = infer.InferType(fields[i].SampleValue)
		}
	}
	return fields, nil
}

func newConfigClearCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove the dynamic configuration and return to the built-in workflows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			workflows, err := a.workflows()
			if err != nil {
				return err
			}
			if err := workflows.Clear(cmd.Context()); err != nil {
				return err
			}
			a.ui.Success("Workflow configuration cleared")
			return nil
		},
	}
}

func newConfigLegacyNameCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "legacy-name <general|agent> <workflow name>",
		Short: "Set the CLM workflow name of a built-in workflow",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := args[0]
			if kind != model.LegacyWorkflowGeneral && kind != model.LegacyWorkflowAgent {
				return fmt.Errorf("unknown workflow kind %q (want %s or %s)", kind, model.LegacyWorkflowGeneral, model.LegacyWorkflowAgent)
			}
			workflows, err := a.workflows()
			if err != nil {
				return err
			}
			if err := workflows.SetLegacyName(cmd.Context(), kind, args[1]); err != nil {
				return err
			}
			a.ui.Success(fmt.Sprintf("%s workflow name set to %q", kind, strings.TrimSpace(args[1])))
			return nil
		},
	}
}
