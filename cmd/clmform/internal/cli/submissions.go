package cli

import (
	"encoding/json"
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-clmform/pkg/model"
)

func newSubmissionsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "submissions",
		Aliases: []string{"subs"},
		Short:   "Inspect the local submission log",
		Long: `List the workflows started from this machine, show one entry, or record a
status reported by CLM.

EXAMPLES:
  clmform submissions list
  clmform submissions show 4b1c...
  clmform submissions status 4b1c... completed`,
	}
	cmd.AddCommand(
		newSubmissionsListCommand(a),
		newSubmissionsShowCommand(a),
		newSubmissionsStatusCommand(a),
	)
	return cmd
}

func newSubmissionsListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List recorded submissions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log, err := a.submissions()
			if err != nil {
				return err
			}
			records, err := log.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(records) == 0 {
				a.ui.Info("No submissions recorded")
				return nil
			}
			sort.SliceStable(records, func(i, j int) bool {
				return records[i].SubmittedAt.After(records[j].SubmittedAt)
			})

			now := a.now()
			tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tSTATUS\tWORKFLOW\tCLIENT\tSUBMITTED")
			for _, record := range records {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
					record.ID,
					record.Status,
					record.Metadata["workflowName"],
					record.Metadata["clientName"],
					humanize.RelTime(record.SubmittedAt, now, "ago", "from now"),
				)
			}
			return tw.Flush()
		},
	}
}

func newSubmissionsShowCommand(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one submission",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := a.submissions()
			if err != nil {
				return err
			}
			record, err := log.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if asJSON {
				out, err := json.MarshalIndent(record, "", "  ")
				if err != nil {
					return err
				}
				return writeOutput(a.stdout, "", append(out, '\n'))
			}
			a.printRecord(record)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the record as JSON")
	return cmd
}

func newSubmissionsStatusCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Record a new status for a submission",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := a.submissions()
			if err != nil {
				return err
			}
			record, err := log.UpdateStatus(cmd.Context(), args[0], model.SubmissionStatus(args[1]))
			if err != nil {
				return err
			}
			a.ui.Success(fmt.Sprintf("Submission %s is now %s", record.ID, record.Status))
			return nil
		},
	}
}

func (a *app) printRecord(record model.SubmissionRecord) {
	now := a.now()
	a.ui.Header("Submission " + record.ID)
	a.ui.Infof("Status: %s", record.Status)
	a.ui.Infof("Submitted: %s (%s)", record.SubmittedAt.Format("2006-01-02 15:04:05"), humanize.RelTime(record.SubmittedAt, now, "ago", "from now"))
	if record.UpdatedAt != nil {
		a.ui.Infof("Updated: %s (%s)", record.UpdatedAt.Format("2006-01-02 15:04:05"), humanize.RelTime(*record.UpdatedAt, now, "ago", "from now"))
	}
	keys := make([]string, 0, len(record.Metadata))
	for key := range record.Metadata {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		a.ui.Infof("  %s: %s", key, record.Metadata[key])
	}
}
