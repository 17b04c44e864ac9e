package cli

import (
	"errors"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-clmform/pkg/renderers/tui"
	"github.com/goliatone/go-clmform/pkg/token"
)

func newTokenCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage the stored CLM API token",
		Long: `Store, inspect or forget the bearer token used for submissions. JWT
tokens are decoded without verification to show issuer and expiry.

EXAMPLES:
  clmform token set          (prompts without echo)
  clmform token status
  clmform token clear`,
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "set [token]",
			Short: "Store the API token",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				raw := ""
				if len(args) == 1 {
					raw = args[0]
				} else {
					var err error
					raw, err = a.prompt.Password(cmd.Context(), tui.InputConfig{
						Message: "CLM API token",
						Validator: func(v string) error {
							if strings.TrimSpace(v) == "" {
								return errors.New("token is required")
							}
							return nil
						},
					})
					if err != nil {
						return err
					}
				}
				tokens, err := a.tokens()
				if err != nil {
					return err
				}
				if err := tokens.Save(cmd.Context(), raw); err != nil {
					return err
				}
				a.ui.Success("API token saved")
				a.printTokenInfo(token.Inspect(raw, a.now()))
				return nil
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Forget the stored API token",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				tokens, err := a.tokens()
				if err != nil {
					return err
				}
				if err := tokens.Clear(cmd.Context()); err != nil {
					return err
				}
				a.ui.Success("API token cleared")
				return nil
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Describe the stored API token",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				tokens, err := a.tokens()
				if err != nil {
					return err
				}
				raw, err := tokens.Get(cmd.Context())
				if err != nil {
					return err
				}
				if raw == "" {
					a.ui.Warning("No API token configured")
					return nil
				}
				a.printTokenInfo(token.Inspect(raw, a.now()))
				return nil
			},
		},
	)
	return cmd
}

func (a *app) printTokenInfo(info token.Info) {
	a.ui.Infof("Token: %s (%d characters)", info.Preview, info.Length)
	if !info.JWT {
		a.ui.Info("Format: opaque")
		return
	}
	a.ui.Info("Format: JWT")
	if info.Issuer != "" {
		a.ui.Infof("Issuer: %s", info.Issuer)
	}
	if info.Subject != "" {
		a.ui.Infof("Subject: %s", info.Subject)
	}
	if info.ExpiresAt != nil {
		age := humanize.RelTime(*info.ExpiresAt, a.now(), "ago", "from now")
		if info.Expired {
			a.ui.Warning("Expired " + age)
		} else {
			a.ui.Infof("Expires %s", age)
		}
	}
	if info.DocuSignIssued() {
		a.ui.Warning("Token was issued by a DocuSign account server; CLM may reject it")
	}
}
