package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-clmform/internal/config"
	"github.com/goliatone/go-clmform/pkg/renderers/tui"
	"github.com/goliatone/go-clmform/pkg/store"
)

// Option customises the command tree. Tests use it to swap IO, environment
// and the interactive prompt driver.
type Option func(*app)

// WithIO replaces stdin, stdout and stderr.
func WithIO(in io.Reader, out, errOut io.Writer) Option {
	return func(a *app) {
		if in != nil {
			a.stdin = in
		}
		if out != nil {
			a.stdout = out
		}
		if errOut != nil {
			a.stderr = errOut
		}
	}
}

// WithLookup replaces os.LookupEnv for configuration loading.
func WithLookup(lookup func(string) (string, bool)) Option {
	return func(a *app) {
		if lookup != nil {
			a.lookup = lookup
		}
	}
}

// WithPromptDriver replaces the survey prompts used by fill and token set.
func WithPromptDriver(driver tui.PromptDriver) Option {
	return func(a *app) {
		if driver != nil {
			a.prompt = driver
		}
	}
}

// WithClock overrides the clock used for timestamps and relative ages.
func WithClock(now func() time.Time) Option {
	return func(a *app) {
		if now != nil {
			a.now = now
		}
	}
}

type globalFlags struct {
	configFile string
	envFile    string
	dataDir    string
	accountID  string
	relayURL   string
	logLevel   string
}

type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	lookup func(string) (string, bool)
	prompt tui.PromptDriver
	now    func() time.Time

	flags  globalFlags
	cfg    config.Config
	logger *slog.Logger
	blob   *store.FileBlob
	ui     *printer
}

// NewRootCommand builds the clmform command tree.
func NewRootCommand(options ...Option) *cobra.Command {
	a := &app{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		lookup: os.LookupEnv,
		now:    time.Now,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(a)
	}
	if a.prompt == nil {
		a.prompt = tui.NewSurveyDriver(a.stderr)
	}
	a.ui = newPrinter(a.stdout)

	root := &cobra.Command{
		Use:   "clmform",
		Short: "Build CLM workflow forms from sample XML and submit them",
		Long: `clmform turns a sample workflow parameter document into a form, collects
values for it and starts the CLM workflow through a relay.

Without a stored workflow configuration the two built-in Vodafone workflows
(general product signup and agent contract) are used.

WORKFLOW:
  1. clmform config set --workflow "My Workflow" --sample params.xml
  2. clmform token set
  3. clmform fill            (interactive)  or  clmform submit key=value ...
  4. clmform submissions list

EXAMPLES:
  # Inspect the fields a sample document would produce
  clmform infer params.xml

  # Preview the XML a set of values encodes to
  clmform encode --values values.json

  # Render the form as a standalone HTML page
  clmform render --page --output form.html

  # Run the relay on port 3000
  clmform serve`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.prepare()
		},
	}
	root.SetIn(a.stdin)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&a.flags.configFile, "config", "", "YAML settings file (default $"+config.EnvFile+")")
	flags.StringVar(&a.flags.envFile, "env-file", ".env", "dotenv file read before the environment")
	flags.StringVar(&a.flags.dataDir, "data-dir", "", "directory holding the stored configuration, token and submissions")
	flags.StringVar(&a.flags.accountID, "account-id", "", "CLM account id")
	flags.StringVar(&a.flags.relayURL, "relay-url", "", "base URL of the workflow relay")
	flags.StringVar(&a.flags.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(
		newInferCommand(a),
		newEncodeCommand(a),
		newRenderCommand(a),
		newFillCommand(a),
		newSubmitCommand(a),
		newConfigCommand(a),
		newTokenCommand(a),
		newSubmissionsCommand(a),
		newOpenAPICommand(a),
		newServeCommand(a),
	)
	return root
}

// Execute runs the command tree against the process environment and returns
// the exit code.
func Execute() int {
	root := NewRootCommand()
	if err := root.ExecuteContext(context.Background()); err != nil {
		newPrinter(os.Stderr).Error(err.Error())
		return 1
	}
	return 0
}

func (a *app) prepare() error {
	cfg, err := config.Load(
		config.WithFile(a.flags.configFile),
		config.WithEnvFile(a.flags.envFile),
		config.WithLookup(a.lookup),
	)
	if err != nil {
		return err
	}
	if v := strings.TrimSpace(a.flags.dataDir); v != "" {
		cfg.DataDir = v
	}
	if v := strings.TrimSpace(a.flags.accountID); v != "" {
		cfg.AccountID = v
	}
	if v := strings.TrimSpace(a.flags.relayURL); v != "" {
		cfg.RelayURL = v
	}
	if v := strings.TrimSpace(a.flags.logLevel); v != "" {
		cfg.LogLevel = v
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = cfg.Logger(a.stderr)
	return nil
}

func (a *app) store() (*store.FileBlob, error) {
	if a.blob != nil {
		return a.blob, nil
	}
	blob, err := store.NewFileBlob(a.cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("open data directory: %w", err)
	}
	a.blob = blob
	return blob, nil
}

func (a *app) workflows() (*store.WorkflowStore, error) {
	blob, err := a.store()
	if err != nil {
		return nil, err
	}
	return store.NewWorkflowStore(blob), nil
}

func (a *app) tokens() (*store.TokenStore, error) {
	blob, err := a.store()
	if err != nil {
		return nil, err
	}
	return store.NewTokenStore(blob), nil
}

func (a *app) submissions() (*store.SubmissionLog, error) {
	blob, err := a.store()
	if err != nil {
		return nil, err
	}
	return store.NewSubmissionLog(blob, store.WithSubmissionClock(a.now)), nil
}
