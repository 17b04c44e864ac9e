package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-clmform/components/products"
	"github.com/goliatone/go-clmform/pkg/clm"
	"github.com/goliatone/go-clmform/pkg/encoder"
	"github.com/goliatone/go-clmform/pkg/openapi"
	"github.com/goliatone/go-clmform/pkg/orchestrator"
	"github.com/goliatone/go-clmform/pkg/relay"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(a *app) *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the workflow relay",
		Long: `Start the HTTP relay that forwards workflow submissions and read-only
queries to the CLM API. GET / renders the current form as an HTML page.

EXAMPLES:
  clmform serve
  PORT=8080 CLM_ACCOUNT_ID=... clmform serve`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("port") {
				a.cfg.Port = port
			}
			handler, err := a.relayHandler(cmd.Context())
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv := &http.Server{
				Addr:              a.cfg.Addr(),
				Handler:           handler,
				ReadHeaderTimeout: 10 * time.Second,
			}
			errCh := make(chan error, 1)
			go func() {
				a.logger.Info("relay listening", "addr", srv.Addr, "clm", a.cfg.CLMBaseURL)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			a.logger.Info("shutting down relay")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "listen port (default $PORT or 3000)")
	return cmd
}

// relayHandler assembles the relay from the resolved settings and the stored
// workflow configuration.
func (a *app) relayHandler(ctx context.Context) (http.Handler, error) {
	ws, err := a.loadWorkspace(ctx)
	if err != nil {
		return nil, err
	}
	client := clm.NewClient(
		clm.WithBaseURL(a.cfg.CLMBaseURL),
		clm.WithOAuthURL(a.cfg.OAuthURL),
		clm.WithDefaultAccount(a.cfg.AccountID),
	)

	options := []relay.Option{
		relay.WithCLM(client),
		relay.WithLogger(a.logger),
		relay.WithProducts(products.New()),
	}
	if len(a.cfg.AllowedOrigins) > 0 {
		origins := append([]string{}, relay.DefaultAllowedOrigins...)
		options = append(options, relay.WithAllowedOrigins(append(origins, a.cfg.AllowedOrigins...)...))
	}
	if ws.workflow.Dynamic() {
		doc, err := openapi.BuildDocument(ctx, ws.workflow)
		if err != nil {
			return nil, err
		}
		options = append(options, relay.WithOpenAPI(doc))
	}

	registry, err := cliRegistry(renderFlags{page: true})
	if err != nil {
		return nil, err
	}
	orch := orchestrator.New(
		orchestrator.WithWorkflow(ws.workflow),
		orchestrator.WithLegacyNames(ws.names),
		orchestrator.WithRegistry(registry),
		orchestrator.WithLogger(a.logger),
		orchestrator.WithClock(a.now),
	)
	options = append(options, relay.WithIndex(formPage(orch)))
	return relay.NewServer(options...), nil
}

// formPage renders the current form, pre-filled from the query string.
func formPage(orch *orchestrator.Orchestrator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		values := encoder.Values{}
		for key, vals := range r.URL.Query() {
			if len(vals) > 0 {
				values[key] = vals[0]
			}
		}
		form, _, err := orch.Form(values)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		out, err := orch.Render(r.Context(), orchestrator.RenderRequest{
			Values: values,
			Title:  form.WorkflowName,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", out.ContentType)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(out.Body)
	})
}
