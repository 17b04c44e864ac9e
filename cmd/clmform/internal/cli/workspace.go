package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-clmform/pkg/model"
	"github.com/goliatone/go-clmform/pkg/orchestrator"
	"github.com/goliatone/go-clmform/pkg/relay"
	"github.com/goliatone/go-clmform/pkg/validation"
)

type workspace struct {
	workflow model.WorkflowConfiguration
	names    model.LegacyWorkflowNames
}

func (a *app) loadWorkspace(ctx context.Context) (workspace, error) {
	workflows, err := a.workflows()
	if err != nil {
		return workspace{}, err
	}
	cfg, err := workflows.Load(ctx)
	if err != nil {
		return workspace{}, fmt.Errorf("load workflow configuration: %w", err)
	}
	names, err := workflows.LegacyNames(ctx)
	if err != nil {
		return workspace{}, fmt.Errorf("load legacy workflow names: %w", err)
	}
	return workspace{workflow: cfg, names: names}, nil
}

// orchestrator wires the stored state, the relay client and the submission
// log into an Orchestrator. Extra options are applied last.
func (a *app) orchestrator(ctx context.Context, extra ...orchestrator.Option) (*orchestrator.Orchestrator, error) {
	ws, err := a.loadWorkspace(ctx)
	if err != nil {
		return nil, err
	}
	log, err := a.submissions()
	if err != nil {
		return nil, err
	}

	options := []orchestrator.Option{
		orchestrator.WithWorkflow(ws.workflow),
		orchestrator.WithLegacyNames(ws.names),
		orchestrator.WithAccountID(a.cfg.AccountID),
		orchestrator.WithRecorder(log),
		orchestrator.WithLogger(a.logger),
		orchestrator.WithClock(a.now),
	}
	if a.cfg.RelayURL != "" {
		client, err := relay.NewClient(a.cfg.RelayURL)
		if err != nil {
			return nil, err
		}
		options = append(options, orchestrator.WithRelay(client))
	}
	options = append(options, extra...)
	return orchestrator.New(options...), nil
}

func (a *app) storedToken(ctx context.Context, override string) (string, error) {
	if override != "" {
		return override, nil
	}
	tokens, err := a.tokens()
	if err != nil {
		return "", err
	}
	return tokens.Get(ctx)
}

// report prints the outcome of a submission and turns failures into errors.
func (a *app) report(result orchestrator.Result) error {
	if result.Success {
		a.ui.Success(result.Message)
		return nil
	}
	var verr *validation.ValidationError
	if errors.As(result.Err, &verr) {
		for _, issue := range verr.Issues() {
			a.ui.Error(issue.Field + ": " + issue.Message)
		}
	}
	return errors.New(result.Message)
}
