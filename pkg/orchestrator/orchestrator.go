package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/goliatone/go-clmform/pkg/encoder"
	"github.com/goliatone/go-clmform/pkg/model"
	"github.com/goliatone/go-clmform/pkg/relay"
	"github.com/goliatone/go-clmform/pkg/token"
	"github.com/goliatone/go-clmform/pkg/validation"
)

// Relay dispatches a workflow request and returns the relay's reply.
type Relay interface {
	SubmitWorkflow(ctx context.Context, req relay.Request) (*relay.Response, error)
}

// Validator checks values before they are encoded.
type Validator interface {
	Validate(mode encoder.Mode, values encoder.Values) error
}

// Recorder stores successful submissions.
type Recorder interface {
	Record(ctx context.Context, record model.SubmissionRecord) error
}

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithWorkflow sets the dynamic workflow configuration. A configuration
// without fields leaves the orchestrator in legacy mode.
func WithWorkflow(cfg model.WorkflowConfiguration) Option {
	return func(o *Orchestrator) {
		o.workflow = cfg
	}
}

// WithLegacyNames overrides the CLM workflow names used in legacy mode.
func WithLegacyNames(names model.LegacyWorkflowNames) Option {
	return func(o *Orchestrator) {
		o.legacyNames = names
	}
}

// WithAccountID sets the CLM account the workflow is started in.
func WithAccountID(id string) Option {
	return func(o *Orchestrator) {
		o.accountID = strings.TrimSpace(id)
	}
}

// WithRelay injects the relay client.
func WithRelay(r Relay) Option {
	return func(o *Orchestrator) {
		o.relay = r
	}
}

// WithValidator replaces the built-in validation rules.
func WithValidator(v Validator) Option {
	return func(o *Orchestrator) {
		if v != nil {
			o.validator = v
		}
	}
}

// WithRecorder stores successful submissions through r.
func WithRecorder(r Recorder) Option {
	return func(o *Orchestrator) {
		o.recorder = r
	}
}

// WithEncoder injects a configured encoder.
func WithEncoder(e *encoder.Encoder) Option {
	return func(o *Orchestrator) {
		if e != nil {
			o.encoder = e
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithClock overrides time.Now for record timestamps and token checks.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		if now != nil {
			o.now = now
		}
	}
}

// Orchestrator turns form values into a started CLM workflow. All
// configuration is supplied at construction; it never reads storage itself.
type Orchestrator struct {
	workflow    model.WorkflowConfiguration
	legacyNames model.LegacyWorkflowNames
	accountID   string
	relay       Relay
	validator   Validator
	recorder    Recorder
	encoder     *encoder.Encoder
	renderers   renderConfig
	logger      *slog.Logger
	now         func() time.Time
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		validator: validation.New(),
		logger:    slog.Default(),
		now:       time.Now,
		renderers: renderConfig{defaultRenderer: defaultRendererName},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	if o.encoder == nil {
		o.encoder = encoder.New(encoder.WithClock(o.now))
	}
	return o
}

// Mode reports the encoding selected for values.
func (o *Orchestrator) Mode(values encoder.Values) encoder.Mode {
	return encoder.SelectMode(o.workflow, values)
}

// Submit validates, encodes and dispatches one submission. Every failure is
// returned inside the Result; no request is retried.
func (o *Orchestrator) Submit(ctx context.Context, values encoder.Values, rawToken string) Result {
	rawToken = strings.TrimSpace(rawToken)
	if rawToken == "" {
		return failure(KindConfiguration, MessageMissingToken, &ConfigurationError{Message: MessageMissingToken})
	}
	if o.accountID == "" {
		return failure(KindConfiguration, MessageMissingAccount, &ConfigurationError{Message: MessageMissingAccount})
	}
	if o.relay == nil {
		return failure(KindConfiguration, MessageMissingRelay, &ConfigurationError{Message: MessageMissingRelay})
	}

	mode := o.Mode(values)
	workflowName := mode.WorkflowName(o.legacyNames)
	logger := o.logger.With("mode", mode.String(), "workflow", workflowName)

	if err := o.validator.Validate(mode, values); err != nil {
		var verr *validation.ValidationError
		if errors.As(err, &verr) {
			return failure(KindValidation, verr.Error(), verr)
		}
		return failure(KindValidation, err.Error(), err)
	}

	params, err := o.encoder.Encode(values, mode)
	if err != nil {
		message := "Unable to build workflow parameters"
		return failure(KindConfiguration, message, &ConfigurationError{Message: message, Err: err})
	}

	o.checkToken(logger, rawToken)

	resp, err := o.relay.SubmitWorkflow(ctx, relay.Request{
		Token:     rawToken,
		AccountID: o.accountID,
		Payload:   model.SubmissionPayload{Name: workflowName, Params: params},
	})
	if err != nil {
		logger.Error("workflow submission failed", "error", err)
		return failure(KindTransport, MessageNetwork, &TransportError{Err: err})
	}

	if !resp.OK() {
		upstream := &UpstreamError{
			Status: resp.Status,
			Body:   string(resp.Body),
			Detail: upstreamDetail(resp.Status, resp.Body),
		}
		logger.Warn("workflow rejected", "status", resp.Status, "detail", upstream.Detail)
		result := failure(KindUpstream, upstream.Message(), upstream)
		result.Status = resp.Status
		result.Body = upstream.Body
		return result
	}

	result := Result{Success: true, Status: resp.Status, Body: string(resp.Body)}
	data, ok := decodeObject(resp.Body)
	if !ok {
		logger.Warn("workflow response is not a JSON object", "status", resp.Status)
		result.Message = "Workflow started successfully"
		return result
	}
	result.Data = data
	result.WorkflowID = ExtractWorkflowID(data)
	if result.WorkflowID == "" {
		result.Message = "Workflow started successfully"
		return result
	}
	result.Message = fmt.Sprintf("Workflow started successfully (ID: %s)", result.WorkflowID)
	logger.Info("workflow started", "workflow_id", result.WorkflowID)

	o.record(ctx, logger, result.WorkflowID, mode, workflowName, values)
	return result
}

func (o *Orchestrator) checkToken(logger *slog.Logger, rawToken string) {
	info := token.Inspect(rawToken, o.now())
	if !info.JWT {
		return
	}
	if info.Expired {
		logger.Warn("api token has expired", "expires_at", info.ExpiresAt, "preview", info.Preview)
	}
	if info.DocuSignIssued() {
		logger.Debug("api token issued by docusign account server", "issuer", info.Issuer)
	}
}

func (o *Orchestrator) record(ctx context.Context, logger *slog.Logger, id string, mode encoder.Mode, workflowName string, values encoder.Values) {
	if o.recorder == nil {
		return
	}
	record := model.SubmissionRecord{
		ID:          id,
		SubmittedAt: o.now(),
		Status:      model.StatusSubmitted,
		Metadata:    Metadata(mode, workflowName, values),
	}
	if err := o.recorder.Record(ctx, record); err != nil {
		logger.Error("record submission", "workflow_id", id, "error", err)
	}
}

// Metadata summarises a submission for the local log.
func Metadata(mode encoder.Mode, workflowName string, values encoder.Values) map[string]string {
	return map[string]string{
		"workflowName":    workflowName,
		"mode":            mode.String(),
		"contractRouting": valueOr(values, "contractRouting", "unknown"),
		"agentName":       valueOr(values, "agentName", "Unknown"),
		"clientName":      clientName(values),
		"salesSegment":    valueOr(values, "salesSegment", "Unknown"),
	}
}

func valueOr(values encoder.Values, key, fallback string) string {
	if v := strings.TrimSpace(values.String(key)); v != "" {
		return v
	}
	return fallback
}

func clientName(values encoder.Values) string {
	data := strings.TrimSpace(values.String("clientRegistrationData"))
	if data == "" {
		return "Unknown Client"
	}
	first, _, _ := strings.Cut(data, "\n")
	if first = strings.TrimSpace(first); first != "" {
		return first
	}
	return "Unknown Client"
}
