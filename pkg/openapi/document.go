package openapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-clmform/pkg/model"
	"github.com/goliatone/go-clmform/pkg/relay"
)

// Patterns advertised for string-encoded numbers and phone numbers.
const (
	NumberPattern = `^\d+$`
	PhonePattern  = `^\d{3}[-.\s]?\d{3}[-.\s]?\d{4}$`
)

// Component schema names.
const (
	SchemaFormValues        = "FormValues"
	SchemaSubmissionPayload = "SubmissionPayload"
	SchemaWorkflowRequest   = "WorkflowRequest"
	SchemaErrorResponse     = "ErrorResponse"
)

// ExtensionWorkflowName carries the CLM workflow name on the FormValues schema.
const ExtensionWorkflowName = "x-clm-workflow"

// Option customises BuildDocument.
type Option func(*options)

type options struct {
	title   string
	version string
	servers []string
}

// WithTitle sets info.title.
func WithTitle(title string) Option {
	return func(o *options) {
		if title != "" {
			o.title = title
		}
	}
}

// WithVersion sets info.version.
func WithVersion(version string) Option {
	return func(o *options) {
		if version != "" {
			o.version = version
		}
	}
}

// WithServer adds a server URL.
func WithServer(url string) Option {
	return func(o *options) {
		if url != "" {
			o.servers = append(o.servers, url)
		}
	}
}

// BuildDocument describes the relay workflow endpoint for cfg. The form
// values are exposed as the FormValues component so clients can validate
// input before it is encoded. The document is validated before it is
// returned.
func BuildDocument(ctx context.Context, cfg model.WorkflowConfiguration, opts ...Option) (*openapi3.T, error) {
	o := options{title: "CLM workflow relay", version: "1.0.0"}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&o)
	}

	values, err := FormValuesSchema(cfg)
	if err != nil {
		return nil, err
	}

	payload := openapi3.NewObjectSchema().
		WithProperty("Name", openapi3.NewStringSchema().WithMinLength(1)).
		WithProperty("Params", openapi3.NewStringSchema())
	payload.Required = []string{"Name", "Params"}
	payload.Description = "Workflow name and XML parameters sent to CLM"

	request := openapi3.NewObjectSchema().
		WithProperty("token", openapi3.NewStringSchema()).
		WithProperty("accountId", openapi3.NewStringSchema())
	request.Properties["payload"] = componentRef(SchemaSubmissionPayload, payload)
	request.Required = []string{"token", "accountId", "payload"}

	errResponse := openapi3.NewObjectSchema().
		WithProperty("error", openapi3.NewStringSchema()).
		WithProperty("message", openapi3.NewStringSchema())
	errResponse.Required = []string{"error"}

	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:   o.title,
			Version: o.version,
		},
		Components: &openapi3.Components{
			Schemas: openapi3.Schemas{
				SchemaFormValues:        openapi3.NewSchemaRef("", values),
				SchemaSubmissionPayload: openapi3.NewSchemaRef("", payload),
				SchemaWorkflowRequest:   openapi3.NewSchemaRef("", request),
				SchemaErrorResponse:     openapi3.NewSchemaRef("", errResponse),
			},
		},
		Paths: openapi3.NewPaths(openapi3.WithPath(relay.WorkflowsPath, &openapi3.PathItem{
			Post: workflowOperation(request, errResponse),
		})),
	}
	for _, url := range o.servers {
		doc.Servers = append(doc.Servers, &openapi3.Server{URL: url})
	}

	if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("openapi: validate document: %w", err)
	}
	return doc, nil
}

func workflowOperation(request, errResponse *openapi3.Schema) *openapi3.Operation {
	errRef := componentRef(SchemaErrorResponse, errResponse)
	respond := func(description string, schema *openapi3.SchemaRef) *openapi3.ResponseRef {
		response := openapi3.NewResponse().WithDescription(description)
		if schema != nil {
			response.WithJSONSchemaRef(schema)
		}
		return &openapi3.ResponseRef{Value: response}
	}

	return &openapi3.Operation{
		OperationID: "startWorkflow",
		Summary:     "Start a CLM workflow",
		Description: "Forwards the payload to CLM with the token as a bearer credential. CLM's status and body are returned unchanged.",
		RequestBody: &openapi3.RequestBodyRef{
			Value: openapi3.NewRequestBody().
				WithRequired(true).
				WithJSONSchemaRef(componentRef(SchemaWorkflowRequest, request)),
		},
		Responses: openapi3.NewResponses(
			openapi3.WithStatus(http.StatusOK, respond("Workflow started", nil)),
			openapi3.WithStatus(http.StatusBadRequest, respond("Account ID missing", errRef)),
			openapi3.WithStatus(http.StatusUnauthorized, respond("Token missing or rejected by CLM", errRef)),
			openapi3.WithStatus(http.StatusBadGateway, respond("CLM unreachable", errRef)),
		),
	}
}

// FormValuesSchema describes the values accepted for cfg's fields. Every
// value is a string; number and tel fields carry a pattern and select fields
// an enum of their options.
func FormValuesSchema(cfg model.WorkflowConfiguration) (*openapi3.Schema, error) {
	schema := openapi3.NewObjectSchema()
	schema.Title = cfg.WorkflowName
	if cfg.WorkflowName != "" {
		schema.Extensions = map[string]any{ExtensionWorkflowName: cfg.WorkflowName}
	}
	for i, field := range cfg.Fields {
		if err := model.ValidateFieldName(field.Name); err != nil {
			return nil, fmt.Errorf("openapi: field %d: %w", i, err)
		}
		schema.WithProperty(field.Name, fieldSchema(field))
		if field.Required {
			schema.Required = append(schema.Required, field.Name)
		}
	}
	return schema, nil
}

func fieldSchema(field model.FieldSpec) *openapi3.Schema {
	s := openapi3.NewStringSchema()
	switch field.Type {
	case model.FieldTypeEmail:
		s.WithFormat("email")
	case model.FieldTypeNumber:
		s.WithPattern(NumberPattern)
	case model.FieldTypeTel:
		s.WithPattern(PhonePattern)
	case model.FieldTypeSelect:
		if len(field.Options) > 0 {
			enum := make([]any, len(field.Options))
			for i, option := range field.Options {
				enum[i] = option
			}
			s.WithEnum(enum...)
		}
	}
	s.Title = field.Label
	if field.SampleValue != "" {
		s.Example = field.SampleValue
	}
	return s
}

func componentRef(name string, schema *openapi3.Schema) *openapi3.SchemaRef {
	return openapi3.NewSchemaRef("#/components/schemas/"+name, schema)
}
