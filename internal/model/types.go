package model

import "time"

// FieldType is the simplified enum for form-friendly field kinds.
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeTextarea FieldType = "textarea"
	FieldTypeSelect   FieldType = "select"
	FieldTypeEmail    FieldType = "email"
	FieldTypeNumber   FieldType = "number"
	FieldTypeTel      FieldType = "tel"
)

// Valid reports whether t is one of the known field kinds.
func (t FieldType) Valid() bool {
	switch t {
	case FieldTypeText, FieldTypeTextarea, FieldTypeSelect, FieldTypeEmail, FieldTypeNumber, FieldTypeTel:
		return true
	default:
		return false
	}
}

// FieldSpec describes one form field. Name doubles as the XML element name
// used when encoding submissions, so it must satisfy ValidateFieldName.
type FieldSpec struct {
	Name        string    `json:"name" yaml:"name"`
	Label       string    `json:"label" yaml:"label"`
	Type        FieldType `json:"type" yaml:"type"`
	Options     []string  `json:"options,omitempty" yaml:"options,omitempty"`
	SampleValue string    `json:"sampleValue" yaml:"sampleValue"`
	Required    bool      `json:"required" yaml:"required"`
}

// WorkflowConfiguration binds a CLM workflow name to the field schema used to
// build its XML parameters. It is always replaced as a whole.
type WorkflowConfiguration struct {
	WorkflowName string      `json:"workflowName" yaml:"workflowName"`
	Fields       []FieldSpec `json:"fields" yaml:"fields"`
	RootElement  string      `json:"rootElement,omitempty" yaml:"rootElement,omitempty"`
	SampleXML    string      `json:"exampleParams,omitempty" yaml:"exampleParams,omitempty"`
}

// Dynamic reports whether the configuration enables dynamic encoding.
func (c WorkflowConfiguration) Dynamic() bool {
	return c.WorkflowName != "" && len(c.Fields) > 0
}

// SubmissionPayload is the body CLM expects when starting a workflow.
type SubmissionPayload struct {
	Name   string `json:"Name"`
	Params string `json:"Params"`
}

// SubmissionStatus tracks the lifecycle of a submitted workflow. Values other
// than StatusSubmitted come from the CLM side and are stored verbatim.
type SubmissionStatus string

const StatusSubmitted SubmissionStatus = "submitted"

// SubmissionRecord is one entry of the local submission log.
type SubmissionRecord struct {
	ID          string            `json:"id"`
	SubmittedAt time.Time         `json:"submittedAt"`
	UpdatedAt   *time.Time        `json:"updatedAt,omitempty"`
	Status      SubmissionStatus  `json:"status"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Legacy workflow types used as keys for LegacyWorkflowNames.
const (
	LegacyWorkflowGeneral = "general"
	LegacyWorkflowAgent   = "agent"
)

// LegacyWorkflowNames maps a legacy workflow type to the CLM workflow name.
type LegacyWorkflowNames map[string]string

// Default names used when no override was stored.
const (
	DefaultGeneralWorkflowName = "Vodafone Product Signup Workflow"
	DefaultAgentWorkflowName   = "Vodafone Agent Contract Workflow"
)

// Name resolves the workflow name for kind, falling back to the defaults.
func (n LegacyWorkflowNames) Name(kind string) string {
	if name, ok := n[kind]; ok && name != "" {
		return name
	}
	if kind == LegacyWorkflowAgent {
		return DefaultAgentWorkflowName
	}
	return DefaultGeneralWorkflowName
}
