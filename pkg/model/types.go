package model

import internalmodel "github.com/goliatone/go-clmform/internal/model"

// FieldType re-exports the internal FieldType enumeration.
type FieldType = internalmodel.FieldType

const (
	FieldTypeText     = internalmodel.FieldTypeText
	FieldTypeTextarea = internalmodel.FieldTypeTextarea
	FieldTypeSelect   = internalmodel.FieldTypeSelect
	FieldTypeEmail    = internalmodel.FieldTypeEmail
	FieldTypeNumber   = internalmodel.FieldTypeNumber
	FieldTypeTel      = internalmodel.FieldTypeTel
)

type FieldSpec = internalmodel.FieldSpec
type WorkflowConfiguration = internalmodel.WorkflowConfiguration
type SubmissionPayload = internalmodel.SubmissionPayload
type SubmissionStatus = internalmodel.SubmissionStatus
type SubmissionRecord = internalmodel.SubmissionRecord
type LegacyWorkflowNames = internalmodel.LegacyWorkflowNames

const StatusSubmitted = internalmodel.StatusSubmitted

const (
	LegacyWorkflowGeneral      = internalmodel.LegacyWorkflowGeneral
	LegacyWorkflowAgent        = internalmodel.LegacyWorkflowAgent
	DefaultGeneralWorkflowName = internalmodel.DefaultGeneralWorkflowName
	DefaultAgentWorkflowName   = internalmodel.DefaultAgentWorkflowName
)

// DefaultLabeler derives display labels from element names.
func DefaultLabeler(name string) string {
	return internalmodel.DefaultLabeler(name)
}

// ValidateFieldName checks that name is safe to use as an XML element name.
func ValidateFieldName(name string) error {
	return internalmodel.ValidateFieldName(name)
}
