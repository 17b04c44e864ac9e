// Package model defines the types shared by the inferencer, encoder,
// renderers and orchestrator. Definitions live in internal/model and are
// re-exported here so callers depend on a stable import path.
//
// A FieldSpec name is used verbatim as an XML element name when submissions
// are encoded, so every name must pass ValidateFieldName. A
// WorkflowConfiguration is replaced as a whole; Dynamic reports whether it
// carries enough information (a workflow name and at least one field) to
// switch encoding from the legacy shapes to the dynamic one.
package model
