// Package encoder builds the XML parameter documents submitted to CLM
// workflows.
//
// Three shapes are supported: the dynamic shape driven by a stored
// WorkflowConfiguration, and the two fixed legacy shapes (general product
// signup and agent contract). SelectMode picks one per submission. All text
// nodes go through EscapeText, computed values included.
package encoder
