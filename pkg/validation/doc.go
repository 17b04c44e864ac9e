// Package validation holds the pre-submission checks run before a form is
// encoded. Dynamic workflows are checked against their field schema; the
// legacy shapes use fixed required-field lists.
package validation
