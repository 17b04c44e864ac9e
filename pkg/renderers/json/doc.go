// Package json emits form descriptors as JSON so external UIs can draw the
// form themselves.
package json
