// Package orchestrator runs a form submission end to end: it picks the
// encoding mode, validates and encodes the values, sends the workflow request
// through the relay and turns the reply into a Result. Configuration such as
// the workflow schema and account are passed in at construction; loading them
// from storage is the caller's job.
//
// The same mode selection drives Render, which draws the matching form
// through a render.Registry.
package orchestrator
