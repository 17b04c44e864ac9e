// Package render turns field specs into renderer-neutral descriptors and
// keeps the registry of output renderers (HTML, JSON, terminal).
package render
