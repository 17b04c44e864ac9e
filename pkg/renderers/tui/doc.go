// Package tui renders workflow forms as interactive terminal prompts. Each
// field becomes an input, textarea or select prompt driven by survey, and the
// collected answers are validated with the same rules the submission path
// uses before they are returned.
package tui
