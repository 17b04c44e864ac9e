// Package store persists the local state of the signup integration: the
// dynamic workflow configuration, legacy workflow names, the CLM token and
// the submission log. Documents are JSON and always rewritten whole.
package store
