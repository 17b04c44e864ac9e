// Package token inspects CLM bearer tokens for diagnostics. Tokens are
// treated as opaque credentials; nothing here verifies signatures.
package token
