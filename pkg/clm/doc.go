// Package clm is a minimal client for the CLM (SpringCM) REST API used by the
// relay. Responses are returned verbatim so callers can pass them through.
package clm
