// Package relay implements both sides of the CORS-avoiding relay between the
// signup form and the CLM API.
//
// Client posts {token, accountId, payload} to a running relay. Server is the
// chi-based relay itself: it forwards workflow starts and read-only CLM
// queries with the caller's bearer token and returns downstream replies
// unmodified.
package relay
