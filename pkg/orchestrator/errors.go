package orchestrator

import (
	"fmt"
	"net/http"
)

// Kind classifies a failed submission.
type Kind string

const (
	KindConfiguration Kind = "configuration"
	KindValidation    Kind = "validation"
	KindTransport     Kind = "transport"
	KindUpstream      Kind = "upstream"
)

// User-facing messages for failures detected before any network call.
const (
	MessageMissingToken   = "Please configure your API token first"
	MessageMissingAccount = "Please configure your CLM account ID first"
	MessageMissingRelay   = "No workflow relay is configured"
	MessageNetwork        = "Network error: unable to reach the workflow relay. Please check your connection and try again."
)

// ConfigurationError reports missing local setup. It is always raised before
// a request is sent.
type ConfigurationError struct {
	Message string
	Err     error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("orchestrator: %s: %v", e.Message, e.Err)
	}
	return "orchestrator: " + e.Message
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// TransportError wraps a failure to obtain any response from the relay.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("orchestrator: transport: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// UpstreamError is a non-2xx reply from the relay or CLM. Body is kept
// verbatim.
type UpstreamError struct {
	Status int
	Body   string
	Detail string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("orchestrator: upstream status %d: %s", e.Status, e.Detail)
}

// Message is the text shown to users. A 401 points them at their token.
func (e *UpstreamError) Message() string {
	if e.Status == http.StatusUnauthorized {
		return fmt.Sprintf("Authentication failed (401). Please check your API token. %s", e.Body)
	}
	return fmt.Sprintf("HTTP %d: %s", e.Status, e.Detail)
}
