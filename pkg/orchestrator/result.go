package orchestrator

// Result is the outcome of one submission. Exactly one of Success or Kind is
// set.
type Result struct {
	Success    bool           `json:"success"`
	WorkflowID string         `json:"workflowId,omitempty"`
	Kind       Kind           `json:"kind,omitempty"`
	Status     int            `json:"status,omitempty"`
	Message    string         `json:"message"`
	Body       string         `json:"body,omitempty"`
	Data       map[string]any `json:"data,omitempty"`
	Err        error          `json:"-"`
}

func failure(kind Kind, message string, err error) Result {
	return Result{Kind: kind, Message: message, Err: err}
}
