package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-clmform/pkg/model"
)

// WorkflowsPath is the relay route that starts CLM workflows.
const WorkflowsPath = "/api/docusign/workflows"

// Request is the body posted to the relay workflows route.
type Request struct {
	Token     string                  `json:"token"`
	AccountID string                  `json:"accountId"`
	Payload   model.SubmissionPayload `json:"payload"`
}

// Response is the relay reply, kept verbatim.
type Response struct {
	Status      int
	ContentType string
	Body        []byte
}

// OK reports whether Status is 2xx.
func (r *Response) OK() bool {
	return r != nil && r.Status >= 200 && r.Status < 300
}

// ClientOption customises a Client.
type ClientOption func(*Client)

// WithHTTPClient sets the HTTP client used to reach the relay.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		if client != nil {
			c.http = client
		}
	}
}

// Client submits workflow requests to a relay.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a Client for the relay at baseURL.
func NewClient(baseURL string, options ...ClientOption) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("relay: base URL is required")
	}
	c := &Client{baseURL: baseURL, http: &http.Client{Timeout: 60 * time.Second}}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c, nil
}

// SubmitWorkflow posts req to the relay. An error is only returned when no
// HTTP response was received; non-2xx replies are returned as responses.
func (c *Client) SubmitWorkflow(ctx context.Context, req Request) (*Response, error) {
	body, err := marshalBody(req)
	if err != nil {
		return nil, fmt.Errorf("relay: encode request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+WorkflowsPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("relay: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("relay: submit workflow: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("relay: read response: %w", err)
	}
	return &Response{
		Status:      resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        payload,
	}, nil
}

// marshalBody encodes v as JSON without escaping <, > and &, so XML
// parameters travel as written.
func marshalBody(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
