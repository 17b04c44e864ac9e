package clm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goliatone/go-clmform/pkg/model"
)

// Default endpoints.
const (
	DefaultBaseURL  = "https://apiuatna11.springcm.com/v2"
	DefaultOAuthURL = "https://account-d.docusign.com/oauth/token"
)

const defaultTimeout = 30 * time.Second

var (
	// ErrMissingToken is returned when a call is attempted without a bearer token.
	ErrMissingToken = errors.New("clm: token is required")
	// ErrMissingAccount is returned when a call needs an account id and none is known.
	ErrMissingAccount = errors.New("clm: account id is required")
)

// Response is a downstream reply kept verbatim.
type Response struct {
	Status      int
	ContentType string
	Body        []byte
}

// OK reports whether Status is 2xx.
func (r *Response) OK() bool {
	return r != nil && r.Status >= 200 && r.Status < 300
}

// Option customises a Client.
type Option func(*Client)

// WithBaseURL overrides the CLM API base URL.
func WithBaseURL(base string) Option {
	return func(c *Client) {
		if base = strings.TrimSpace(base); base != "" {
			c.baseURL = strings.TrimRight(base, "/")
		}
	}
}

// WithOAuthURL overrides the OAuth token endpoint.
func WithOAuthURL(endpoint string) Option {
	return func(c *Client) {
		if endpoint = strings.TrimSpace(endpoint); endpoint != "" {
			c.oauthURL = endpoint
		}
	}
}

// WithHTTPClient sets the HTTP client used for downstream calls.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.http = client
		}
	}
}

// WithDefaultAccount sets the account used when a call does not name one.
func WithDefaultAccount(accountID string) Option {
	return func(c *Client) {
		c.defaultAccount = strings.TrimSpace(accountID)
	}
}

// Client talks to the CLM REST API on behalf of the relay.
type Client struct {
	baseURL        string
	oauthURL       string
	defaultAccount string
	http           *http.Client
}

// NewClient constructs a Client with the default endpoints.
func NewClient(options ...Option) *Client {
	c := &Client{
		baseURL:  DefaultBaseURL,
		oauthURL: DefaultOAuthURL,
		http:     &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c
}

// BaseURL returns the configured API base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// StartWorkflow posts payload to the workflows collection of accountID.
func (c *Client) StartWorkflow(ctx context.Context, token, accountID string, payload model.SubmissionPayload) (*Response, error) {
	if strings.TrimSpace(token) == "" {
		return nil, ErrMissingToken
	}
	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		return nil, ErrMissingAccount
	}
	body, err := marshalBody(payload)
	if err != nil {
		return nil, fmt.Errorf("clm: encode payload: %w", err)
	}

	endpoint := c.baseURL + "/" + url.PathEscape(accountID) + "/workflows"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("clm: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "*/*")
	c.authorize(req, token)
	return c.do(req)
}

// Get fetches resource for accountID, falling back to the default account.
func (c *Client) Get(ctx context.Context, token, accountID string, resource Resource) (*Response, error) {
	if strings.TrimSpace(token) == "" {
		return nil, ErrMissingToken
	}
	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		accountID = c.defaultAccount
	}
	if accountID == "" {
		return nil, ErrMissingAccount
	}

	endpoint := c.baseURL + "/" + url.PathEscape(accountID) + resource.path
	if len(resource.query) > 0 {
		endpoint += "?" + resource.query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("clm: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	c.authorize(req, token)
	return c.do(req)
}

// CodeExchange holds the parameters of an authorization-code grant.
type CodeExchange struct {
	Code         string `json:"code"`
	ClientID     string `json:"clientId"`
	RedirectURI  string `json:"redirectUri"`
	ClientSecret string `json:"clientSecret,omitempty"`
}

// Missing lists the required parameters that are blank.
func (e CodeExchange) Missing() []string {
	var missing []string
	if strings.TrimSpace(e.Code) == "" {
		missing = append(missing, "code")
	}
	if strings.TrimSpace(e.ClientID) == "" {
		missing = append(missing, "clientId")
	}
	if strings.TrimSpace(e.RedirectURI) == "" {
		missing = append(missing, "redirectUri")
	}
	return missing
}

// ExchangeCode trades an authorization code for an access token.
func (c *Client) ExchangeCode(ctx context.Context, exchange CodeExchange) (*Response, error) {
	if missing := exchange.Missing(); len(missing) > 0 {
		return nil, fmt.Errorf("clm: missing %s", strings.Join(missing, ", "))
	}
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", exchange.Code)
	form.Set("redirect_uri", exchange.RedirectURI)
	form.Set("client_id", exchange.ClientID)
	if exchange.ClientSecret != "" {
		form.Set("client_secret", exchange.ClientSecret)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.oauthURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("clm: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req)
}

func (c *Client) authorize(req *http.Request, token string) {
	req.Header.Set("Authorization", "Bearer "+strings.TrimSpace(token))
	req.Header.Set("Cache-Control", "no-cache")
}

func (c *Client) do(req *http.Request) (*Response, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("clm: %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("clm: read response: %w", err)
	}
	return &Response{
		Status:      resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
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
