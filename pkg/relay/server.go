package relay

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/goliatone/go-clmform/components/products"
	"github.com/goliatone/go-clmform/pkg/clm"
)

const maxBodyBytes = 1 << 20

// Option customises a Server.
type Option func(*Server)

// WithCLM sets the downstream CLM client.
func WithCLM(client *clm.Client) Option {
	return func(s *Server) {
		if client != nil {
			s.clm = client
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithAllowedOrigins replaces the exact-match CORS allow-list.
func WithAllowedOrigins(origins ...string) Option {
	return func(s *Server) {
		s.cors.origins = make(map[string]struct{}, len(origins))
		for _, origin := range origins {
			if origin = strings.TrimSpace(origin); origin != "" {
				s.cors.origins[origin] = struct{}{}
			}
		}
	}
}

// WithAllowedOriginPatterns replaces the CORS origin patterns.
func WithAllowedOriginPatterns(patterns ...*regexp.Regexp) Option {
	return func(s *Server) {
		s.cors.patterns = append([]*regexp.Regexp(nil), patterns...)
	}
}

// WithProducts mounts the product options component. A nil component
// disables the route.
func WithProducts(component *products.Component) Option {
	return func(s *Server) {
		s.products = component
	}
}

// WithOpenAPI serves doc at /openapi.json.
func WithOpenAPI(doc json.Marshaler) Option {
	return func(s *Server) {
		s.openapi = doc
	}
}

// WithIndex serves handler for GET / instead of the JSON health reply.
func WithIndex(handler http.Handler) Option {
	return func(s *Server) {
		s.index = handler
	}
}

// Server relays browser and CLI calls to the CLM API.
type Server struct {
	clm      *clm.Client
	logger   *slog.Logger
	cors     corsPolicy
	products *products.Component
	openapi  json.Marshaler
	index    http.Handler
	router   chi.Router
}

// NewServer builds the relay router.
func NewServer(options ...Option) *Server {
	s := &Server{
		clm:      clm.NewClient(),
		logger:   slog.Default(),
		products: products.New(),
	}
	WithAllowedOrigins(DefaultAllowedOrigins...)(s)
	WithAllowedOriginPatterns(DefaultAllowedOriginPatterns...)(s)
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	s.cors.logger = s.logger
	s.router = s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(s.logger))
	r.Use(corsMiddleware(s.cors))
	r.Use(securityHeaders)
	r.Use(recoverMiddleware(s.logger))

	r.Get("/", s.handleIndex)
	r.Head("/", s.handleHealth)

	if s.openapi != nil {
		r.Get("/openapi.json", s.handleOpenAPI)
	}
	if s.products != nil {
		if _, err := s.products.RegisterRoutes(r, "/"); err != nil {
			s.logger.Error("mount products", "error", err)
		}
	}

	r.Route("/api/docusign", func(r chi.Router) {
		r.Post("/workflows", s.handleStartWorkflow)
		r.Post("/oauth/token", s.handleTokenExchange)

		r.Get("/current-member", s.proxy(func(*http.Request) clm.Resource { return clm.CurrentMember() }))
		r.Get("/current-user-workitems", s.proxy(func(*http.Request) clm.Resource { return clm.CurrentUserWorkItems() }))
		r.Get("/workitems", s.proxy(func(*http.Request) clm.Resource { return clm.CurrentUserWorkItems() }))
		r.Get("/user-workflow-queues", s.proxy(func(*http.Request) clm.Resource { return clm.UserWorkflowQueues() }))
		r.Get("/workflow-queues", s.proxy(func(*http.Request) clm.Resource { return clm.WorkflowQueues() }))
		r.Get("/member/{memberId}", s.proxy(func(r *http.Request) clm.Resource {
			return clm.Member(chi.URLParam(r, "memberId"))
		}))
		r.Get("/workflow/{workflowId}", s.proxy(func(r *http.Request) clm.Resource {
			return clm.Workflow(chi.URLParam(r, "workflowId"))
		}))
		r.Get("/document/{documentId}/attributes", s.proxy(func(r *http.Request) clm.Resource {
			return clm.DocumentAttributes(chi.URLParam(r, "documentId"))
		}))
		r.Get("/queue-workitems/{queueId}", s.proxy(func(r *http.Request) clm.Resource {
			return clm.QueueWorkItems(chi.URLParam(r, "queueId"))
		}))
	})
	return r
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if s.index != nil {
		s.index.ServeHTTP(w, r)
		return
	}
	s.handleHealth(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodHead {
		w.WriteHeader(http.StatusOK)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleOpenAPI(w http.ResponseWriter, _ *http.Request) {
	data, err := s.openapi.MarshalJSON()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal server error", err.Error())
		return
	}
	passThrough(w, http.StatusOK, "application/json", data)
}

func (s *Server) handleStartWorkflow(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if strings.TrimSpace(req.AccountID) == "" {
		writeError(w, http.StatusBadRequest, "Account ID required", "Please provide your CLM Account ID in the admin settings")
		return
	}
	if strings.TrimSpace(req.Token) == "" {
		writeError(w, http.StatusUnauthorized, "No token provided", "Authorization token is required")
		return
	}

	s.logger.Info("starting workflow",
		"request_id", RequestID(r.Context()),
		"account_id", req.AccountID,
		"workflow", req.Payload.Name,
	)
	resp, err := s.clm.StartWorkflow(r.Context(), req.Token, req.AccountID, req.Payload)
	if err != nil {
		s.downstreamFailure(w, r, err)
		return
	}
	if !resp.OK() {
		s.logger.Warn("workflow rejected",
			"request_id", RequestID(r.Context()),
			"status", resp.Status,
			"body", string(resp.Body),
		)
	}
	passThrough(w, resp.Status, resp.ContentType, resp.Body)
}

func (s *Server) handleTokenExchange(w http.ResponseWriter, r *http.Request) {
	var exchange clm.CodeExchange
	if err := decodeBody(r, &exchange); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if len(exchange.Missing()) > 0 {
		writeError(w, http.StatusBadRequest, "Missing required parameters", "code, clientId, and redirectUri are required")
		return
	}

	resp, err := s.clm.ExchangeCode(r.Context(), exchange)
	if err != nil {
		s.downstreamFailure(w, r, err)
		return
	}
	if !resp.OK() {
		writeJSON(w, resp.Status, map[string]any{
			"error":   "Token exchange failed",
			"status":  resp.Status,
			"details": string(resp.Body),
		})
		return
	}
	passThrough(w, resp.Status, resp.ContentType, resp.Body)
}

func (s *Server) proxy(resource func(*http.Request) clm.Resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			writeError(w, http.StatusUnauthorized, "No token provided", "Authorization token is required")
			return
		}
		accountID := strings.TrimSpace(r.Header.Get("X-Account-ID"))
		if accountID == "" {
			accountID = strings.TrimSpace(r.URL.Query().Get("accountId"))
		}

		resp, err := s.clm.Get(r.Context(), token, accountID, resource(r))
		if errors.Is(err, clm.ErrMissingAccount) {
			writeError(w, http.StatusBadRequest, "No account ID provided", "Account ID is required in headers (x-account-id) or query params (accountId)")
			return
		}
		if err != nil {
			s.downstreamFailure(w, r, err)
			return
		}
		passThrough(w, resp.Status, resp.ContentType, resp.Body)
	}
}

func (s *Server) downstreamFailure(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, context.Canceled) {
		return
	}
	s.logger.Error("downstream request failed",
		"request_id", RequestID(r.Context()),
		"path", r.URL.Path,
		"error", err,
	)
	writeError(w, http.StatusBadGateway, "Bad gateway", "CLM API could not be reached")
}

// bearerToken reads the token from the Authorization header or the token
// query parameter. Only the Bearer scheme is accepted.
func bearerToken(r *http.Request) string {
	const prefix = "Bearer "
	if header := r.Header.Get("Authorization"); len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return strings.TrimSpace(r.URL.Query().Get("token"))
}

func decodeBody(r *http.Request, out any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	return dec.Decode(out)
}
