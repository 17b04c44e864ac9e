package relay

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RequestIDHeader carries the request id on requests and responses.
const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// RequestID returns the id assigned to the request carried by ctx.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(RequestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(p []byte) (int, error) {
	n, err := w.ResponseWriter.Write(p)
	w.bytes += n
	return n, err
}

func loggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)
			logger.Info("request completed",
				"request_id", RequestID(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"status", sw.status,
				"bytes", sw.bytes,
				"duration_ms", time.Since(start).Milliseconds(),
				"origin", r.Header.Get("Origin"),
				"authorization", redactAuthorization(r.Header.Get("Authorization")),
			)
		})
	}
}

func redactAuthorization(header string) string {
	if header == "" {
		return "None"
	}
	return "Bearer [REDACTED]"
}

// DefaultAllowedOrigins are accepted without a warning.
var DefaultAllowedOrigins = []string{
	"http://localhost:3000",
	"https://localhost:3000",
}

// DefaultAllowedOriginPatterns cover tunnel and hosting domains.
var DefaultAllowedOriginPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^https?://.*\.ngrok\.io$`),
	regexp.MustCompile(`^https?://.*\.ngrok-free\.app$`),
	regexp.MustCompile(`^https://.*\.onrender\.com$`),
}

const (
	corsMethods = "GET, POST, PUT, DELETE, OPTIONS, HEAD"
	corsHeaders = "Origin, X-Requested-With, Content-Type, Accept, Authorization, Cache-Control, Pragma, X-Account-ID, X-Request-ID"
)

type corsPolicy struct {
	origins  map[string]struct{}
	patterns []*regexp.Regexp
	logger   *slog.Logger
}

func (p corsPolicy) allowed(origin string) bool {
	if _, ok := p.origins[origin]; ok {
		return true
	}
	for _, pattern := range p.patterns {
		if pattern.MatchString(origin) {
			return true
		}
	}
	return false
}

// corsMiddleware reflects the caller origin. Origins outside the allow-list
// are logged and still served.
func corsMiddleware(policy corsPolicy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && !policy.allowed(origin) {
				policy.logger.Warn("cors origin not in allow-list", "origin", origin, "path", r.URL.Path)
			}
			allow := origin
			if allow == "" {
				allow = "*"
			}

			h := w.Header()
			h.Set("Access-Control-Allow-Origin", allow)
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Add("Vary", "Origin")

			if r.Method == http.MethodOptions {
				h.Set("Access-Control-Allow-Methods", corsMethods)
				h.Set("Access-Control-Allow-Headers", corsHeaders)
				h.Set("Access-Control-Max-Age", "86400")
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Frame-Options", "SAMEORIGIN")
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-XSS-Protection", "1; mode=block")
		next.ServeHTTP(w, r)
	})
}

func recoverMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					logger.Error("panic recovered",
						"request_id", RequestID(r.Context()),
						"path", r.URL.Path,
						"panic", fmt.Sprint(rec),
						"stack", string(debug.Stack()),
					)
					writeError(w, http.StatusInternalServerError, "Internal server error", "unexpected failure")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
