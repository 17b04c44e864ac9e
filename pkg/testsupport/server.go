package testsupport

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// CapturedRequest is a request observed by a RecordingServer.
type CapturedRequest struct {
	Method string
	Path   string
	Query  string
	Header http.Header
	Body   string
}

// RecordingServer is an httptest server replying with a canned response and
// remembering every request it received.
type RecordingServer struct {
	*httptest.Server

	mu          sync.Mutex
	requests    []CapturedRequest
	status      int
	contentType string
	body        string
}

// NewRecordingServer starts a server answering status with body. The server
// is closed when the test ends.
func NewRecordingServer(t *testing.T, status int, contentType, body string) *RecordingServer {
	t.Helper()

	rs := &RecordingServer{status: status, contentType: contentType, body: body}
	rs.Server = httptest.NewServer(http.HandlerFunc(rs.handle))
	t.Cleanup(rs.Close)
	return rs
}

func (rs *RecordingServer) handle(w http.ResponseWriter, r *http.Request) {
	payload, _ := io.ReadAll(r.Body)

	rs.mu.Lock()
	rs.requests = append(rs.requests, CapturedRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.RawQuery,
		Header: r.Header.Clone(),
		Body:   string(payload),
	})
	rs.mu.Unlock()

	if rs.contentType != "" {
		w.Header().Set("Content-Type", rs.contentType)
	}
	w.WriteHeader(rs.status)
	_, _ = io.WriteString(w, rs.body)
}

// Requests returns a snapshot of the captured requests.
func (rs *RecordingServer) Requests() []CapturedRequest {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return append([]CapturedRequest(nil), rs.requests...)
}

// Last returns the most recent request, failing the test when none arrived.
func (rs *RecordingServer) Last(t *testing.T) CapturedRequest {
	t.Helper()
	reqs := rs.Requests()
	if len(reqs) == 0 {
		t.Fatalf("expected at least one request")
	}
	return reqs[len(reqs)-1]
}
