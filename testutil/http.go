package testutil

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

type RecordedRequest struct {
	Method       string
	Path         string
	RawQuery     string
	Query        url.Values
	Header       http.Header
	Body         []byte
	Username     string
	Password     string
	HasBasicAuth bool
}

// RecordingServer answers every request with a fixed status and body and
// remembers what it received.
type RecordingServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests []RecordedRequest
	status   int
	body     string
}

func NewRecordingServer(t *testing.T, status int, body string) *RecordingServer {
	t.Helper()

	srv := &RecordingServer{
		Server:   nil,
		mu:       sync.Mutex{},
		requests: nil,
		status:   status,
		body:     body,
	}

	srv.Server = httptest.NewServer(http.HandlerFunc(srv.handle))
	t.Cleanup(srv.Close)

	return srv
}

func (s *RecordingServer) handle(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	username, password, ok := r.BasicAuth()

	s.mu.Lock()
	s.requests = append(s.requests, RecordedRequest{
		Method:       r.Method,
		Path:         r.URL.Path,
		RawQuery:     r.URL.RawQuery,
		Query:        r.URL.Query(),
		Header:       r.Header.Clone(),
		Body:         body,
		Username:     username,
		Password:     password,
		HasBasicAuth: ok,
	})
	s.mu.Unlock()

	w.WriteHeader(s.status)
	_, _ = io.WriteString(w, s.body)
}

func (s *RecordingServer) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]RecordedRequest(nil), s.requests...)
}

func (s *RecordingServer) LastRequest(t *testing.T) RecordedRequest {
	t.Helper()

	requests := s.Requests()
	require.NotEmpty(t, requests, "server received no request")

	return requests[len(requests)-1]
}

// ClosedServerURL returns the address of a server that is no longer
// listening, for exercising transport failures.
func ClosedServerURL(t *testing.T) string {
	t.Helper()

	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	return addr
}
