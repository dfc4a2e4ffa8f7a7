package rocketchat

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
)

const (
	testAuthToken = "auth-token-123"
	testUserID    = "user-id-456"
	infoPath      = "GET /api/v1/info"
)

type recordedCall struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

// jsonBody decodes the recorded request body as a JSON object.
func (c recordedCall) jsonBody(t *testing.T) map[string]any {
	t.Helper()

	var body map[string]any
	if err := json.Unmarshal(c.Body, &body); err != nil {
		t.Fatalf("request body is not a JSON object: %v (%s)", err, c.Body)
	}

	return body
}

// stubServer is a fake Rocket.Chat instance. Routes are keyed by
// "METHOD /path". Every request except the info ping is recorded.
type stubServer struct {
	t      *testing.T
	server *httptest.Server
	routes map[string]http.HandlerFunc

	mu    sync.Mutex
	calls []recordedCall
}

func newStubServer(t *testing.T, routes map[string]http.HandlerFunc) *stubServer {
	t.Helper()

	stub := &stubServer{t: t, routes: map[string]http.HandlerFunc{
		infoPath: func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, `{"info":{"version":"6.5.0"},"success":true}`)
		},
	}}

	for route, handler := range routes {
		stub.routes[route] = handler
	}

	stub.server = httptest.NewServer(http.HandlerFunc(stub.serveHTTP))
	t.Cleanup(stub.server.Close)

	return stub
}

func (s *stubServer) serveHTTP(w http.ResponseWriter, r *http.Request) {
	route := r.Method + " " + r.URL.Path

	body, _ := io.ReadAll(r.Body)
	r.Body = io.NopCloser(bytes.NewReader(body))

	if route != infoPath {
		s.mu.Lock()
		s.calls = append(s.calls, recordedCall{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.Query(),
			Header: r.Header.Clone(),
			Body:   body,
		})
		s.mu.Unlock()
	}

	handler, ok := s.routes[route]
	if !ok {
		s.t.Errorf("unexpected request %s", route)
		writeJSON(w, http.StatusNotFound, `{"success":false,"error":"Not found"}`)
		return
	}

	handler(w, r)
}

func (s *stubServer) URL() string {
	return s.server.URL
}

func (s *stubServer) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.calls)
}

func (s *stubServer) lastCall() recordedCall {
	s.t.Helper()

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.calls) == 0 {
		s.t.Fatal("expected at least one request")
	}

	return s.calls[len(s.calls)-1]
}

// connectedSession connects a Server to the stub and returns a Session
// for the test token.
func (s *stubServer) connectedSession(opts ...Option) *Session {
	s.t.Helper()

	server := New(s.URL(), opts...)
	if err := server.Connect(context.Background()); err != nil {
		s.t.Fatalf("connect failed: %v", err)
	}

	session, err := server.SessionFromToken(NewToken(testAuthToken, testUserID))
	if err != nil {
		s.t.Fatalf("failed to create session: %v", err)
	}

	return session
}

// authed rejects requests without the test token the way old servers do.
func authed(handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(headerAuthToken) != testAuthToken || r.Header.Get(headerUserID) != testUserID {
			writeJSON(w, http.StatusUnauthorized, `{"status":"error","message":"You must be logged in to do this."}`)
			return
		}

		handler(w, r)
	}
}

// respond returns a handler that always writes body with status.
func respond(status int, body string) http.HandlerFunc {
	return authed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, status, body)
	})
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
