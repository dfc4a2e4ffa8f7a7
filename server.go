package rocketchat

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
)

// Server is an unauthenticated handle on a Rocket.Chat instance. Create it
// with [New], call [Server.Connect] once, then obtain a [Session] through
// [Server.Login] or [Server.SessionFromToken].
//
// A connected Server is safe for concurrent use.
type Server struct {
	baseURL   string
	options   *Options
	mu        sync.Mutex
	transport *transport
}

// New creates a Server for serverURL, e.g. "https://chat.example.com". The
// URL may carry a base path when Rocket.Chat is served below the root.
func New(serverURL string, opts ...Option) *Server {
	options := newServerOptions()

	for _, o := range opts {
		o(options)
	}

	return &Server{
		baseURL: strings.TrimRight(strings.TrimSpace(serverURL), "/"),
		options: options,
	}
}

// Connect validates the URL and options, prepares the HTTP client and
// checks that the server answers /api/v1/info. Calling Connect on a
// connected Server is a no-op.
func (s *Server) Connect(ctx context.Context) error {
	if s == nil {
		return errors.New("rocketchat server is nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.transport != nil {
		return nil
	}

	if s.baseURL == "" {
		return errors.New("server URL must be set")
	}

	parsed, err := url.Parse(s.baseURL)
	if err != nil {
		return fmt.Errorf("invalid server URL: %w", err)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("invalid server URL %q: scheme must be http or https", s.baseURL)
	}

	if parsed.Host == "" {
		return fmt.Errorf("invalid server URL %q: missing host", s.baseURL)
	}

	if err := s.options.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	t := newTransport(s.baseURL, s.options)

	if _, err := s.info(ctx, t); err != nil {
		return fmt.Errorf("failed to ping Rocket.Chat server: %w", err)
	}

	s.transport = t

	return nil
}

// Info returns the server information. Any status other than 200 is an
// *HTTPError.
func (s *Server) Info(ctx context.Context) (*Info, error) {
	t, err := s.connectedTransport()
	if err != nil {
		return nil, err
	}

	return s.info(ctx, t)
}

func (s *Server) info(ctx context.Context, t *transport) (*Info, error) {
	payload, err := s.requestJSON(ctx, t, request{
		method:       http.MethodGet,
		path:         apiPrefix + "/info",
		failUnlessOK: true,
	})
	if err != nil {
		return nil, err
	}

	return NewInfo(payload.Object("info")), nil
}

// Login authenticates with username and password and returns a Session
// bound to the resulting token.
func (s *Server) Login(ctx context.Context, username, password string) (*Session, error) {
	t, err := s.connectedTransport()
	if err != nil {
		return nil, err
	}

	payload, err := s.requestJSON(ctx, t, request{
		method: http.MethodPost,
		path:   apiPrefix + "/login",
		body:   params{"username": username, "password": password},
	})
	if err != nil {
		return nil, err
	}

	token := newTokenFromRecord(payload.Object("data"))
	if token.AuthToken() == "" {
		return nil, errors.New("login response did not contain an auth token")
	}

	return newSession(s, token), nil
}

// SessionFromToken returns a Session for an existing token, such as a
// personal access token. The token is not checked against the server; use
// [Session.Me] for that.
func (s *Server) SessionFromToken(token Token) (*Session, error) {
	if _, err := s.connectedTransport(); err != nil {
		return nil, err
	}

	if token.AuthToken() == "" || token.UserID() == "" {
		return nil, &ArgumentError{Argument: token.String(), Reason: "token requires an auth token and a user ID"}
	}

	return newSession(s, token), nil
}

func (s *Server) connectedTransport() (*transport, error) {
	if s == nil {
		return nil, errors.New("rocketchat server is nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.transport == nil {
		return nil, errors.New("server not connected - call Connect() first")
	}

	return s.transport, nil
}

// requestJSON performs req and classifies the response.
func (s *Server) requestJSON(ctx context.Context, t *transport, req request) (Record, error) {
	resp, err := t.do(ctx, req)
	if err != nil {
		return nil, err
	}

	payload, err := classifyResponse(resp, req.failUnlessOK, req.upstreamedErrors)
	if err != nil {
		s.logRejection(req, err)
		return nil, err
	}

	if !succeeded(payload) {
		env := normalizeEnvelope(payload)
		s.options.requestLogger.Warnf("%s %s: tolerated %s: %s", req.method, req.path, env.errorType, env.message)
	}

	return payload, nil
}

func (s *Server) logRejection(req request, err error) {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		s.options.requestLogger.Debugf("%s %s rejected: %v", req.method, req.path, err)
		return
	}

	s.options.requestLogger.Warnf("%s %s: %v", req.method, req.path, err)
}
