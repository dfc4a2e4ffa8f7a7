package rocketchat

import (
	"context"
	"net/http"
	"sync"
)

// Session is an authenticated view of a [Server]. It holds exactly one
// [Token] and hands out one wrapper per resource family; every accessor
// returns the same wrapper on each call.
type Session struct {
	server *Server
	token  Token

	channelsOnce sync.Once
	channels     *Channels

	groupsOnce sync.Once
	groups     *Groups

	imOnce sync.Once
	im     *IM

	usersOnce sync.Once
	users     *Users

	chatOnce sync.Once
	chat     *Chat

	settingsOnce sync.Once
	settings     *Settings
}

func newSession(server *Server, token Token) *Session {
	return &Session{
		server: server,
		token:  newTokenFromRecord(token.data),
	}
}

func (s *Session) Token() Token {
	return s.token
}

// Logout invalidates the session token on the server. The Session must not
// be used afterwards.
func (s *Session) Logout(ctx context.Context) error {
	_, err := s.post(ctx, "logout", nil)
	return err
}

// Me returns the user the session is authenticated as.
func (s *Session) Me(ctx context.Context) (*User, error) {
	payload, err := s.get(ctx, "me", nil)
	if err != nil {
		return nil, err
	}

	return NewUser(payload), nil
}

func (s *Session) Channels() *Channels {
	s.channelsOnce.Do(func() {
		s.channels = &Channels{Rooms: newRooms(s, channelsVariant)}
	})

	return s.channels
}

func (s *Session) Groups() *Groups {
	s.groupsOnce.Do(func() {
		s.groups = &Groups{Rooms: newRooms(s, groupsVariant)}
	})

	return s.groups
}

func (s *Session) IM() *IM {
	s.imOnce.Do(func() {
		s.im = &IM{session: s}
	})

	return s.im
}

func (s *Session) Users() *Users {
	s.usersOnce.Do(func() {
		s.users = &Users{session: s}
	})

	return s.users
}

func (s *Session) Chat() *Chat {
	s.chatOnce.Do(func() {
		s.chat = &Chat{session: s}
	})

	return s.chat
}

func (s *Session) Settings() *Settings {
	s.settingsOnce.Do(func() {
		s.settings = &Settings{session: s}
	})

	return s.settings
}

// requestJSON sends req with the session token attached. req.path is
// relative to /api/v1.
func (s *Session) requestJSON(ctx context.Context, req request) (Record, error) {
	t, err := s.server.connectedTransport()
	if err != nil {
		return nil, err
	}

	token := s.token
	req.token = &token
	req.path = apiPrefix + "/" + req.path

	return s.server.requestJSON(ctx, t, req)
}

func (s *Session) get(ctx context.Context, path string, body any, upstreamedErrors ...string) (Record, error) {
	return s.requestJSON(ctx, request{
		method:           http.MethodGet,
		path:             path,
		body:             body,
		upstreamedErrors: upstreamedErrors,
	})
}

func (s *Session) post(ctx context.Context, path string, body any, upstreamedErrors ...string) (Record, error) {
	return s.requestJSON(ctx, request{
		method:           http.MethodPost,
		path:             path,
		body:             body,
		upstreamedErrors: upstreamedErrors,
	})
}

// postOK is post for endpoints whose only result is the success flag.
func (s *Session) postOK(ctx context.Context, path string, body any, upstreamedErrors ...string) (bool, error) {
	payload, err := s.post(ctx, path, body, upstreamedErrors...)
	if err != nil {
		return false, err
	}

	return succeeded(payload), nil
}
