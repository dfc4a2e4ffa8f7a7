package rocketchat

import (
	"context"
	"net/url"
)

// Settings reads and writes server settings by ID, e.g.
// "Site_Url" or "Accounts_RegistrationForm". Both need admin rights.
type Settings struct {
	session *Session
}

// Get returns the decoded value of a setting: a string, bool, float64 or
// JSON object depending on the setting.
func (s *Settings) Get(ctx context.Context, id string) (any, error) {
	payload, err := s.session.get(ctx, settingPath(id), nil)
	if err != nil {
		return nil, err
	}

	return payload["value"], nil
}

// Set stores value and returns it.
func (s *Settings) Set(ctx context.Context, id string, value any) (any, error) {
	if _, err := s.session.post(ctx, settingPath(id), params{"value": value}); err != nil {
		return nil, err
	}

	return value, nil
}

func settingPath(id string) string {
	return "settings/" + url.PathEscape(id)
}
