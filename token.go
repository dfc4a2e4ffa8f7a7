package rocketchat

import "fmt"

// Token is the credential pair attached to every authenticated request.
// It is immutable; a Session holds exactly one.
type Token struct {
	data Record
}

// NewToken builds a Token from an auth token and user ID, e.g. a personal
// access token created in the Rocket.Chat UI.
func NewToken(authToken, userID string) Token {
	return Token{data: Record{"authToken": authToken, "userId": userID}}
}

func newTokenFromRecord(data Record) Token {
	return Token{data: data.Clone()}
}

func (t Token) AuthToken() string {
	return t.data.String("authToken")
}

func (t Token) UserID() string {
	return t.data.String("userId")
}

func (t Token) Data() Record {
	return t.data.Clone()
}

// String redacts the auth token.
func (t Token) String() string {
	authToken := "<empty>"
	if t.AuthToken() != "" {
		authToken = "<redacted>"
	}

	return fmt.Sprintf("Token{authToken=%s userId=%q}", authToken, t.UserID())
}
