package rocketchat

import "context"

var (
	userOptionFields = []string{
		"active", "roles", "join_default_channels", "require_password_change",
		"send_welcome_email", "verified", "custom_fields",
	}
	userPersonalFields = []string{"username", "email", "name", "password"}
)

// Users wraps the users.* endpoints.
type Users struct {
	session *Session
}

// UserOptions are the optional user settings of Create and Update. The
// personal fields (Username, Email, Name, Password) are only sent by
// Update; Create takes them as arguments.
type UserOptions struct {
	Active                *bool
	Roles                 []string
	JoinDefaultChannels   *bool
	RequirePasswordChange *bool
	SendWelcomeEmail      *bool
	Verified              *bool
	CustomFields          map[string]any

	Username string
	Email    string
	Name     string
	Password string
}

func (o UserOptions) params() params {
	p := params{}

	for key, value := range map[string]*bool{
		"active":                  o.Active,
		"join_default_channels":   o.JoinDefaultChannels,
		"require_password_change": o.RequirePasswordChange,
		"send_welcome_email":      o.SendWelcomeEmail,
		"verified":                o.Verified,
	} {
		if value != nil {
			p[key] = *value
		}
	}

	if o.Roles != nil {
		p["roles"] = o.Roles
	}

	if o.CustomFields != nil {
		p["custom_fields"] = o.CustomFields
	}

	for key, value := range map[string]string{
		"username": o.Username,
		"email":    o.Email,
		"name":     o.Name,
		"password": o.Password,
	} {
		if value != "" {
			p[key] = value
		}
	}

	return p
}

func (u *Users) Create(ctx context.Context, username, email, name, password string, opts UserOptions) (*User, error) {
	body := params{
		"username": username,
		"email":    email,
		"name":     name,
		"password": password,
	}.merge(optionParams(opts.params(), userOptionFields...))

	payload, err := u.session.post(ctx, "users.create", body)
	if err != nil {
		return nil, err
	}

	return NewUser(payload.Object("user")), nil
}

// CreateToken creates a login token for another user. It requires the
// user-generate-access-token permission.
func (u *Users) CreateToken(ctx context.Context, user UserSelector) (Token, error) {
	payload, err := u.session.post(ctx, "users.createToken", userParams(user))
	if err != nil {
		return Token{}, err
	}

	return newTokenFromRecord(payload.Object("data")), nil
}

// Update changes the user with the given ID. Only the fields set in opts
// are sent.
func (u *Users) Update(ctx context.Context, userID string, opts UserOptions) (*User, error) {
	allowed := append(append([]string{}, userOptionFields...), userPersonalFields...)

	payload, err := u.session.post(ctx, "users.update", params{
		"userId": userID,
		"data":   optionParams(opts.params(), allowed...),
	})
	if err != nil {
		return nil, err
	}

	return NewUser(payload.Object("user")), nil
}

// Delete deletes a user. A user that does not exist yields false and no
// error.
func (u *Users) Delete(ctx context.Context, user UserSelector) (bool, error) {
	return u.session.postOK(ctx, "users.delete", userParams(user), ErrTypeInvalidUser)
}

func (u *Users) List(ctx context.Context, opts ListOptions) ([]*User, error) {
	body, err := buildListParams(opts)
	if err != nil {
		return nil, err
	}

	payload, err := u.session.get(ctx, "users.list", body)
	if err != nil {
		return nil, err
	}

	return usersFrom(payload, "users"), nil
}

// Info returns the user, or nil when it does not exist. With includeRooms
// the user's subscriptions are included and available through
// [User.Rooms].
func (u *Users) Info(ctx context.Context, user UserSelector, includeRooms bool) (*User, error) {
	body := userParams(user)
	if includeRooms {
		body["fields"] = `{"userRooms":1}`
	}

	payload, err := u.session.get(ctx, "users.info", body, ErrTypeInvalidUser)
	if err != nil {
		return nil, err
	}

	if !succeeded(payload) {
		return nil, nil
	}

	return NewUser(payload.Object("user")), nil
}

func (u *Users) GetPresence(ctx context.Context, user UserSelector) (*PresenceStatus, error) {
	payload, err := u.session.get(ctx, "users.getPresence", userParams(user))
	if err != nil {
		return nil, err
	}

	return NewPresenceStatus(payload), nil
}

// SetAvatar sets the avatar of the session user, or of userID when it is
// set, from a URL.
func (u *Users) SetAvatar(ctx context.Context, avatarURL, userID string) (bool, error) {
	body := params{"avatarUrl": avatarURL}
	if userID != "" {
		body["userId"] = userID
	}

	return u.session.postOK(ctx, "users.setAvatar", body)
}

func (u *Users) ResetAvatar(ctx context.Context, user UserSelector) (bool, error) {
	return u.session.postOK(ctx, "users.resetAvatar", userParams(user))
}
