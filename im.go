package rocketchat

import (
	"context"
	"strings"
)

// IM wraps the im.* endpoints (direct messages).
type IM struct {
	session *Session
}

// IMCreateOptions selects the other side of a direct message. Usernames,
// when set, creates a multi-user conversation and Username is ignored.
type IMCreateOptions struct {
	Username  string
	Usernames []string
	// ExcludeSelf leaves the session user out of a multi-user
	// conversation.
	ExcludeSelf bool
}

// Create opens (or returns the existing) direct message room.
func (im *IM) Create(ctx context.Context, opts IMCreateOptions) (*Room, error) {
	body := params{"username": opts.Username}
	if len(opts.Usernames) > 0 {
		body = params{
			"usernames":   strings.Join(opts.Usernames, ","),
			"excludeSelf": opts.ExcludeSelf,
		}
	}

	payload, err := im.session.post(ctx, "im.create", body)
	if err != nil {
		return nil, err
	}

	return NewRoom(payload.Object("room")), nil
}

// Delete removes a direct message room. A room that does not exist yields
// false and no error.
func (im *IM) Delete(ctx context.Context, room RoomSelector) (bool, error) {
	return im.session.postOK(ctx, "im.delete", roomParams(room), ErrTypeRoomNotFound)
}

// ListEveryone returns every direct message room on the server. It
// requires the view-room-administration permission.
func (im *IM) ListEveryone(ctx context.Context, opts ListOptions) ([]*Room, error) {
	body, err := buildListParams(opts)
	if err != nil {
		return nil, err
	}

	payload, err := im.session.get(ctx, "im.list.everyone", body)
	if err != nil {
		return nil, err
	}

	return roomsFrom(payload, "ims"), nil
}

// Counters returns the message counters of a direct message room, for the
// session user or for userID when it is set.
func (im *IM) Counters(ctx context.Context, roomID, userID string) (*ImSummary, error) {
	body := params{"roomId": roomID}
	if userID != "" {
		body["userId"] = userID
	}

	payload, err := im.session.get(ctx, "im.counters", body)
	if err != nil {
		return nil, err
	}

	return NewImSummary(payload), nil
}
