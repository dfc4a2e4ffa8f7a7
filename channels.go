package rocketchat

import "context"

// Channels wraps the channels.* endpoints (public rooms).
type Channels struct {
	*Rooms
}

func (c *Channels) Join(ctx context.Context, room RoomSelector) (bool, error) {
	return c.session.postOK(ctx, c.variant.apiPath("join"), roomParams(room))
}

// List returns the channels visible to the session user.
func (c *Channels) List(ctx context.Context, opts ListOptions) ([]*Room, error) {
	return c.list(ctx, "list", opts)
}

// ListJoined returns only the channels the session user has joined.
func (c *Channels) ListJoined(ctx context.Context, opts ListOptions) ([]*Room, error) {
	return c.list(ctx, "list.joined", opts)
}

// Online returns the members of a channel that are currently online.
func (c *Channels) Online(ctx context.Context, room RoomSelector) ([]*User, error) {
	return c.online(ctx, room)
}
