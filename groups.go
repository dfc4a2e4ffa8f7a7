package rocketchat

import "context"

// Groups wraps the groups.* endpoints (private rooms).
type Groups struct {
	*Rooms
}

func (g *Groups) AddLeader(ctx context.Context, room RoomSelector, user UserSelector) (bool, error) {
	return g.roomUserAction(ctx, "addLeader", room, user)
}

func (g *Groups) RemoveLeader(ctx context.Context, room RoomSelector, user UserSelector) (bool, error) {
	return g.roomUserAction(ctx, "removeLeader", room, user)
}

// List returns the private groups the session user belongs to.
func (g *Groups) List(ctx context.Context, opts ListOptions) ([]*Room, error) {
	return g.list(ctx, "list", opts)
}

// ListAll returns every private group on the server. It requires the
// view-room-administration permission.
func (g *Groups) ListAll(ctx context.Context, opts ListOptions) ([]*Room, error) {
	return g.list(ctx, "listAll", opts)
}

func (g *Groups) Online(ctx context.Context, room RoomSelector) ([]*User, error) {
	return g.online(ctx, room)
}
