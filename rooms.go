package rocketchat

import (
	"context"
	"io"
	"net/url"
	"slices"
)

// roomVariant configures [Rooms] for one room collection.
type roomVariant struct {
	// collection prefixes every endpoint, e.g. "channels" in channels.info.
	collection string
	// responseKey holds the room object in create and info responses.
	responseKey string
	// settableAttributes are the attributes accepted by SetAttr, in
	// snake_case.
	settableAttributes []string
}

var channelsVariant = roomVariant{
	collection:  "channels",
	responseKey: "channel",
	settableAttributes: []string{
		"announcement", "custom_fields", "default", "description", "join_code",
		"purpose", "read_only", "topic", "type",
	},
}

var groupsVariant = roomVariant{
	collection:  "groups",
	responseKey: "group",
	settableAttributes: []string{
		"announcement", "custom_fields", "description", "purpose", "read_only",
		"topic", "type",
	},
}

func (v roomVariant) apiPath(method string) string {
	return v.collection + "." + method
}

var (
	createRoomFields = []string{"members", "read_only", "custom_fields", "extra_data"}
	uploadFileFields = []string{"msg", "description", "tmid"}
)

// Rooms holds the operations shared by public channels and private groups.
// It is embedded in [Channels] and [Groups].
type Rooms struct {
	session *Session
	variant roomVariant
}

func newRooms(session *Session, variant roomVariant) *Rooms {
	return &Rooms{session: session, variant: variant}
}

// CreateRoomOptions are the optional settings of a new room.
type CreateRoomOptions struct {
	// Members are usernames added on creation.
	Members      []string
	ReadOnly     bool
	CustomFields map[string]any
	ExtraData    map[string]any
}

func (o CreateRoomOptions) params() params {
	p := params{}

	if o.Members != nil {
		p["members"] = o.Members
	}

	if o.ReadOnly {
		p["read_only"] = true
	}

	if o.CustomFields != nil {
		p["custom_fields"] = o.CustomFields
	}

	if o.ExtraData != nil {
		p["extra_data"] = o.ExtraData
	}

	return p
}

// UploadFileOptions describe the message posted along with an upload.
type UploadFileOptions struct {
	Message     string
	Description string
	// ThreadID posts the upload as a reply in a thread.
	ThreadID string
	// FileName defaults to the base name of the reader when it is an
	// *os.File.
	FileName    string
	ContentType string
}

func (o UploadFileOptions) params() params {
	p := params{}

	if o.Message != "" {
		p["msg"] = o.Message
	}

	if o.Description != "" {
		p["description"] = o.Description
	}

	if o.ThreadID != "" {
		p["tmid"] = o.ThreadID
	}

	return p
}

// Create creates a room named name and returns it.
func (r *Rooms) Create(ctx context.Context, name string, opts CreateRoomOptions) (*Room, error) {
	body := params{"name": name}.merge(optionParams(opts.params(), createRoomFields...))

	payload, err := r.session.post(ctx, r.variant.apiPath("create"), body)
	if err != nil {
		return nil, err
	}

	return NewRoom(payload.Object(r.variant.responseKey)), nil
}

// Delete deletes a room. A room that does not exist yields false and no
// error.
func (r *Rooms) Delete(ctx context.Context, room RoomSelector) (bool, error) {
	return r.session.postOK(ctx, r.variant.apiPath("delete"), roomParams(room), ErrTypeRoomNotFound)
}

// Info returns the room, or nil when it does not exist.
func (r *Rooms) Info(ctx context.Context, room RoomSelector) (*Room, error) {
	payload, err := r.session.get(ctx, r.variant.apiPath("info"), roomParams(room), ErrTypeRoomNotFound)
	if err != nil {
		return nil, err
	}

	if !succeeded(payload) {
		return nil, nil
	}

	return NewRoom(payload.Object(r.variant.responseKey)), nil
}

func (r *Rooms) Invite(ctx context.Context, room RoomSelector, user UserSelector) (bool, error) {
	return r.roomUserAction(ctx, "invite", room, user)
}

func (r *Rooms) Kick(ctx context.Context, room RoomSelector, user UserSelector) (bool, error) {
	return r.roomUserAction(ctx, "kick", room, user)
}

// AddOwner gives user the owner role in room. A room that does not exist
// yields false and no error.
func (r *Rooms) AddOwner(ctx context.Context, room RoomSelector, user UserSelector) (bool, error) {
	return r.roomUserAction(ctx, "addOwner", room, user, ErrTypeRoomNotFound)
}

// RemoveOwner is the inverse of AddOwner and treats a missing room the same
// way.
func (r *Rooms) RemoveOwner(ctx context.Context, room RoomSelector, user UserSelector) (bool, error) {
	return r.roomUserAction(ctx, "removeOwner", room, user, ErrTypeRoomNotFound)
}

func (r *Rooms) AddModerator(ctx context.Context, room RoomSelector, user UserSelector) (bool, error) {
	return r.roomUserAction(ctx, "addModerator", room, user)
}

func (r *Rooms) RemoveModerator(ctx context.Context, room RoomSelector, user UserSelector) (bool, error) {
	return r.roomUserAction(ctx, "removeModerator", room, user)
}

func (r *Rooms) Leave(ctx context.Context, room RoomSelector) (bool, error) {
	return r.session.postOK(ctx, r.variant.apiPath("leave"), roomParams(room))
}

func (r *Rooms) Archive(ctx context.Context, room RoomSelector) (bool, error) {
	return r.session.postOK(ctx, r.variant.apiPath("archive"), roomParams(room))
}

func (r *Rooms) Unarchive(ctx context.Context, room RoomSelector) (bool, error) {
	return r.session.postOK(ctx, r.variant.apiPath("unarchive"), roomParams(room))
}

// AddAll adds every user of the server to room, or only the active ones.
func (r *Rooms) AddAll(ctx context.Context, room RoomSelector, activeUsersOnly bool) (bool, error) {
	body := roomParams(room).merge(params{"activeUsersOnly": activeUsersOnly})
	return r.session.postOK(ctx, r.variant.apiPath("addAll"), body)
}

// Rename changes the name of the room with the given ID.
func (r *Rooms) Rename(ctx context.Context, roomID, newName string) (bool, error) {
	return r.session.postOK(ctx, r.variant.apiPath("rename"), params{"roomId": roomID, "name": newName})
}

// SetAttr sets a single room attribute, given in snake_case (e.g.
// "read_only" calls setReadOnly). Attributes the collection does not allow
// are rejected with an *ArgumentError before anything is sent.
func (r *Rooms) SetAttr(ctx context.Context, room RoomSelector, attribute string, value any) (bool, error) {
	if !slices.Contains(r.variant.settableAttributes, attribute) {
		return false, &ArgumentError{Argument: attribute, Reason: "unsettable attribute"}
	}

	body := roomParams(room).merge(params{camelize(attribute): value})
	return r.session.postOK(ctx, r.variant.apiPath(camelize("set_"+attribute)), body)
}

// Members lists the users of a room. Only Offset, Count and Sort of opts are
// used.
func (r *Rooms) Members(ctx context.Context, room RoomSelector, opts ListOptions) ([]*User, error) {
	list, err := buildListParams(ListOptions{Offset: opts.Offset, Count: opts.Count, Sort: opts.Sort})
	if err != nil {
		return nil, err
	}

	payload, err := r.session.get(ctx, r.variant.apiPath("members"), roomParams(room).merge(list))
	if err != nil {
		return nil, err
	}

	return usersFrom(payload, "members"), nil
}

// UploadFile posts file to the room as a message attachment and returns
// the resulting message.
func (r *Rooms) UploadFile(ctx context.Context, roomID string, file io.Reader, opts UploadFileOptions) (*Message, error) {
	if roomID == "" {
		return nil, &ArgumentError{Argument: "roomID", Reason: "missing required argument"}
	}

	if file == nil {
		return nil, &ArgumentError{Argument: "file", Reason: "missing required argument"}
	}

	body := &multipartBody{}
	body.addFile("file", opts.FileName, opts.ContentType, file)

	fields := sliceParams(opts.params(), uploadFileFields...)
	for _, key := range uploadFileFields {
		if value, ok := fields[key].(string); ok {
			body.addValue(key, value)
		}
	}

	payload, err := r.session.post(ctx, "rooms.upload/"+url.PathEscape(roomID), body)
	if err != nil {
		return nil, err
	}

	return NewMessage(payload.Object("message")), nil
}

func (r *Rooms) list(ctx context.Context, method string, opts ListOptions) ([]*Room, error) {
	body, err := buildListParams(opts)
	if err != nil {
		return nil, err
	}

	payload, err := r.session.get(ctx, r.variant.apiPath(method), body)
	if err != nil {
		return nil, err
	}

	return roomsFrom(payload, r.variant.collection), nil
}

func (r *Rooms) online(ctx context.Context, room RoomSelector) ([]*User, error) {
	payload, err := r.session.get(ctx, r.variant.apiPath("online"), params{"query": roomQueryParams(room)})
	if err != nil {
		return nil, err
	}

	return usersFrom(payload, "online"), nil
}

func (r *Rooms) roomUserAction(ctx context.Context, method string, room RoomSelector, user UserSelector, upstreamedErrors ...string) (bool, error) {
	body := roomParams(room).merge(userParams(user))
	return r.session.postOK(ctx, r.variant.apiPath(method), body, upstreamedErrors...)
}
