package rocketchat

import "fmt"

var roomTypes = map[string]string{
	"c": "public",
	"p": "private",
	"d": "IM",
}

// Room is a channel, private group or direct message conversation.
type Room struct {
	data Record
}

func NewRoom(data Record) *Room {
	return &Room{data: data.Clone()}
}

func (r *Room) Data() Record {
	return r.data.Clone()
}

func (r *Room) ID() string {
	return r.data.String("_id")
}

// SubscriptionID is only set on rooms taken from a user's subscription list
// (see [User.Rooms]).
func (r *Room) SubscriptionID() string {
	return r.data.String("subscription_id")
}

func (r *Room) Name() string {
	return r.data.String("name")
}

// Owner is the raw creator object ({_id, username}).
func (r *Room) Owner() Record {
	return r.data.Object("u").Clone()
}

func (r *Room) CreatedAt() string {
	return r.data.String("ts")
}

func (r *Room) LastUpdate() string {
	return r.data.String("_updatedAt")
}

func (r *Room) Topic() string {
	return r.data.String("topic")
}

func (r *Room) Description() string {
	return r.data.String("description")
}

// Members lists member usernames; empty when the server did not include
// them.
func (r *Room) Members() []string {
	return r.data.Strings("usernames")
}

func (r *Room) ReadOnly() bool {
	return r.data.Bool("ro")
}

func (r *Room) MessageCount() int {
	return r.data.Int("msgs")
}

func (r *Room) LastMessage() string {
	return r.data.String("lm")
}

// Type returns "public", "private" or "IM" for the known room type codes
// and the raw code otherwise.
func (r *Room) Type() string {
	code := r.data.String("t")
	if name, ok := roomTypes[code]; ok {
		return name
	}

	return code
}

// SystemMessages is the raw sysMes value: a bool or a list of hidden
// system message types, depending on server version.
func (r *Room) SystemMessages() any {
	return r.data["sysMes"]
}

func (r *Room) String() string {
	return fmt.Sprintf("Room{id=%q name=%q type=%q}", r.ID(), r.Name(), r.Type())
}

func roomsFrom(payload Record, key string) []*Room {
	records := payload.Objects(key)

	rooms := make([]*Room, 0, len(records))
	for _, record := range records {
		rooms = append(rooms, NewRoom(record))
	}

	return rooms
}
