package rocketchat

import "fmt"

type User struct {
	data Record
}

func NewUser(data Record) *User {
	return &User{data: data.Clone()}
}

func (u *User) Data() Record {
	return u.data.Clone()
}

func (u *User) ID() string {
	return u.data.String("_id")
}

func (u *User) Name() string {
	return u.data.String("name")
}

// Emails returns the raw {address, verified} entries.
func (u *User) Emails() []Record {
	return u.data.Objects("emails")
}

// Email is the first email address, or "".
func (u *User) Email() string {
	emails := u.Emails()
	if len(emails) == 0 {
		return ""
	}

	return emails[0].String("address")
}

func (u *User) EmailVerified() bool {
	emails := u.Emails()
	if len(emails) == 0 {
		return false
	}

	return emails[0].Bool("verified")
}

func (u *User) Status() string {
	return u.data.String("status")
}

func (u *User) StatusConnection() string {
	return u.data.String("statusConnection")
}

func (u *User) Username() string {
	return u.data.String("username")
}

func (u *User) UTCOffset() float64 {
	return u.data.Float("utcOffset")
}

func (u *User) Active() bool {
	return u.data.Bool("active")
}

func (u *User) Roles() []string {
	return u.data.Strings("roles")
}

// Rooms returns the rooms embedded in a users.info response. Those entries
// are subscriptions: their _id is the subscription and rid the room, so the
// returned Room uses rid as its ID and exposes the subscription through
// [Room.SubscriptionID].
func (u *User) Rooms() []*Room {
	records := u.data.Objects("rooms")

	rooms := make([]*Room, 0, len(records))
	for _, record := range records {
		data := record.Clone()
		if roomID, ok := record["rid"]; ok {
			data["subscription_id"] = record["_id"]
			data["_id"] = roomID
		}
		rooms = append(rooms, &Room{data: data})
	}

	return rooms
}

func (u *User) String() string {
	return fmt.Sprintf("User{id=%q username=%q active=%t}", u.ID(), u.Username(), u.Active())
}

func usersFrom(payload Record, key string) []*User {
	records := payload.Objects(key)

	users := make([]*User, 0, len(records))
	for _, record := range records {
		users = append(users, NewUser(record))
	}

	return users
}
