package rocketchat

import (
	"fmt"
	"time"
)

type Message struct {
	data Record
}

func NewMessage(data Record) *Message {
	return &Message{data: data.Clone()}
}

func (m *Message) Data() Record {
	return m.data.Clone()
}

func (m *Message) ID() string {
	return m.data.String("_id")
}

// ThreadID is the ID of the thread's parent message, or "".
func (m *Message) ThreadID() string {
	return m.data.String("tmid")
}

func (m *Message) Timestamp() (time.Time, error) {
	return parseTime(m.data, "ts")
}

func (m *Message) UpdatedAt() (time.Time, error) {
	return parseTime(m.data, "_updatedAt")
}

func (m *Message) RoomID() string {
	return m.data.String("rid")
}

// User is the sender.
func (m *Message) User() *User {
	return NewUser(m.data.Object("u"))
}

func (m *Message) Text() string {
	return m.data.String("msg")
}

func (m *Message) Alias() string {
	return m.data.String("alias")
}

func (m *Message) ParseURLs() bool {
	return m.data.Bool("parseUrls")
}

func (m *Message) Groupable() bool {
	return m.data.Bool("groupable")
}

func (m *Message) String() string {
	return fmt.Sprintf("Message{id=%q room=%q msg=%q}", m.ID(), m.RoomID(), m.Text())
}

// parseTime reads an RFC 3339 timestamp (the format of every date the REST
// API returns) from data.
func parseTime(data Record, key string) (time.Time, error) {
	raw, ok := data[key].(string)
	if !ok {
		return time.Time{}, fmt.Errorf("%s is not a timestamp string", key)
	}

	parsed, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s: %w", key, err)
	}

	return parsed, nil
}
