package rocketchat

import (
	"fmt"
	"time"
)

// PresenceStatus is the result of users.getPresence.
type PresenceStatus struct {
	data Record
}

func NewPresenceStatus(data Record) *PresenceStatus {
	return &PresenceStatus{data: data.Clone()}
}

func (p *PresenceStatus) Data() Record {
	return p.data.Clone()
}

// Presence is "online", "away", "busy" or "offline".
func (p *PresenceStatus) Presence() string {
	return p.data.String("presence")
}

func (p *PresenceStatus) ConnectionStatus() string {
	return p.data.String("connectionStatus")
}

// LastLogin is only reported when asking about yourself; an error is
// returned when it is missing or malformed.
func (p *PresenceStatus) LastLogin() (time.Time, error) {
	return parseTime(p.data, "lastLogin")
}

func (p *PresenceStatus) String() string {
	return fmt.Sprintf("PresenceStatus{presence=%q}", p.Presence())
}
