package rocketchat

// ImSummary holds the counters of a direct message room (im.counters).
type ImSummary struct {
	data Record
}

func NewImSummary(data Record) *ImSummary {
	return &ImSummary{data: data.Clone()}
}

func (s *ImSummary) Data() Record {
	return s.data.Clone()
}

func (s *ImSummary) Joined() bool {
	return s.data.Bool("joined")
}

// Members is the number of members in the conversation.
func (s *ImSummary) Members() int {
	return s.data.Int("members")
}

func (s *ImSummary) Unreads() int {
	return s.data.Int("unreads")
}

func (s *ImSummary) UnreadsFrom() string {
	return s.data.String("unreadsFrom")
}

func (s *ImSummary) Msgs() int {
	return s.data.Int("msgs")
}

// Latest is the timestamp of the last message.
func (s *ImSummary) Latest() string {
	return s.data.String("latest")
}

func (s *ImSummary) UserMentions() int {
	return s.data.Int("userMentions")
}

func (s *ImSummary) Success() bool {
	return s.data.Bool("success")
}
