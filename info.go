package rocketchat

import "fmt"

// Info describes the server, as returned by /api/v1/info.
type Info struct {
	data Record
}

func NewInfo(data Record) *Info {
	return &Info{data: data.Clone()}
}

func (i *Info) Data() Record {
	return i.data.Clone()
}

func (i *Info) Version() string {
	return i.data.String("version")
}

func (i *Info) String() string {
	return fmt.Sprintf("Info{version=%q}", i.Version())
}
