package rocketchat

import (
	"encoding/json"
	"fmt"
	"strings"
)

// params is the wire form of a request: JSON body for POST, query string for
// GET. Values that are nil never reach the wire.
type params map[string]any

// merge copies other into p and returns p.
func (p params) merge(other params) params {
	for key, value := range other {
		p[key] = value
	}

	return p
}

// RoomSelector identifies a room either by ID or by name. ID wins when both
// are set. An empty selector is sent as-is and left for the server to
// reject.
type RoomSelector struct {
	ID   string
	Name string
}

func ByRoomID(id string) RoomSelector {
	return RoomSelector{ID: id}
}

func ByRoomName(name string) RoomSelector {
	return RoomSelector{Name: name}
}

// UserSelector identifies a user either by ID or by username. ID wins when
// both are set.
type UserSelector struct {
	ID       string
	Username string
}

func ByUserID(id string) UserSelector {
	return UserSelector{ID: id}
}

func ByUsername(username string) UserSelector {
	return UserSelector{Username: username}
}

// ListOptions controls paging, sorting and filtering of list endpoints.
// Sort, Fields and Query are sent verbatim when they are strings and JSON
// encoded otherwise, e.g. Sort: map[string]int{"msgs": 1, "name": -1}.
type ListOptions struct {
	Offset *int
	Count  *int
	Sort   any
	Fields any
	Query  any
}

// Int returns a pointer to v, for optional integer fields.
func Int(v int) *int {
	return &v
}

// Bool returns a pointer to v, for optional boolean fields.
func Bool(v bool) *bool {
	return &v
}

func roomParams(sel RoomSelector) params {
	switch {
	case sel.ID != "":
		return params{"roomId": sel.ID}
	case sel.Name != "":
		return params{"roomName": sel.Name}
	default:
		return params{}
	}
}

// roomQueryParams renders the selector as the JSON query document used by
// the *.online endpoints.
func roomQueryParams(sel RoomSelector) string {
	var query map[string]string

	switch {
	case sel.ID != "":
		query = map[string]string{"_id": sel.ID}
	case sel.Name != "":
		query = map[string]string{"name": sel.Name}
	default:
		return "{}"
	}

	encoded, _ := json.Marshal(query)
	return string(encoded)
}

func userParams(sel UserSelector) params {
	switch {
	case sel.ID != "":
		return params{"userId": sel.ID}
	case sel.Username != "":
		return params{"username": sel.Username}
	default:
		return params{}
	}
}

func buildListParams(opts ListOptions) (params, error) {
	body := params{}

	if opts.Offset != nil {
		body["offset"] = *opts.Offset
	}

	if opts.Count != nil {
		body["count"] = *opts.Count
	}

	for _, field := range []struct {
		key   string
		value any
	}{
		{"sort", opts.Sort},
		{"fields", opts.Fields},
		{"query", opts.Query},
	} {
		switch value := field.value.(type) {
		case nil:
		case string:
			body[field.key] = value
		default:
			encoded, err := json.Marshal(value)
			if err != nil {
				return nil, fmt.Errorf("failed to encode %s: %w", field.key, err)
			}
			body[field.key] = string(encoded)
		}
	}

	return body, nil
}

// camelize converts a snake_case name to camelCase: every run of
// underscores followed by a lowercase letter is dropped and the letter
// upper-cased. Leading underscores and underscores not followed by a
// lowercase letter are kept, which makes the function idempotent.
func camelize(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	i := 0
	for i < len(name) && name[i] == '_' {
		b.WriteByte('_')
		i++
	}

	for i < len(name) {
		if name[i] != '_' {
			b.WriteByte(name[i])
			i++
			continue
		}

		end := i
		for end < len(name) && name[end] == '_' {
			end++
		}

		if end < len(name) && name[end] >= 'a' && name[end] <= 'z' {
			b.WriteByte(name[end] - 'a' + 'A')
			i = end + 1
		} else {
			b.WriteString(name[i:end])
			i = end
		}
	}

	return b.String()
}

// sliceParams returns a new map holding only the allowed keys of p. Go maps
// are unordered; callers that need a stable order iterate allowed.
func sliceParams(p params, allowed ...string) params {
	sliced := params{}

	for _, key := range allowed {
		if value, ok := p[key]; ok {
			sliced[key] = value
		}
	}

	return sliced
}

// optionParams filters p through the allow-list and converts the surviving
// keys to their camelCase wire names.
func optionParams(p params, allowed ...string) params {
	sliced := sliceParams(p, allowed...)

	wire := make(params, len(sliced))
	for key, value := range sliced {
		wire[camelize(key)] = value
	}

	return wire
}
