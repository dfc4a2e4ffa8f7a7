package rocketchat

import (
	"encoding/json"
	"fmt"
	"maps"
)

// Record is a decoded JSON object as returned by the server. Result types
// wrap a Record and expose read-only accessors over it.
type Record map[string]any

// NewRecord copies data into a Record, converting every key to its string
// form. Maps keyed by named string types or by any produce the same Record
// as a map[string]any with the same content.
func NewRecord[K comparable](data map[K]any) Record {
	record := make(Record, len(data))

	for key, value := range data {
		record[keyString(key)] = value
	}

	return record
}

func keyString(key any) string {
	switch k := key.(type) {
	case string:
		return k
	case fmt.Stringer:
		return k.String()
	default:
		return fmt.Sprint(k)
	}
}

// Clone returns a shallow copy of r.
func (r Record) Clone() Record {
	if r == nil {
		return Record{}
	}

	return maps.Clone(r)
}

func (r Record) Has(key string) bool {
	_, ok := r[key]
	return ok
}

// String returns the value at key if it is a string, or "".
func (r Record) String(key string) string {
	s, _ := r[key].(string)
	return s
}

// Bool returns the value at key if it is a bool, or false.
func (r Record) Bool(key string) bool {
	b, _ := r[key].(bool)
	return b
}

// Int returns the numeric value at key truncated to int, or 0.
func (r Record) Int(key string) int {
	return int(r.Float(key))
}

// Float returns the numeric value at key, or 0.
func (r Record) Float(key string) float64 {
	switch v := r[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case json.Number:
		f, _ := v.Float64()
		return f
	default:
		return 0
	}
}

// Object returns the nested object at key, or nil.
func (r Record) Object(key string) Record {
	switch v := r[key].(type) {
	case map[string]any:
		return Record(v)
	case Record:
		return v
	default:
		return nil
	}
}

// Objects returns the objects in the array at key. Non-object elements are
// skipped. The result is never nil.
func (r Record) Objects(key string) []Record {
	items, _ := r[key].([]any)

	records := make([]Record, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case map[string]any:
			records = append(records, Record(v))
		case Record:
			records = append(records, v)
		}
	}

	return records
}

// Strings returns the string elements of the array at key. The result is
// never nil.
func (r Record) Strings(key string) []string {
	switch v := r[key].(type) {
	case []string:
		return append([]string(nil), v...)
	case []any:
		values := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				values = append(values, s)
			}
		}
		return values
	default:
		return []string{}
	}
}
