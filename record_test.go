package rocketchat

import (
	"encoding/json"
	"reflect"
	"testing"
)

type fieldName string

type stringerKey struct{ name string }

func (k stringerKey) String() string { return k.name }

func TestNewRecord_KeyRepresentation(t *testing.T) {
	t.Parallel()

	plain := NewRecord(map[string]any{"_id": "r1", "name": "general"})
	named := NewRecord(map[fieldName]any{"_id": "r1", "name": "general"})
	mixed := NewRecord(map[any]any{fieldName("_id"): "r1", stringerKey{"name"}: "general"})

	if !reflect.DeepEqual(plain, named) {
		t.Errorf("expected named-string keys to match, got %v and %v", plain, named)
	}

	if !reflect.DeepEqual(plain, mixed) {
		t.Errorf("expected mixed keys to match, got %v and %v", plain, mixed)
	}

	if NewRoom(named).ID() != NewRoom(plain).ID() {
		t.Error("expected rooms built from either map to agree")
	}
}

func TestRecordAccessors(t *testing.T) {
	t.Parallel()

	var data Record
	if err := json.Unmarshal([]byte(`{
		"name": "general",
		"ro": true,
		"msgs": 42,
		"utcOffset": 1.5,
		"u": {"_id": "u1", "username": "alice"},
		"emails": [{"address": "a@example.com"}, "junk"],
		"roles": ["user", 7, "admin"]
	}`), &data); err != nil {
		t.Fatalf("failed to decode fixture: %v", err)
	}

	if got := data.String("name"); got != "general" {
		t.Errorf("expected name=general, got %q", got)
	}

	if got := data.String("msgs"); got != "" {
		t.Errorf("expected non-string to read as empty, got %q", got)
	}

	if !data.Bool("ro") {
		t.Error("expected ro=true")
	}

	if got := data.Int("msgs"); got != 42 {
		t.Errorf("expected msgs=42, got %d", got)
	}

	if got := data.Float("utcOffset"); got != 1.5 {
		t.Errorf("expected utcOffset=1.5, got %v", got)
	}

	if got := data.Object("u").String("username"); got != "alice" {
		t.Errorf("expected nested username=alice, got %q", got)
	}

	if got := data.Object("missing"); got != nil {
		t.Errorf("expected nil for missing object, got %v", got)
	}

	if got := len(data.Objects("emails")); got != 1 {
		t.Errorf("expected 1 email object, got %d", got)
	}

	if got := data.Strings("roles"); !reflect.DeepEqual(got, []string{"user", "admin"}) {
		t.Errorf("expected roles [user admin], got %v", got)
	}
}

func TestRecordEmptyCollections(t *testing.T) {
	t.Parallel()

	data := Record{}

	if got := data.Objects("users"); got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}

	if got := data.Strings("roles"); got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}
}

func TestRecordClone(t *testing.T) {
	t.Parallel()

	original := Record{"name": "general"}
	clone := original.Clone()
	clone["name"] = "random"

	if original.String("name") != "general" {
		t.Error("expected clone to be independent of the original")
	}

	var empty Record
	if empty.Clone() == nil {
		t.Error("expected clone of nil record to be non-nil")
	}
}
