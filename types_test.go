package wolio

import (
	"encoding/json"
	"testing"
)

func TestUserJSONPreservesUnknownFields(t *testing.T) {
	raw := `{"id":"u-1","name":"A","email":"a@b.c","grade":7,"school":{"name":"Wolio High"}}`

	var u User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if u.ID != "u-1" || u.Name != "A" || u.Email != "a@b.c" {
		t.Fatalf("user = %+v", u)
	}
	if string(u.Extra["grade"]) != "7" {
		t.Fatalf("extra = %v", u.Extra)
	}

	out, err := json.Marshal(u)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var round map[string]json.RawMessage
	if err := json.Unmarshal(out, &round); err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if string(round["grade"]) != "7" {
		t.Fatal("unknown scalar field lost in round trip")
	}
	if string(round["school"]) != `{"name":"Wolio High"}` {
		t.Fatalf("unknown object field = %s", round["school"])
	}
	if string(round["id"]) != `"u-1"` {
		t.Fatalf("id = %s", round["id"])
	}
}

func TestUserIsZero(t *testing.T) {
	if !(User{}).IsZero() {
		t.Fatal("empty user must be zero")
	}
	if (User{ID: "u-1"}).IsZero() {
		t.Fatal("user with an ID is not zero")
	}
	if (User{Extra: map[string]json.RawMessage{"grade": []byte("7")}}).IsZero() {
		t.Fatal("user with extra fields is not zero")
	}
}
