// ABOUTME: Tests for the shared entity identifier
// ABOUTME: Both JSON string and number forms must decode to the same id
package models

import (
	"encoding/json"
	"testing"
)

func TestIDUnmarshalForms(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want ID
	}{
		{"string", `"42"`, "42"},
		{"number", `42`, "42"},
		{"large number", `9007199254740993`, "9007199254740993"},
		{"null", `null`, ""},
		{"uuid string", `"b3c1a9d0-0001-4f00-8000-000000000000"`, "b3c1a9d0-0001-4f00-8000-000000000000"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var id ID
			if err := json.Unmarshal([]byte(tc.in), &id); err != nil {
				t.Fatalf("unmarshal %s: %v", tc.in, err)
			}
			if id != tc.want {
				t.Errorf("got %q, want %q", id, tc.want)
			}
		})
	}
}

func TestIDUnmarshalRejectsObjects(t *testing.T) {
	var id ID
	if err := json.Unmarshal([]byte(`{"id":1}`), &id); err == nil {
		t.Fatal("expected an error for a non-scalar id")
	}
}

func TestIDMarshalsAsString(t *testing.T) {
	out, err := json.Marshal(ID("7"))
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `"7"` {
		t.Errorf("got %s, want a JSON string", out)
	}
}

func TestIDZero(t *testing.T) {
	if !ID("").IsZero() {
		t.Error("empty id should be zero")
	}
	if ID("1").IsZero() {
		t.Error("non-empty id should not be zero")
	}
}

func TestNumberAndStringFormsCompareEqual(t *testing.T) {
	var a, b Gallery
	if err := json.Unmarshal([]byte(`{"id":7,"title":"x"}`), &a); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal([]byte(`{"id":"7","title":"x"}`), &b); err != nil {
		t.Fatal(err)
	}
	if a.EntityID() != b.EntityID() {
		t.Errorf("ids differ: %q vs %q", a.EntityID(), b.EntityID())
	}
}
