// ABOUTME: Entity identifier shared by every resource model
// ABOUTME: Accepts both JSON string and number forms, compares as a string
package models

import (
	"encoding/json"
	"fmt"
)

// ID is a server-assigned entity identifier. The API is inconsistent about
// whether ids arrive as JSON strings or numbers, so both decode into the
// same string form. The client never generates entity ids.
type ID string

func (id ID) String() string { return string(id) }

// IsZero reports whether the id is unset.
func (id ID) IsZero() bool { return id == "" }

func (id ID) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(id))
}

func (id *ID) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// Entity is the one shape the generic controllers depend on. Everything
// else about a record is resource-specific.
type Entity interface {
	EntityID() ID
}
