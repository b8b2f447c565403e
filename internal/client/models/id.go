// Package models defines client-side data models used by the gophblog client.
package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
)

var ErrInvalidID = errors.New("id must be a JSON string or number")

// ID is an opaque server-assigned identifier. The backend emits numeric
// primary keys, but the client never does arithmetic on them, so both JSON
// numbers and strings are accepted and kept as text.
type ID string

func (id ID) String() string { return string(id) }

// IsZero reports whether the identifier is unset.
func (id ID) IsZero() bool { return id == "" }

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return ErrInvalidID
	}
	*id = ID(n.String())
	return nil
}

// MarshalJSON writes numeric identifiers back as numbers so the server sees
// the same shape it produced.
func (id ID) MarshalJSON() ([]byte, error) {
	if id == "" {
		return []byte("null"), nil
	}
	if _, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}
