package client

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const maxErrorBody = 64 << 10

// Keys the backend uses for messages that belong to no particular field.
var nonFieldKeys = []string{"detail", "non_field_errors"}

func isNonFieldKey(k string) bool {
	for _, n := range nonFieldKeys {
		if k == n {
			return true
		}
	}
	return false
}

// decodeError turns a non-2xx response into exactly one member of the
// error taxonomy. Callers never look at raw bodies.
func decodeError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		if msg := bodyMessage(raw); msg != "" {
			return &MessageError{Status: resp.StatusCode, Message: msg}
		}
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	}

	var body any
	if err := json.Unmarshal(raw, &body); err != nil {
		return &MessageError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}

	if obj, ok := body.(map[string]any); ok {
		fields := make(map[string]string, len(obj))
		fieldKeyed := false
		for k, v := range obj {
			if !isNonFieldKey(k) {
				fieldKeyed = true
			}
			fields[k] = flatten(v)
		}
		if fieldKeyed && resp.StatusCode < http.StatusInternalServerError {
			return &FieldRejection{Status: resp.StatusCode, Fields: fields}
		}
	}

	msg := flatten(body)
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return &MessageError{Status: resp.StatusCode, Message: msg}
}

// bodyMessage extracts a human message from a JSON error body, if any.
func bodyMessage(raw []byte) string {
	var body any
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	return flatten(body)
}

// flatten renders an error value as one line: lists are joined with a
// space, objects contribute their non-field messages first.
func flatten(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			if s := flatten(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, " ")
	case map[string]any:
		parts := make([]string, 0, len(t))
		for _, k := range nonFieldKeys {
			if s := flatten(t[k]); s != "" {
				parts = append(parts, s)
			}
		}
		if len(parts) > 0 {
			return strings.Join(parts, " ")
		}
		b, _ := json.Marshal(t)
		return string(b)
	default:
		return fmt.Sprint(t)
	}
}
