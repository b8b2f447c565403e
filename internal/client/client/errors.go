package client

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden is the owner check failing on the server. It matches
	// ErrUnauthorized but does not mean the session is gone.
	ErrForbidden = fmt.Errorf("%w: not allowed to modify this resource", ErrUnauthorized)
	ErrNotFound  = errors.New("not found")
	ErrNoSession = errors.New("no active session")
)

// FieldRejection is a server validation failure keyed by input field.
type FieldRejection struct {
	Status int
	Fields map[string]string
}

func (e *FieldRejection) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return fmt.Sprintf("rejected (%d): %s", e.Status, strings.Join(parts, "; "))
}

// FieldErrors returns a copy of the per-field messages.
func (e *FieldRejection) FieldErrors() map[string]string {
	out := make(map[string]string, len(e.Fields))
	for k, v := range e.Fields {
		out[k] = v
	}
	return out
}

// MessageError is a server failure that is not attributable to a field.
type MessageError struct {
	Status  int
	Message string
}

func (e *MessageError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.Status)
	}
	return e.Message
}

// Is makes a 401 carrying a server message match ErrUnauthorized.
func (e *MessageError) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}

// IsSessionExpired reports whether err means the server no longer accepts
// the credential, as opposed to refusing one particular mutation.
func IsSessionExpired(err error) bool {
	return errors.Is(err, ErrUnauthorized) && !errors.Is(err, ErrForbidden)
}
