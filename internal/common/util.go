package common

import "strings"

// WipeByteArray overwrites the contents of b with zeros. It is used for
// passwords read from the terminal. A nil slice is a no-op.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// IsBlank reports whether s is empty or whitespace only.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// AuthorizationValue formats a token for the Authorization header.
func AuthorizationValue(token string) string {
	return TokenScheme + " " + token
}
