// Package common contains constants and small helpers shared by the client
// packages.
package common

// Wire-level names used on every request to the blog backend.
const (
	// AuthorizationHeader carries the bearer credential.
	AuthorizationHeader = "Authorization"
	// TokenScheme prefixes the opaque token: "Authorization: Token <t>".
	TokenScheme = "Token"
	// RequestIDHeader correlates client log lines with server logs.
	RequestIDHeader = "X-Request-ID"

	// TokenMetadataKey is the single durable key holding the session token.
	TokenMetadataKey = "token"
)
