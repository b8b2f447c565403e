// Package client is the resource gateway of the gophblog client.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) covering
//     register/login, the current user and profile update, and the post
//     operations list/get/create/update/delete.
//  2. A concrete REST implementation (see HTTPClient) that attaches the
//     "Authorization: Token <t>" header from a TokenSource, tags every request
//     with an X-Request-ID, and encodes post bodies as multipart/form-data.
//
// # Error Handling
//
// Every failure is classified once, when the response is read, so callers
// never inspect raw bodies:
//
//   - ErrUnauthorized: 401, the credential is missing, invalid or expired.
//   - ErrForbidden:    403, matches ErrUnauthorized; the caller is not the owner.
//   - ErrNotFound:     404 on a single resource.
//   - ErrUnavailable:  no response at all (refused, timeout, cancelled).
//   - ErrNoSession:    an authenticated call was attempted while anonymous;
//     no request is sent.
//   - *FieldRejection: a 4xx body keyed by input field.
//   - *MessageError:   any other failure, with a single message.
//
// Use IsSessionExpired to decide whether the local session must be dropped.
package client
