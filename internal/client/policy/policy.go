// Package policy holds the client-side ownership rule. It only decides which
// commands are offered; the server enforces the real authorization.
package policy

import "github.com/dmitrijs2005/gophblog/internal/client/models"

// CanMutate reports whether user may edit or delete post. A nil user, or one
// whose id is unknown, is anonymous. Evaluate it whenever it is needed; the session can change in
// between.
func CanMutate(user *models.User, post models.Post) bool {
	return user != nil && !user.ID.IsZero() && user.ID == post.Author
}
