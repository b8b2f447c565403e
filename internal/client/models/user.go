package models

// User is the identity the backend knows the caller by.
// ID is immutable once issued; username and email uniqueness is the
// server's business.
type User struct {
	ID        ID     `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// DisplayName returns "First Last" when known and the username otherwise.
func (u User) DisplayName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.Username
	}
}

// Merge overlays the non-empty fields of patch onto u. ID is never changed.
func (u User) Merge(patch User) User {
	if patch.Username != "" {
		u.Username = patch.Username
	}
	if patch.Email != "" {
		u.Email = patch.Email
	}
	if patch.FirstName != "" {
		u.FirstName = patch.FirstName
	}
	if patch.LastName != "" {
		u.LastName = patch.LastName
	}
	return u
}

// Session pairs a bearer token with the user it represents.
type Session struct {
	Token string
	User  User
}
