package models

// Form field names. They double as the keys the backend uses in
// field-keyed error bodies.
const (
	FieldUsername    = "username"
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldFirstName   = "first_name"
	FieldLastName    = "last_name"
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldImage       = "image"
)

type RegisterInput struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ProfileInput is a partial user update; empty fields are not sent.
type ProfileInput struct {
	Username  string `json:"username,omitempty"`
	Email     string `json:"email,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// ProfileInputFrom seeds a profile form with the current user's values.
func ProfileInputFrom(u User) ProfileInput {
	return ProfileInput{Username: u.Username, Email: u.Email, FirstName: u.FirstName, LastName: u.LastName}
}

// PostInput carries the fields of a create or update request. Empty strings
// and a nil Image are omitted from the multipart body, so an edit without a
// new file keeps the stored image.
type PostInput struct {
	Title       string
	Description string
	Image       *Upload
}

// Upload is a file ready for transmission as a multipart part.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}
