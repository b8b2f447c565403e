package models

import "time"

// Post is a blog post as served by the backend.
//
// Image is the server-hosted URL of the attachment, empty when the post has
// none. Author is immutable after creation.
type Post struct {
	ID             ID        `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Image          string    `json:"image,omitempty"`
	Author         ID        `json:"author"`
	AuthorUsername string    `json:"author_username"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Edited reports whether the post was modified after creation.
func (p Post) Edited() bool {
	return !p.UpdatedAt.IsZero() && !p.UpdatedAt.Equal(p.CreatedAt)
}

// HasImage reports whether the post carries a hosted image.
func (p Post) HasImage() bool {
	return p.Image != ""
}
