package client

import (
	"context"

	"github.com/dmitrijs2005/gophblog/internal/client/models"
)

//go:generate mockgen -destination=mocks/client_mock.go -package=mocks github.com/dmitrijs2005/gophblog/internal/client/client Client

// Client is the transport-agnostic contract of the blog backend.
//
// Operations marked as authenticated read the bearer token from the
// TokenSource the implementation was built with and fail with ErrNoSession,
// without touching the network, when there is none. FetchCurrentUser takes
// the token explicitly because it runs before a Session exists.
type Client interface {
	Register(ctx context.Context, in models.RegisterInput) (*models.Session, error)
	Login(ctx context.Context, in models.LoginInput) (*models.Session, error)
	FetchCurrentUser(ctx context.Context, token string) (*models.User, error)
	UpdateProfile(ctx context.Context, in models.ProfileInput) (*models.User, error)

	ListPosts(ctx context.Context) ([]models.Post, error)
	ListMyPosts(ctx context.Context) ([]models.Post, error)
	GetPost(ctx context.Context, id models.ID) (*models.Post, error)
	CreatePost(ctx context.Context, in models.PostInput) (*models.Post, error)
	UpdatePost(ctx context.Context, id models.ID, in models.PostInput) (*models.Post, error)
	DeletePost(ctx context.Context, id models.ID) error
}

// TokenSource yields the token of the active Session, or "" when anonymous.
type TokenSource interface {
	Token() string
}

// TokenFunc adapts a plain function to TokenSource.
type TokenFunc func() string

func (f TokenFunc) Token() string { return f() }
