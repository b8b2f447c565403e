package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophblog/internal/client/client"
	"github.com/dmitrijs2005/gophblog/internal/client/models"
	"github.com/dmitrijs2005/gophblog/internal/client/policy"
	"github.com/dmitrijs2005/gophblog/internal/client/session"
	"github.com/dmitrijs2005/gophblog/internal/logging"
)

// PostService defines the post operations of the client.
//
// Nothing is changed locally before the server confirms: the caller gets
// the server's copy back and re-reads lists when it needs them.
// CanMutate is advisory and decides which commands are offered; the
// server still rejects a non-owner with client.ErrForbidden.
type PostService interface {
	List(ctx context.Context) ([]models.Post, error)
	ListMine(ctx context.Context) ([]models.Post, error)
	Get(ctx context.Context, id models.ID) (*models.Post, error)
	Create(ctx context.Context, in models.PostInput) (*models.Post, error)
	Update(ctx context.Context, id models.ID, in models.PostInput) (*models.Post, error)
	Delete(ctx context.Context, id models.ID) error
	CanMutate(post models.Post) bool
}

type postService struct {
	client client.Client
	store  *session.Store
	guard  sessionGuard
}

// NewPostService constructs a PostService over the gateway and the store.
func NewPostService(c client.Client, store *session.Store, log logging.Logger) PostService {
	return &postService{client: c, store: store, guard: sessionGuard{store: store, log: log}}
}

func (p *postService) List(ctx context.Context) ([]models.Post, error) {
	posts, err := p.client.ListPosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

func (p *postService) ListMine(ctx context.Context) ([]models.Post, error) {
	posts, err := p.client.ListMyPosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list my posts: %w", p.guard.check(ctx, err))
	}
	return posts, nil
}

func (p *postService) Get(ctx context.Context, id models.ID) (*models.Post, error) {
	post, err := p.client.GetPost(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get post %s: %w", id, err)
	}
	return post, nil
}

func (p *postService) Create(ctx context.Context, in models.PostInput) (*models.Post, error) {
	post, err := p.client.CreatePost(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", p.guard.check(ctx, err))
	}
	return post, nil
}

func (p *postService) Update(ctx context.Context, id models.ID, in models.PostInput) (*models.Post, error) {
	post, err := p.client.UpdatePost(ctx, id, in)
	if err != nil {
		return nil, fmt.Errorf("update post %s: %w", id, p.guard.check(ctx, err))
	}
	return post, nil
}

func (p *postService) Delete(ctx context.Context, id models.ID) error {
	if err := p.client.DeletePost(ctx, id); err != nil {
		return fmt.Errorf("delete post %s: %w", id, p.guard.check(ctx, err))
	}
	return nil
}

// CanMutate is false until Bootstrap has finished, since ownership cannot
// be known before that.
func (p *postService) CanMutate(post models.Post) bool {
	if !p.store.Ready() {
		return false
	}
	u, ok := p.store.CurrentUser()
	if !ok {
		return policy.CanMutate(nil, post)
	}
	return policy.CanMutate(&u, post)
}
