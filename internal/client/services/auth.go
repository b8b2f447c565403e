// Package services contains the application services of the blog client.
// They sit between the commands and the Resource Gateway, and keep the
// Credential Store in step with what the server says.
package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophblog/internal/client/client"
	"github.com/dmitrijs2005/gophblog/internal/client/models"
	"github.com/dmitrijs2005/gophblog/internal/client/session"
	"github.com/dmitrijs2005/gophblog/internal/logging"
)

// AuthService defines the account operations of the client.
//
// Contract:
//   - Register, Login: on success the returned user becomes the active Session.
//   - Logout: removes the stored token and the Session.
//   - Bootstrap: revives a stored token once at startup; failures are silent.
//   - WhoAmI: refreshes the Session user from the server.
//   - UpdateProfile: sends a partial update and merges the result into the Session.
//
// Any call answered with 401 clears the Session before the error is returned.
type AuthService interface {
	Register(ctx context.Context, in models.RegisterInput) (*models.User, error)
	Login(ctx context.Context, in models.LoginInput) (*models.User, error)
	Logout(ctx context.Context) error
	Bootstrap(ctx context.Context) (*models.User, error)
	WhoAmI(ctx context.Context) (*models.User, error)
	UpdateProfile(ctx context.Context, in models.ProfileInput) (*models.User, error)
	CurrentUser() *models.User
	Ready() bool
}

type authService struct {
	client client.Client
	store  *session.Store
	log    logging.Logger
	guard  sessionGuard
}

// NewAuthService constructs an AuthService over the gateway and the store.
func NewAuthService(c client.Client, store *session.Store, log logging.Logger) AuthService {
	return &authService{client: c, store: store, log: log, guard: sessionGuard{store: store, log: log}}
}

func (a *authService) Register(ctx context.Context, in models.RegisterInput) (*models.User, error) {
	s, err := a.client.Register(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	return a.start(ctx, s)
}

func (a *authService) Login(ctx context.Context, in models.LoginInput) (*models.User, error) {
	s, err := a.client.Login(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	return a.start(ctx, s)
}

func (a *authService) start(ctx context.Context, s *models.Session) (*models.User, error) {
	if err := a.store.SetSession(ctx, s.User, s.Token); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	a.log.Info(ctx, "logged in", "user", s.User.Username)
	u := s.User
	return &u, nil
}

func (a *authService) Logout(ctx context.Context) error {
	if err := a.store.ClearSession(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

func (a *authService) Bootstrap(ctx context.Context) (*models.User, error) {
	return session.Bootstrap(ctx, a.store, a.client, a.log)
}

func (a *authService) WhoAmI(ctx context.Context) (*models.User, error) {
	token := a.store.Token()
	if token == "" {
		return nil, client.ErrNoSession
	}
	u, err := a.client.FetchCurrentUser(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("fetch current user: %w", a.guard.check(ctx, err))
	}
	a.store.UpdateUser(*u)
	return a.CurrentUser(), nil
}

func (a *authService) UpdateProfile(ctx context.Context, in models.ProfileInput) (*models.User, error) {
	u, err := a.client.UpdateProfile(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", a.guard.check(ctx, err))
	}
	a.store.UpdateUser(*u)
	return a.CurrentUser(), nil
}

// CurrentUser returns a copy of the Session user, or nil when anonymous.
func (a *authService) CurrentUser() *models.User {
	u, ok := a.store.CurrentUser()
	if !ok {
		return nil
	}
	return &u
}

func (a *authService) Ready() bool {
	return a.store.Ready()
}
