package session

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophblog/internal/client/models"
	"github.com/dmitrijs2005/gophblog/internal/logging"
)

// UserResolver resolves a bearer token to the user it belongs to.
type UserResolver interface {
	FetchCurrentUser(ctx context.Context, token string) (*models.User, error)
}

// Bootstrap revives a stored token at startup.
//
// With no stored token it does nothing. If the server accepts the token the
// Session is set and the user returned. Any resolution failure (expired
// token, network error) discards the token silently: the result is
// (nil, nil) and only a log line records it. Errors are returned only when
// the local storage itself fails. The store is marked ready on every path.
//
// Login and logout may run while the resolver is in flight. A session set or
// cleared in the meantime wins: Bootstrap then neither restores nor removes
// anything.
func Bootstrap(ctx context.Context, store *Store, resolver UserResolver, log logging.Logger) (*models.User, error) {
	defer store.markReady()

	token, err := store.StoredToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("read stored token: %w", err)
	}
	if token == "" {
		return nil, nil
	}

	user, err := resolver.FetchCurrentUser(ctx, token)
	if err != nil {
		log.Info(ctx, "stored session discarded", "error", err)
		if _, err := store.discardStored(ctx, token); err != nil {
			return nil, fmt.Errorf("discard stored token: %w", err)
		}
		return nil, nil
	}

	restored, err := store.restoreSession(ctx, *user, token)
	if err != nil {
		return nil, err
	}
	if !restored {
		log.Debug(ctx, "stored session superseded", "user", user.Username)
		return nil, nil
	}
	log.Debug(ctx, "session restored", "user", user.Username)
	return user, nil
}
