package services

import (
	"context"

	"github.com/dmitrijs2005/gophblog/internal/client/client"
	"github.com/dmitrijs2005/gophblog/internal/client/session"
	"github.com/dmitrijs2005/gophblog/internal/logging"
)

// sessionGuard tears the Session down when the server stops accepting its
// token. A 403 on someone else's post leaves it alone.
type sessionGuard struct {
	store *session.Store
	log   logging.Logger
}

func (g sessionGuard) check(ctx context.Context, err error) error {
	if err == nil || !client.IsSessionExpired(err) {
		return err
	}
	if cerr := g.store.ClearSession(ctx); cerr != nil {
		g.log.Warn(ctx, "could not clear expired session", "error", cerr)
		return err
	}
	g.log.Info(ctx, "session expired, logged out")
	return err
}
