package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/gophblog/internal/client/attachment"
	"github.com/dmitrijs2005/gophblog/internal/client/client"
	"github.com/dmitrijs2005/gophblog/internal/client/config"
	"github.com/dmitrijs2005/gophblog/internal/client/repositories"
	"github.com/dmitrijs2005/gophblog/internal/client/services"
	"github.com/dmitrijs2005/gophblog/internal/client/session"
	"github.com/dmitrijs2005/gophblog/internal/filex"
	"github.com/dmitrijs2005/gophblog/internal/logging"
)

type App struct {
	config      *config.Config
	repos       *repositories.Repositories
	authService services.AuthService
	postService services.PostService
	encode      attachment.EncodeFunc
	log         logging.Logger
	reader      *bufio.Reader
	out         io.Writer
}

// NewApp opens the session store at c.StorePath and wires the gateway and
// services on top of it.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	path, err := filex.EnsureParentDir(c.StorePath)
	if err != nil {
		return nil, err
	}

	repos, err := repositories.InitDatabase(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	store := session.NewStore(session.NewMetadataTokenStorage(repos.DB))

	api, err := client.NewHTTPClient(c.ServerURL, c.RequestTimeout, store, client.WithLogger(log))
	if err != nil {
		_ = repos.Close()
		return nil, err
	}

	return &App{
		config:      c,
		repos:       repos,
		authService: services.NewAuthService(api, store, log),
		postService: services.NewPostService(api, store, log),
		encode:      attachment.FileEncoder(c.MaxImageBytes),
		log:         log,
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
	}, nil
}

// Run restores the previous session in the background and serves the REPL
// until the user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	printlnFn("Welcome to the blog CLI (type 'help' for commands)")
	go a.bootstrap(ctx)

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) Close() {
	if a.repos != nil {
		if err := a.repos.Close(); err != nil {
			a.log.Warn(context.Background(), "close store", "error", err)
		}
	}
}

func (a *App) bootstrap(ctx context.Context) {
	u, err := a.authService.Bootstrap(ctx)
	if err != nil {
		a.log.Error(ctx, "restore session", "error", err)
		return
	}
	if u != nil {
		printlnFn(fmt.Sprintf("Welcome back, %s!", u.DisplayName()))
	}
}

func (a *App) isLoggedIn() bool {
	return a.authService.CurrentUser() != nil
}

func (a *App) isReady() bool {
	return a.authService.Ready()
}

func (a *App) getStatus() string {
	if !a.isReady() {
		return "(loading)"
	}
	if u := a.authService.CurrentUser(); u != nil {
		return fmt.Sprintf("(%s)", u.Username)
	}
	return ""
}
