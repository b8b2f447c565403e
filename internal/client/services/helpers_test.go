package services

import (
	"context"
	"database/sql"
	"testing"

	"github.com/dmitrijs2005/gophblog/internal/client/client/mocks"
	"github.com/dmitrijs2005/gophblog/internal/client/models"
	"github.com/dmitrijs2005/gophblog/internal/client/repositories"
	"github.com/dmitrijs2005/gophblog/internal/client/session"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	_ "modernc.org/sqlite"
)

func setupStore(t *testing.T) (*session.Store, *sql.DB) {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, repositories.RunMigrations(context.Background(), db))
	return session.NewStore(session.NewMetadataTokenStorage(db)), db
}

func setupMock(t *testing.T) *mocks.MockClient {
	t.Helper()
	ctrl := gomock.NewController(t)
	return mocks.NewMockClient(ctrl)
}

var alice = models.User{ID: "7", Username: "alice", Email: "alice@example.com"}

func loggedIn(t *testing.T, store *session.Store) {
	t.Helper()
	require.NoError(t, store.SetSession(context.Background(), alice, "tok"))
}

type mockExpect struct {
	m   *mocks.MockClient
	err error
}
