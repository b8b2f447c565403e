package session

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/gophblog/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/gophblog/internal/common"
	"github.com/dmitrijs2005/gophblog/internal/dbx"
)

// TokenStorage is the durable half of the Credential Store. An empty token
// from Load means nobody was logged in.
type TokenStorage interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Remove(ctx context.Context) error
}

// MetadataTokenStorage keeps the token in the local metadata table.
type MetadataTokenStorage struct {
	db *sql.DB
}

func NewMetadataTokenStorage(db *sql.DB) *MetadataTokenStorage {
	return &MetadataTokenStorage{db: db}
}

func (s *MetadataTokenStorage) Load(ctx context.Context) (string, error) {
	v, err := metadata.NewSQLiteRepository(s.db).Get(ctx, common.TokenMetadataKey)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

// Save replaces whatever the table holds with the single token row.
func (s *MetadataTokenStorage) Save(ctx context.Context, token string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Clear(ctx); err != nil {
			return err
		}
		return repo.Set(ctx, common.TokenMetadataKey, []byte(token))
	})
}

func (s *MetadataTokenStorage) Remove(ctx context.Context) error {
	return metadata.NewSQLiteRepository(s.db).Delete(ctx, common.TokenMetadataKey)
}
