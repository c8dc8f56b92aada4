package timeoff

import (
	"context"

	"github.com/jackc/pgx/v5"

	"timeclock/internal/platform/db"
)

type Store struct {
	DB *db.Pool
}

func NewStore(pool *db.Pool) *Store {
	return &Store{DB: pool}
}

func (s *Store) BeginTx(ctx context.Context) (pgx.Tx, error) {
	return s.DB.Begin(ctx)
}
