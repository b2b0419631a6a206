package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepository keeps a best-effort reference row for ride owners. Identity
// itself lives with the external auth provider; ids are opaque strings here.
type UserRepository interface {
	EnsureExists(ctx context.Context, id string) error
}

type PGUserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) UserRepository {
	return &PGUserRepository{db: db}
}

func (r *PGUserRepository) EnsureExists(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `INSERT INTO users (id) VALUES ($1) ON CONFLICT (id) DO NOTHING`, id)
	return err
}

var _ UserRepository = (*PGUserRepository)(nil)
