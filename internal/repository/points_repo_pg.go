package repository

import (
	"context"
	"errors"

	"github.com/dhawal37/ecorides/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PointsRepository interface {
	Add(ctx context.Context, userID string, points int64) error
	// Redeem deducts points only when the balance covers them; otherwise
	// ErrInsufficientPoints and the balance is untouched.
	Redeem(ctx context.Context, userID string, points int64) error
	Balance(ctx context.Context, userID string) (int64, error)
}

type PGPointsRepository struct {
	db *pgxpool.Pool
}

func NewPointsRepository(db *pgxpool.Pool) PointsRepository {
	return &PGPointsRepository{db: db}
}

func (r *PGPointsRepository) Add(ctx context.Context, userID string, points int64) error {
	_, err := r.db.Exec(ctx, `INSERT INTO green_points (user_id, points) VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET points = green_points.points + EXCLUDED.points`, userID, points)
	return err
}

func (r *PGPointsRepository) Redeem(ctx context.Context, userID string, points int64) error {
	cmd, err := r.db.Exec(ctx, `UPDATE green_points SET points = points - $2 WHERE user_id=$1 AND points >= $2`, userID, points)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrInsufficientPoints
	}
	return nil
}

func (r *PGPointsRepository) Balance(ctx context.Context, userID string) (int64, error) {
	var points int64
	err := r.db.QueryRow(ctx, `SELECT points FROM green_points WHERE user_id=$1`, userID).Scan(&points)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, err
	}
	return points, nil
}

var _ PointsRepository = (*PGPointsRepository)(nil)
