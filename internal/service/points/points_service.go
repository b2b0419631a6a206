package points

import (
	"context"
	"errors"

	"github.com/dhawal37/ecorides/internal/repository"
)

// PointsUseCase is the green-points balance: riders earn points for every
// confirmed booking and spend them through Redeem.
type PointsUseCase interface {
	Award(ctx context.Context, userID string, points int64) error
	Redeem(ctx context.Context, userID string, points int64) error
	Balance(ctx context.Context, userID string) (int64, error)
}

type PointsService struct {
	repo repository.PointsRepository
}

func NewPointsService(repo repository.PointsRepository) *PointsService {
	return &PointsService{repo: repo}
}

func (s *PointsService) Award(ctx context.Context, userID string, points int64) error {
	if points <= 0 {
		return errors.New("points must be positive")
	}
	return s.repo.Add(ctx, userID, points)
}

func (s *PointsService) Redeem(ctx context.Context, userID string, points int64) error {
	if points <= 0 {
		return errors.New("points must be positive")
	}
	return s.repo.Redeem(ctx, userID, points)
}

func (s *PointsService) Balance(ctx context.Context, userID string) (int64, error) {
	return s.repo.Balance(ctx, userID)
}

var _ PointsUseCase = (*PointsService)(nil)
