package repository

import (
	"context"
	"errors"
	"strconv"

	"github.com/dhawal37/ecorides/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RideRepository interface {
	Create(ctx context.Context, ride *domain.Ride) error
	GetByID(ctx context.Context, id string) (*domain.Ride, error)
	ListActive(ctx context.Context, filter domain.RideFilter) ([]domain.Ride, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Ride, error)
	Cancel(ctx context.Context, id string) error
	ReleaseSeat(ctx context.Context, id string) error
}

type PGRideRepository struct {
	db *pgxpool.Pool
}

func NewRideRepository(db *pgxpool.Pool) RideRepository {
	return &PGRideRepository{db: db}
}

const rideColumns = `id, user_id, from_location, to_location, area, ride_date, ride_time, car_model, car_number, available_seats, price_per_seat, pickup_points, status, created_at`

func scanRide(row pgx.Row) (*domain.Ride, error) {
	var r domain.Ride
	if err := row.Scan(&r.ID, &r.UserID, &r.From, &r.To, &r.Area, &r.Date, &r.Time, &r.CarModel, &r.CarNumber, &r.AvailableSeats, &r.PricePerSeat, &r.PickupPoints, &r.Status, &r.CreatedAt); err != nil {
		return nil, err
	}
	return &r, nil
}

func (r *PGRideRepository) Create(ctx context.Context, ride *domain.Ride) error {
	_, err := r.db.Exec(ctx, `INSERT INTO rides (id, user_id, from_location, to_location, area, ride_date, ride_time, car_model, car_number, available_seats, price_per_seat, pickup_points, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		ride.ID, ride.UserID, ride.From, ride.To, ride.Area, ride.Date, ride.Time, ride.CarModel, ride.CarNumber, ride.AvailableSeats, ride.PricePerSeat, ride.PickupPoints, ride.Status, ride.CreatedAt)
	return err
}

func (r *PGRideRepository) GetByID(ctx context.Context, id string) (*domain.Ride, error) {
	ride, err := scanRide(r.db.QueryRow(ctx, `SELECT `+rideColumns+` FROM rides WHERE id=$1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRideNotFound
		}
		return nil, err
	}
	return ride, nil
}

func (r *PGRideRepository) ListActive(ctx context.Context, filter domain.RideFilter) ([]domain.Ride, error) {
	query := `SELECT ` + rideColumns + ` FROM rides WHERE status=$1`
	args := []any{domain.RideStatusActive}
	if filter.From != "" {
		args = append(args, filter.From)
		query += ` AND from_location=$` + strconv.Itoa(len(args))
	}
	if filter.To != "" {
		args = append(args, filter.To)
		query += ` AND to_location=$` + strconv.Itoa(len(args))
	}
	if filter.Date != "" {
		args = append(args, filter.Date)
		query += ` AND ride_date=$` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRides(rows)
}

func (r *PGRideRepository) ListByUser(ctx context.Context, userID string) ([]domain.Ride, error) {
	rows, err := r.db.Query(ctx, `SELECT `+rideColumns+` FROM rides WHERE user_id=$1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRides(rows)
}

func (r *PGRideRepository) Cancel(ctx context.Context, id string) error {
	cmd, err := r.db.Exec(ctx, `UPDATE rides SET status=$1 WHERE id=$2`, domain.RideStatusCancelled, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrRideNotFound
	}
	return nil
}

func (r *PGRideRepository) ReleaseSeat(ctx context.Context, id string) error {
	cmd, err := r.db.Exec(ctx, `UPDATE rides SET available_seats = available_seats + 1 WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrRideNotFound
	}
	return nil
}

func collectRides(rows pgx.Rows) ([]domain.Ride, error) {
	rides := make([]domain.Ride, 0)
	for rows.Next() {
		ride, err := scanRide(rows)
		if err != nil {
			return nil, err
		}
		rides = append(rides, *ride)
	}
	return rides, rows.Err()
}

var _ RideRepository = (*PGRideRepository)(nil)
