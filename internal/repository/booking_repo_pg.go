package repository

import (
	"context"
	"errors"

	"github.com/dhawal37/ecorides/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository interface {
	// CreateConfirmed inserts the booking and takes one seat of its ride as a
	// single atomic unit. Returns ErrRideNotFound, ErrRideNotActive or
	// ErrNoSeatsAvailable without creating the booking.
	CreateConfirmed(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	// UpdateStatus flips the booking from one status to another. The flip is
	// conditional: when the booking is no longer in the from status nothing
	// changes and ErrBookingStatusConflict is returned, so two concurrent
	// cancellations cannot both win.
	UpdateStatus(ctx context.Context, id string, from, to domain.BookingStatus) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Booking, error)
	ListByRide(ctx context.Context, rideID string) ([]domain.Booking, error)
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

const bookingColumns = `id, ride_id, user_id, passenger_name, passenger_phone, pickup_point, status, created_at`

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var b domain.Booking
	if err := row.Scan(&b.ID, &b.RideID, &b.UserID, &b.PassengerName, &b.PassengerPhone, &b.PickupPoint, &b.Status, &b.CreatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *PGBookingRepository) CreateConfirmed(ctx context.Context, booking *domain.Booking) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var available int
	err = tx.QueryRow(ctx, `UPDATE rides SET available_seats = available_seats - 1 WHERE id=$1 AND status=$2 AND available_seats > 0 RETURNING available_seats`,
		booking.RideID, domain.RideStatusActive).Scan(&available)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return r.seatRefusal(ctx, tx, booking.RideID)
		}
		return err
	}

	booking.Status = domain.BookingStatusConfirmed
	if _, err := tx.Exec(ctx, `INSERT INTO bookings (id, ride_id, user_id, passenger_name, passenger_phone, pickup_point, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		booking.ID, booking.RideID, booking.UserID, booking.PassengerName, booking.PassengerPhone, booking.PickupPoint, booking.Status, booking.CreatedAt); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// seatRefusal decides why the conditional decrement matched no row.
func (r *PGBookingRepository) seatRefusal(ctx context.Context, tx pgx.Tx, rideID string) error {
	var status domain.RideStatus
	if err := tx.QueryRow(ctx, `SELECT status FROM rides WHERE id=$1`, rideID).Scan(&status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrRideNotFound
		}
		return err
	}
	if status != domain.RideStatusActive {
		return domain.ErrRideNotActive
	}
	return domain.ErrNoSeatsAvailable
}

func (r *PGBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	b, err := scanBooking(r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id=$1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, err
	}
	return b, nil
}

func (r *PGBookingRepository) UpdateStatus(ctx context.Context, id string, from, to domain.BookingStatus) (*domain.Booking, error) {
	b, err := scanBooking(r.db.QueryRow(ctx, `UPDATE bookings SET status=$1 WHERE id=$2 AND status=$3 RETURNING `+bookingColumns, to, id, from))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			if _, getErr := r.GetByID(ctx, id); getErr != nil {
				return nil, getErr
			}
			return nil, domain.ErrBookingStatusConflict
		}
		return nil, err
	}
	return b, nil
}

func (r *PGBookingRepository) ListByUser(ctx context.Context, userID string) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE user_id=$1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

func (r *PGBookingRepository) ListByRide(ctx context.Context, rideID string) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE ride_id=$1 ORDER BY created_at DESC`, rideID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

func collectBookings(rows pgx.Rows) ([]domain.Booking, error) {
	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

var _ BookingRepository = (*PGBookingRepository)(nil)
