package booking

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/dhawal37/ecorides/internal/domain"
	"github.com/dhawal37/ecorides/internal/kafka"
	"github.com/dhawal37/ecorides/internal/repository"
	"github.com/google/uuid"
)

type BookingUseCase interface {
	BookRide(ctx context.Context, input BookRideInput) (*domain.Booking, error)
	CancelBooking(ctx context.Context, bookingID string) (*domain.Booking, error)
	ListBooked(ctx context.Context, userID string) ([]domain.BookedRide, error)
}

type Cache interface {
	InvalidateActiveRides(ctx context.Context) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingService struct {
	bookings repository.BookingRepository
	rides    repository.RideRepository
	cache    Cache
	producer Producer
	topic    string
}

type BookRideInput struct {
	RideID         string `json:"ride_id"`
	UserID         string `json:"user_id"`
	PassengerName  string `json:"passenger_name"`
	PassengerPhone string `json:"passenger_phone"`
	PickupPoint    string `json:"pickup_point"`
}

type BookingServiceOption func(*BookingService)

func WithEvents(producer Producer, topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.producer = producer
		s.topic = topic
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	rides repository.RideRepository,
	cache Cache,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings: bookings,
		rides:    rides,
		cache:    cache,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// BookRide claims exactly one seat of the ride. The seat check and decrement
// happen atomically inside CreateConfirmed, so two racing bookings for the
// last seat cannot both succeed.
func (s *BookingService) BookRide(ctx context.Context, input BookRideInput) (*domain.Booking, error) {
	if input.UserID == "" {
		return nil, errors.New("user id is required")
	}

	ride, err := s.rides.GetByID(ctx, input.RideID)
	if err != nil {
		return nil, err
	}
	if ride.Status != domain.RideStatusActive {
		return nil, domain.ErrRideNotActive
	}
	if !slices.Contains(ride.PickupPoints, input.PickupPoint) {
		return nil, errors.New("pickup point is not offered on this ride")
	}

	booking := &domain.Booking{
		ID:             uuid.NewString(),
		RideID:         input.RideID,
		UserID:         input.UserID,
		PassengerName:  input.PassengerName,
		PassengerPhone: input.PassengerPhone,
		PickupPoint:    input.PickupPoint,
		Status:         domain.BookingStatusConfirmed,
		CreatedAt:      time.Now(),
	}

	if err := s.bookings.CreateConfirmed(ctx, booking); err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.InvalidateActiveRides(ctx)
	}
	if err := s.publish(ctx, kafka.EventBookingCreated, booking); err != nil {
		fmt.Printf("WARNING: Failed to publish booking_created event for booking %s: %v\n", booking.ID, err)
	}
	return booking, nil
}

// CancelBooking releases the booking's seat exactly once. Cancelling an
// already-cancelled booking returns it unchanged without touching the seat
// count; the flip from confirmed to cancelled is a conditional update, so of
// two concurrent cancellations only the winner releases the seat. When the
// seat release fails the status flip is reverted so a retry can release the
// seat later; a vanished parent ride keeps the cancellation.
func (s *BookingService) CancelBooking(ctx context.Context, bookingID string) (*domain.Booking, error) {
	current, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if current.Status == domain.BookingStatusCancelled {
		return current, nil
	}

	updated, err := s.bookings.UpdateStatus(ctx, bookingID, domain.BookingStatusConfirmed, domain.BookingStatusCancelled)
	if err != nil {
		if errors.Is(err, domain.ErrBookingStatusConflict) {
			// A concurrent cancellation won the flip and owns the seat release.
			return s.bookings.GetByID(ctx, bookingID)
		}
		return nil, err
	}

	if err := s.rides.ReleaseSeat(ctx, updated.RideID); err != nil {
		if errors.Is(err, domain.ErrRideNotFound) {
			if pubErr := s.publish(ctx, kafka.EventBookingCancelled, updated); pubErr != nil {
				fmt.Printf("WARNING: Failed to publish booking_cancelled event for booking %s: %v\n", updated.ID, pubErr)
			}
			return updated, nil
		}
		if _, revertErr := s.bookings.UpdateStatus(ctx, bookingID, domain.BookingStatusCancelled, domain.BookingStatusConfirmed); revertErr != nil {
			return nil, errors.Join(fmt.Errorf("release seat: %w", err), fmt.Errorf("revert booking status: %w", revertErr))
		}
		return nil, fmt.Errorf("release seat: %w", err)
	}

	if s.cache != nil {
		_ = s.cache.InvalidateActiveRides(ctx)
	}
	if err := s.publish(ctx, kafka.EventBookingCancelled, updated); err != nil {
		fmt.Printf("WARNING: Failed to publish booking_cancelled event for booking %s: %v\n", updated.ID, err)
	}
	return updated, nil
}

func (s *BookingService) ListBooked(ctx context.Context, userID string) ([]domain.BookedRide, error) {
	bookings, err := s.bookings.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	booked := make([]domain.BookedRide, 0, len(bookings))
	for _, b := range bookings {
		entry := domain.BookedRide{Booking: b}
		ride, err := s.rides.GetByID(ctx, b.RideID)
		if err != nil && !errors.Is(err, domain.ErrRideNotFound) {
			return nil, err
		}
		entry.Ride = ride
		booked = append(booked, entry)
	}
	return booked, nil
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking) error {
	if s.producer == nil || s.topic == "" {
		return nil
	}
	event := kafka.BookingEvent{
		Type:        eventType,
		BookingID:   booking.ID,
		RideID:      booking.RideID,
		UserID:      booking.UserID,
		PickupPoint: booking.PickupPoint,
		Status:      string(booking.Status),
		CreatedAt:   booking.CreatedAt,
	}
	return s.producer.Publish(ctx, s.topic, booking.ID, event)
}

var _ BookingUseCase = (*BookingService)(nil)
