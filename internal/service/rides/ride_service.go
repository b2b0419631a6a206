package rides

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dhawal37/ecorides/internal/domain"
	"github.com/dhawal37/ecorides/internal/kafka"
	"github.com/dhawal37/ecorides/internal/repository"
	"github.com/google/uuid"
)

type RideUseCase interface {
	ListAvailable(ctx context.Context, filter domain.RideFilter) ([]domain.Ride, error)
	Offer(ctx context.Context, input OfferRideInput) (*domain.Ride, error)
	Cancel(ctx context.Context, rideID string) error
	ListOffered(ctx context.Context, userID string) ([]domain.OfferedRide, error)
}

type Cache interface {
	GetActiveRides(ctx context.Context) ([]domain.Ride, error)
	SetActiveRides(ctx context.Context, rides []domain.Ride) error
	InvalidateActiveRides(ctx context.Context) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type RideService struct {
	rides    repository.RideRepository
	bookings repository.BookingRepository
	users    repository.UserRepository
	cache    Cache
	producer Producer
	topic    string
}

type OfferRideInput struct {
	UserID         string   `json:"user_id"`
	From           string   `json:"from"`
	To             string   `json:"to"`
	Area           string   `json:"area"`
	Date           string   `json:"date"`
	Time           string   `json:"time"`
	CarModel       string   `json:"car_model"`
	CarNumber      string   `json:"car_number"`
	AvailableSeats int      `json:"available_seats"`
	PricePerSeat   int64    `json:"price_per_seat"`
	PickupPoints   []string `json:"pickup_points"`
}

type RideServiceOption func(*RideService)

func WithEvents(producer Producer, topic string) RideServiceOption {
	return func(s *RideService) {
		s.producer = producer
		s.topic = topic
	}
}

func NewRideService(
	rides repository.RideRepository,
	bookings repository.BookingRepository,
	users repository.UserRepository,
	cache Cache,
	opts ...RideServiceOption,
) *RideService {
	service := &RideService{
		rides:    rides,
		bookings: bookings,
		users:    users,
		cache:    cache,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// ListAvailable returns active rides newest-first. Filters match by exact
// string equality; an empty result is a valid answer, not an error. Only the
// unfiltered listing is served from cache.
func (s *RideService) ListAvailable(ctx context.Context, filter domain.RideFilter) ([]domain.Ride, error) {
	if s.cache != nil && filter.IsZero() {
		if cached, err := s.cache.GetActiveRides(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	rides, err := s.rides.ListActive(ctx, filter)
	if err != nil {
		return nil, err
	}
	if s.cache != nil && filter.IsZero() {
		_ = s.cache.SetActiveRides(ctx, rides)
	}
	return rides, nil
}

func (s *RideService) Offer(ctx context.Context, input OfferRideInput) (*domain.Ride, error) {
	if input.UserID == "" {
		return nil, errors.New("user id is required")
	}
	if input.AvailableSeats < 0 {
		return nil, errors.New("available seats must not be negative")
	}
	if input.PricePerSeat < 0 {
		return nil, errors.New("price per seat must not be negative")
	}

	// The owner row may not exist yet for first-time drivers.
	if err := s.users.EnsureExists(ctx, input.UserID); err != nil {
		return nil, fmt.Errorf("ensure ride owner: %w", err)
	}

	ride := &domain.Ride{
		ID:             uuid.NewString(),
		UserID:         input.UserID,
		From:           input.From,
		To:             input.To,
		Area:           input.Area,
		Date:           input.Date,
		Time:           input.Time,
		CarModel:       input.CarModel,
		CarNumber:      input.CarNumber,
		AvailableSeats: input.AvailableSeats,
		PricePerSeat:   input.PricePerSeat,
		PickupPoints:   input.PickupPoints,
		Status:         domain.RideStatusActive,
		CreatedAt:      time.Now(),
	}

	if err := s.rides.Create(ctx, ride); err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.InvalidateActiveRides(ctx)
	}
	return ride, nil
}

// Cancel flips the ride to cancelled. Existing bookings keep their status;
// cancellation only stops the ride from taking new ones.
func (s *RideService) Cancel(ctx context.Context, rideID string) error {
	if err := s.rides.Cancel(ctx, rideID); err != nil {
		return err
	}
	if s.cache != nil {
		_ = s.cache.InvalidateActiveRides(ctx)
	}
	if s.producer != nil && s.topic != "" {
		event := kafka.BookingEvent{
			Type:      kafka.EventRideCancelled,
			RideID:    rideID,
			Status:    string(domain.RideStatusCancelled),
			CreatedAt: time.Now(),
		}
		if err := s.producer.Publish(ctx, s.topic, rideID, event); err != nil {
			fmt.Printf("WARNING: Failed to publish ride_cancelled event for ride %s: %v\n", rideID, err)
		}
	}
	return nil
}

func (s *RideService) ListOffered(ctx context.Context, userID string) ([]domain.OfferedRide, error) {
	rides, err := s.rides.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	offered := make([]domain.OfferedRide, 0, len(rides))
	for _, ride := range rides {
		bookings, err := s.bookings.ListByRide(ctx, ride.ID)
		if err != nil {
			return nil, err
		}
		offered = append(offered, domain.OfferedRide{Ride: ride, Bookings: bookings})
	}
	return offered, nil
}

var _ RideUseCase = (*RideService)(nil)
