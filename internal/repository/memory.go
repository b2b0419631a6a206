package repository

import (
	"context"
	"slices"
	"sync"

	"github.com/dhawal37/ecorides/internal/domain"
)

// MemStore is an in-memory implementation of every repository interface,
// used when storage.driver is "memory" and throughout the test suites.
// A single mutex serializes all mutations, so the check-and-decrement in
// CreateConfirmed can never interleave with a concurrent booking.
type MemStore struct {
	mu        sync.RWMutex
	rides     map[string]*domain.Ride
	rideOrder []string
	bookings  map[string]*domain.Booking
	bookOrder []string
	users     map[string]struct{}
	points    map[string]int64
}

func NewMemStore() *MemStore {
	return &MemStore{
		rides:    make(map[string]*domain.Ride),
		bookings: make(map[string]*domain.Booking),
		users:    make(map[string]struct{}),
		points:   make(map[string]int64),
	}
}

func (s *MemStore) Rides() RideRepository       { return (*memRideRepo)(s) }
func (s *MemStore) Bookings() BookingRepository { return (*memBookingRepo)(s) }
func (s *MemStore) Users() UserRepository       { return (*memUserRepo)(s) }
func (s *MemStore) Points() PointsRepository    { return (*memPointsRepo)(s) }

func cloneRide(r *domain.Ride) *domain.Ride {
	c := *r
	c.PickupPoints = slices.Clone(r.PickupPoints)
	return &c
}

type memRideRepo MemStore

func (s *memRideRepo) Create(_ context.Context, ride *domain.Ride) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rides[ride.ID] = cloneRide(ride)
	s.rideOrder = append(s.rideOrder, ride.ID)
	return nil
}

func (s *memRideRepo) GetByID(_ context.Context, id string) (*domain.Ride, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ride, ok := s.rides[id]
	if !ok {
		return nil, domain.ErrRideNotFound
	}
	return cloneRide(ride), nil
}

// listRides walks insertion order newest-first, matching the Postgres
// created_at DESC ordering.
func (s *memRideRepo) listRides(keep func(*domain.Ride) bool) []domain.Ride {
	rides := make([]domain.Ride, 0)
	for i := len(s.rideOrder) - 1; i >= 0; i-- {
		ride := s.rides[s.rideOrder[i]]
		if keep(ride) {
			rides = append(rides, *cloneRide(ride))
		}
	}
	return rides
}

func (s *memRideRepo) ListActive(_ context.Context, filter domain.RideFilter) ([]domain.Ride, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listRides(func(r *domain.Ride) bool {
		return r.Status == domain.RideStatusActive && filter.Matches(r)
	}), nil
}

func (s *memRideRepo) ListByUser(_ context.Context, userID string) ([]domain.Ride, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listRides(func(r *domain.Ride) bool {
		return r.UserID == userID
	}), nil
}

func (s *memRideRepo) Cancel(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ride, ok := s.rides[id]
	if !ok {
		return domain.ErrRideNotFound
	}
	ride.Status = domain.RideStatusCancelled
	return nil
}

func (s *memRideRepo) ReleaseSeat(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ride, ok := s.rides[id]
	if !ok {
		return domain.ErrRideNotFound
	}
	ride.AvailableSeats++
	return nil
}

type memBookingRepo MemStore

func (s *memBookingRepo) CreateConfirmed(_ context.Context, booking *domain.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ride, ok := s.rides[booking.RideID]
	if !ok {
		return domain.ErrRideNotFound
	}
	if ride.Status != domain.RideStatusActive {
		return domain.ErrRideNotActive
	}
	if ride.AvailableSeats < 1 {
		return domain.ErrNoSeatsAvailable
	}

	ride.AvailableSeats--
	booking.Status = domain.BookingStatusConfirmed
	c := *booking
	s.bookings[booking.ID] = &c
	s.bookOrder = append(s.bookOrder, booking.ID)
	return nil
}

func (s *memBookingRepo) GetByID(_ context.Context, id string) (*domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	c := *b
	return &c, nil
}

func (s *memBookingRepo) UpdateStatus(_ context.Context, id string, from, to domain.BookingStatus) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	if b.Status != from {
		return nil, domain.ErrBookingStatusConflict
	}
	b.Status = to
	c := *b
	return &c, nil
}

func (s *memBookingRepo) listBookings(keep func(*domain.Booking) bool) []domain.Booking {
	bookings := make([]domain.Booking, 0)
	for i := len(s.bookOrder) - 1; i >= 0; i-- {
		b := s.bookings[s.bookOrder[i]]
		if keep(b) {
			bookings = append(bookings, *b)
		}
	}
	return bookings
}

func (s *memBookingRepo) ListByUser(_ context.Context, userID string) ([]domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listBookings(func(b *domain.Booking) bool {
		return b.UserID == userID
	}), nil
}

func (s *memBookingRepo) ListByRide(_ context.Context, rideID string) ([]domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listBookings(func(b *domain.Booking) bool {
		return b.RideID == rideID
	}), nil
}

type memUserRepo MemStore

func (s *memUserRepo) EnsureExists(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[id] = struct{}{}
	return nil
}

type memPointsRepo MemStore

func (s *memPointsRepo) Add(_ context.Context, userID string, points int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.points[userID] += points
	return nil
}

func (s *memPointsRepo) Redeem(_ context.Context, userID string, points int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.points[userID] < points {
		return domain.ErrInsufficientPoints
	}
	s.points[userID] -= points
	return nil
}

func (s *memPointsRepo) Balance(_ context.Context, userID string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.points[userID], nil
}

var (
	_ RideRepository    = (*memRideRepo)(nil)
	_ BookingRepository = (*memBookingRepo)(nil)
	_ UserRepository    = (*memUserRepo)(nil)
	_ PointsRepository  = (*memPointsRepo)(nil)
)
