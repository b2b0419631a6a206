package domain

import "time"

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type Booking struct {
	ID             string        `json:"id"`
	RideID         string        `json:"ride_id"`
	UserID         string        `json:"user_id"`
	PassengerName  string        `json:"passenger_name"`
	PassengerPhone string        `json:"passenger_phone"`
	PickupPoint    string        `json:"pickup_point"`
	Status         BookingStatus `json:"status"`
	CreatedAt      time.Time     `json:"created_at"`
}

// BookedRide is a booking together with its ride, for passenger-facing
// listings. Ride is nil when the parent ride no longer exists.
type BookedRide struct {
	Booking Booking `json:"booking"`
	Ride    *Ride   `json:"ride,omitempty"`
}
