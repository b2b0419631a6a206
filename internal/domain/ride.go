package domain

import "time"

type RideStatus string

const (
	RideStatusActive    RideStatus = "active"
	RideStatusCancelled RideStatus = "cancelled"
)

type Ride struct {
	ID             string     `json:"id"`
	UserID         string     `json:"user_id"`
	From           string     `json:"from"`
	To             string     `json:"to"`
	Area           string     `json:"area"`
	Date           string     `json:"date"`
	Time           string     `json:"time"`
	CarModel       string     `json:"car_model"`
	CarNumber      string     `json:"car_number"`
	AvailableSeats int        `json:"available_seats"`
	PricePerSeat   int64      `json:"price_per_seat"`
	PickupPoints   []string   `json:"pickup_points"`
	Status         RideStatus `json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
}

// RideFilter narrows ListAvailable by exact string equality.
// Zero-valued fields place no constraint.
type RideFilter struct {
	From string
	To   string
	Date string
}

func (f RideFilter) IsZero() bool {
	return f.From == "" && f.To == "" && f.Date == ""
}

// Matches reports whether a ride satisfies every set field of the filter.
func (f RideFilter) Matches(r *Ride) bool {
	if f.From != "" && r.From != f.From {
		return false
	}
	if f.To != "" && r.To != f.To {
		return false
	}
	if f.Date != "" && r.Date != f.Date {
		return false
	}
	return true
}

// OfferedRide is a ride together with its bookings, for owner-facing listings.
type OfferedRide struct {
	Ride     Ride      `json:"ride"`
	Bookings []Booking `json:"bookings"`
}
