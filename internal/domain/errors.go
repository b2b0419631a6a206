package domain

import "errors"

var (
	ErrRideNotFound          = errors.New("ride not found")
	ErrBookingNotFound       = errors.New("booking not found")
	ErrNoSeatsAvailable      = errors.New("no seats available")
	ErrRideNotActive         = errors.New("ride is not active")
	ErrBookingStatusConflict = errors.New("booking status changed")
	ErrInsufficientPoints    = errors.New("insufficient points")
)
