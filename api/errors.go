package api

import (
	"errors"
	"net/http"

	"github.com/dhawal37/ecorides/internal/domain"
)

func statusFromError(err error) int {
	switch {
	case errors.Is(err, domain.ErrRideNotFound), errors.Is(err, domain.ErrBookingNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrNoSeatsAvailable), errors.Is(err, domain.ErrRideNotActive), errors.Is(err, domain.ErrInsufficientPoints):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}
