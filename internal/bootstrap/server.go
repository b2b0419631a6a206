package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/dhawal37/ecorides/api"
	"github.com/dhawal37/ecorides/config"
	"github.com/dhawal37/ecorides/internal/service/booking"
	"github.com/dhawal37/ecorides/internal/service/points"
	"github.com/dhawal37/ecorides/internal/service/rides"
	"github.com/gin-gonic/gin"
)

// Run starts the HTTP server and blocks until the context is canceled or the
// server fails.
func Run(ctx context.Context, cfg *config.Config, rideSvc rides.RideUseCase, bookingSvc booking.BookingUseCase, pointsSvc points.PointsUseCase) error {
	router := gin.Default()

	api.NewRideHandler(rideSvc).Register(router.Group("/rides"))
	api.NewBookingHandler(bookingSvc).Register(router.Group("/bookings"))
	api.NewPointsHandler(pointsSvc).Register(router.Group("/points"))

	httpSrv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}
