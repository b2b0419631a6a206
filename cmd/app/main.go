package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dhawal37/ecorides/config"
	"github.com/dhawal37/ecorides/internal/bootstrap"
	"github.com/dhawal37/ecorides/internal/cache"
	"github.com/dhawal37/ecorides/internal/kafka"
	"github.com/dhawal37/ecorides/internal/repository"
	"github.com/dhawal37/ecorides/internal/service/booking"
	"github.com/dhawal37/ecorides/internal/service/points"
	"github.com/dhawal37/ecorides/internal/service/rides"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		rideRepo    repository.RideRepository
		bookingRepo repository.BookingRepository
		userRepo    repository.UserRepository
		pointsRepo  repository.PointsRepository
	)

	switch cfg.Storage.Driver {
	case "memory":
		store := repository.NewMemStore()
		rideRepo = store.Rides()
		bookingRepo = store.Bookings()
		userRepo = store.Users()
		pointsRepo = store.Points()
	default:
		pool, err := pgxpool.New(ctx, cfg.Database.DSN())
		if err != nil {
			log.Fatalf("connect postgres: %v", err)
		}
		defer pool.Close()

		rideRepo = repository.NewRideRepository(pool)
		bookingRepo = repository.NewBookingRepository(pool)
		userRepo = repository.NewUserRepository(pool)
		pointsRepo = repository.NewPointsRepository(pool)
	}

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Rides.CacheTTLSeconds)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	rideService := rides.NewRideService(
		rideRepo,
		bookingRepo,
		userRepo,
		redisCache,
		rides.WithEvents(producer, cfg.Kafka.BookingEventsTopic),
	)
	bookingService := booking.NewBookingService(
		bookingRepo,
		rideRepo,
		redisCache,
		booking.WithEvents(producer, cfg.Kafka.BookingEventsTopic),
	)
	pointsService := points.NewPointsService(pointsRepo)

	if err := bootstrap.Run(ctx, cfg, rideService, bookingService, pointsService); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
