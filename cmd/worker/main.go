package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dhawal37/ecorides/config"
	"github.com/dhawal37/ecorides/internal/kafka"
	"github.com/dhawal37/ecorides/internal/repository"
	"github.com/dhawal37/ecorides/internal/service/points"
	"github.com/jackc/pgx/v5/pgxpool"
)

// The worker consumes booking events and keeps the green-points balances up
// to date: every confirmed booking earns the passenger a fixed award.
// Cancellations do not claw points back.
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

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	pointsService := points.NewPointsService(repository.NewPointsRepository(pool))

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.BookingEventsTopic)
	defer consumer.Close()

	award := cfg.Rides.PointsPerBooking
	if award <= 0 {
		award = 50
	}

	if err := consumer.Consume(ctx, func(ctx context.Context, event kafka.BookingEvent) error {
		if event.Type != kafka.EventBookingCreated {
			return nil
		}
		if err := pointsService.Award(ctx, event.UserID, award); err != nil {
			log.Printf("award points for booking %s: %v", event.BookingID, err)
		}
		return nil
	}); err != nil && ctx.Err() == nil {
		log.Printf("consumer stopped: %v", err)
	}
}
