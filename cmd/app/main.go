package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/skyline-air/booking/config"
	"github.com/skyline-air/booking/internal/bootstrap"
	"github.com/skyline-air/booking/internal/cache"
	"github.com/skyline-air/booking/internal/kafka"
	"github.com/skyline-air/booking/internal/repository"
	"github.com/skyline-air/booking/internal/service/auth"
	"github.com/skyline-air/booking/internal/service/booking"
	"github.com/skyline-air/booking/internal/service/crew"
	"github.com/skyline-air/booking/internal/service/flights"
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

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	if err := repository.InitSchema(ctx, pool); err != nil {
		log.Fatalf("init schema: %v", err)
	}

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Booking.FlightsCacheTTLSeconds)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	userRepo := repository.NewUserRepository(pool)
	flightRepo := repository.NewFlightRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	crewRepo := repository.NewCrewRepository(pool)

	svcs := bootstrap.Services{
		Auth:    auth.NewAuthService(userRepo, cfg.Auth.BcryptCost),
		Flights: flights.NewFlightService(flightRepo, redisCache),
		Bookings: booking.NewBookingService(
			bookingRepo,
			flightRepo,
			userRepo,
			booking.WithSeatHolds(redisCache, time.Duration(cfg.Booking.SeatHoldTTLMinutes)*time.Minute),
			booking.WithNotifications(producer, cfg.Kafka.NotificationsTopic),
		),
		Crew: crew.NewCrewService(crewRepo, flightRepo),
	}

	if err := bootstrap.Run(ctx, cfg, svcs); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
