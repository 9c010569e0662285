package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/safarpk/safarpk/api"
	"github.com/safarpk/safarpk/config"
	"github.com/safarpk/safarpk/internal/bootstrap"
	"github.com/safarpk/safarpk/internal/cache"
	"github.com/safarpk/safarpk/internal/kafka"
	"github.com/safarpk/safarpk/internal/repository"
	"github.com/safarpk/safarpk/internal/service/auth"
	"github.com/safarpk/safarpk/internal/service/calendar"
	"github.com/safarpk/safarpk/internal/service/destinations"
	"github.com/safarpk/safarpk/internal/service/pricing"
	"github.com/safarpk/safarpk/internal/service/stats"
	"github.com/safarpk/safarpk/internal/service/users"
	"github.com/safarpk/safarpk/internal/service/vehicles"
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

	redisCache := cache.NewRedisCache(cfg.Redis, cfg.Cache.DestinationsTTL(), cfg.Cache.StatsTTL())
	defer redisCache.Close()

	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()
	if err := producer.CheckConnection(ctx); err != nil {
		log.Printf("WARNING: kafka unreachable, events will fail until it is up: %v", err)
	}

	userRepo := repository.NewUserRepository(pool)
	credentialRepo := repository.NewCredentialRepository(pool)
	destinationRepo := repository.NewDestinationRepository(pool)
	vehicleRepo := repository.NewVehicleRepository(pool)
	pricingRepo := repository.NewPricingRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	statsRepo := repository.NewStatsRepository(pool)

	authService := auth.NewAuthService(
		credentialRepo,
		userRepo,
		auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.SessionTTL(), cfg.Auth.RecoveryTTL()),
		producer,
		cfg.Auth.ResetURL,
		auth.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		auth.WithResetThrottle(redisCache, time.Minute),
	)
	calendarService := calendar.NewCalendarService(
		bookingRepo,
		userRepo,
		producer,
		cfg.Kafka.BookingTopic,
		calendar.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)

	router := api.NewRouter(cfg.HTTP, authService, api.Handlers{
		Auth:         api.NewAuthHandler(authService),
		Users:        api.NewUserHandler(users.NewUserService(userRepo)),
		Destinations: api.NewDestinationHandler(destinations.NewDestinationService(destinationRepo, redisCache)),
		Vehicles:     api.NewVehicleHandler(vehicles.NewVehicleService(vehicleRepo)),
		Pricing:      api.NewPricingHandler(pricing.NewPricingService(pricingRepo, vehicleRepo, repository.NewRoomRepository(pool))),
		Calendar:     api.NewCalendarHandler(calendarService),
		Stats:        api.NewStatsHandler(stats.NewStatsService(statsRepo, userRepo, redisCache)),
	})

	if err := bootstrap.Run(ctx, cfg.HTTP, router); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
