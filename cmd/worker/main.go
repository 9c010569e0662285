package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/safarpk/safarpk/config"
	"github.com/safarpk/safarpk/internal/bootstrap"
	"github.com/safarpk/safarpk/internal/email"
	"github.com/safarpk/safarpk/internal/kafka"
	"github.com/safarpk/safarpk/internal/repository"
	"github.com/safarpk/safarpk/internal/service/calendar"
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

	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	calendarService := calendar.NewCalendarService(
		repository.NewBookingRepository(pool),
		repository.NewUserRepository(pool),
		producer,
		cfg.Kafka.BookingTopic,
		calendar.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic)
	defer consumer.Close()

	log.Printf("worker started, sweeping every %d minutes", cfg.Worker.CompletionSweepMinutes)
	bootstrap.RunWorker(ctx, consumer, email.NewSender(), calendarService,
		time.Duration(cfg.Worker.CompletionSweepMinutes)*time.Minute)
	log.Printf("worker stopped")
}
