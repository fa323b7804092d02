package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/deskhive/office-booking-backend/internal/config"
	"github.com/deskhive/office-booking-backend/internal/db"
	"github.com/deskhive/office-booking-backend/internal/notification"
	"github.com/deskhive/office-booking-backend/internal/reservation"
)

// notifier is the daily batch job that notifies users whose reservations
// start today. It is meant to be run once a day, e.g. from cron.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	pool, err := db.NewPool(ctx, cfg.DBDSN)
	if err != nil {
		log.Fatalf("failed to connect to db: %v", err)
	}
	defer pool.Close()

	store := notification.NewPgxStore(pool)
	var publisher *notification.AMQPPublisher
	if cfg.AMQPURL != "" {
		publisher = notification.NewAMQPPublisher(cfg.AMQPURL)
	}
	dispatcher := notification.NewDispatcher(store, publisher)

	repo := reservation.NewPgxRepository(pool)
	scanner := reservation.NewScanner(repo, store, dispatcher)

	sent, err := scanner.Run(ctx)
	if err != nil {
		log.Fatalf("notification scan failed: %v", err)
	}

	log.Printf("notification scan complete: %d notification(s) sent", sent)
}
