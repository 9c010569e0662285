package bootstrap

import (
	"context"
	"log"
	"time"

	"github.com/safarpk/safarpk/internal/domain"
	"github.com/safarpk/safarpk/internal/kafka"
)

type NotificationConsumer interface {
	ConsumeNotifications(ctx context.Context, handler func(context.Context, kafka.Notification) error) error
}

type NotificationSender interface {
	Send(ctx context.Context, n kafka.Notification) error
}

type BookingCompleter interface {
	CompleteEnded(ctx context.Context) ([]domain.Booking, error)
}

// RunWorker delivers queued notifications and, every sweep interval, completes
// confirmed bookings whose stay has ended. It returns when ctx is cancelled.
func RunWorker(ctx context.Context, consumer NotificationConsumer, sender NotificationSender, completer BookingCompleter, sweep time.Duration) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := consumer.ConsumeNotifications(ctx, sender.Send); err != nil && ctx.Err() == nil {
			log.Printf("consumer stopped: %v", err)
		}
	}()

	ticker := time.NewTicker(sweep)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			completed, err := completer.CompleteEnded(ctx)
			if err != nil {
				log.Printf("complete bookings error: %v", err)
				continue
			}
			if len(completed) > 0 {
				log.Printf("completed %d bookings", len(completed))
			}
		case <-ctx.Done():
			<-done
			return
		}
	}
}
