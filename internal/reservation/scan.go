package reservation

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/deskhive/office-booking-backend/internal/notification"
)

// Scanner sends "reservation starting" notifications for every active
// reservation whose start date is today. An external scheduler runs it once
// per day; the sent-record check makes re-runs on the same day harmless.
type Scanner struct {
	repo       Repository
	store      notification.Store
	dispatcher notification.Dispatcher
	now        func() time.Time
}

func NewScanner(repo Repository, store notification.Store, dispatcher notification.Dispatcher) *Scanner {
	return &Scanner{
		repo:       repo,
		store:      store,
		dispatcher: dispatcher,
		now:        time.Now,
	}
}

// Run scans for due reservations and dispatches one notification per user.
// It returns the number of notifications sent. A failure on one reservation
// is logged and does not stop the rest of the batch.
func (s *Scanner) Run(ctx context.Context) (int, error) {
	today := DateOnly(s.now())

	due, err := s.repo.DueOn(ctx, today)
	if err != nil {
		return 0, fmt.Errorf("scan due reservations failed: %w", err)
	}

	sent := 0
	for _, res := range due {
		already, err := s.store.SentOn(ctx, res.ID, notification.KindReservationStarting, today)
		if err != nil {
			log.Printf("check sent record for reservation %s failed: %v", res.ID, err)
			continue
		}
		if already {
			continue
		}

		payload, err := json.Marshal(map[string]any{
			"reservation_id": res.ID,
			"office_id":      res.OfficeID,
			"office_title":   res.OfficeTitle,
			"user_id":        res.UserID,
			"start_date":     res.StartDate.Format(time.DateOnly),
			"end_date":       res.EndDate.Format(time.DateOnly),
		})
		if err != nil {
			log.Printf("marshal starting payload for reservation %s failed: %v", res.ID, err)
			continue
		}

		n := &notification.Notification{
			UserID:        res.UserID,
			ReservationID: res.ID,
			Kind:          notification.KindReservationStarting,
			Payload:       payload,
		}
		if err := s.dispatcher.Send(ctx, n); err != nil {
			log.Printf("dispatch starting notification for reservation %s failed: %v", res.ID, err)
			continue
		}
		sent++
	}

	return sent, nil
}
