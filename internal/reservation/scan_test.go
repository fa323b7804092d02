package reservation

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deskhive/office-booking-backend/internal/notification"
)

// fakeStore is an in-memory notification.Store.
type fakeStore struct {
	mu      sync.Mutex
	seq     int
	records []*notification.Notification
}

func (s *fakeStore) Insert(ctx context.Context, n *notification.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	n.ID = fmt.Sprintf("ntf-%d", s.seq)
	n.SentAt = time.Now().UTC()
	cp := *n
	s.records = append(s.records, &cp)
	return nil
}

func (s *fakeStore) List(ctx context.Context, filter notification.Filter) ([]*notification.Notification, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*notification.Notification(nil), s.records...), len(s.records), nil
}

func (s *fakeStore) SentOn(ctx context.Context, reservationID string, kind notification.Kind, day time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range s.records {
		if n.ReservationID == reservationID && n.Kind == kind && DateOnly(n.SentAt).Equal(DateOnly(day)) {
			return true, nil
		}
	}
	return false, nil
}

func TestScannerRun(t *testing.T) {
	ctx := context.Background()
	today := DateOnly(time.Now().UTC())

	setup := func(t *testing.T) (*Scanner, *fakeRepo, *fakeStore) {
		t.Helper()
		repo := newFakeRepo()
		store := &fakeStore{}
		dispatcher := notification.NewDispatcher(store, nil)
		scanner := NewScanner(repo, store, dispatcher)
		return scanner, repo, store
	}

	seed := func(t *testing.T, repo *fakeRepo, userID string, start time.Time, status Status) *Reservation {
		t.Helper()
		res := &Reservation{
			OfficeID:  "office-1",
			UserID:    userID,
			StartDate: start,
			EndDate:   start.AddDate(0, 0, 2),
			Status:    StatusActive,
		}
		require.NoError(t, repo.Insert(ctx, res))
		if status != StatusActive {
			require.NoError(t, repo.UpdateStatus(ctx, res.ID, status))
		}
		return res
	}

	t.Run("notifies reservations starting today", func(t *testing.T) {
		scanner, repo, store := setup(t)
		seed(t, repo, "visitor-1", today, StatusActive)
		seed(t, repo, "visitor-2", today, StatusActive)
		seed(t, repo, "visitor-3", today.AddDate(0, 0, 1), StatusActive)

		sent, err := scanner.Run(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, sent)

		for _, n := range store.records {
			assert.Equal(t, notification.KindReservationStarting, n.Kind)
		}
	})

	t.Run("skips cancelled reservations", func(t *testing.T) {
		scanner, repo, _ := setup(t)
		seed(t, repo, "visitor-1", today, StatusCancelled)

		sent, err := scanner.Run(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, sent)
	})

	t.Run("second run on the same day sends nothing", func(t *testing.T) {
		scanner, repo, store := setup(t)
		seed(t, repo, "visitor-1", today, StatusActive)

		sent, err := scanner.Run(ctx)
		require.NoError(t, err)
		require.Equal(t, 1, sent)

		sent, err = scanner.Run(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, sent)

		assert.Len(t, store.records, 1)
	})
}
