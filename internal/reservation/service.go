package reservation

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/deskhive/office-booking-backend/internal/lock"
	"github.com/deskhive/office-booking-backend/internal/notification"
	"github.com/deskhive/office-booking-backend/internal/office"
)

// OfficeLookup is the slice of the office service the booking flow needs.
type OfficeLookup interface {
	GetByID(ctx context.Context, id string) (*office.Office, error)
}

type CreateRequest struct {
	UserID    string
	OfficeID  string
	StartDate time.Time
	EndDate   time.Time
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Reservation, error)
	GetByID(ctx context.Context, id string, actorID string) (*Reservation, error)
	List(ctx context.Context, filter Filter) ([]*Reservation, int, error)
	Cancel(ctx context.Context, id string, actorID string) (*Reservation, error)
}

type service struct {
	repo       Repository
	offices    OfficeLookup
	locks      lock.Provider
	dispatcher notification.Dispatcher

	lockMaxWait time.Duration
	lockMaxHold time.Duration
	now         func() time.Time
}

// NewService creates the reservation service. lockMaxWait bounds how long a
// booking attempt waits for the per-office lock; lockMaxHold bounds how long
// the lock may be held before a stuck holder is evicted.
func NewService(
	repo Repository,
	offices OfficeLookup,
	locks lock.Provider,
	dispatcher notification.Dispatcher,
	lockMaxWait, lockMaxHold time.Duration,
) Service {
	return &service{
		repo:        repo,
		offices:     offices,
		locks:       locks,
		dispatcher:  dispatcher,
		lockMaxWait: lockMaxWait,
		lockMaxHold: lockMaxHold,
		now:         time.Now,
	}
}

// Create books an office for an inclusive date range.
//
// Validation happens before the critical section; availability check, pricing
// and the insert run under the office's lock so that two overlapping attempts
// on the same office can never both commit. The created notification is
// dispatched after the lock is released and never fails the booking.
func (s *service) Create(ctx context.Context, req CreateRequest) (*Reservation, error) {
	start := DateOnly(req.StartDate)
	end := DateOnly(req.EndDate)

	if !end.After(start) {
		return nil, ErrInvalidDateRange
	}

	// Earliest bookable day is the day after tomorrow.
	today := DateOnly(s.now())
	if !start.After(today.AddDate(0, 0, 1)) {
		return nil, ErrStartTooSoon
	}

	off, err := s.offices.GetByID(ctx, req.OfficeID)
	if err != nil {
		if errors.Is(err, office.ErrNotFound) {
			return nil, ErrOfficeNotFound
		}
		return nil, err
	}

	if off.UserID == req.UserID {
		return nil, ErrOwnOffice
	}

	handle, err := s.locks.Acquire(ctx, LockKey(off.ID), s.lockMaxWait, s.lockMaxHold)
	if err != nil {
		if errors.Is(err, lock.ErrTimeout) {
			return nil, ErrOfficeBusy
		}
		return nil, err
	}

	res, err := s.createLocked(ctx, off, req.UserID, start, end)

	if relErr := handle.Release(ctx); relErr != nil {
		log.Printf("release office lock %s failed: %v", LockKey(off.ID), relErr)
	}

	if err != nil {
		return nil, err
	}

	s.notify(ctx, res, notification.KindReservationCreated)

	return res, nil
}

// createLocked is the critical section: the authoritative overlap check and
// the insert must not interleave with another booking on the same office.
func (s *service) createLocked(ctx context.Context, off *office.Office, userID string, start, end time.Time) (*Reservation, error) {
	overlaps, err := s.repo.ActiveOverlapping(ctx, off.ID, start, end)
	if err != nil {
		return nil, err
	}
	if overlaps {
		return nil, ErrConflict
	}

	res := &Reservation{
		OfficeID:  off.ID,
		UserID:    userID,
		StartDate: start,
		EndDate:   end,
		Status:    StatusActive,
		Price:     ComputePrice(off.PricePerDay, off.MonthlyDiscount, start, end),
	}

	if err := s.repo.Insert(ctx, res); err != nil {
		return nil, err
	}

	res.OfficeTitle = off.Title
	res.HostID = off.UserID
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id string, actorID string) (*Reservation, error) {
	res, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Visible to the booking user and the office host.
	if res.UserID != actorID && res.HostID != actorID {
		return nil, ErrPermissionDenied
	}
	return res, nil
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Reservation, int, error) {
	return s.repo.List(ctx, filter)
}

// Cancel transitions an active, not-yet-started reservation to cancelled.
// Cancelled reservations immediately stop blocking availability since the
// overlap query filters on status.
func (s *service) Cancel(ctx context.Context, id string, actorID string) (*Reservation, error) {
	res, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if res.UserID != actorID {
		return nil, ErrPermissionDenied
	}
	if res.Status == StatusCancelled {
		return nil, ErrAlreadyCancelled
	}
	if !res.StartDate.After(DateOnly(s.now())) {
		return nil, ErrAlreadyStarted
	}

	if err := s.repo.UpdateStatus(ctx, id, StatusCancelled); err != nil {
		return nil, err
	}

	res.Status = StatusCancelled
	return res, nil
}

// notify dispatches a reservation event. Failures are logged, never returned:
// the booking is already committed.
func (s *service) notify(ctx context.Context, res *Reservation, kind notification.Kind) {
	payload, err := json.Marshal(map[string]any{
		"reservation_id": res.ID,
		"office_id":      res.OfficeID,
		"office_title":   res.OfficeTitle,
		"user_id":        res.UserID,
		"start_date":     res.StartDate.Format(time.DateOnly),
		"end_date":       res.EndDate.Format(time.DateOnly),
		"price":          res.Price,
	})
	if err != nil {
		log.Printf("marshal %s payload failed: %v", kind, err)
		return
	}

	n := &notification.Notification{
		UserID:        res.UserID,
		ReservationID: res.ID,
		Kind:          kind,
		Payload:       payload,
	}
	if err := s.dispatcher.Send(ctx, n); err != nil {
		log.Printf("dispatch %s for reservation %s failed: %v", kind, res.ID, err)
	}
}
