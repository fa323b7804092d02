package reservation

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deskhive/office-booking-backend/internal/lock"
	"github.com/deskhive/office-booking-backend/internal/notification"
	"github.com/deskhive/office-booking-backend/internal/office"
)

// fakeRepo is an in-memory Repository good enough for the booking flow.
type fakeRepo struct {
	mu    sync.Mutex
	seq   int
	items map[string]*Reservation
	hosts map[string]string // officeID -> host user ID
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		items: make(map[string]*Reservation),
		hosts: make(map[string]string),
	}
}

func (r *fakeRepo) Insert(ctx context.Context, res *Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	res.ID = fmt.Sprintf("res-%d", r.seq)
	res.CreatedAt = time.Now().UTC()
	res.UpdatedAt = res.CreatedAt
	cp := *res
	r.items[res.ID] = &cp
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id string) (*Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *res
	cp.HostID = r.hosts[res.OfficeID]
	return &cp, nil
}

func (r *fakeRepo) List(ctx context.Context, filter Filter) ([]*Reservation, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*Reservation
	for _, res := range r.items {
		if filter.UserID != "" && res.UserID != filter.UserID {
			continue
		}
		cp := *res
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (r *fakeRepo) UpdateStatus(ctx context.Context, id string, status Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	res, ok := r.items[id]
	if !ok {
		return ErrNotFound
	}
	res.Status = status
	return nil
}

func (r *fakeRepo) ActiveOverlapping(ctx context.Context, officeID string, start, end time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, res := range r.items {
		if res.OfficeID != officeID || res.Status != StatusActive {
			continue
		}
		if !res.StartDate.After(end) && !res.EndDate.Before(start) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) DueOn(ctx context.Context, day time.Time) ([]*Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*Reservation
	for _, res := range r.items {
		if res.Status == StatusActive && res.StartDate.Equal(day) {
			cp := *res
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeOffices struct {
	offices map[string]*office.Office
}

func (f *fakeOffices) GetByID(ctx context.Context, id string) (*office.Office, error) {
	o, ok := f.offices[id]
	if !ok {
		return nil, office.ErrNotFound
	}
	return o, nil
}

// recordingDispatcher records sent notifications instead of delivering them.
type recordingDispatcher struct {
	mu   sync.Mutex
	sent []*notification.Notification
}

func (d *recordingDispatcher) Send(ctx context.Context, n *notification.Notification) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sent = append(d.sent, n)
	return nil
}

func (d *recordingDispatcher) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.sent)
}

// testNow anchors "today" so date validations are deterministic.
var testNow = date(2026, 3, 1)

type testEnv struct {
	svc        Service
	repo       *fakeRepo
	offices    *fakeOffices
	dispatcher *recordingDispatcher
	locks      lock.Provider
}

func newTestEnv(t *testing.T, lockMaxWait time.Duration) *testEnv {
	t.Helper()

	repo := newFakeRepo()
	offices := &fakeOffices{offices: map[string]*office.Office{
		"office-1": {ID: "office-1", UserID: "host-1", Title: "Corner Loft", PricePerDay: 100, MonthlyDiscount: 10},
	}}
	repo.hosts["office-1"] = "host-1"

	dispatcher := &recordingDispatcher{}
	locks := lock.NewMemoryProvider()

	svc := NewService(repo, offices, locks, dispatcher, lockMaxWait, 10*time.Second)
	svc.(*service).now = func() time.Time { return testNow }

	return &testEnv{svc: svc, repo: repo, offices: offices, dispatcher: dispatcher, locks: locks}
}

func TestCreateValidation(t *testing.T) {
	env := newTestEnv(t, time.Second)
	ctx := context.Background()

	t.Run("end before start", func(t *testing.T) {
		_, err := env.svc.Create(ctx, CreateRequest{
			UserID: "visitor-1", OfficeID: "office-1",
			StartDate: date(2026, 3, 10), EndDate: date(2026, 3, 9),
		})
		assert.ErrorIs(t, err, ErrInvalidDateRange)
	})

	t.Run("end equal to start", func(t *testing.T) {
		_, err := env.svc.Create(ctx, CreateRequest{
			UserID: "visitor-1", OfficeID: "office-1",
			StartDate: date(2026, 3, 10), EndDate: date(2026, 3, 10),
		})
		assert.ErrorIs(t, err, ErrInvalidDateRange)
	})

	t.Run("start today", func(t *testing.T) {
		_, err := env.svc.Create(ctx, CreateRequest{
			UserID: "visitor-1", OfficeID: "office-1",
			StartDate: date(2026, 3, 1), EndDate: date(2026, 3, 5),
		})
		assert.ErrorIs(t, err, ErrStartTooSoon)
	})

	t.Run("start tomorrow", func(t *testing.T) {
		_, err := env.svc.Create(ctx, CreateRequest{
			UserID: "visitor-1", OfficeID: "office-1",
			StartDate: date(2026, 3, 2), EndDate: date(2026, 3, 5),
		})
		assert.ErrorIs(t, err, ErrStartTooSoon)
	})

	t.Run("start day after tomorrow is allowed", func(t *testing.T) {
		res, err := env.svc.Create(ctx, CreateRequest{
			UserID: "visitor-1", OfficeID: "office-1",
			StartDate: date(2026, 3, 3), EndDate: date(2026, 3, 5),
		})
		require.NoError(t, err)
		assert.Equal(t, StatusActive, res.Status)
	})

	t.Run("unknown office", func(t *testing.T) {
		_, err := env.svc.Create(ctx, CreateRequest{
			UserID: "visitor-1", OfficeID: "nope",
			StartDate: date(2026, 4, 1), EndDate: date(2026, 4, 3),
		})
		assert.ErrorIs(t, err, ErrOfficeNotFound)
	})

	t.Run("host cannot book own office", func(t *testing.T) {
		_, err := env.svc.Create(ctx, CreateRequest{
			UserID: "host-1", OfficeID: "office-1",
			StartDate: date(2026, 4, 1), EndDate: date(2026, 4, 3),
		})
		assert.ErrorIs(t, err, ErrOwnOffice)
	})
}

func TestCreateComputesPriceAndNotifies(t *testing.T) {
	env := newTestEnv(t, time.Second)
	ctx := context.Background()

	// 25 days at 100/day, below the monthly discount threshold.
	res, err := env.svc.Create(ctx, CreateRequest{
		UserID: "visitor-1", OfficeID: "office-1",
		StartDate: date(2026, 3, 10), EndDate: date(2026, 4, 3),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(2500), res.Price)
	assert.Equal(t, "Corner Loft", res.OfficeTitle)
	assert.Equal(t, "host-1", res.HostID)

	require.Equal(t, 1, env.dispatcher.count())
	n := env.dispatcher.sent[0]
	assert.Equal(t, notification.KindReservationCreated, n.Kind)
	assert.Equal(t, "visitor-1", n.UserID)
	assert.Equal(t, res.ID, n.ReservationID)
}

func TestCreateOverlap(t *testing.T) {
	ctx := context.Background()

	t.Run("overlapping range conflicts", func(t *testing.T) {
		env := newTestEnv(t, time.Second)
		_, err := env.svc.Create(ctx, CreateRequest{
			UserID: "visitor-1", OfficeID: "office-1",
			StartDate: date(2026, 3, 10), EndDate: date(2026, 3, 15),
		})
		require.NoError(t, err)

		_, err = env.svc.Create(ctx, CreateRequest{
			UserID: "visitor-2", OfficeID: "office-1",
			StartDate: date(2026, 3, 15), EndDate: date(2026, 3, 20),
		})
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("adjacent ranges do not conflict", func(t *testing.T) {
		env := newTestEnv(t, time.Second)
		_, err := env.svc.Create(ctx, CreateRequest{
			UserID: "visitor-1", OfficeID: "office-1",
			StartDate: date(2026, 3, 10), EndDate: date(2026, 3, 12),
		})
		require.NoError(t, err)

		_, err = env.svc.Create(ctx, CreateRequest{
			UserID: "visitor-2", OfficeID: "office-1",
			StartDate: date(2026, 3, 13), EndDate: date(2026, 3, 15),
		})
		assert.NoError(t, err)
	})

	t.Run("cancelled reservation does not block", func(t *testing.T) {
		env := newTestEnv(t, time.Second)
		res, err := env.svc.Create(ctx, CreateRequest{
			UserID: "visitor-1", OfficeID: "office-1",
			StartDate: date(2026, 3, 10), EndDate: date(2026, 3, 15),
		})
		require.NoError(t, err)

		_, err = env.svc.Cancel(ctx, res.ID, "visitor-1")
		require.NoError(t, err)

		_, err = env.svc.Create(ctx, CreateRequest{
			UserID: "visitor-2", OfficeID: "office-1",
			StartDate: date(2026, 3, 12), EndDate: date(2026, 3, 14),
		})
		assert.NoError(t, err)
	})
}

func TestCreateLockBusy(t *testing.T) {
	env := newTestEnv(t, 50*time.Millisecond)
	ctx := context.Background()

	// Hold the office lock so the booking attempt times out.
	handle, err := env.locks.Acquire(ctx, LockKey("office-1"), time.Second, time.Minute)
	require.NoError(t, err)
	defer handle.Release(ctx)

	_, err = env.svc.Create(ctx, CreateRequest{
		UserID: "visitor-1", OfficeID: "office-1",
		StartDate: date(2026, 3, 10), EndDate: date(2026, 3, 15),
	})
	assert.ErrorIs(t, err, ErrOfficeBusy)
}

func TestCreateConcurrentOverlap(t *testing.T) {
	env := newTestEnv(t, 2*time.Second)
	ctx := context.Background()

	const attempts = 8
	errs := make([]error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = env.svc.Create(ctx, CreateRequest{
				UserID:    fmt.Sprintf("visitor-%d", i),
				OfficeID:  "office-1",
				StartDate: date(2026, 3, 10),
				EndDate:   date(2026, 3, 15),
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ErrConflict)
		}
	}
	assert.Equal(t, 1, succeeded, "exactly one overlapping booking may commit")
}

func TestCancel(t *testing.T) {
	ctx := context.Background()

	book := func(t *testing.T, env *testEnv) *Reservation {
		t.Helper()
		res, err := env.svc.Create(ctx, CreateRequest{
			UserID: "visitor-1", OfficeID: "office-1",
			StartDate: date(2026, 3, 10), EndDate: date(2026, 3, 15),
		})
		require.NoError(t, err)
		return res
	}

	t.Run("booker can cancel before start", func(t *testing.T) {
		env := newTestEnv(t, time.Second)
		res := book(t, env)

		cancelled, err := env.svc.Cancel(ctx, res.ID, "visitor-1")
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, cancelled.Status)
	})

	t.Run("host cannot cancel", func(t *testing.T) {
		env := newTestEnv(t, time.Second)
		res := book(t, env)

		_, err := env.svc.Cancel(ctx, res.ID, "host-1")
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("cancel twice fails", func(t *testing.T) {
		env := newTestEnv(t, time.Second)
		res := book(t, env)

		_, err := env.svc.Cancel(ctx, res.ID, "visitor-1")
		require.NoError(t, err)

		_, err = env.svc.Cancel(ctx, res.ID, "visitor-1")
		assert.ErrorIs(t, err, ErrAlreadyCancelled)
	})

	t.Run("cannot cancel once started", func(t *testing.T) {
		env := newTestEnv(t, time.Second)
		res := book(t, env)

		// Move the clock to the reservation's start day.
		env.svc.(*service).now = func() time.Time { return date(2026, 3, 10) }

		_, err := env.svc.Cancel(ctx, res.ID, "visitor-1")
		assert.ErrorIs(t, err, ErrAlreadyStarted)
	})
}

func TestGetByIDVisibility(t *testing.T) {
	env := newTestEnv(t, time.Second)
	ctx := context.Background()

	res, err := env.svc.Create(ctx, CreateRequest{
		UserID: "visitor-1", OfficeID: "office-1",
		StartDate: date(2026, 3, 10), EndDate: date(2026, 3, 15),
	})
	require.NoError(t, err)

	t.Run("booker can view", func(t *testing.T) {
		got, err := env.svc.GetByID(ctx, res.ID, "visitor-1")
		require.NoError(t, err)
		assert.Equal(t, res.ID, got.ID)
	})

	t.Run("host can view", func(t *testing.T) {
		_, err := env.svc.GetByID(ctx, res.ID, "host-1")
		assert.NoError(t, err)
	})

	t.Run("stranger cannot view", func(t *testing.T) {
		_, err := env.svc.GetByID(ctx, res.ID, "stranger")
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})
}
