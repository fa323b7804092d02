package office

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deskhive/office-booking-backend/internal/tag"
)

type fakeOfficeRepo struct {
	seq                int
	items              map[string]*Office
	tags               map[string][]string
	activeReservations map[string]bool
}

func newFakeOfficeRepo() *fakeOfficeRepo {
	return &fakeOfficeRepo{
		items:              make(map[string]*Office),
		tags:               make(map[string][]string),
		activeReservations: make(map[string]bool),
	}
}

func (r *fakeOfficeRepo) Create(ctx context.Context, o *Office) error {
	r.seq++
	o.ID = fmt.Sprintf("office-%d", r.seq)
	cp := *o
	r.items[o.ID] = &cp
	return nil
}

func (r *fakeOfficeRepo) GetByID(ctx context.Context, id string) (*Office, error) {
	o, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *fakeOfficeRepo) List(ctx context.Context, filter Filter) ([]*Office, int, error) {
	var out []*Office
	for _, o := range r.items {
		cp := *o
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (r *fakeOfficeRepo) Update(ctx context.Context, o *Office) error {
	stored, ok := r.items[o.ID]
	if !ok {
		return ErrNotFound
	}
	*stored = *o
	return nil
}

func (r *fakeOfficeRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeOfficeRepo) SetTags(ctx context.Context, officeID string, tagIDs []string) error {
	r.tags[officeID] = tagIDs
	return nil
}

func (r *fakeOfficeRepo) HasActiveReservations(ctx context.Context, officeID string) (bool, error) {
	return r.activeReservations[officeID], nil
}

// fakeTagService resolves tag IDs against a fixed set.
type fakeTagService struct {
	known map[string]*tag.Tag
}

func (f *fakeTagService) Create(ctx context.Context, name string) (*tag.Tag, error) {
	panic("not used")
}

func (f *fakeTagService) List(ctx context.Context, filter tag.Filter) ([]*tag.Tag, int, error) {
	panic("not used")
}

func (f *fakeTagService) GetByIDs(ctx context.Context, ids []string) ([]*tag.Tag, error) {
	var out []*tag.Tag
	for _, id := range ids {
		if t, ok := f.known[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTagService) Delete(ctx context.Context, id string) error {
	panic("not used")
}

func newOfficeTestService() (Service, *fakeOfficeRepo) {
	repo := newFakeOfficeRepo()
	tags := &fakeTagService{known: map[string]*tag.Tag{
		"tag-wifi": {ID: "tag-wifi", Name: "wifi"},
	}}
	return NewService(repo, tags), repo
}

func validCreate() CreateRequest {
	return CreateRequest{
		UserID:          "host-1",
		Title:           "Corner Loft",
		Description:     "Bright loft downtown",
		Lat:             40.7,
		Lng:             -74.0,
		AddressLine1:    "1 Main St",
		PricePerDay:     150,
		MonthlyDiscount: 10,
	}
}

func TestOfficeCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("success starts pending approval", func(t *testing.T) {
		svc, _ := newOfficeTestService()
		o, err := svc.Create(ctx, validCreate())
		require.NoError(t, err)
		assert.Equal(t, ApprovalPending, o.ApprovalStatus)
		assert.NotEmpty(t, o.ID)
	})

	t.Run("rejects blank title", func(t *testing.T) {
		svc, _ := newOfficeTestService()
		req := validCreate()
		req.Title = "  "
		_, err := svc.Create(ctx, req)
		assert.ErrorIs(t, err, ErrTitleRequired)
	})

	t.Run("rejects price below minimum", func(t *testing.T) {
		svc, _ := newOfficeTestService()
		req := validCreate()
		req.PricePerDay = MinPricePerDay - 1
		_, err := svc.Create(ctx, req)
		assert.ErrorIs(t, err, ErrPriceTooLow)
	})

	t.Run("rejects out-of-range discount", func(t *testing.T) {
		svc, _ := newOfficeTestService()
		req := validCreate()
		req.MonthlyDiscount = 91
		_, err := svc.Create(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidDiscount)
	})

	t.Run("rejects unknown tag", func(t *testing.T) {
		svc, _ := newOfficeTestService()
		req := validCreate()
		req.TagIDs = []string{"tag-wifi", "tag-missing"}
		_, err := svc.Create(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidTag)
	})

	t.Run("stores known tags", func(t *testing.T) {
		svc, repo := newOfficeTestService()
		req := validCreate()
		req.TagIDs = []string{"tag-wifi"}
		o, err := svc.Create(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, []string{"tag-wifi"}, repo.tags[o.ID])
	})
}

func TestOfficeUpdateAndDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("only the owner may update", func(t *testing.T) {
		svc, _ := newOfficeTestService()
		o, err := svc.Create(ctx, validCreate())
		require.NoError(t, err)

		title := "New Title"
		_, err = svc.Update(ctx, o.ID, UpdateRequest{Title: &title}, "someone-else")
		assert.ErrorIs(t, err, ErrPermissionDenied)

		updated, err := svc.Update(ctx, o.ID, UpdateRequest{Title: &title}, "host-1")
		require.NoError(t, err)
		assert.Equal(t, "New Title", updated.Title)
	})

	t.Run("delete blocked by active reservations", func(t *testing.T) {
		svc, repo := newOfficeTestService()
		o, err := svc.Create(ctx, validCreate())
		require.NoError(t, err)

		repo.activeReservations[o.ID] = true
		err = svc.Delete(ctx, o.ID, "host-1")
		assert.ErrorIs(t, err, ErrHasActiveReservations)

		repo.activeReservations[o.ID] = false
		require.NoError(t, svc.Delete(ctx, o.ID, "host-1"))
	})
}
