package user

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deskhive/office-booking-backend/internal/auth"
)

// fakeUserRepo is an in-memory Repository keyed by email and ID.
type fakeUserRepo struct {
	seq     int
	byID    map[string]*User
	byEmail map[string]*User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    make(map[string]*User),
		byEmail: make(map[string]*User),
	}
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) Create(ctx context.Context, u *User) error {
	if _, exists := r.byEmail[u.Email]; exists {
		return ErrEmailAlreadyUsed
	}
	r.seq++
	u.ID = fmt.Sprintf("user-%d", r.seq)
	u.CreatedAt = time.Now().UTC()
	cp := *u
	r.byID[u.ID] = &cp
	r.byEmail[u.Email] = &cp
	return nil
}

func (r *fakeUserRepo) UpdateLastLogin(ctx context.Context, id string, t time.Time) error {
	u, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	u.LastLoginAt = &t
	return nil
}

func (r *fakeUserRepo) List(ctx context.Context, filter UserFilter) ([]*User, int, error) {
	var out []*User
	for _, u := range r.byID {
		cp := *u
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (r *fakeUserRepo) Update(ctx context.Context, u *User) error {
	stored, ok := r.byID[u.ID]
	if !ok {
		return ErrNotFound
	}
	*stored = *u
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id string) error {
	u, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	u.IsActive = false
	return nil
}

func newTestService() (Service, *fakeUserRepo) {
	repo := newFakeUserRepo()
	// Minimum bcrypt cost keeps the tests fast.
	hasher := auth.NewBcryptPasswordHasherWithCost(4)
	return NewService(repo, hasher), repo
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("success normalizes email", func(t *testing.T) {
		svc, _ := newTestService()
		u, err := svc.Register(ctx, "  Visitor@Example.COM ", "password123", "Visitor One")
		require.NoError(t, err)

		assert.Equal(t, "visitor@example.com", u.Email)
		assert.NotEmpty(t, u.ID)
		assert.True(t, u.IsActive)
		require.NotNil(t, u.DisplayName)
		assert.Equal(t, "Visitor One", *u.DisplayName)
		assert.NotEqual(t, "password123", u.PasswordHash)
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc, _ := newTestService()
		_, err := svc.Register(ctx, "dup@example.com", "password123", "")
		require.NoError(t, err)

		_, err = svc.Register(ctx, "dup@example.com", "password123", "")
		assert.ErrorIs(t, err, ErrEmailAlreadyUsed)
	})

	t.Run("short password", func(t *testing.T) {
		svc, _ := newTestService()
		_, err := svc.Register(ctx, "short@example.com", "1234567", "")
		assert.ErrorIs(t, err, ErrPasswordTooShort)
	})

	t.Run("empty email", func(t *testing.T) {
		svc, _ := newTestService()
		_, err := svc.Register(ctx, "   ", "password123", "")
		assert.ErrorIs(t, err, ErrEmailRequired)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("success records last login", func(t *testing.T) {
		svc, repo := newTestService()
		created, err := svc.Register(ctx, "login@example.com", "password123", "")
		require.NoError(t, err)

		u, err := svc.Login(ctx, "login@example.com", "password123")
		require.NoError(t, err)
		assert.Equal(t, created.ID, u.ID)

		stored, err := repo.GetByID(ctx, u.ID)
		require.NoError(t, err)
		assert.NotNil(t, stored.LastLoginAt)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, _ := newTestService()
		_, err := svc.Register(ctx, "wrong@example.com", "password123", "")
		require.NoError(t, err)

		_, err = svc.Login(ctx, "wrong@example.com", "different123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		svc, _ := newTestService()
		_, err := svc.Login(ctx, "nobody@example.com", "password123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("inactive user", func(t *testing.T) {
		svc, repo := newTestService()
		u, err := svc.Register(ctx, "inactive@example.com", "password123", "")
		require.NoError(t, err)
		require.NoError(t, repo.Delete(ctx, u.ID))

		_, err = svc.Login(ctx, "inactive@example.com", "password123")
		assert.ErrorIs(t, err, ErrInactiveUser)
	})
}
