package user

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/hotel-booking-backend/internal/auth"
)

type memRepo struct {
	users        map[string]*User
	seq          int
	lastLoginErr error
}

func newMemRepo() *memRepo {
	return &memRepo{users: map[string]*User{}}
}

func (m *memRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memRepo) GetByID(_ context.Context, id string) (*User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memRepo) Create(_ context.Context, u *User) error {
	m.seq++
	u.ID = fmt.Sprintf("00000000-0000-0000-0000-%012d", m.seq)
	u.CreatedAt = time.Now()
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memRepo) UpdateLastLogin(_ context.Context, id string, t time.Time) error {
	if m.lastLoginErr != nil {
		return m.lastLoginErr
	}
	u, ok := m.users[id]
	if !ok {
		return ErrNotFound
	}
	u.LastLoginAt = &t
	return nil
}

func (m *memRepo) List(_ context.Context, _ Filter) ([]*User, int, error) {
	out := make([]*User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, len(out), nil
}

func (m *memRepo) Update(_ context.Context, u *User) error {
	if _, ok := m.users[u.ID]; !ok {
		return ErrNotFound
	}
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memRepo) Delete(_ context.Context, id string) error {
	u, ok := m.users[id]
	if !ok {
		return ErrNotFound
	}
	u.IsActive = false
	return nil
}

func newTestService(repo Repository) Service {
	return NewService(repo, auth.NewBcryptPasswordHasherWithCost(4))
}

func TestRegister(t *testing.T) {
	svc := newTestService(newMemRepo())
	ctx := context.Background()

	u, err := svc.Register(ctx, RegisterRequest{Email: "  Front@Hotel.Test ", Password: "password123", DisplayName: " Front Desk "})
	require.NoError(t, err)
	assert.Equal(t, "front@hotel.test", u.Email)
	assert.Equal(t, RoleReceptionist, u.Role)
	require.NotNil(t, u.DisplayName)
	assert.Equal(t, "Front Desk", *u.DisplayName)
	assert.NotEqual(t, "password123", u.PasswordHash)
	assert.True(t, u.IsActive)

	_, err = svc.Register(ctx, RegisterRequest{Email: "front@hotel.test", Password: "password123"})
	require.ErrorIs(t, err, ErrEmailAlreadyUsed)
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name    string
		req     RegisterRequest
		wantErr error
	}{
		{"missing email", RegisterRequest{Email: " ", Password: "password123"}, ErrEmailRequired},
		{"short password", RegisterRequest{Email: "a@b.test", Password: "short"}, ErrPasswordTooShort},
		{"unknown role", RegisterRequest{Email: "a@b.test", Password: "password123", Role: "owner"}, ErrInvalidRole},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestService(newMemRepo()).Register(context.Background(), tt.req)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLogin(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	created, err := svc.Register(ctx, RegisterRequest{Email: "admin@hotel.test", Password: "password123", Role: RoleAdmin})
	require.NoError(t, err)

	u, err := svc.Login(ctx, "ADMIN@hotel.test", "password123")
	require.NoError(t, err)
	assert.Equal(t, created.ID, u.ID)
	assert.Equal(t, RoleAdmin, u.Role)
	assert.NotNil(t, u.LastLoginAt)

	_, err = svc.Login(ctx, "admin@hotel.test", "wrong-password")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@hotel.test", "password123")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.Login(ctx, "admin@hotel.test", "password123")
	require.ErrorIs(t, err, ErrInactiveUser)
}

func TestLoginSurvivesLastLoginFailure(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{Email: "desk@hotel.test", Password: "password123"})
	require.NoError(t, err)

	repo.lastLoginErr = errors.New("connection reset")
	u, err := svc.Login(ctx, "desk@hotel.test", "password123")
	require.NoError(t, err)
	assert.Nil(t, u.LastLoginAt)
}

func TestUpdate(t *testing.T) {
	svc := newTestService(newMemRepo())
	ctx := context.Background()

	u, err := svc.Register(ctx, RegisterRequest{Email: "desk@hotel.test", Password: "password123", DisplayName: "Desk"})
	require.NoError(t, err)

	admin := RoleAdmin
	empty := " "
	updated, err := svc.Update(ctx, u.ID, UpdateRequest{Role: &admin, DisplayName: &empty})
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, updated.Role)
	assert.Nil(t, updated.DisplayName)

	bad := Role("owner")
	_, err = svc.Update(ctx, u.ID, UpdateRequest{Role: &bad})
	require.ErrorIs(t, err, ErrInvalidRole)

	_, err = svc.Update(ctx, "missing", UpdateRequest{})
	require.ErrorIs(t, err, ErrNotFound)
}
