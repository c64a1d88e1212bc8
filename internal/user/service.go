package user

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/nekogravitycat/hotel-booking-backend/internal/auth"
)

// RegisterRequest creates a staff account. An empty Role means receptionist.
type RegisterRequest struct {
	Email       string
	Password    string
	DisplayName string
	Role        Role
}

// UpdateRequest holds the fields an admin may change. Nil fields are left untouched.
type UpdateRequest struct {
	DisplayName *string
	IsActive    *bool
	Role        *Role
}

// Service defines business logic related to users.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*User, error)
	Login(ctx context.Context, email, password string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	List(ctx context.Context, filter Filter) ([]*User, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*User, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	hasher auth.PasswordHasher
	now    func() time.Time

	minPasswordLength int
}

// NewService creates a new user Service.
func NewService(repo Repository, hasher auth.PasswordHasher) Service {
	return &service{
		repo:              repo,
		hasher:            hasher,
		now:               time.Now,
		minPasswordLength: 8,
	}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	cleanEmail := normalizeEmail(req.Email)
	if cleanEmail == "" {
		return nil, ErrEmailRequired
	}

	if len(req.Password) < s.minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	role := req.Role
	if role == "" {
		role = RoleReceptionist
	}
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	// Check if email is already used.
	_, err := s.repo.GetByEmail(ctx, cleanEmail)
	if err == nil {
		return nil, ErrEmailAlreadyUsed
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	var displayNamePtr *string
	if d := strings.TrimSpace(req.DisplayName); d != "" {
		displayNamePtr = &d
	}

	u := &User{
		Email:        cleanEmail,
		PasswordHash: hash,
		DisplayName:  displayNamePtr,
		Role:         role,
		IsActive:     true,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

func (s *service) Login(ctx context.Context, email, password string) (*User, error) {
	cleanEmail := normalizeEmail(email)
	if cleanEmail == "" || strings.TrimSpace(password) == "" {
		return nil, ErrInvalidCredentials
	}

	u, err := s.repo.GetByEmail(ctx, cleanEmail)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to fetch user by email: %w", err)
	}

	if !u.IsActive {
		return nil, ErrInactiveUser
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	// Best effort; a failed timestamp update does not fail the login.
	now := s.now().UTC()
	if err := s.repo.UpdateLastLogin(ctx, u.ID, now); err != nil {
		log.Printf("failed to update last login for user %s: %v", u.ID, err)
	} else {
		u.LastLoginAt = &now
	}

	return u, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*User, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.DisplayName != nil {
		if d := strings.TrimSpace(*req.DisplayName); d != "" {
			u.DisplayName = &d
		} else {
			u.DisplayName = nil
		}
	}
	if req.IsActive != nil {
		u.IsActive = *req.IsActive
	}
	if req.Role != nil {
		if !req.Role.Valid() {
			return nil, ErrInvalidRole
		}
		u.Role = *req.Role
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// normalizeEmail trims spaces and lowercases the email.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
