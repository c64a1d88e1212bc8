package user

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound           = apperror.New(http.StatusNotFound, "user not found")
	ErrEmailAlreadyUsed   = apperror.New(http.StatusConflict, "email already used")
	ErrInvalidCredentials = apperror.New(http.StatusUnauthorized, "invalid email or password")
	ErrInactiveUser       = apperror.New(http.StatusUnauthorized, "user is inactive")
	ErrEmailRequired      = apperror.New(http.StatusBadRequest, "email is required")
	ErrPasswordTooShort   = apperror.New(http.StatusBadRequest, "password is too short")
	ErrInvalidRole        = apperror.New(http.StatusBadRequest, "invalid role")
)

// Role decides which administrative endpoints a staff member may call.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleReceptionist Role = "receptionist"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleReceptionist
}

// User is a staff account.
type User struct {
	ID           string // UUID
	Email        string
	PasswordHash string
	DisplayName  *string
	Role         Role
	CreatedAt    time.Time
	LastLoginAt  *time.Time
	IsActive     bool
}

// Filter defines filter options for listing users.
type Filter struct {
	Email       string
	DisplayName string
	Role        Role
	IsActive    *bool // Use pointer to distinguish between false and nil (not set)

	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
