package http

import (
	"time"

	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/hotel-booking-backend/internal/user"
)

// ListUsersRequest defines query parameters for listing users.
type ListUsersRequest struct {
	request.ListParams
	Email       string `form:"email"`
	DisplayName string `form:"display_name"`
	Role        string `form:"role" binding:"omitempty,oneof=admin receptionist"`
	IsActive    *bool  `form:"is_active"`
	SortBy      string `form:"sort_by" binding:"omitempty,oneof=display_name email created_at"`
}

// UserResponse is the shape of user data returned in API responses.
type UserResponse struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	DisplayName *string    `json:"display_name"`
	Role        string     `json:"role"`
	CreatedAt   time.Time  `json:"created_at"`
	LastLoginAt *time.Time `json:"last_login_at"`
	IsActive    bool       `json:"is_active"`
}

// NewUserResponse converts domain user.User to UserResponse used by the API.
func NewUserResponse(u *user.User) UserResponse {
	var lastLoginAt *time.Time
	if u.LastLoginAt != nil {
		ll := *u.LastLoginAt
		lastLoginAt = &ll
	}

	return UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Role:        string(u.Role),
		CreatedAt:   u.CreatedAt,
		LastLoginAt: lastLoginAt,
		IsActive:    u.IsActive,
	}
}

// RegisterRequest defines the payload for creating a staff account.
type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	DisplayName string `json:"display_name" binding:"required"`
	Role        string `json:"role" binding:"omitempty,oneof=admin receptionist"`
}

// LoginRequest defines the payload for user login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateUserRequest defines fields allowed to be updated via PATCH /users/:id.
// Use pointers to distinguish between "field not sent" and "field sent as false/empty".
type UpdateUserRequest struct {
	DisplayName *string `json:"display_name"`
	IsActive    *bool   `json:"is_active"`
	Role        *string `json:"role" binding:"omitempty,oneof=admin receptionist"`
}

// LoginResponse returns the token and user info.
type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
}

// MeResponse returns the current user info.
type MeResponse struct {
	User UserResponse `json:"user"`
}
