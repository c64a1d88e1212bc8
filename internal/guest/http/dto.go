package http

import (
	"time"

	"github.com/nekogravitycat/hotel-booking-backend/internal/guest"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/calendar"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/request"
)

// ListGuestsRequest defines query parameters for listing guests.
type ListGuestsRequest struct {
	request.ListParams
	Email  string `form:"email" binding:"omitempty,email"`
	Phone  string `form:"phone" binding:"omitempty,max=40"`
	Search string `form:"search" binding:"omitempty,max=100"`
	SortBy string `form:"sort_by" binding:"omitempty,oneof=created_at last_name first_name"`
}

type GuestResponse struct {
	ID                   string    `json:"id"`
	FirstName            string    `json:"first_name"`
	LastName             string    `json:"last_name"`
	Email                *string   `json:"email"`
	Phone                string    `json:"phone"`
	IdentificationType   string    `json:"identification_type"`
	IdentificationNumber string    `json:"identification_number"`
	Country              string    `json:"country"`
	City                 string    `json:"city"`
	Address              string    `json:"address"`
	BirthDate            *string   `json:"birth_date"`
	Notes                string    `json:"notes"`
	IsVIP                bool      `json:"is_vip"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

func NewResponse(g *guest.Guest) GuestResponse {
	resp := GuestResponse{
		ID:                   g.ID,
		FirstName:            g.FirstName,
		LastName:             g.LastName,
		Email:                g.Email,
		Phone:                g.Phone,
		IdentificationType:   g.IdentificationType,
		IdentificationNumber: g.IdentificationNumber,
		Country:              g.Country,
		City:                 g.City,
		Address:              g.Address,
		Notes:                g.Notes,
		IsVIP:                g.IsVIP,
		CreatedAt:            g.CreatedAt,
		UpdatedAt:            g.UpdatedAt,
	}
	if g.BirthDate != nil {
		d := calendar.Format(*g.BirthDate)
		resp.BirthDate = &d
	}
	return resp
}

type CreateRequest struct {
	FirstName            string `json:"first_name" binding:"required,max=100"`
	LastName             string `json:"last_name" binding:"required,max=100"`
	Email                string `json:"email" binding:"omitempty,email,max=255"`
	Phone                string `json:"phone" binding:"required,max=40"`
	IdentificationType   string `json:"identification_type" binding:"max=40"`
	IdentificationNumber string `json:"identification_number" binding:"max=60"`
	Country              string `json:"country" binding:"max=100"`
	City                 string `json:"city" binding:"max=100"`
	Address              string `json:"address" binding:"max=255"`
	BirthDate            string `json:"birth_date"`
	Notes                string `json:"notes"`
	IsVIP                bool   `json:"is_vip"`
}

type UpdateRequest struct {
	FirstName            *string `json:"first_name" binding:"omitempty,max=100"`
	LastName             *string `json:"last_name" binding:"omitempty,max=100"`
	Email                *string `json:"email" binding:"omitempty,max=255"`
	Phone                *string `json:"phone" binding:"omitempty,max=40"`
	IdentificationType   *string `json:"identification_type" binding:"omitempty,max=40"`
	IdentificationNumber *string `json:"identification_number" binding:"omitempty,max=60"`
	Country              *string `json:"country" binding:"omitempty,max=100"`
	City                 *string `json:"city" binding:"omitempty,max=100"`
	Address              *string `json:"address" binding:"omitempty,max=255"`
	BirthDate            *string `json:"birth_date"`
	Notes                *string `json:"notes"`
	IsVIP                *bool   `json:"is_vip"`
}
