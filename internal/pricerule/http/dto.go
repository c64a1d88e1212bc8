package http

import (
	"time"

	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/calendar"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pricerule"
	roomTypeHttp "github.com/nekogravitycat/hotel-booking-backend/internal/roomtype/http"
	"github.com/shopspring/decimal"
)

// ListPriceRulesRequest defines query parameters for listing rules.
type ListPriceRulesRequest struct {
	request.ListParams
	RoomTypeID string `form:"room_type_id" binding:"omitempty,uuid"`
	ActiveOnly bool   `form:"active"`
}

type PriceRuleResponse struct {
	ID                string                   `json:"id"`
	RoomType          roomTypeHttp.RoomTypeTag `json:"room_type"`
	Name              string                   `json:"name"`
	Multiplier        float64                  `json:"multiplier"`
	Priority          int                      `json:"priority"`
	IsActive          bool                     `json:"is_active"`
	StartDate         string                   `json:"start_date"`
	EndDate           string                   `json:"end_date"`
	IsRecurring       bool                     `json:"is_recurring"`
	RecurrenceType    *string                  `json:"recurrence_type"`
	DaysOfWeek        []int                    `json:"days_of_week"`
	RecurrenceEndDate *string                  `json:"recurrence_end_date"`
	CreatedAt         time.Time                `json:"created_at"`
	UpdatedAt         time.Time                `json:"updated_at"`
}

func NewResponse(r *pricerule.PriceRule) PriceRuleResponse {
	resp := PriceRuleResponse{
		ID:          r.ID,
		RoomType:    roomTypeHttp.RoomTypeTag{ID: r.RoomTypeID, Name: r.RoomTypeName},
		Name:        r.Name,
		Multiplier:  r.Multiplier.InexactFloat64(),
		Priority:    r.Priority,
		IsActive:    r.IsActive,
		StartDate:   calendar.Format(r.StartDate),
		EndDate:     calendar.Format(r.EndDate),
		IsRecurring: r.IsRecurring,
		DaysOfWeek:  r.DaysOfWeek,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if resp.DaysOfWeek == nil {
		resp.DaysOfWeek = []int{}
	}
	if r.RecurrenceType != "" {
		t := string(r.RecurrenceType)
		resp.RecurrenceType = &t
	}
	if r.RecurrenceEndDate != nil {
		d := calendar.Format(*r.RecurrenceEndDate)
		resp.RecurrenceEndDate = &d
	}
	return resp
}

type CreateRequest struct {
	RoomTypeID        string           `json:"room_type_id" binding:"required,uuid"`
	Name              string           `json:"name" binding:"required,min=1,max=100"`
	Multiplier        *decimal.Decimal `json:"multiplier" binding:"required"`
	Priority          int              `json:"priority"`
	IsActive          *bool            `json:"is_active"`
	StartDate         string           `json:"start_date" binding:"required"`
	EndDate           string           `json:"end_date"`
	IsRecurring       bool             `json:"is_recurring"`
	RecurrenceType    string           `json:"recurrence_type" binding:"omitempty,oneof=weekly custom monthly"`
	DaysOfWeek        []int            `json:"days_of_week" binding:"omitempty,dive,min=0,max=6"`
	RecurrenceEndDate string           `json:"recurrence_end_date"`
}

// UpdateRequest patches a rule. An empty recurrence_end_date string clears it.
type UpdateRequest struct {
	Name              *string          `json:"name" binding:"omitempty,min=1,max=100"`
	Multiplier        *decimal.Decimal `json:"multiplier"`
	Priority          *int             `json:"priority"`
	IsActive          *bool            `json:"is_active"`
	StartDate         *string          `json:"start_date"`
	EndDate           *string          `json:"end_date"`
	IsRecurring       *bool            `json:"is_recurring"`
	RecurrenceType    *string          `json:"recurrence_type" binding:"omitempty,oneof=weekly custom monthly"`
	DaysOfWeek        []int            `json:"days_of_week" binding:"omitempty,dive,min=0,max=6"`
	RecurrenceEndDate *string          `json:"recurrence_end_date"`
}

// parseOptionalDate parses a date string, returning nil for an empty one.
func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	d, err := calendar.Parse(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
