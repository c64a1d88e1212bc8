package http

import (
	"time"

	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/calendar"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/hotel-booking-backend/internal/reservation"
)

// ListReservationsRequest defines query parameters for listing reservations.
type ListReservationsRequest struct {
	request.ListParams
	Status  string `form:"status" binding:"omitempty,oneof=pending confirmed checked_in checked_out cancelled no_show"`
	GuestID string `form:"guest_id" binding:"omitempty,uuid"`
	From    string `form:"from"`
	To      string `form:"to"`
}

type RoomLineRequest struct {
	RoomID      string `json:"room_id" binding:"required,uuid"`
	NightlyRate *int64 `json:"nightly_rate" binding:"omitempty,min=0,max=1000000000000"`
}

type CreateRequest struct {
	GuestID         string            `json:"guest_id" binding:"required,uuid"`
	CheckIn         string            `json:"check_in" binding:"required"`
	CheckOut        string            `json:"check_out" binding:"required"`
	Adults          int               `json:"adults" binding:"required,min=1"`
	Children        int               `json:"children" binding:"min=0"`
	Rooms           []RoomLineRequest `json:"rooms" binding:"required,min=1,dive"`
	SpecialRequests string            `json:"special_requests"`
	Notes           string            `json:"notes"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed checked_in checked_out cancelled no_show"`
}

type PaymentRequest struct {
	Amount    int64  `json:"amount" binding:"required,min=1"`
	Method    string `json:"method" binding:"required,oneof=cash card transfer other"`
	Reference string `json:"reference" binding:"max=100"`
	Notes     string `json:"notes"`
}

type RoomLineResponse struct {
	ID           string `json:"id"`
	RoomID       string `json:"room_id"`
	RoomNumber   string `json:"room_number"`
	RoomTypeID   string `json:"room_type_id"`
	RoomTypeName string `json:"room_type_name"`
	NightlyRate  int64  `json:"nightly_rate"`
	Nights       int    `json:"nights"`
	Subtotal     int64  `json:"subtotal"`
}

type PaymentResponse struct {
	ID         string    `json:"id"`
	Amount     int64     `json:"amount"`
	Method     string    `json:"method"`
	Reference  string    `json:"reference"`
	Notes      string    `json:"notes"`
	ReceivedBy string    `json:"received_by,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type ReservationResponse struct {
	ID              string             `json:"id"`
	Number          string             `json:"number"`
	GuestID         string             `json:"guest_id"`
	GuestName       string             `json:"guest_name"`
	CheckIn         string             `json:"check_in"`
	CheckOut        string             `json:"check_out"`
	Nights          int                `json:"nights"`
	Adults          int                `json:"adults"`
	Children        int                `json:"children"`
	Status          string             `json:"status"`
	TotalAmount     int64              `json:"total_amount"`
	PaidAmount      int64              `json:"paid_amount"`
	PendingAmount   int64              `json:"pending_amount"`
	IsPaidInFull    bool               `json:"is_paid_in_full"`
	SpecialRequests string             `json:"special_requests"`
	Notes           string             `json:"notes"`
	Rooms           []RoomLineResponse `json:"rooms"`
	Payments        []PaymentResponse  `json:"payments,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

type PaymentResultResponse struct {
	Payment     PaymentResponse     `json:"payment"`
	Reservation ReservationResponse `json:"reservation"`
}

func NewPaymentResponse(p reservation.Payment) PaymentResponse {
	return PaymentResponse{
		ID:         p.ID,
		Amount:     p.Amount,
		Method:     string(p.Method),
		Reference:  p.Reference,
		Notes:      p.Notes,
		ReceivedBy: p.ReceivedBy,
		CreatedAt:  p.CreatedAt,
	}
}

func NewResponse(r *reservation.Reservation) ReservationResponse {
	rooms := make([]RoomLineResponse, len(r.Rooms))
	for i, rr := range r.Rooms {
		rooms[i] = RoomLineResponse{
			ID:           rr.ID,
			RoomID:       rr.RoomID,
			RoomNumber:   rr.RoomNumber,
			RoomTypeID:   rr.RoomTypeID,
			RoomTypeName: rr.RoomTypeName,
			NightlyRate:  rr.NightlyRate,
			Nights:       rr.Nights,
			Subtotal:     rr.Subtotal,
		}
	}

	var payments []PaymentResponse
	for _, p := range r.Payments {
		payments = append(payments, NewPaymentResponse(p))
	}

	return ReservationResponse{
		ID:              r.ID,
		Number:          r.Number,
		GuestID:         r.GuestID,
		GuestName:       r.GuestName,
		CheckIn:         calendar.Format(r.CheckIn),
		CheckOut:        calendar.Format(r.CheckOut),
		Nights:          calendar.DaysBetween(r.CheckIn, r.CheckOut),
		Adults:          r.Adults,
		Children:        r.Children,
		Status:          string(r.Status),
		TotalAmount:     r.TotalAmount,
		PaidAmount:      r.PaidAmount,
		PendingAmount:   r.PendingAmount(),
		IsPaidInFull:    r.IsPaidInFull(),
		SpecialRequests: r.SpecialRequests,
		Notes:           r.Notes,
		Rooms:           rooms,
		Payments:        payments,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}
