package http

import (
	"time"

	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/hotel-booking-backend/internal/room"
	roomTypeHttp "github.com/nekogravitycat/hotel-booking-backend/internal/roomtype/http"
)

// ListRoomsRequest defines query parameters for listing rooms.
type ListRoomsRequest struct {
	request.ListParams
	RoomTypeID string `form:"room_type_id" binding:"omitempty,uuid"`
	Status     string `form:"status" binding:"omitempty,oneof=available occupied cleaning maintenance blocked"`
	Floor      *int   `form:"floor"`
	SortBy     string `form:"sort_by" binding:"omitempty,oneof=number floor status created_at"`
}

type RoomResponse struct {
	ID             string                   `json:"id"`
	RoomType       roomTypeHttp.RoomTypeTag `json:"room_type"`
	Number         string                   `json:"number"`
	Floor          int                      `json:"floor"`
	Status         string                   `json:"status"`
	CleaningStatus string                   `json:"cleaning_status"`
	Notes          string                   `json:"notes"`
	CreatedAt      time.Time                `json:"created_at"`
	UpdatedAt      time.Time                `json:"updated_at"`
}

func NewResponse(r *room.Room) RoomResponse {
	return RoomResponse{
		ID:             r.ID,
		RoomType:       roomTypeHttp.RoomTypeTag{ID: r.RoomTypeID, Name: r.RoomTypeName},
		Number:         r.Number,
		Floor:          r.Floor,
		Status:         string(r.Status),
		CleaningStatus: string(r.CleaningStatus),
		Notes:          r.Notes,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

type CreateRequest struct {
	RoomTypeID     string `json:"room_type_id" binding:"required,uuid"`
	Number         string `json:"number" binding:"required,min=1,max=20"`
	Floor          int    `json:"floor"`
	Status         string `json:"status" binding:"omitempty,oneof=available occupied cleaning maintenance blocked"`
	CleaningStatus string `json:"cleaning_status" binding:"omitempty,oneof=clean dirty in_progress inspected"`
	Notes          string `json:"notes"`
}

type UpdateRequest struct {
	RoomTypeID *string `json:"room_type_id" binding:"omitempty,uuid"`
	Number     *string `json:"number" binding:"omitempty,min=1,max=20"`
	Floor      *int    `json:"floor"`
	Notes      *string `json:"notes"`
}

type UpdateStatusRequest struct {
	Status         *string `json:"status" binding:"omitempty,oneof=available occupied cleaning maintenance blocked"`
	CleaningStatus *string `json:"cleaning_status" binding:"omitempty,oneof=clean dirty in_progress inspected"`
}
