package http

import (
	"time"

	"github.com/nekogravitycat/hotel-booking-backend/internal/file"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/hotel-booking-backend/internal/roomtype"
)

// ListRoomTypesRequest defines query parameters for listing room types.
type ListRoomTypesRequest struct {
	request.ListParams
	ActiveOnly  bool   `form:"active"`
	MinCapacity int    `form:"min_capacity" binding:"omitempty,min=1"`
	SortBy      string `form:"sort_by" binding:"omitempty,oneof=name base_price capacity created_at"`
}

type ImageResponse struct {
	ID           string `json:"id"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnail_url"`
}

type RoomTypeResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Capacity    int             `json:"capacity"`
	BasePrice   int64           `json:"base_price"`
	Amenities   []string        `json:"amenities"`
	Images      []ImageResponse `json:"images"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// RoomTypeTag is the compact form embedded in other resources.
type RoomTypeTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func NewResponse(rt *roomtype.RoomType) RoomTypeResponse {
	images := make([]ImageResponse, len(rt.ImageIDs))
	for i, id := range rt.ImageIDs {
		images[i] = ImageResponse{ID: id, URL: file.FileURL(id), ThumbnailURL: file.ThumbnailURL(id)}
	}
	amenities := rt.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	return RoomTypeResponse{
		ID:          rt.ID,
		Name:        rt.Name,
		Description: rt.Description,
		Category:    rt.Category,
		Capacity:    rt.Capacity,
		BasePrice:   rt.BasePrice,
		Amenities:   amenities,
		Images:      images,
		IsActive:    rt.IsActive,
		CreatedAt:   rt.CreatedAt,
		UpdatedAt:   rt.UpdatedAt,
	}
}

type CreateRequest struct {
	Name        string   `json:"name" binding:"required,min=1,max=100"`
	Description string   `json:"description"`
	Category    string   `json:"category" binding:"max=50"`
	Capacity    int      `json:"capacity" binding:"required,min=1"`
	BasePrice   *int64   `json:"base_price" binding:"required,min=0"`
	Amenities   []string `json:"amenities"`
	IsActive    *bool    `json:"is_active"`
}

type UpdateRequest struct {
	Name        *string  `json:"name" binding:"omitempty,min=1,max=100"`
	Description *string  `json:"description"`
	Category    *string  `json:"category" binding:"omitempty,max=50"`
	Capacity    *int     `json:"capacity" binding:"omitempty,min=1"`
	BasePrice   *int64   `json:"base_price" binding:"omitempty,min=0"`
	Amenities   []string `json:"amenities"`
	IsActive    *bool    `json:"is_active"`
}
