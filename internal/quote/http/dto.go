package http

import (
	availHttp "github.com/nekogravitycat/hotel-booking-backend/internal/availability/http"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/calendar"
	pricingHttp "github.com/nekogravitycat/hotel-booking-backend/internal/pricing/http"
	"github.com/nekogravitycat/hotel-booking-backend/internal/quote"
	roomTypeHttp "github.com/nekogravitycat/hotel-booking-backend/internal/roomtype/http"
)

type SearchRequest struct {
	CheckIn    string `json:"check_in" binding:"required"`
	CheckOut   string `json:"check_out" binding:"required"`
	Adults     int    `json:"adults" binding:"min=0,max=20"`
	Children   int    `json:"children" binding:"min=0,max=20"`
	RoomTypeID string `json:"room_type_id" binding:"omitempty,uuid"`
}

type AvailabilityResponse struct {
	Total     int `json:"total"`
	Available int `json:"available"`
}

type PricingResponse struct {
	BasePrice            int64 `json:"base_price"`
	Nights               int   `json:"nights"`
	TotalBasePrice       int64 `json:"total_base_price"`
	TotalFinal           int64 `json:"total_final"`
	AveragePricePerNight int64 `json:"average_price_per_night"`
}

type OptionResponse struct {
	RoomType       roomTypeHttp.RoomTypeResponse `json:"room_type"`
	Availability   AvailabilityResponse          `json:"availability"`
	Pricing        PricingResponse               `json:"pricing"`
	PerNight       []pricingHttp.NightResponse   `json:"per_night"`
	AvailableRooms []availHttp.RoomSummary       `json:"available_rooms"`
}

type SearchResponse struct {
	CheckIn      string           `json:"check_in"`
	CheckOut     string           `json:"check_out"`
	Nights       int              `json:"nights"`
	Adults       int              `json:"adults"`
	Children     int              `json:"children"`
	Options      []OptionResponse `json:"options"`
	TotalOptions int              `json:"total_options"`
}

func NewSearchResponse(res *quote.SearchResult) SearchResponse {
	options := make([]OptionResponse, len(res.Options))
	for i, o := range res.Options {
		rooms := make([]availHttp.RoomSummary, len(o.AvailableRooms))
		for j, r := range o.AvailableRooms {
			rooms[j] = availHttp.NewRoomSummary(r)
		}
		options[i] = OptionResponse{
			RoomType: roomTypeHttp.NewResponse(o.RoomType),
			Availability: AvailabilityResponse{
				Total:     o.TotalRooms,
				Available: len(o.AvailableRooms),
			},
			Pricing: PricingResponse{
				BasePrice:            o.RoomType.BasePrice,
				Nights:               o.Quote.Nights,
				TotalBasePrice:       o.Quote.TotalBase,
				TotalFinal:           o.Quote.TotalFinal,
				AveragePricePerNight: o.Quote.AveragePricePerNight,
			},
			PerNight:       pricingHttp.NewQuoteResponse(o.Quote).PerNight,
			AvailableRooms: rooms,
		}
	}

	return SearchResponse{
		CheckIn:      calendar.Format(res.CheckIn),
		CheckOut:     calendar.Format(res.CheckOut),
		Nights:       res.Nights,
		Adults:       res.Adults,
		Children:     res.Children,
		Options:      options,
		TotalOptions: len(options),
	}
}
