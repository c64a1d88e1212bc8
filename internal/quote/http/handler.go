package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/calendar"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/response"
	"github.com/nekogravitycat/hotel-booking-backend/internal/quote"
)

type Handler struct {
	service quote.Service
}

func NewHandler(service quote.Service) *Handler {
	return &Handler{service: service}
}

// Search lists the room types free for a stay, priced and cheapest first.
func (h *Handler) Search(c *gin.Context) {
	var body SearchRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	checkIn, err := calendar.Parse(body.CheckIn)
	if err != nil {
		response.Error(c, err)
		return
	}
	checkOut, err := calendar.Parse(body.CheckOut)
	if err != nil {
		response.Error(c, err)
		return
	}

	res, err := h.service.Search(c.Request.Context(), quote.SearchRequest{
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Adults:     body.Adults,
		Children:   body.Children,
		RoomTypeID: body.RoomTypeID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewSearchResponse(res))
}
