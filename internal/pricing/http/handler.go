package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/calendar"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/response"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pricing"
)

type Handler struct {
	service pricing.Service
}

func NewHandler(service pricing.Service) *Handler {
	return &Handler{service: service}
}

// CalculatePrice returns the nightly breakdown of a stay in one room type.
func (h *Handler) CalculatePrice(c *gin.Context) {
	var body CalculatePriceRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	start, err := calendar.Parse(body.StartDate)
	if err != nil {
		response.Error(c, err)
		return
	}
	end, err := calendar.Parse(body.EndDate)
	if err != nil {
		response.Error(c, err)
		return
	}

	q, err := h.service.Quote(c.Request.Context(), body.RoomTypeID, start, end)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewQuoteResponse(q))
}
