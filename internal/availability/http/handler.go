package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/hotel-booking-backend/internal/availability"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/calendar"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/response"
)

type Handler struct {
	service availability.Service
}

func NewHandler(service availability.Service) *Handler {
	return &Handler{service: service}
}

// Calendar returns the occupancy of every room for each day of an inclusive range.
func (h *Handler) Calendar(c *gin.Context) {
	var req CalendarRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}

	start, err := calendar.Parse(req.Start)
	if err != nil {
		response.Error(c, err)
		return
	}
	end, err := calendar.Parse(req.End)
	if err != nil {
		response.Error(c, err)
		return
	}

	cal, err := h.service.Daily(c.Request.Context(), availability.DailyQuery{
		Start:      start,
		End:        end,
		RoomTypeID: req.RoomTypeID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewCalendarResponse(cal))
}
