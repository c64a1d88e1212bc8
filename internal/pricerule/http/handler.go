package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/calendar"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/response"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pricerule"
)

type Handler struct {
	service pricerule.Service
}

func NewHandler(service pricerule.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	var req ListPriceRulesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}

	rules, total, err := h.service.List(c.Request.Context(), pricerule.Filter{
		RoomTypeID: req.RoomTypeID,
		ActiveOnly: req.ActiveOnly,
		Page:       req.Page,
		PageSize:   req.PageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]PriceRuleResponse, len(rules))
	for i, r := range rules {
		items[i] = NewResponse(r)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	start, err := calendar.Parse(body.StartDate)
	if err != nil {
		response.Error(c, err)
		return
	}
	var end time.Time
	if body.EndDate != "" {
		if end, err = calendar.Parse(body.EndDate); err != nil {
			response.Error(c, err)
			return
		}
	} else if !body.IsRecurring {
		response.BadRequest(c, "end_date is required for a non-recurring rule", nil)
		return
	}
	recurrenceEnd, err := parseOptionalDate(body.RecurrenceEndDate)
	if err != nil {
		response.Error(c, err)
		return
	}

	rule, err := h.service.Create(c.Request.Context(), pricerule.CreateRequest{
		RoomTypeID:        body.RoomTypeID,
		Name:              body.Name,
		Multiplier:        *body.Multiplier,
		Priority:          body.Priority,
		IsActive:          body.IsActive,
		StartDate:         start,
		EndDate:           end,
		IsRecurring:       body.IsRecurring,
		RecurrenceType:    pricerule.RecurrenceType(body.RecurrenceType),
		DaysOfWeek:        body.DaysOfWeek,
		RecurrenceEndDate: recurrenceEnd,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewResponse(rule))
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	rule, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewResponse(rule))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	var body UpdateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	upd := pricerule.UpdateRequest{
		Name:        body.Name,
		Multiplier:  body.Multiplier,
		Priority:    body.Priority,
		IsActive:    body.IsActive,
		IsRecurring: body.IsRecurring,
		DaysOfWeek:  body.DaysOfWeek,
	}
	if body.RecurrenceType != nil {
		t := pricerule.RecurrenceType(*body.RecurrenceType)
		upd.RecurrenceType = &t
	}

	var err error
	if body.StartDate != nil {
		if upd.StartDate, err = parseOptionalDate(*body.StartDate); err != nil {
			response.Error(c, err)
			return
		}
	}
	if body.EndDate != nil {
		if upd.EndDate, err = parseOptionalDate(*body.EndDate); err != nil {
			response.Error(c, err)
			return
		}
	}
	if body.RecurrenceEndDate != nil {
		if *body.RecurrenceEndDate == "" {
			upd.ClearRecurrenceEnd = true
		} else if upd.RecurrenceEndDate, err = parseOptionalDate(*body.RecurrenceEndDate); err != nil {
			response.Error(c, err)
			return
		}
	}

	rule, err := h.service.Update(c.Request.Context(), uri.ID, upd)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewResponse(rule))
}

func (h *Handler) Delete(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), req.ID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
