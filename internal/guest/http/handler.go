package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/hotel-booking-backend/internal/guest"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/calendar"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/response"
)

type Handler struct {
	service guest.Service
}

func NewHandler(service guest.Service) *Handler {
	return &Handler{service: service}
}

// parseBirthDate reads an optional date; an empty string means no date.
func parseBirthDate(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	d, err := calendar.Parse(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (h *Handler) List(c *gin.Context) {
	var req ListGuestsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}

	guests, total, err := h.service.List(c.Request.Context(), guest.Filter{
		Email:     req.Email,
		Phone:     req.Phone,
		Search:    req.Search,
		Page:      req.Page,
		PageSize:  req.PageSize,
		SortBy:    req.SortBy,
		SortOrder: strings.ToUpper(req.SortOrder),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]GuestResponse, len(guests))
	for i, g := range guests {
		items[i] = NewResponse(g)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	birthDate, err := parseBirthDate(body.BirthDate)
	if err != nil {
		response.Error(c, err)
		return
	}

	g, err := h.service.Create(c.Request.Context(), guest.CreateRequest{
		FirstName:            body.FirstName,
		LastName:             body.LastName,
		Email:                body.Email,
		Phone:                body.Phone,
		IdentificationType:   body.IdentificationType,
		IdentificationNumber: body.IdentificationNumber,
		Country:              body.Country,
		City:                 body.City,
		Address:              body.Address,
		BirthDate:            birthDate,
		Notes:                body.Notes,
		IsVIP:                body.IsVIP,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewResponse(g))
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	g, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewResponse(g))
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

	upd := guest.UpdateRequest{
		FirstName:            body.FirstName,
		LastName:             body.LastName,
		Email:                body.Email,
		Phone:                body.Phone,
		IdentificationType:   body.IdentificationType,
		IdentificationNumber: body.IdentificationNumber,
		Country:              body.Country,
		City:                 body.City,
		Address:              body.Address,
		Notes:                body.Notes,
		IsVIP:                body.IsVIP,
	}
	if body.BirthDate != nil {
		birthDate, err := parseBirthDate(*body.BirthDate)
		if err != nil {
			response.Error(c, err)
			return
		}
		upd.BirthDate = birthDate
	}

	g, err := h.service.Update(c.Request.Context(), uri.ID, upd)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewResponse(g))
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
