package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/hotel-booking-backend/internal/auth"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/calendar"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/response"
	"github.com/nekogravitycat/hotel-booking-backend/internal/reservation"
)

type Handler struct {
	service reservation.Service
}

func NewHandler(service reservation.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	var req ListReservationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}

	filter := reservation.Filter{
		Status:    reservation.Status(req.Status),
		GuestID:   req.GuestID,
		Page:      req.Page,
		PageSize:  req.PageSize,
		SortOrder: strings.ToUpper(req.SortOrder),
	}
	if req.From != "" {
		from, err := calendar.Parse(req.From)
		if err != nil {
			response.Error(c, err)
			return
		}
		filter.From = &from
	}
	if req.To != "" {
		to, err := calendar.Parse(req.To)
		if err != nil {
			response.Error(c, err)
			return
		}
		filter.To = &to
	}

	list, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]ReservationResponse, len(list))
	for i, r := range list {
		items[i] = NewResponse(r)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	res, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewResponse(res))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateRequest
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

	rooms := make([]reservation.RoomRequest, len(body.Rooms))
	for i, r := range body.Rooms {
		rooms[i] = reservation.RoomRequest{RoomID: r.RoomID, NightlyRate: r.NightlyRate}
	}

	res, err := h.service.Create(c.Request.Context(), reservation.CreateRequest{
		GuestID:         body.GuestID,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		Adults:          body.Adults,
		Children:        body.Children,
		Rooms:           rooms,
		SpecialRequests: body.SpecialRequests,
		Notes:           body.Notes,
		CreatedBy:       auth.GetUserID(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewResponse(res))
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	var body UpdateStatusRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	res, err := h.service.UpdateStatus(c.Request.Context(), uri.ID, reservation.Status(body.Status))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewResponse(res))
}

func (h *Handler) AddPayment(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	var body PaymentRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	res, payment, err := h.service.AddPayment(c.Request.Context(), uri.ID, reservation.PaymentRequest{
		Amount:     body.Amount,
		Method:     reservation.PaymentMethod(body.Method),
		Reference:  body.Reference,
		Notes:      body.Notes,
		ReceivedBy: auth.GetUserID(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, PaymentResultResponse{
		Payment:     NewPaymentResponse(*payment),
		Reservation: NewResponse(res),
	})
}
