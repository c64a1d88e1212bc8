package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/response"
	"github.com/nekogravitycat/hotel-booking-backend/internal/room"
)

type Handler struct {
	service room.Service
}

func NewHandler(service room.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	var req ListRoomsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}

	filter := room.Filter{
		Floor:     req.Floor,
		Page:      req.Page,
		PageSize:  req.PageSize,
		SortBy:    req.SortBy,
		SortOrder: strings.ToUpper(req.SortOrder),
	}
	if req.RoomTypeID != "" {
		filter.RoomTypeIDs = []string{req.RoomTypeID}
	}
	if req.Status != "" {
		filter.Statuses = []room.Status{room.Status(req.Status)}
	}

	rooms, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]RoomResponse, len(rooms))
	for i, r := range rooms {
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

	r, err := h.service.Create(c.Request.Context(), room.CreateRequest{
		RoomTypeID:     body.RoomTypeID,
		Number:         body.Number,
		Floor:          body.Floor,
		Status:         room.Status(body.Status),
		CleaningStatus: room.CleaningStatus(body.CleaningStatus),
		Notes:          body.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewResponse(r))
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	r, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewResponse(r))
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

	r, err := h.service.Update(c.Request.Context(), uri.ID, room.UpdateRequest{
		RoomTypeID: body.RoomTypeID,
		Number:     body.Number,
		Floor:      body.Floor,
		Notes:      body.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewResponse(r))
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
	if body.Status == nil && body.CleaningStatus == nil {
		response.BadRequest(c, "status or cleaning_status is required", nil)
		return
	}

	var upd room.StatusUpdate
	if body.Status != nil {
		s := room.Status(*body.Status)
		upd.Status = &s
	}
	if body.CleaningStatus != nil {
		cs := room.CleaningStatus(*body.CleaningStatus)
		upd.CleaningStatus = &cs
	}

	r, err := h.service.UpdateStatus(c.Request.Context(), uri.ID, upd)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewResponse(r))
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
