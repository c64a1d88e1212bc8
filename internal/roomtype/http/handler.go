package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	fileHttp "github.com/nekogravitycat/hotel-booking-backend/internal/file/http"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/response"
	"github.com/nekogravitycat/hotel-booking-backend/internal/roomtype"
)

// Accepted photo formats and size for room type images.
var imageTypes = []string{"image/jpeg", "image/png"}

type Handler struct {
	service     roomtype.Service
	fileHandler *fileHttp.Handler
	maxUpload   int64
}

func NewHandler(service roomtype.Service, fileHandler *fileHttp.Handler, maxUpload int64) *Handler {
	return &Handler{
		service:     service,
		fileHandler: fileHandler,
		maxUpload:   maxUpload,
	}
}

func (h *Handler) List(c *gin.Context) {
	var req ListRoomTypesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}

	filter := roomtype.Filter{
		ActiveOnly:  req.ActiveOnly,
		MinCapacity: req.MinCapacity,
		Page:        req.Page,
		PageSize:    req.PageSize,
		SortBy:      req.SortBy,
		SortOrder:   strings.ToUpper(req.SortOrder),
	}

	rts, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]RoomTypeResponse, len(rts))
	for i, rt := range rts {
		items[i] = NewResponse(rt)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	rt, err := h.service.Create(c.Request.Context(), roomtype.CreateRequest{
		Name:        body.Name,
		Description: body.Description,
		Category:    body.Category,
		Capacity:    body.Capacity,
		BasePrice:   *body.BasePrice,
		Amenities:   body.Amenities,
		IsActive:    body.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewResponse(rt))
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	rt, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewResponse(rt))
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

	rt, err := h.service.Update(c.Request.Context(), uri.ID, roomtype.UpdateRequest{
		Name:        body.Name,
		Description: body.Description,
		Category:    body.Category,
		Capacity:    body.Capacity,
		BasePrice:   body.BasePrice,
		Amenities:   body.Amenities,
		IsActive:    body.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewResponse(rt))
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

// UploadImage stores a photo and appends it to the room type's gallery.
func (h *Handler) UploadImage(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	// Fail before accepting the upload if the room type is gone.
	if _, err := h.service.GetByID(c.Request.Context(), req.ID); err != nil {
		response.Error(c, err)
		return
	}

	h.fileHandler.HandleFileUpload(c, fileHttp.FileUploadConfig{
		FormFieldName: "image",
		MaxSizeBytes:  h.maxUpload,
		AllowedTypes:  imageTypes,
		AfterUpload: func(ctx context.Context, fileID string) error {
			return h.service.AddImage(ctx, req.ID, fileID)
		},
	})
}
