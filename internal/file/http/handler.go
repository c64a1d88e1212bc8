package http

import (
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/hotel-booking-backend/internal/file"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/response"
)

type Handler struct {
	fileService file.Service
}

func NewHandler(fileService file.Service) *Handler {
	return &Handler{
		fileService: fileService,
	}
}

// ServeFile serves the photo content by ID
func (h *Handler) ServeFile(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.BadRequest(c, "invalid file id", err)
		return
	}

	stream, fileInfo, err := h.fileService.Download(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer stream.Close()

	h.stream(c, stream, fileInfo.ContentType, fileInfo.Filename)
}

// ServeThumbnail serves the thumbnail image by file ID
func (h *Handler) ServeThumbnail(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.BadRequest(c, "invalid file id", err)
		return
	}

	stream, fileInfo, err := h.fileService.DownloadThumbnail(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer stream.Close()

	// Thumbnails are always JPEG
	h.stream(c, stream, "image/jpeg", "thumb_"+fileInfo.Filename)
}

func (h *Handler) stream(c *gin.Context, stream io.Reader, contentType, filename string) {
	c.Header("Content-Type", contentType)
	c.Header("Content-Disposition", "inline; filename=\""+filename+"\"")
	c.Header("Cache-Control", "public, max-age=86400, immutable")

	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, stream); err != nil {
		// Response already started; nothing left to tell the client.
		log.Printf("stream %s: %v", filename, err)
	}
}
