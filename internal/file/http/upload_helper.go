package http

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/hotel-booking-backend/internal/auth"
	"github.com/nekogravitycat/hotel-booking-backend/internal/file"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/response"
)

// FileUploadConfig defines the configuration for a photo upload endpoint
type FileUploadConfig struct {
	FormFieldName string                                         // The name of the form field containing the file (default: "file")
	MaxSizeBytes  int64                                          // The maximum file size in bytes (0 = no limit)
	AllowedTypes  []string                                       // The list of allowed MIME types (empty = any image)
	AfterUpload   func(ctx context.Context, fileID string) error // Called after successful file upload (optional)
}

// HandleFileUpload is a reusable handler for photo uploads.
// It handles the upload, the optional after-upload hook, and rollback on hook failure.
func (h *Handler) HandleFileUpload(c *gin.Context, config FileUploadConfig) {
	userID := auth.GetUserID(c)

	fieldName := config.FormFieldName
	if fieldName == "" {
		fieldName = "file"
	}

	fileHeader, err := c.FormFile(fieldName)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fieldName + " is required"})
		return
	}

	f, err := h.fileService.Upload(c.Request.Context(), file.UploadInput{
		FileHeader:   fileHeader,
		UserID:       userID,
		MaxSizeBytes: config.MaxSizeBytes,
		AllowedTypes: config.AllowedTypes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	// After upload hook (e.g., attach to a room type)
	if config.AfterUpload != nil {
		if err := config.AfterUpload(c.Request.Context(), f.ID); err != nil {
			if delErr := h.fileService.Delete(c.Request.Context(), f.ID); delErr != nil {
				log.Printf("rollback upload %s: %v", f.ID, delErr)
			}
			response.Error(c, err)
			return
		}
	}

	c.JSON(http.StatusCreated, NewUploadResponse(f))
}
