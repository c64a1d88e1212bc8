package response

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/apperror"
)

// ErrorResponse defines the JSON structure for error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Error sends a JSON error response.
// It checks if the error is an AppError to determine the status code.
// Anything else is logged and reported as 500 Internal Server Error without details.
func Error(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		if appErr.Code >= http.StatusInternalServerError {
			log.Printf("%s %s: %v", c.Request.Method, c.FullPath(), err)
		}
		c.JSON(appErr.Code, ErrorResponse{Error: appErr.Message})
		return
	}

	log.Printf("%s %s: %v", c.Request.Method, c.FullPath(), err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// BadRequest sends a 400 with an optional details field, used for binding failures.
func BadRequest(c *gin.Context, message string, err error) {
	body := gin.H{"error": message}
	if err != nil {
		body["details"] = err.Error()
	}
	c.JSON(http.StatusBadRequest, body)
}
