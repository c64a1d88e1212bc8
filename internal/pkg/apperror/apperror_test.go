package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithCauseMatchesSentinel(t *testing.T) {
	sentinel := New(http.StatusConflict, "room already booked")
	cause := errors.New("exclusion violation")

	err := fmt.Errorf("create reservation: %w", WithCause(sentinel, cause))

	assert.ErrorIs(t, err, sentinel)
	assert.ErrorIs(t, err, cause)

	var appErr *AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusConflict, appErr.Code)
	assert.Equal(t, "room already booked", appErr.Message)
}

func TestIsDoesNotMatchDifferentSentinels(t *testing.T) {
	a := New(http.StatusNotFound, "room not found")
	b := New(http.StatusNotFound, "room type not found")

	assert.False(t, errors.Is(a, b))
	assert.True(t, errors.Is(a, a))
}
