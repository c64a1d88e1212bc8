package roomtype

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "room type not found")
	ErrNameRequired     = apperror.New(http.StatusBadRequest, "name is required")
	ErrNameTaken        = apperror.New(http.StatusConflict, "a room type with this name already exists")
	ErrInvalidCapacity  = apperror.New(http.StatusBadRequest, "capacity must be greater than 0")
	ErrInvalidBasePrice = apperror.New(http.StatusBadRequest, "base price cannot be negative")
	ErrInUse            = apperror.New(http.StatusConflict, "room type still has rooms assigned")
)

// RoomType is a sellable room category (e.g. Double Standard). BasePrice is the nightly
// rate in whole currency units used whenever no price rule applies.
type RoomType struct {
	ID          string
	Name        string
	Description string
	Category    string
	Capacity    int
	BasePrice   int64
	Amenities   []string
	ImageIDs    []string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Filter defines parameters for listing room types.
type Filter struct {
	IDs         []string
	ActiveOnly  bool
	MinCapacity int
	Page        int
	PageSize    int
	SortBy      string
	SortOrder   string
}
