package quote

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pricing"
	"github.com/nekogravitycat/hotel-booking-backend/internal/room"
	"github.com/nekogravitycat/hotel-booking-backend/internal/roomtype"
)

var ErrInvalidGuests = apperror.New(http.StatusBadRequest, "guest counts must not be negative")

type SearchRequest struct {
	CheckIn    time.Time
	CheckOut   time.Time
	Adults     int
	Children   int
	RoomTypeID string
}

// Option is one bookable room type with its price for the whole stay.
type Option struct {
	RoomType       *roomtype.RoomType
	TotalRooms     int
	AvailableRooms []*room.Room
	Quote          *pricing.Quote
}

type SearchResult struct {
	CheckIn  time.Time
	CheckOut time.Time
	Nights   int
	Adults   int
	Children int
	// Options are ordered by total price, cheapest first.
	Options []Option
}
