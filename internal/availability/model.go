package availability

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/hotel-booking-backend/internal/room"
	"github.com/nekogravitycat/hotel-booking-backend/internal/roomtype"
	"github.com/shopspring/decimal"
)

// MaxCalendarDays bounds the daily calendar range.
const MaxCalendarDays = 366

var (
	ErrInvalidRange    = apperror.New(http.StatusBadRequest, "check-out must be after check-in")
	ErrInvalidCapacity = apperror.New(http.StatusBadRequest, "minimum capacity must be greater than 0")
	ErrRangeTooLong    = apperror.New(http.StatusBadRequest, "date range must not exceed 366 days")
)

// ReleasedStatuses are reservation statuses that no longer hold their rooms.
var ReleasedStatuses = []string{"cancelled", "no_show"}

// Occupancy is a reservation holding a room for [CheckIn, CheckOut).
type Occupancy struct {
	RoomID            string
	ReservationID     string
	ReservationNumber string
	GuestID           string
	CheckIn           time.Time
	CheckOut          time.Time
	Adults            int
	Children          int
	Status            string
}

// Query asks for the rooms free for a whole stay.
type Query struct {
	RoomTypeID  string
	CheckIn     time.Time
	CheckOut    time.Time
	MinCapacity *int
}

// CategoryAvailability lists the free rooms of one room type.
type CategoryAvailability struct {
	RoomType *roomtype.RoomType
	// TotalRooms counts the rooms of the type that accept bookings at all.
	TotalRooms     int
	AvailableRooms []*room.Room
}

// DailyQuery asks for the day by day calendar of an inclusive date range.
type DailyQuery struct {
	Start      time.Time
	End        time.Time
	RoomTypeID string
}

type OccupiedRoom struct {
	Room      *room.Room
	Occupancy Occupancy
}

// DayAvailability is the state of the inventory on one calendar day.
type DayAvailability struct {
	Date        time.Time
	Total       int
	Available   int
	Occupied    int
	Maintenance int
	Cleaning    int

	AvailableRooms   []*room.Room
	OccupiedRooms    []OccupiedRoom
	MaintenanceRooms []*room.Room
}

type Calendar struct {
	Rooms            []*room.Room
	Days             []DayAvailability
	TotalRooms       int
	AverageOccupancy decimal.Decimal
}
