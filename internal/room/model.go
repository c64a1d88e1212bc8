package room

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound              = apperror.New(http.StatusNotFound, "room not found")
	ErrNumberRequired        = apperror.New(http.StatusBadRequest, "room number is required")
	ErrNumberTaken           = apperror.New(http.StatusConflict, "room number already exists")
	ErrInvalidStatus         = apperror.New(http.StatusBadRequest, "invalid room status")
	ErrInvalidCleaningStatus = apperror.New(http.StatusBadRequest, "invalid cleaning status")
	ErrRoomTypeNotFound      = apperror.New(http.StatusBadRequest, "room type does not exist")
	ErrHasReservations       = apperror.New(http.StatusConflict, "room has reservations and cannot be deleted")
)

// Status is the operational status of a room.
type Status string

const (
	StatusAvailable   Status = "available"
	StatusOccupied    Status = "occupied"
	StatusCleaning    Status = "cleaning"
	StatusMaintenance Status = "maintenance"
	StatusBlocked     Status = "blocked"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusOccupied, StatusCleaning, StatusMaintenance, StatusBlocked:
		return true
	}
	return false
}

// Bookable reports whether a room in this status may take new reservations.
// Rooms waiting for cleaning are still sellable; maintenance and blocked rooms never are.
func (s Status) Bookable() bool {
	return s == StatusAvailable || s == StatusCleaning
}

// OutOfService reports whether the room is withdrawn from inventory.
func (s Status) OutOfService() bool {
	return s == StatusMaintenance || s == StatusBlocked
}

// CleaningStatus is tracked independently of Status.
type CleaningStatus string

const (
	CleaningClean      CleaningStatus = "clean"
	CleaningDirty      CleaningStatus = "dirty"
	CleaningInProgress CleaningStatus = "in_progress"
	CleaningInspected  CleaningStatus = "inspected"
)

func (s CleaningStatus) Valid() bool {
	switch s {
	case CleaningClean, CleaningDirty, CleaningInProgress, CleaningInspected:
		return true
	}
	return false
}

// Room is a physical, bookable unit belonging to exactly one room type.
type Room struct {
	ID             string
	RoomTypeID     string
	RoomTypeName   string
	Number         string
	Floor          int
	Status         Status
	CleaningStatus CleaningStatus
	Notes          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Filter defines parameters for listing rooms.
type Filter struct {
	RoomTypeIDs []string
	Statuses    []Status
	Floor       *int
	Page        int
	PageSize    int
	SortBy      string
	SortOrder   string
}
