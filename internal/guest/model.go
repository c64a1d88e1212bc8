package guest

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound        = apperror.New(http.StatusNotFound, "guest not found")
	ErrNameRequired    = apperror.New(http.StatusBadRequest, "first and last name are required")
	ErrPhoneRequired   = apperror.New(http.StatusBadRequest, "phone is required")
	ErrEmailTaken      = apperror.New(http.StatusConflict, "a guest with this email already exists")
	ErrHasReservations = apperror.New(http.StatusConflict, "guest has reservations and cannot be deleted")
)

// Guest is a person reservations are made for. Email is optional but unique when set.
type Guest struct {
	ID                   string
	FirstName            string
	LastName             string
	Email                *string
	Phone                string
	IdentificationType   string
	IdentificationNumber string
	Country              string
	City                 string
	Address              string
	BirthDate            *time.Time
	Notes                string
	IsVIP                bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func (g *Guest) FullName() string {
	return g.FirstName + " " + g.LastName
}

// Filter defines parameters for listing guests.
// Email and Phone match exactly; Search matches names, email or phone partially.
type Filter struct {
	Email     string
	Phone     string
	Search    string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
