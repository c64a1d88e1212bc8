package reservation

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound              = apperror.New(http.StatusNotFound, "reservation not found")
	ErrInvalidRange          = apperror.New(http.StatusBadRequest, "check-out must be after check-in")
	ErrInvalidGuests         = apperror.New(http.StatusBadRequest, "a reservation needs at least one adult and no negative guest counts")
	ErrGuestRequired         = apperror.New(http.StatusBadRequest, "guest is required")
	ErrGuestNotFound         = apperror.New(http.StatusBadRequest, "guest does not exist")
	ErrNoRooms               = apperror.New(http.StatusBadRequest, "at least one room is required")
	ErrDuplicateRoom         = apperror.New(http.StatusBadRequest, "a room can only be assigned once per reservation")
	ErrInvalidRate           = apperror.New(http.StatusBadRequest, "nightly rate must be between 0 and 1000000000000")
	ErrCapacityExceeded      = apperror.New(http.StatusBadRequest, "guests exceed the capacity of the assigned rooms")
	ErrRoomNotFound          = apperror.New(http.StatusBadRequest, "assigned room does not exist")
	ErrRoomUnavailable       = apperror.New(http.StatusConflict, "room is not available for the selected dates")
	ErrInvalidStatus         = apperror.New(http.StatusBadRequest, "invalid reservation status")
	ErrInvalidTransition     = apperror.New(http.StatusConflict, "reservation cannot move to the requested status")
	ErrOutstandingBalance    = apperror.New(http.StatusConflict, "reservation has a pending balance")
	ErrInvalidPaymentAmount  = apperror.New(http.StatusBadRequest, "payment amount must be greater than 0")
	ErrPaymentExceedsBalance = apperror.New(http.StatusBadRequest, "payment amount exceeds the pending balance")
	ErrPaymentNotAllowed     = apperror.New(http.StatusConflict, "payments are not accepted for this reservation")
	ErrInvalidPaymentMethod  = apperror.New(http.StatusBadRequest, "invalid payment method")
	errNumberTaken           = apperror.New(http.StatusConflict, "reservation number already exists")
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusCheckedIn  Status = "checked_in"
	StatusCheckedOut Status = "checked_out"
	StatusCancelled  Status = "cancelled"
	StatusNoShow     Status = "no_show"
)

var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled, StatusNoShow},
	StatusConfirmed: {StatusCheckedIn, StatusCancelled, StatusNoShow},
	StatusCheckedIn: {StatusCheckedOut},
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCheckedIn, StatusCheckedOut, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// Released reports whether the reservation no longer holds its rooms.
func (s Status) Released() bool {
	return s == StatusCancelled || s == StatusNoShow
}

// CanTransition reports whether a reservation in s may move to next.
func (s Status) CanTransition(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentCard     PaymentMethod = "card"
	PaymentTransfer PaymentMethod = "transfer"
	PaymentOther    PaymentMethod = "other"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentTransfer, PaymentOther:
		return true
	}
	return false
}

// ReservationRoom is a room assigned to a reservation with the rate locked in at booking time.
type ReservationRoom struct {
	ID           string
	RoomID       string
	RoomNumber   string
	RoomTypeID   string
	RoomTypeName string
	NightlyRate  int64
	Nights       int
	Subtotal     int64
}

type Payment struct {
	ID            string
	ReservationID string
	Amount        int64
	Method        PaymentMethod
	Reference     string
	Notes         string
	ReceivedBy    string
	CreatedAt     time.Time
}

type Reservation struct {
	ID              string
	Number          string
	GuestID         string
	GuestName       string
	CheckIn         time.Time
	CheckOut        time.Time
	Adults          int
	Children        int
	Status          Status
	TotalAmount     int64
	PaidAmount      int64
	SpecialRequests string
	Notes           string
	CreatedBy       string
	Rooms           []ReservationRoom
	Payments        []Payment
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// PendingAmount is what is still owed. It is never negative.
func (r *Reservation) PendingAmount() int64 {
	if pending := r.TotalAmount - r.PaidAmount; pending > 0 {
		return pending
	}
	return 0
}

func (r *Reservation) IsPaidInFull() bool {
	return r.PendingAmount() == 0
}

// ApplyPayment records amount against the balance. The amount must be positive
// and must not exceed the pending amount.
func (r *Reservation) ApplyPayment(amount int64) error {
	if r.Status.Released() {
		return ErrPaymentNotAllowed
	}
	if amount <= 0 {
		return ErrInvalidPaymentAmount
	}
	if amount > r.PendingAmount() {
		return ErrPaymentExceedsBalance
	}
	r.PaidAmount += amount
	return nil
}

// Filter defines parameters for listing reservations.
type Filter struct {
	Status  Status
	GuestID string
	// From and To select stays overlapping [From, To).
	From      *time.Time
	To        *time.Time
	Page      int
	PageSize  int
	SortOrder string
}
