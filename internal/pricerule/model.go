package pricerule

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/calendar"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound             = apperror.New(http.StatusNotFound, "price rule not found")
	ErrNameRequired         = apperror.New(http.StatusBadRequest, "price rule name is required")
	ErrInvalidMultiplier    = apperror.New(http.StatusBadRequest, "multiplier must be greater than 0 and below 1000000 with at most 4 decimal places")
	ErrInvalidRange         = apperror.New(http.StatusBadRequest, "end date must not be before start date")
	ErrInvalidRecurrence    = apperror.New(http.StatusBadRequest, "invalid recurrence type")
	ErrInvalidDaysOfWeek    = apperror.New(http.StatusBadRequest, "days of week must be between 0 (Sunday) and 6 (Saturday)")
	ErrDaysOfWeekRequired   = apperror.New(http.StatusBadRequest, "custom recurrence requires at least one day of week")
	ErrInvalidRecurrenceEnd = apperror.New(http.StatusBadRequest, "recurrence end date must not be before start date")
	ErrRoomTypeNotFound     = apperror.New(http.StatusNotFound, "room type not found")
)

// maxMultiplier is the exclusive upper bound of the NUMERIC(10,4) multiplier column.
var maxMultiplier = decimal.NewFromInt(1_000_000)

type RecurrenceType string

const (
	// RecurrenceWeekly repeats every day, or only on DaysOfWeek when any are set.
	RecurrenceWeekly RecurrenceType = "weekly"
	// RecurrenceCustom repeats on the listed DaysOfWeek.
	RecurrenceCustom RecurrenceType = "custom"
	// RecurrenceMonthly repeats on the day of month of StartDate.
	RecurrenceMonthly RecurrenceType = "monthly"
)

func (t RecurrenceType) Valid() bool {
	switch t {
	case RecurrenceWeekly, RecurrenceCustom, RecurrenceMonthly:
		return true
	}
	return false
}

// PriceRule adjusts the base rate of one room type by Multiplier on the nights it matches.
type PriceRule struct {
	ID           string
	RoomTypeID   string
	RoomTypeName string
	Name         string
	Multiplier   decimal.Decimal
	Priority     int
	IsActive     bool

	// StartDate and EndDate bound a non-recurring rule, both inclusive.
	// For a monthly rule StartDate also fixes the day of month.
	StartDate time.Time
	EndDate   time.Time

	IsRecurring       bool
	RecurrenceType    RecurrenceType
	DaysOfWeek        []int
	RecurrenceEndDate *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Matches reports whether the rule's temporal condition holds for night.
// The active flag is not considered.
func (r *PriceRule) Matches(night time.Time) bool {
	night = calendar.Day(night)

	if !r.IsRecurring {
		return !night.Before(calendar.Day(r.StartDate)) && !night.After(calendar.Day(r.EndDate))
	}

	if r.RecurrenceEndDate != nil && night.After(calendar.Day(*r.RecurrenceEndDate)) {
		return false
	}

	switch r.RecurrenceType {
	case RecurrenceWeekly:
		return len(r.DaysOfWeek) == 0 || r.onWeekday(night.Weekday())
	case RecurrenceCustom:
		return r.onWeekday(night.Weekday())
	case RecurrenceMonthly:
		return night.Day() == calendar.Day(r.StartDate).Day()
	}
	return false
}

func (r *PriceRule) onWeekday(wd time.Weekday) bool {
	for _, d := range r.DaysOfWeek {
		if d == int(wd) {
			return true
		}
	}
	return false
}

// Validate checks the invariants every stored rule must satisfy.
func (r *PriceRule) Validate() error {
	if r.Name == "" {
		return ErrNameRequired
	}
	if !r.Multiplier.IsPositive() ||
		r.Multiplier.GreaterThanOrEqual(maxMultiplier) ||
		!r.Multiplier.Equal(r.Multiplier.Truncate(4)) {
		return ErrInvalidMultiplier
	}
	if calendar.Day(r.EndDate).Before(calendar.Day(r.StartDate)) {
		return ErrInvalidRange
	}
	for _, d := range r.DaysOfWeek {
		if d < 0 || d > 6 {
			return ErrInvalidDaysOfWeek
		}
	}
	if !r.IsRecurring {
		return nil
	}
	if !r.RecurrenceType.Valid() {
		return ErrInvalidRecurrence
	}
	if r.RecurrenceType == RecurrenceCustom && len(r.DaysOfWeek) == 0 {
		return ErrDaysOfWeekRequired
	}
	if r.RecurrenceEndDate != nil && calendar.Day(*r.RecurrenceEndDate).Before(calendar.Day(r.StartDate)) {
		return ErrInvalidRecurrenceEnd
	}
	return nil
}

// Filter defines parameters for listing rules.
type Filter struct {
	RoomTypeID string
	ActiveOnly bool
	Page       int
	PageSize   int
}
