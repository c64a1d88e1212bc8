package pricing

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pricerule"
	"github.com/nekogravitycat/hotel-booking-backend/internal/roomtype"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidRange     = apperror.New(http.StatusBadRequest, "end date must be after start date")
	ErrRoomTypeNotFound = apperror.New(http.StatusNotFound, "room type not found")
)

// AppliedRule is the rule that set the price of a night.
type AppliedRule struct {
	ID         string
	Name       string
	Multiplier decimal.Decimal
	Priority   int
}

// NightPrice is the price of one night of a stay.
type NightPrice struct {
	Date        time.Time
	Weekday     time.Weekday
	BasePrice   int64
	FinalPrice  int64
	AppliedRule *AppliedRule
}

// Quote is the priced breakdown of a stay in one room type.
type Quote struct {
	RoomType  *roomtype.RoomType
	StartDate time.Time
	EndDate   time.Time
	Nights    int
	PerNight  []NightPrice

	TotalBase  int64
	TotalFinal int64
	// TotalDiscount is TotalBase - TotalFinal, so it is negative when rules raise the price.
	TotalDiscount        int64
	DiscountPercentage   decimal.Decimal
	AveragePricePerNight int64

	// ApplicableRules lists every active rule of the room type, matched or not, in evaluation order.
	ApplicableRules []*pricerule.PriceRule
}
