package pricing

import (
	"cmp"
	"slices"
	"time"

	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/calendar"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pricerule"
	"github.com/nekogravitycat/hotel-booking-backend/internal/roomtype"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Calculate prices every night of [start, end) for rt, at most calendar.MaxStayNights nights. For each night the highest
// priority active rule that matches sets the price; equal priorities fall back to
// the lower rule ID. Nights without a matching rule cost the base price.
//
// Calculate is pure: the same inputs always produce the same quote.
func Calculate(rt *roomtype.RoomType, rules []*pricerule.PriceRule, start, end time.Time) (*Quote, error) {
	start, end = calendar.Day(start), calendar.Day(end)
	if !end.After(start) {
		return nil, ErrInvalidRange
	}
	if calendar.DaysBetween(start, end) > calendar.MaxStayNights {
		return nil, calendar.ErrStayTooLong
	}

	ordered := SortRules(rules)
	nights := calendar.Nights(start, end)

	q := &Quote{
		RoomType:        rt,
		StartDate:       start,
		EndDate:         end,
		Nights:          len(nights),
		PerNight:        make([]NightPrice, 0, len(nights)),
		ApplicableRules: ordered,
	}

	for _, night := range nights {
		np := NightPrice{
			Date:       night,
			Weekday:    night.Weekday(),
			BasePrice:  rt.BasePrice,
			FinalPrice: rt.BasePrice,
		}
		if rule := selectRule(ordered, night); rule != nil {
			np.FinalPrice = ApplyMultiplier(rt.BasePrice, rule.Multiplier)
			np.AppliedRule = &AppliedRule{
				ID:         rule.ID,
				Name:       rule.Name,
				Multiplier: rule.Multiplier,
				Priority:   rule.Priority,
			}
		}
		q.PerNight = append(q.PerNight, np)
		q.TotalFinal += np.FinalPrice
	}

	q.TotalBase = rt.BasePrice * int64(q.Nights)
	q.TotalDiscount = q.TotalBase - q.TotalFinal
	q.DiscountPercentage = decimal.Zero
	if q.TotalBase != 0 {
		q.DiscountPercentage = decimal.NewFromInt(q.TotalDiscount).
			Mul(hundred).
			Div(decimal.NewFromInt(q.TotalBase)).
			Round(2)
	}
	q.AveragePricePerNight = decimal.NewFromInt(q.TotalFinal).
		Div(decimal.NewFromInt(int64(q.Nights))).
		Round(0).
		IntPart()

	return q, nil
}

// SortRules returns the active rules ordered by priority descending, then ID ascending.
// The input slice is not modified.
func SortRules(rules []*pricerule.PriceRule) []*pricerule.PriceRule {
	out := make([]*pricerule.PriceRule, 0, len(rules))
	for _, r := range rules {
		if r != nil && r.IsActive {
			out = append(out, r)
		}
	}
	slices.SortFunc(out, func(a, b *pricerule.PriceRule) int {
		if c := cmp.Compare(b.Priority, a.Priority); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}

// selectRule returns the first rule in ordered that matches night.
func selectRule(ordered []*pricerule.PriceRule, night time.Time) *pricerule.PriceRule {
	for _, r := range ordered {
		if r.Matches(night) {
			return r
		}
	}
	return nil
}

// ApplyMultiplier scales a price and rounds half away from zero to a whole unit.
func ApplyMultiplier(price int64, multiplier decimal.Decimal) int64 {
	return decimal.NewFromInt(price).Mul(multiplier).Round(0).IntPart()
}
