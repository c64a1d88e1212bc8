package http

import (
	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/calendar"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pricing"
)

type CalculatePriceRequest struct {
	RoomTypeID string `json:"room_type_id" binding:"required,uuid"`
	StartDate  string `json:"start_date" binding:"required"`
	EndDate    string `json:"end_date" binding:"required"`
}

type RoomTypeSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	BasePrice int64  `json:"base_price"`
}

type PeriodResponse struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Nights    int    `json:"nights"`
}

type TotalsResponse struct {
	TotalBase            int64   `json:"total_base"`
	TotalFinal           int64   `json:"total_final"`
	TotalDiscount        int64   `json:"total_discount"`
	DiscountPercentage   float64 `json:"discount_percentage"`
	AveragePricePerNight int64   `json:"average_price_per_night"`
}

type AppliedRuleResponse struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Multiplier float64 `json:"multiplier"`
	Priority   int     `json:"priority"`
}

type NightResponse struct {
	Date        string               `json:"date"`
	Weekday     string               `json:"weekday"`
	BasePrice   int64                `json:"base_price"`
	FinalPrice  int64                `json:"final_price"`
	AppliedRule *AppliedRuleResponse `json:"applied_rule"`
}

type RuleSummary struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Multiplier  float64 `json:"multiplier"`
	Priority    int     `json:"priority"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	IsRecurring bool    `json:"is_recurring"`
}

type QuoteResponse struct {
	RoomType        RoomTypeSummary `json:"room_type"`
	Period          PeriodResponse  `json:"period"`
	Pricing         TotalsResponse  `json:"pricing"`
	PerNight        []NightResponse `json:"per_night"`
	ApplicableRules []RuleSummary   `json:"applicable_rules"`
}

// NewTotalsResponse renders the aggregate part of a quote.
func NewTotalsResponse(q *pricing.Quote) TotalsResponse {
	return TotalsResponse{
		TotalBase:            q.TotalBase,
		TotalFinal:           q.TotalFinal,
		TotalDiscount:        q.TotalDiscount,
		DiscountPercentage:   q.DiscountPercentage.InexactFloat64(),
		AveragePricePerNight: q.AveragePricePerNight,
	}
}

func NewQuoteResponse(q *pricing.Quote) QuoteResponse {
	nights := make([]NightResponse, len(q.PerNight))
	for i, n := range q.PerNight {
		nights[i] = NightResponse{
			Date:       calendar.Format(n.Date),
			Weekday:    n.Weekday.String(),
			BasePrice:  n.BasePrice,
			FinalPrice: n.FinalPrice,
		}
		if n.AppliedRule != nil {
			nights[i].AppliedRule = &AppliedRuleResponse{
				ID:         n.AppliedRule.ID,
				Name:       n.AppliedRule.Name,
				Multiplier: n.AppliedRule.Multiplier.InexactFloat64(),
				Priority:   n.AppliedRule.Priority,
			}
		}
	}

	rules := make([]RuleSummary, len(q.ApplicableRules))
	for i, r := range q.ApplicableRules {
		rules[i] = RuleSummary{
			ID:          r.ID,
			Name:        r.Name,
			Multiplier:  r.Multiplier.InexactFloat64(),
			Priority:    r.Priority,
			StartDate:   calendar.Format(r.StartDate),
			EndDate:     calendar.Format(r.EndDate),
			IsRecurring: r.IsRecurring,
		}
	}

	return QuoteResponse{
		RoomType: RoomTypeSummary{
			ID:        q.RoomType.ID,
			Name:      q.RoomType.Name,
			BasePrice: q.RoomType.BasePrice,
		},
		Period: PeriodResponse{
			StartDate: calendar.Format(q.StartDate),
			EndDate:   calendar.Format(q.EndDate),
			Nights:    q.Nights,
		},
		Pricing:         NewTotalsResponse(q),
		PerNight:        nights,
		ApplicableRules: rules,
	}
}
