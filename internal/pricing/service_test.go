package pricing

import (
	"context"
	"errors"
	"testing"

	"github.com/nekogravitycat/hotel-booking-backend/internal/pricerule"
	"github.com/nekogravitycat/hotel-booking-backend/internal/roomtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roomTypes map[string]*roomtype.RoomType

func (rt roomTypes) GetByID(_ context.Context, id string) (*roomtype.RoomType, error) {
	if t, ok := rt[id]; ok {
		return t, nil
	}
	return nil, roomtype.ErrNotFound
}

type ruleStore struct {
	rules []*pricerule.PriceRule
	err   error
	calls int
}

func (s *ruleStore) ListActiveByRoomType(_ context.Context, roomTypeID string) ([]*pricerule.PriceRule, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	var out []*pricerule.PriceRule
	for _, r := range s.rules {
		if r.RoomTypeID == roomTypeID {
			out = append(out, r)
		}
	}
	return out, nil
}

func TestServiceQuote(t *testing.T) {
	rules := &ruleStore{rules: []*pricerule.PriceRule{
		bounded("rule-a", 5, "1.5", "2024-12-20", "2024-12-31"),
		weekdays("rule-b", 10, "1.2", 5, 6),
	}}
	svc := NewService(roomTypes{"rt-1": deluxe()}, rules)

	q, err := svc.Quote(context.Background(), "rt-1", day("2024-12-20"), day("2024-12-23"))
	require.NoError(t, err)

	// Fri and Sat take the weekend rule, Sun the holiday rule.
	assert.Equal(t, int64(120000+120000+150000), q.TotalFinal)
	assert.Len(t, q.ApplicableRules, 2)
	assert.Equal(t, "rule-b", q.ApplicableRules[0].ID)
}

func TestServiceQuoteErrors(t *testing.T) {
	rules := &ruleStore{}
	svc := NewService(roomTypes{"rt-1": deluxe()}, rules)
	ctx := context.Background()

	_, err := svc.Quote(ctx, "missing", day("2024-01-01"), day("2024-01-02"))
	assert.ErrorIs(t, err, ErrRoomTypeNotFound)

	_, err = svc.Quote(ctx, "missing", day("2024-01-02"), day("2024-01-02"))
	assert.ErrorIs(t, err, ErrInvalidRange, "range is checked before the lookup")
	assert.Zero(t, rules.calls)

	boom := errors.New("connection reset")
	rules.err = boom
	_, err = svc.Quote(ctx, "rt-1", day("2024-01-01"), day("2024-01-02"))
	assert.ErrorIs(t, err, boom)
}
