package quote

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nekogravitycat/hotel-booking-backend/internal/availability"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/calendar"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pricerule"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pricing"
	"github.com/nekogravitycat/hotel-booking-backend/internal/room"
	"github.com/nekogravitycat/hotel-booking-backend/internal/roomtype"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAvailability struct {
	categories []availability.CategoryAvailability
	lastQuery  availability.Query
}

func (s *stubAvailability) FindAvailable(_ context.Context, q availability.Query) ([]availability.CategoryAvailability, error) {
	s.lastQuery = q
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return s.categories, nil
}

func (s *stubAvailability) Daily(context.Context, availability.DailyQuery) (*availability.Calendar, error) {
	return nil, errors.New("not used")
}

type ruleStore struct {
	rules []*pricerule.PriceRule
	err   error
	calls atomic.Int32
}

func (s *ruleStore) ListActiveByRoomType(_ context.Context, roomTypeID string) ([]*pricerule.PriceRule, error) {
	s.calls.Add(1)
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

type noRoomTypes struct{}

func (noRoomTypes) GetByID(context.Context, string) (*roomtype.RoomType, error) {
	return nil, roomtype.ErrNotFound
}

func day(s string) time.Time {
	d, err := calendar.Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

func category(id, name string, price int64, rooms ...string) availability.CategoryAvailability {
	rt := &roomtype.RoomType{ID: id, Name: name, Capacity: 2, BasePrice: price, IsActive: true}
	cat := availability.CategoryAvailability{RoomType: rt, TotalRooms: len(rooms) + 1}
	for _, n := range rooms {
		cat.AvailableRooms = append(cat.AvailableRooms, &room.Room{ID: "room-" + n, RoomTypeID: id, Number: n})
	}
	return cat
}

func TestSearchRanksByTotalFinal(t *testing.T) {
	avail := &stubAvailability{categories: []availability.CategoryAvailability{
		category("cheap", "Standard", 80000, "101"),
		category("mid", "Deluxe", 100000, "201", "202"),
		category("twin", "Twin", 90000, "301"),
	}}
	// The standard rooms double in price during the stay, so they rank last.
	rules := &ruleStore{rules: []*pricerule.PriceRule{{
		ID: "surge", RoomTypeID: "cheap", Name: "Festival", IsActive: true, Priority: 1,
		Multiplier: decimal.NewFromInt(2), StartDate: day("2024-06-01"), EndDate: day("2024-06-30"),
	}}}
	svc := NewService(avail, pricing.NewService(noRoomTypes{}, rules), 2)

	res, err := svc.Search(context.Background(), SearchRequest{
		CheckIn: day("2024-06-01"), CheckOut: day("2024-06-03"), Adults: 2, Children: 1,
	})
	require.NoError(t, err)

	require.Len(t, res.Options, 3)
	assert.Equal(t, "twin", res.Options[0].RoomType.ID)
	assert.Equal(t, int64(180000), res.Options[0].Quote.TotalFinal)
	assert.Equal(t, "mid", res.Options[1].RoomType.ID)
	assert.Equal(t, "cheap", res.Options[2].RoomType.ID)
	assert.Equal(t, int64(320000), res.Options[2].Quote.TotalFinal)

	assert.Equal(t, 2, res.Nights)
	require.NotNil(t, avail.lastQuery.MinCapacity)
	assert.Equal(t, 3, *avail.lastQuery.MinCapacity)
	assert.Equal(t, int32(3), rules.calls.Load())
}

func TestSearchTieBreaksByName(t *testing.T) {
	avail := &stubAvailability{categories: []availability.CategoryAvailability{
		category("b", "Garden", 100000, "1"),
		category("a", "Courtyard", 100000, "2"),
	}}
	svc := NewService(avail, pricing.NewService(noRoomTypes{}, &ruleStore{}), 4)

	res, err := svc.Search(context.Background(), SearchRequest{CheckIn: day("2024-06-01"), CheckOut: day("2024-06-02")})
	require.NoError(t, err)
	require.Len(t, res.Options, 2)
	assert.Equal(t, "Courtyard", res.Options[0].RoomType.Name)
	assert.Equal(t, "Garden", res.Options[1].RoomType.Name)
}

func TestSearchDefaultsToOneAdult(t *testing.T) {
	avail := &stubAvailability{}
	svc := NewService(avail, pricing.NewService(noRoomTypes{}, &ruleStore{}), 0)

	res, err := svc.Search(context.Background(), SearchRequest{CheckIn: day("2024-06-01"), CheckOut: day("2024-06-02")})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Adults)
	assert.Equal(t, 1, *avail.lastQuery.MinCapacity)
	assert.Empty(t, res.Options)
}

func TestSearchErrors(t *testing.T) {
	avail := &stubAvailability{categories: []availability.CategoryAvailability{category("a", "A", 1000, "1")}}
	rules := &ruleStore{}
	svc := NewService(avail, pricing.NewService(noRoomTypes{}, rules), 1)
	ctx := context.Background()

	_, err := svc.Search(ctx, SearchRequest{CheckIn: day("2024-06-01"), CheckOut: day("2024-06-02"), Children: -1})
	assert.ErrorIs(t, err, ErrInvalidGuests)

	_, err = svc.Search(ctx, SearchRequest{CheckIn: day("2024-06-02"), CheckOut: day("2024-06-01")})
	assert.ErrorIs(t, err, availability.ErrInvalidRange)

	_, err = svc.Search(ctx, SearchRequest{CheckIn: day("1900-01-01"), CheckOut: day("2300-01-01")})
	assert.ErrorIs(t, err, calendar.ErrStayTooLong)
	assert.Zero(t, rules.calls.Load())

	boom := errors.New("rules unavailable")
	rules.err = boom
	_, err = svc.Search(ctx, SearchRequest{CheckIn: day("2024-06-01"), CheckOut: day("2024-06-02")})
	assert.ErrorIs(t, err, boom)
}
