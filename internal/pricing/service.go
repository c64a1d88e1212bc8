package pricing

import (
	"context"
	"errors"
	"time"

	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/calendar"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pricerule"
	"github.com/nekogravitycat/hotel-booking-backend/internal/roomtype"
)

type RoomTypeReader interface {
	GetByID(ctx context.Context, id string) (*roomtype.RoomType, error)
}

type RuleReader interface {
	ListActiveByRoomType(ctx context.Context, roomTypeID string) ([]*pricerule.PriceRule, error)
}

type Service interface {
	// Quote loads the room type and its active rules and prices [start, end).
	Quote(ctx context.Context, roomTypeID string, start, end time.Time) (*Quote, error)
	// QuoteFor prices a room type the caller already holds.
	QuoteFor(ctx context.Context, rt *roomtype.RoomType, start, end time.Time) (*Quote, error)
}

type service struct {
	roomTypes RoomTypeReader
	rules     RuleReader
}

func NewService(roomTypes RoomTypeReader, rules RuleReader) Service {
	return &service{roomTypes: roomTypes, rules: rules}
}

func (s *service) Quote(ctx context.Context, roomTypeID string, start, end time.Time) (*Quote, error) {
	if !calendar.Day(end).After(calendar.Day(start)) {
		return nil, ErrInvalidRange
	}

	rt, err := s.roomTypes.GetByID(ctx, roomTypeID)
	if err != nil {
		if errors.Is(err, roomtype.ErrNotFound) {
			return nil, ErrRoomTypeNotFound
		}
		return nil, err
	}
	return s.QuoteFor(ctx, rt, start, end)
}

func (s *service) QuoteFor(ctx context.Context, rt *roomtype.RoomType, start, end time.Time) (*Quote, error) {
	if !calendar.Day(end).After(calendar.Day(start)) {
		return nil, ErrInvalidRange
	}

	rules, err := s.rules.ListActiveByRoomType(ctx, rt.ID)
	if err != nil {
		return nil, err
	}
	return Calculate(rt, rules, start, end)
}
