package quote

import (
	"cmp"
	"context"
	"slices"

	"github.com/nekogravitycat/hotel-booking-backend/internal/availability"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/calendar"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pricing"
	"golang.org/x/sync/errgroup"
)

type Service interface {
	Search(ctx context.Context, req SearchRequest) (*SearchResult, error)
}

type service struct {
	availability availability.Service
	pricing      pricing.Service
	concurrency  int
}

// NewService composes availability and pricing. concurrency caps how many room
// types are priced at once; values below 1 price them one at a time.
func NewService(avail availability.Service, pricer pricing.Service, concurrency int) Service {
	if concurrency < 1 {
		concurrency = 1
	}
	return &service{
		availability: avail,
		pricing:      pricer,
		concurrency:  concurrency,
	}
}

func (s *service) Search(ctx context.Context, req SearchRequest) (*SearchResult, error) {
	if req.Adults < 0 || req.Children < 0 {
		return nil, ErrInvalidGuests
	}
	// Checked before the availability lookup so long ranges fail without touching storage.
	if calendar.DaysBetween(req.CheckIn, req.CheckOut) > calendar.MaxStayNights {
		return nil, calendar.ErrStayTooLong
	}
	if req.Adults == 0 {
		req.Adults = 1
	}
	minCapacity := req.Adults + req.Children

	categories, err := s.availability.FindAvailable(ctx, availability.Query{
		RoomTypeID:  req.RoomTypeID,
		CheckIn:     req.CheckIn,
		CheckOut:    req.CheckOut,
		MinCapacity: &minCapacity,
	})
	if err != nil {
		return nil, err
	}

	options := make([]Option, len(categories))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, cat := range categories {
		g.Go(func() error {
			q, err := s.pricing.QuoteFor(gctx, cat.RoomType, req.CheckIn, req.CheckOut)
			if err != nil {
				return err
			}
			options[i] = Option{
				RoomType:       cat.RoomType,
				TotalRooms:     cat.TotalRooms,
				AvailableRooms: cat.AvailableRooms,
				Quote:          q,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slices.SortStableFunc(options, func(a, b Option) int {
		if c := cmp.Compare(a.Quote.TotalFinal, b.Quote.TotalFinal); c != 0 {
			return c
		}
		return cmp.Compare(a.RoomType.Name, b.RoomType.Name)
	})

	return &SearchResult{
		CheckIn:  calendar.Day(req.CheckIn),
		CheckOut: calendar.Day(req.CheckOut),
		Nights:   calendar.DaysBetween(req.CheckIn, req.CheckOut),
		Adults:   req.Adults,
		Children: req.Children,
		Options:  options,
	}, nil
}
