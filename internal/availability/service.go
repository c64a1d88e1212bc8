package availability

import (
	"context"

	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/calendar"
	"github.com/nekogravitycat/hotel-booking-backend/internal/room"
	"github.com/nekogravitycat/hotel-booking-backend/internal/roomtype"
)

type RoomTypeLister interface {
	List(ctx context.Context, filter roomtype.Filter) ([]*roomtype.RoomType, int, error)
}

type RoomLister interface {
	List(ctx context.Context, filter room.Filter) ([]*room.Room, int, error)
}

type Service interface {
	// FindAvailable lists the rooms free for the whole stay, grouped by room type.
	FindAvailable(ctx context.Context, q Query) ([]CategoryAvailability, error)
	// Daily builds the per-day inventory calendar of an inclusive date range.
	Daily(ctx context.Context, q DailyQuery) (*Calendar, error)
}

type service struct {
	roomTypes   RoomTypeLister
	rooms       RoomLister
	occupancies OccupancyReader
}

func NewService(roomTypes RoomTypeLister, rooms RoomLister, occupancies OccupancyReader) Service {
	return &service{
		roomTypes:   roomTypes,
		rooms:       rooms,
		occupancies: occupancies,
	}
}

func (s *service) FindAvailable(ctx context.Context, q Query) ([]CategoryAvailability, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	filter := roomtype.Filter{ActiveOnly: true}
	if q.RoomTypeID != "" {
		filter.IDs = []string{q.RoomTypeID}
	}
	if q.MinCapacity != nil {
		filter.MinCapacity = *q.MinCapacity
	}
	types, _, err := s.roomTypes.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(types) == 0 {
		return []CategoryAvailability{}, nil
	}

	typeIDs := make([]string, len(types))
	for i, rt := range types {
		typeIDs[i] = rt.ID
	}
	rooms, _, err := s.rooms.List(ctx, room.Filter{
		RoomTypeIDs: typeIDs,
		Statuses:    []room.Status{room.StatusAvailable, room.StatusCleaning},
	})
	if err != nil {
		return nil, err
	}

	occupancies, err := s.occupancies.ListOccupancies(ctx, roomIDs(rooms), calendar.Day(q.CheckIn), calendar.Day(q.CheckOut))
	if err != nil {
		return nil, err
	}

	return Resolve(types, rooms, occupancies, q)
}

func (s *service) Daily(ctx context.Context, q DailyQuery) (*Calendar, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	filter := room.Filter{}
	if q.RoomTypeID != "" {
		filter.RoomTypeIDs = []string{q.RoomTypeID}
	}
	rooms, _, err := s.rooms.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	start := calendar.Day(q.Start)
	end := calendar.AddDays(calendar.Day(q.End), 1)
	occupancies, err := s.occupancies.ListOccupancies(ctx, roomIDs(rooms), start, end)
	if err != nil {
		return nil, err
	}

	return BuildCalendar(rooms, occupancies, q)
}

func roomIDs(rooms []*room.Room) []string {
	ids := make([]string, len(rooms))
	for i, r := range rooms {
		ids[i] = r.ID
	}
	return ids
}
