package availability

import (
	"cmp"
	"slices"
	"time"

	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/calendar"
	"github.com/nekogravitycat/hotel-booking-backend/internal/room"
	"github.com/nekogravitycat/hotel-booking-backend/internal/roomtype"
	"github.com/shopspring/decimal"
)

// Validate checks a stay query before any data is loaded.
func (q Query) Validate() error {
	if !calendar.Day(q.CheckOut).After(calendar.Day(q.CheckIn)) {
		return ErrInvalidRange
	}
	if q.MinCapacity != nil && *q.MinCapacity <= 0 {
		return ErrInvalidCapacity
	}
	return nil
}

// Resolve returns, per room type, the bookable rooms that no active occupancy
// overlaps during [q.CheckIn, q.CheckOut). Stays that only touch at a boundary
// do not conflict. Types without a free room are left out; the rest are ordered
// by base price, then name.
func Resolve(types []*roomtype.RoomType, rooms []*room.Room, occupancies []Occupancy, q Query) ([]CategoryAvailability, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	checkIn, checkOut := calendar.Day(q.CheckIn), calendar.Day(q.CheckOut)

	busy := make(map[string]bool)
	for _, o := range occupancies {
		if released(o.Status) {
			continue
		}
		if calendar.Overlaps(o.CheckIn, o.CheckOut, checkIn, checkOut) {
			busy[o.RoomID] = true
		}
	}

	byType := make(map[string][]*room.Room)
	for _, r := range rooms {
		if r.Status.Bookable() {
			byType[r.RoomTypeID] = append(byType[r.RoomTypeID], r)
		}
	}

	var out []CategoryAvailability
	for _, rt := range types {
		if !candidate(rt, q) {
			continue
		}

		candidates := byType[rt.ID]
		free := make([]*room.Room, 0, len(candidates))
		for _, r := range candidates {
			if !busy[r.ID] {
				free = append(free, r)
			}
		}
		if len(free) == 0 {
			continue
		}
		slices.SortStableFunc(free, func(a, b *room.Room) int { return cmp.Compare(a.Number, b.Number) })

		out = append(out, CategoryAvailability{
			RoomType:       rt,
			TotalRooms:     len(candidates),
			AvailableRooms: free,
		})
	}

	slices.SortStableFunc(out, func(a, b CategoryAvailability) int {
		if c := cmp.Compare(a.RoomType.BasePrice, b.RoomType.BasePrice); c != 0 {
			return c
		}
		return cmp.Compare(a.RoomType.Name, b.RoomType.Name)
	})
	return out, nil
}

func candidate(rt *roomtype.RoomType, q Query) bool {
	if !rt.IsActive {
		return false
	}
	if q.RoomTypeID != "" && rt.ID != q.RoomTypeID {
		return false
	}
	if q.MinCapacity != nil && rt.Capacity < *q.MinCapacity {
		return false
	}
	return true
}

func released(status string) bool {
	return slices.Contains(ReleasedStatuses, status)
}

// Validate checks a calendar query before any data is loaded.
func (q DailyQuery) Validate() error {
	days := calendar.DaysBetween(q.Start, q.End)
	if days < 0 {
		return ErrInvalidRange
	}
	if days+1 > MaxCalendarDays {
		return ErrRangeTooLong
	}
	return nil
}

// BuildCalendar walks every day of the inclusive range [q.Start, q.End].
// A room is occupied on day d when an active occupancy covers the night of d,
// so its check-out day counts as free.
func BuildCalendar(rooms []*room.Room, occupancies []Occupancy, q DailyQuery) (*Calendar, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	start, end := calendar.Day(q.Start), calendar.Day(q.End)

	var scoped []*room.Room
	for _, r := range rooms {
		if q.RoomTypeID == "" || r.RoomTypeID == q.RoomTypeID {
			scoped = append(scoped, r)
		}
	}
	slices.SortStableFunc(scoped, func(a, b *room.Room) int { return cmp.Compare(a.Number, b.Number) })

	byRoom := make(map[string][]Occupancy)
	for _, o := range occupancies {
		if !released(o.Status) {
			byRoom[o.RoomID] = append(byRoom[o.RoomID], o)
		}
	}

	cal := &Calendar{Rooms: scoped, TotalRooms: len(scoped)}
	occupiedSum := 0

	for d := start; !d.After(end); d = calendar.AddDays(d, 1) {
		day := DayAvailability{
			Date:             d,
			Total:            len(scoped),
			AvailableRooms:   []*room.Room{},
			OccupiedRooms:    []OccupiedRoom{},
			MaintenanceRooms: []*room.Room{},
		}
		next := calendar.AddDays(d, 1)

		for _, r := range scoped {
			occ, occupied := occupancyOn(byRoom[r.ID], d, next)
			switch {
			case occupied:
				day.OccupiedRooms = append(day.OccupiedRooms, OccupiedRoom{Room: r, Occupancy: occ})
			case r.Status.Bookable():
				day.AvailableRooms = append(day.AvailableRooms, r)
			}
			if r.Status.OutOfService() {
				day.MaintenanceRooms = append(day.MaintenanceRooms, r)
			}
			if r.Status == room.StatusCleaning {
				day.Cleaning++
			}
		}

		day.Available = len(day.AvailableRooms)
		day.Occupied = len(day.OccupiedRooms)
		day.Maintenance = len(day.MaintenanceRooms)
		occupiedSum += day.Occupied
		cal.Days = append(cal.Days, day)
	}

	cal.AverageOccupancy = decimal.NewFromInt(int64(occupiedSum)).
		Div(decimal.NewFromInt(int64(len(cal.Days)))).
		Round(2)
	return cal, nil
}

// occupancyOn returns the earliest occupancy overlapping [dayStart, dayEnd).
func occupancyOn(occs []Occupancy, dayStart, dayEnd time.Time) (Occupancy, bool) {
	var (
		found Occupancy
		ok    bool
	)
	for _, o := range occs {
		if !calendar.Overlaps(o.CheckIn, o.CheckOut, dayStart, dayEnd) {
			continue
		}
		if !ok || o.CheckIn.Before(found.CheckIn) {
			found, ok = o, true
		}
	}
	return found, ok
}
