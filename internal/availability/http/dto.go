package http

import (
	"github.com/nekogravitycat/hotel-booking-backend/internal/availability"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/calendar"
	"github.com/nekogravitycat/hotel-booking-backend/internal/room"
)

type CalendarRequest struct {
	Start      string `form:"start" binding:"required"`
	End        string `form:"end" binding:"required"`
	RoomTypeID string `form:"room_type_id" binding:"omitempty,uuid"`
}

type RoomSummary struct {
	ID           string `json:"id"`
	Number       string `json:"number"`
	Floor        int    `json:"floor"`
	RoomTypeID   string `json:"room_type_id"`
	RoomTypeName string `json:"room_type_name"`
	Status       string `json:"status"`
}

type ReservationSummary struct {
	ID       string `json:"id"`
	Number   string `json:"number"`
	GuestID  string `json:"guest_id"`
	CheckIn  string `json:"check_in"`
	CheckOut string `json:"check_out"`
	Adults   int    `json:"adults"`
	Children int    `json:"children"`
	Status   string `json:"status"`
}

type OccupiedRoomResponse struct {
	RoomSummary
	Reservation ReservationSummary `json:"reservation"`
}

type DayResponse struct {
	Date             string                 `json:"date"`
	Total            int                    `json:"total"`
	Available        int                    `json:"available"`
	Occupied         int                    `json:"occupied"`
	Maintenance      int                    `json:"maintenance"`
	Cleaning         int                    `json:"cleaning"`
	AvailableRooms   []RoomSummary          `json:"available_rooms"`
	OccupiedRooms    []OccupiedRoomResponse `json:"occupied_rooms"`
	MaintenanceRooms []RoomSummary          `json:"maintenance_rooms"`
}

type SummaryResponse struct {
	TotalRooms       int     `json:"total_rooms"`
	AverageOccupancy float64 `json:"average_occupancy"`
}

type CalendarResponse struct {
	Rooms        []RoomSummary   `json:"rooms"`
	Availability []DayResponse   `json:"availability"`
	Summary      SummaryResponse `json:"summary"`
}

func NewRoomSummary(r *room.Room) RoomSummary {
	return RoomSummary{
		ID:           r.ID,
		Number:       r.Number,
		Floor:        r.Floor,
		RoomTypeID:   r.RoomTypeID,
		RoomTypeName: r.RoomTypeName,
		Status:       string(r.Status),
	}
}

func roomSummaries(rooms []*room.Room) []RoomSummary {
	out := make([]RoomSummary, len(rooms))
	for i, r := range rooms {
		out[i] = NewRoomSummary(r)
	}
	return out
}

func NewCalendarResponse(cal *availability.Calendar) CalendarResponse {
	days := make([]DayResponse, len(cal.Days))
	for i, d := range cal.Days {
		occupied := make([]OccupiedRoomResponse, len(d.OccupiedRooms))
		for j, o := range d.OccupiedRooms {
			occupied[j] = OccupiedRoomResponse{
				RoomSummary: NewRoomSummary(o.Room),
				Reservation: ReservationSummary{
					ID:       o.Occupancy.ReservationID,
					Number:   o.Occupancy.ReservationNumber,
					GuestID:  o.Occupancy.GuestID,
					CheckIn:  calendar.Format(o.Occupancy.CheckIn),
					CheckOut: calendar.Format(o.Occupancy.CheckOut),
					Adults:   o.Occupancy.Adults,
					Children: o.Occupancy.Children,
					Status:   o.Occupancy.Status,
				},
			}
		}
		days[i] = DayResponse{
			Date:             calendar.Format(d.Date),
			Total:            d.Total,
			Available:        d.Available,
			Occupied:         d.Occupied,
			Maintenance:      d.Maintenance,
			Cleaning:         d.Cleaning,
			AvailableRooms:   roomSummaries(d.AvailableRooms),
			OccupiedRooms:    occupied,
			MaintenanceRooms: roomSummaries(d.MaintenanceRooms),
		}
	}

	return CalendarResponse{
		Rooms:        roomSummaries(cal.Rooms),
		Availability: days,
		Summary: SummaryResponse{
			TotalRooms:       cal.TotalRooms,
			AverageOccupancy: cal.AverageOccupancy.InexactFloat64(),
		},
	}
}
