package reservation

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nekogravitycat/hotel-booking-backend/internal/guest"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/calendar"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pricing"
	"github.com/nekogravitycat/hotel-booking-backend/internal/room"
	"github.com/nekogravitycat/hotel-booking-backend/internal/roomtype"
)

// numberAttempts bounds retries when a generated reservation number collides.
const numberAttempts = 3

// MaxNightlyRate caps an explicit nightly rate so a stay subtotal always fits in int64.
const MaxNightlyRate int64 = 1_000_000_000_000

type GuestReader interface {
	GetByID(ctx context.Context, id string) (*guest.Guest, error)
}

type RoomReader interface {
	GetByID(ctx context.Context, id string) (*room.Room, error)
}

type RoomTypeReader interface {
	GetByID(ctx context.Context, id string) (*roomtype.RoomType, error)
}

type Pricer interface {
	QuoteFor(ctx context.Context, rt *roomtype.RoomType, start, end time.Time) (*pricing.Quote, error)
}

// RoomRequest assigns a room. Without a NightlyRate the stay is priced by the rule engine.
type RoomRequest struct {
	RoomID      string
	NightlyRate *int64
}

type CreateRequest struct {
	GuestID         string
	CheckIn         time.Time
	CheckOut        time.Time
	Adults          int
	Children        int
	Rooms           []RoomRequest
	SpecialRequests string
	Notes           string
	CreatedBy       string
}

type PaymentRequest struct {
	Amount     int64
	Method     PaymentMethod
	Reference  string
	Notes      string
	ReceivedBy string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Reservation, error)
	GetByID(ctx context.Context, id string) (*Reservation, error)
	List(ctx context.Context, filter Filter) ([]*Reservation, int, error)
	UpdateStatus(ctx context.Context, id string, to Status) (*Reservation, error)
	AddPayment(ctx context.Context, id string, req PaymentRequest) (*Reservation, *Payment, error)
}

type service struct {
	repo      Repository
	guests    GuestReader
	rooms     RoomReader
	roomTypes RoomTypeReader
	pricer    Pricer
	now       func() time.Time
}

func NewService(repo Repository, guests GuestReader, rooms RoomReader, roomTypes RoomTypeReader, pricer Pricer) Service {
	return &service{
		repo:      repo,
		guests:    guests,
		rooms:     rooms,
		roomTypes: roomTypes,
		pricer:    pricer,
		now:       time.Now,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Reservation, error) {
	checkIn, checkOut := calendar.Day(req.CheckIn), calendar.Day(req.CheckOut)
	if !checkOut.After(checkIn) {
		return nil, ErrInvalidRange
	}
	nights := calendar.DaysBetween(checkIn, checkOut)
	if nights > calendar.MaxStayNights {
		return nil, calendar.ErrStayTooLong
	}
	guestID := strings.TrimSpace(req.GuestID)
	if guestID == "" {
		return nil, ErrGuestRequired
	}
	if req.Adults < 1 || req.Children < 0 {
		return nil, ErrInvalidGuests
	}
	if len(req.Rooms) == 0 {
		return nil, ErrNoRooms
	}

	g, err := s.lookupGuest(ctx, guestID)
	if err != nil {
		return nil, err
	}

	res := &Reservation{
		GuestID:         g.ID,
		GuestName:       g.FullName(),
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		Adults:          req.Adults,
		Children:        req.Children,
		Status:          StatusPending,
		SpecialRequests: req.SpecialRequests,
		Notes:           req.Notes,
		CreatedBy:       req.CreatedBy,
		Rooms:           make([]ReservationRoom, 0, len(req.Rooms)),
	}

	seen := make(map[string]bool, len(req.Rooms))
	capacity := 0
	for _, rr := range req.Rooms {
		if seen[rr.RoomID] {
			return nil, ErrDuplicateRoom
		}
		seen[rr.RoomID] = true

		line, roomCapacity, err := s.priceRoom(ctx, rr, checkIn, checkOut, nights)
		if err != nil {
			return nil, err
		}
		capacity += roomCapacity
		res.Rooms = append(res.Rooms, line)
		res.TotalAmount += line.Subtotal
	}
	if req.Adults+req.Children > capacity {
		return nil, ErrCapacityExceeded
	}

	for range numberAttempts {
		res.Number = s.newNumber()
		if err = s.repo.Create(ctx, res); !errors.Is(err, errNumberTaken) {
			break
		}
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *service) lookupGuest(ctx context.Context, id string) (*guest.Guest, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrGuestNotFound
	}
	g, err := s.guests.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, guest.ErrNotFound) {
			return nil, ErrGuestNotFound
		}
		return nil, err
	}
	return g, nil
}

// priceRoom locks in the rate of one room. An explicit nightly rate is charged for
// every night; otherwise the quote total becomes the subtotal and its average the rate.
func (s *service) priceRoom(ctx context.Context, req RoomRequest, checkIn, checkOut time.Time, nights int) (ReservationRoom, int, error) {
	rm, err := s.rooms.GetByID(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, room.ErrNotFound) {
			return ReservationRoom{}, 0, ErrRoomNotFound
		}
		return ReservationRoom{}, 0, err
	}
	if !rm.Status.Bookable() {
		return ReservationRoom{}, 0, ErrRoomUnavailable
	}

	rt, err := s.roomTypes.GetByID(ctx, rm.RoomTypeID)
	if err != nil {
		return ReservationRoom{}, 0, err
	}

	line := ReservationRoom{
		RoomID:       rm.ID,
		RoomNumber:   rm.Number,
		RoomTypeID:   rt.ID,
		RoomTypeName: rt.Name,
		Nights:       nights,
	}

	if req.NightlyRate != nil {
		if *req.NightlyRate < 0 || *req.NightlyRate > MaxNightlyRate {
			return ReservationRoom{}, 0, ErrInvalidRate
		}
		line.NightlyRate = *req.NightlyRate
		line.Subtotal = *req.NightlyRate * int64(nights)
		return line, rt.Capacity, nil
	}

	q, err := s.pricer.QuoteFor(ctx, rt, checkIn, checkOut)
	if err != nil {
		return ReservationRoom{}, 0, err
	}
	line.NightlyRate = q.AveragePricePerNight
	line.Subtotal = q.TotalFinal
	return line, rt.Capacity, nil
}

// newNumber builds RES-<last 8 digits of the unix millis>-<3 random digits>.
func (s *service) newNumber() string {
	id := uuid.New()
	random := binary.BigEndian.Uint16(id[:2]) % 1000
	millis := s.now().UnixMilli() % 100_000_000
	return fmt.Sprintf("RES-%08d-%03d", millis, random)
}

func (s *service) GetByID(ctx context.Context, id string) (*Reservation, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Reservation, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) UpdateStatus(ctx context.Context, id string, to Status) (*Reservation, error) {
	if !to.Valid() {
		return nil, ErrInvalidStatus
	}

	res, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !res.Status.CanTransition(to) {
		return nil, ErrInvalidTransition
	}

	var rooms *RoomStatusChange
	switch to {
	case StatusCheckedIn:
		rooms = &RoomStatusChange{Status: room.StatusOccupied}
	case StatusCheckedOut:
		if !res.IsPaidInFull() {
			return nil, ErrOutstandingBalance
		}
		dirty := room.CleaningDirty
		rooms = &RoomStatusChange{Status: room.StatusCleaning, CleaningStatus: &dirty}
	}

	if err := s.repo.Transition(ctx, id, res.Status, to, rooms); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) AddPayment(ctx context.Context, id string, req PaymentRequest) (*Reservation, *Payment, error) {
	if req.Amount <= 0 {
		return nil, nil, ErrInvalidPaymentAmount
	}
	if !req.Method.Valid() {
		return nil, nil, ErrInvalidPaymentMethod
	}

	p := &Payment{
		ReservationID: id,
		Amount:        req.Amount,
		Method:        req.Method,
		Reference:     strings.TrimSpace(req.Reference),
		Notes:         req.Notes,
		ReceivedBy:    req.ReceivedBy,
	}
	res, err := s.repo.AddPayment(ctx, p)
	if err != nil {
		return nil, nil, err
	}
	return res, p, nil
}
