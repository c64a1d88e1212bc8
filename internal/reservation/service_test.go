package reservation

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/hotel-booking-backend/internal/guest"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/calendar"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pricing"
	"github.com/nekogravitycat/hotel-booking-backend/internal/room"
	"github.com/nekogravitycat/hotel-booking-backend/internal/roomtype"
)

type memRepo struct {
	reservations map[string]*Reservation
	// taken makes the first n Create calls fail with a number collision.
	taken       int
	numbers     []string
	transitions []RoomStatusChange
	seq         int
}

func newMemRepo() *memRepo {
	return &memRepo{reservations: map[string]*Reservation{}}
}

func (m *memRepo) Create(_ context.Context, res *Reservation) error {
	m.numbers = append(m.numbers, res.Number)
	if m.taken > 0 {
		m.taken--
		return errNumberTaken
	}
	m.seq++
	res.ID = fmt.Sprintf("res-%d", m.seq)
	cp := *res
	m.reservations[res.ID] = &cp
	return nil
}

func (m *memRepo) GetByID(_ context.Context, id string) (*Reservation, error) {
	res, ok := m.reservations[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *res
	return &cp, nil
}

func (m *memRepo) List(_ context.Context, _ Filter) ([]*Reservation, int, error) {
	out := make([]*Reservation, 0, len(m.reservations))
	for _, res := range m.reservations {
		out = append(out, res)
	}
	return out, len(out), nil
}

func (m *memRepo) Transition(_ context.Context, id string, from, to Status, rooms *RoomStatusChange) error {
	res, ok := m.reservations[id]
	if !ok {
		return ErrNotFound
	}
	if res.Status != from {
		return ErrInvalidTransition
	}
	res.Status = to
	if rooms != nil {
		m.transitions = append(m.transitions, *rooms)
	}
	return nil
}

func (m *memRepo) AddPayment(_ context.Context, p *Payment) (*Reservation, error) {
	res, ok := m.reservations[p.ReservationID]
	if !ok {
		return nil, ErrNotFound
	}
	if err := res.ApplyPayment(p.Amount); err != nil {
		return nil, err
	}
	p.ID = fmt.Sprintf("pay-%d", len(res.Payments)+1)
	res.Payments = append(res.Payments, *p)
	cp := *res
	return &cp, nil
}

const guestID = "8f14e45f-ceea-4e67-a8a5-7d4c1e0b2a11"

type guestReader map[string]*guest.Guest

func (g guestReader) GetByID(_ context.Context, id string) (*guest.Guest, error) {
	found, ok := g[id]
	if !ok {
		return nil, guest.ErrNotFound
	}
	return found, nil
}

type roomReader map[string]*room.Room

func (i roomReader) GetByID(_ context.Context, id string) (*room.Room, error) {
	r, ok := i[id]
	if !ok {
		return nil, room.ErrNotFound
	}
	return r, nil
}

type roomTypeReader map[string]*roomtype.RoomType

func (r roomTypeReader) GetByID(_ context.Context, id string) (*roomtype.RoomType, error) {
	rt, ok := r[id]
	if !ok {
		return nil, roomtype.ErrNotFound
	}
	return rt, nil
}

// enginePricer prices stays with the real engine and no rules.
type enginePricer struct{}

func (enginePricer) QuoteFor(_ context.Context, rt *roomtype.RoomType, start, end time.Time) (*pricing.Quote, error) {
	return pricing.Calculate(rt, nil, start, end)
}

func date(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

func newTestService(repo *memRepo) Service {
	types := roomTypeReader{
		"rt-std":   {ID: "rt-std", Name: "Standard", Capacity: 2, BasePrice: 80000},
		"rt-suite": {ID: "rt-suite", Name: "Suite", Capacity: 4, BasePrice: 150000},
	}
	rooms := roomReader{
		"101": {ID: "101", Number: "101", RoomTypeID: "rt-std", Status: room.StatusAvailable},
		"102": {ID: "102", Number: "102", RoomTypeID: "rt-std", Status: room.StatusCleaning},
		"201": {ID: "201", Number: "201", RoomTypeID: "rt-suite", Status: room.StatusAvailable},
		"301": {ID: "301", Number: "301", RoomTypeID: "rt-std", Status: room.StatusMaintenance},
	}
	guests := guestReader{
		guestID: {ID: guestID, FirstName: "Ana", LastName: "Ruiz", Phone: "600"},
	}
	svc := NewService(repo, guests, rooms, types, enginePricer{}).(*service)
	svc.now = func() time.Time { return time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

func validRequest() CreateRequest {
	return CreateRequest{
		GuestID:  guestID,
		CheckIn:  date("2024-07-10"),
		CheckOut: date("2024-07-13"),
		Adults:   2,
		Rooms:    []RoomRequest{{RoomID: "101"}},
	}
}

func int64Ptr(v int64) *int64 { return &v }

func TestCreatePricesRooms(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)

	req := validRequest()
	req.Adults, req.Children = 3, 1
	req.Rooms = []RoomRequest{{RoomID: "101"}, {RoomID: "201", NightlyRate: int64Ptr(120000)}}

	res, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	assert.NotEmpty(t, res.ID)
	assert.Equal(t, StatusPending, res.Status)
	assert.Equal(t, "Ana Ruiz", res.GuestName)
	assert.Regexp(t, `^RES-\d{8}-\d{3}$`, res.Number)
	require.Len(t, res.Rooms, 2)

	assert.Equal(t, int64(80000), res.Rooms[0].NightlyRate)
	assert.Equal(t, int64(240000), res.Rooms[0].Subtotal)
	assert.Equal(t, 3, res.Rooms[0].Nights)
	assert.Equal(t, "Standard", res.Rooms[0].RoomTypeName)

	assert.Equal(t, int64(120000), res.Rooms[1].NightlyRate)
	assert.Equal(t, int64(360000), res.Rooms[1].Subtotal)

	assert.Equal(t, int64(600000), res.TotalAmount)
	assert.Equal(t, int64(600000), res.PendingAmount())
}

func TestCreateValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*CreateRequest)
		wantErr error
	}{
		{"same day", func(r *CreateRequest) { r.CheckOut = r.CheckIn }, ErrInvalidRange},
		{"reversed", func(r *CreateRequest) { r.CheckOut = date("2024-07-01") }, ErrInvalidRange},
		{"no guest", func(r *CreateRequest) { r.GuestID = "  " }, ErrGuestRequired},
		{"malformed guest", func(r *CreateRequest) { r.GuestID = "guest-1" }, ErrGuestNotFound},
		{"unknown guest", func(r *CreateRequest) { r.GuestID = "00000000-0000-4000-8000-000000000000" }, ErrGuestNotFound},
		{"stay too long", func(r *CreateRequest) { r.CheckOut = calendar.AddDays(r.CheckIn, calendar.MaxStayNights+1) }, calendar.ErrStayTooLong},
		{"no adults", func(r *CreateRequest) { r.Adults = 0 }, ErrInvalidGuests},
		{"negative children", func(r *CreateRequest) { r.Children = -1 }, ErrInvalidGuests},
		{"no rooms", func(r *CreateRequest) { r.Rooms = nil }, ErrNoRooms},
		{"duplicate room", func(r *CreateRequest) {
			r.Rooms = []RoomRequest{{RoomID: "101"}, {RoomID: "101"}}
		}, ErrDuplicateRoom},
		{"unknown room", func(r *CreateRequest) { r.Rooms = []RoomRequest{{RoomID: "999"}} }, ErrRoomNotFound},
		{"out of service room", func(r *CreateRequest) { r.Rooms = []RoomRequest{{RoomID: "301"}} }, ErrRoomUnavailable},
		{"negative rate", func(r *CreateRequest) {
			r.Rooms = []RoomRequest{{RoomID: "101", NightlyRate: int64Ptr(-1)}}
		}, ErrInvalidRate},
		{"rate overflows subtotal", func(r *CreateRequest) {
			r.Rooms = []RoomRequest{{RoomID: "101", NightlyRate: int64Ptr(1 << 62)}}
		}, ErrInvalidRate},
		{"over capacity", func(r *CreateRequest) { r.Adults, r.Children = 2, 1 }, ErrCapacityExceeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMemRepo()
			req := validRequest()
			tt.mutate(&req)

			_, err := newTestService(repo).Create(context.Background(), req)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, repo.reservations)
		})
	}
}

func TestCreateLongestStay(t *testing.T) {
	req := validRequest()
	req.CheckOut = calendar.AddDays(req.CheckIn, calendar.MaxStayNights)
	req.Rooms = []RoomRequest{{RoomID: "101", NightlyRate: int64Ptr(MaxNightlyRate)}}

	res, err := newTestService(newMemRepo()).Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, calendar.MaxStayNights, res.Rooms[0].Nights)
	assert.Equal(t, MaxNightlyRate*int64(calendar.MaxStayNights), res.TotalAmount)
}

func TestCreateCleaningRoomIsBookable(t *testing.T) {
	req := validRequest()
	req.Rooms = []RoomRequest{{RoomID: "102"}}

	res, err := newTestService(newMemRepo()).Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "102", res.Rooms[0].RoomNumber)
}

func TestCreateRetriesNumberCollision(t *testing.T) {
	repo := newMemRepo()
	repo.taken = 2

	res, err := newTestService(repo).Create(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Len(t, repo.numbers, 3)
	assert.Equal(t, repo.numbers[2], res.Number)
}

func TestCreateGivesUpAfterCollisions(t *testing.T) {
	repo := newMemRepo()
	repo.taken = numberAttempts

	_, err := newTestService(repo).Create(context.Background(), validRequest())
	require.ErrorIs(t, err, errNumberTaken)
	assert.Len(t, repo.numbers, numberAttempts)
}

func TestUpdateStatusLifecycle(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	res, err := svc.Create(ctx, validRequest())
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, res.ID, StatusCheckedIn)
	require.ErrorIs(t, err, ErrInvalidTransition)

	res, err = svc.UpdateStatus(ctx, res.ID, StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, res.Status)
	assert.Empty(t, repo.transitions)

	res, err = svc.UpdateStatus(ctx, res.ID, StatusCheckedIn)
	require.NoError(t, err)
	require.Len(t, repo.transitions, 1)
	assert.Equal(t, room.StatusOccupied, repo.transitions[0].Status)
	assert.Nil(t, repo.transitions[0].CleaningStatus)

	_, err = svc.UpdateStatus(ctx, res.ID, StatusCheckedOut)
	require.ErrorIs(t, err, ErrOutstandingBalance)

	_, _, err = svc.AddPayment(ctx, res.ID, PaymentRequest{Amount: res.TotalAmount, Method: PaymentCard})
	require.NoError(t, err)

	res, err = svc.UpdateStatus(ctx, res.ID, StatusCheckedOut)
	require.NoError(t, err)
	assert.Equal(t, StatusCheckedOut, res.Status)
	require.Len(t, repo.transitions, 2)
	assert.Equal(t, room.StatusCleaning, repo.transitions[1].Status)
	require.NotNil(t, repo.transitions[1].CleaningStatus)
	assert.Equal(t, room.CleaningDirty, *repo.transitions[1].CleaningStatus)
}

func TestUpdateStatusInvalid(t *testing.T) {
	svc := newTestService(newMemRepo())

	_, err := svc.UpdateStatus(context.Background(), "res-1", Status("archived"))
	require.ErrorIs(t, err, ErrInvalidStatus)

	_, err = svc.UpdateStatus(context.Background(), "missing", StatusConfirmed)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestAddPayment(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	res, err := svc.Create(ctx, validRequest())
	require.NoError(t, err)
	require.Equal(t, int64(240000), res.TotalAmount)

	_, _, err = svc.AddPayment(ctx, res.ID, PaymentRequest{Amount: 0, Method: PaymentCash})
	require.ErrorIs(t, err, ErrInvalidPaymentAmount)

	_, _, err = svc.AddPayment(ctx, res.ID, PaymentRequest{Amount: 100, Method: "cheque"})
	require.ErrorIs(t, err, ErrInvalidPaymentMethod)

	updated, p, err := svc.AddPayment(ctx, res.ID, PaymentRequest{Amount: 100000, Method: PaymentCash, Reference: " R-1 "})
	require.NoError(t, err)
	assert.Equal(t, "R-1", p.Reference)
	assert.Equal(t, int64(100000), updated.PaidAmount)
	assert.Equal(t, int64(140000), updated.PendingAmount())

	_, _, err = svc.AddPayment(ctx, res.ID, PaymentRequest{Amount: 140001, Method: PaymentCash})
	require.ErrorIs(t, err, ErrPaymentExceedsBalance)

	updated, _, err = svc.AddPayment(ctx, res.ID, PaymentRequest{Amount: 140000, Method: PaymentTransfer})
	require.NoError(t, err)
	assert.True(t, updated.IsPaidInFull())
	assert.Len(t, updated.Payments, 2)
}
