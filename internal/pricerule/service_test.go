package pricerule

import (
	"context"
	"fmt"
	"testing"

	"github.com/nekogravitycat/hotel-booking-backend/internal/roomtype"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct {
	rules map[string]*PriceRule
	seq   int
}

func newMemRepo() *memRepo {
	return &memRepo{rules: map[string]*PriceRule{}}
}

func (m *memRepo) Create(_ context.Context, r *PriceRule) error {
	m.seq++
	r.ID = fmt.Sprintf("rule-%d", m.seq)
	cp := *r
	m.rules[r.ID] = &cp
	return nil
}

func (m *memRepo) GetByID(_ context.Context, id string) (*PriceRule, error) {
	r, ok := m.rules[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *memRepo) List(_ context.Context, _ Filter) ([]*PriceRule, int, error) {
	out := make([]*PriceRule, 0, len(m.rules))
	for _, r := range m.rules {
		out = append(out, r)
	}
	return out, len(out), nil
}

func (m *memRepo) Update(_ context.Context, r *PriceRule) error {
	if _, ok := m.rules[r.ID]; !ok {
		return ErrNotFound
	}
	cp := *r
	m.rules[r.ID] = &cp
	return nil
}

func (m *memRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.rules[id]; !ok {
		return ErrNotFound
	}
	delete(m.rules, id)
	return nil
}

func (m *memRepo) ListActiveByRoomType(_ context.Context, roomTypeID string) ([]*PriceRule, error) {
	var out []*PriceRule
	for _, r := range m.rules {
		if r.RoomTypeID == roomTypeID && r.IsActive {
			out = append(out, r)
		}
	}
	return out, nil
}

type roomTypes map[string]*roomtype.RoomType

func (rt roomTypes) GetByID(_ context.Context, id string) (*roomtype.RoomType, error) {
	if t, ok := rt[id]; ok {
		return t, nil
	}
	return nil, roomtype.ErrNotFound
}

func newTestService() (Service, *memRepo) {
	repo := newMemRepo()
	return NewService(repo, roomTypes{"rt-1": {ID: "rt-1", Name: "Deluxe"}}), repo
}

func TestCreateRule(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	rule, err := svc.Create(ctx, CreateRequest{
		RoomTypeID:     "rt-1",
		Name:           "  Weekend  ",
		Multiplier:     decimal.RequireFromString("1.2"),
		Priority:       10,
		StartDate:      day("2024-01-01"),
		IsRecurring:    true,
		RecurrenceType: RecurrenceCustom,
		DaysOfWeek:     []int{6, 5, 6},
	})
	require.NoError(t, err)
	assert.Equal(t, "Weekend", rule.Name)
	assert.True(t, rule.IsActive)
	assert.Equal(t, []int{5, 6}, rule.DaysOfWeek)
	assert.Equal(t, rule.StartDate, rule.EndDate)
}

func TestCreateBoundedDropsRecurrenceFields(t *testing.T) {
	svc, _ := newTestService()

	rule, err := svc.Create(context.Background(), CreateRequest{
		RoomTypeID:        "rt-1",
		Name:              "Holidays",
		Multiplier:        decimal.RequireFromString("1.5"),
		StartDate:         day("2024-12-20"),
		EndDate:           day("2024-12-31"),
		RecurrenceType:    RecurrenceMonthly,
		DaysOfWeek:        []int{1},
		RecurrenceEndDate: dayRef("2025-01-31"),
	})
	require.NoError(t, err)
	assert.Empty(t, rule.RecurrenceType)
	assert.Empty(t, rule.DaysOfWeek)
	assert.Nil(t, rule.RecurrenceEndDate)
}

func TestCreateRuleErrors(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	base := CreateRequest{
		RoomTypeID: "rt-1",
		Name:       "Low season",
		Multiplier: decimal.RequireFromString("0.8"),
		StartDate:  day("2024-02-01"),
		EndDate:    day("2024-02-28"),
	}

	req := base
	req.RoomTypeID = "rt-missing"
	_, err := svc.Create(ctx, req)
	assert.ErrorIs(t, err, ErrRoomTypeNotFound)

	req = base
	req.Multiplier = decimal.Zero
	_, err = svc.Create(ctx, req)
	assert.ErrorIs(t, err, ErrInvalidMultiplier)

	req = base
	req.EndDate = day("2024-01-31")
	_, err = svc.Create(ctx, req)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestUpdateRule(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	rule, err := svc.Create(ctx, CreateRequest{
		RoomTypeID:        "rt-1",
		Name:              "Summer",
		Multiplier:        decimal.RequireFromString("1.3"),
		StartDate:         day("2024-06-01"),
		IsRecurring:       true,
		RecurrenceType:    RecurrenceWeekly,
		RecurrenceEndDate: dayRef("2024-08-31"),
	})
	require.NoError(t, err)

	inactive := false
	m := decimal.RequireFromString("1.25")
	updated, err := svc.Update(ctx, rule.ID, UpdateRequest{
		Multiplier:         &m,
		IsActive:           &inactive,
		ClearRecurrenceEnd: true,
	})
	require.NoError(t, err)
	assert.True(t, updated.Multiplier.Equal(m))
	assert.False(t, updated.IsActive)
	assert.Nil(t, updated.RecurrenceEndDate)

	bad := decimal.NewFromInt(-2)
	_, err = svc.Update(ctx, rule.ID, UpdateRequest{Multiplier: &bad})
	assert.ErrorIs(t, err, ErrInvalidMultiplier)

	_, err = svc.Update(ctx, "missing", UpdateRequest{})
	assert.ErrorIs(t, err, ErrNotFound)
}
