package pricerule

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/calendar"
	"github.com/nekogravitycat/hotel-booking-backend/internal/roomtype"
	"github.com/shopspring/decimal"
)

// RoomTypeReader is the lookup a rule needs to verify its room type.
type RoomTypeReader interface {
	GetByID(ctx context.Context, id string) (*roomtype.RoomType, error)
}

type CreateRequest struct {
	RoomTypeID        string
	Name              string
	Multiplier        decimal.Decimal
	Priority          int
	IsActive          *bool
	StartDate         time.Time
	EndDate           time.Time
	IsRecurring       bool
	RecurrenceType    RecurrenceType
	DaysOfWeek        []int
	RecurrenceEndDate *time.Time
}

type UpdateRequest struct {
	Name              *string
	Multiplier        *decimal.Decimal
	Priority          *int
	IsActive          *bool
	StartDate         *time.Time
	EndDate           *time.Time
	IsRecurring       *bool
	RecurrenceType    *RecurrenceType
	DaysOfWeek        []int
	RecurrenceEndDate *time.Time
	// ClearRecurrenceEnd removes the recurrence end date.
	ClearRecurrenceEnd bool
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*PriceRule, error)
	GetByID(ctx context.Context, id string) (*PriceRule, error)
	List(ctx context.Context, filter Filter) ([]*PriceRule, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*PriceRule, error)
	Delete(ctx context.Context, id string) error
	ListActiveByRoomType(ctx context.Context, roomTypeID string) ([]*PriceRule, error)
}

type service struct {
	repo      Repository
	roomTypes RoomTypeReader
}

func NewService(repo Repository, roomTypes RoomTypeReader) Service {
	return &service{repo: repo, roomTypes: roomTypes}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*PriceRule, error) {
	rule := &PriceRule{
		RoomTypeID:        req.RoomTypeID,
		Name:              strings.TrimSpace(req.Name),
		Multiplier:        req.Multiplier,
		Priority:          req.Priority,
		IsActive:          true,
		StartDate:         calendar.Day(req.StartDate),
		EndDate:           calendar.Day(req.EndDate),
		IsRecurring:       req.IsRecurring,
		RecurrenceType:    req.RecurrenceType,
		DaysOfWeek:        normalizeDays(req.DaysOfWeek),
		RecurrenceEndDate: dayPtr(req.RecurrenceEndDate),
	}
	if req.IsActive != nil {
		rule.IsActive = *req.IsActive
	}
	// A recurring rule only needs its anchor date.
	if rule.IsRecurring && req.EndDate.IsZero() {
		rule.EndDate = rule.StartDate
	}
	clearRecurrence(rule)

	if err := rule.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkRoomType(ctx, rule.RoomTypeID); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, rule); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, rule.ID)
}

func (s *service) GetByID(ctx context.Context, id string) (*PriceRule, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*PriceRule, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) ListActiveByRoomType(ctx context.Context, roomTypeID string) ([]*PriceRule, error) {
	return s.repo.ListActiveByRoomType(ctx, roomTypeID)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*PriceRule, error) {
	rule, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		rule.Name = strings.TrimSpace(*req.Name)
	}
	if req.Multiplier != nil {
		rule.Multiplier = *req.Multiplier
	}
	if req.Priority != nil {
		rule.Priority = *req.Priority
	}
	if req.IsActive != nil {
		rule.IsActive = *req.IsActive
	}
	if req.StartDate != nil {
		rule.StartDate = calendar.Day(*req.StartDate)
	}
	if req.EndDate != nil {
		rule.EndDate = calendar.Day(*req.EndDate)
	}
	if req.IsRecurring != nil {
		rule.IsRecurring = *req.IsRecurring
	}
	if req.RecurrenceType != nil {
		rule.RecurrenceType = *req.RecurrenceType
	}
	if req.DaysOfWeek != nil {
		rule.DaysOfWeek = normalizeDays(req.DaysOfWeek)
	}
	if req.ClearRecurrenceEnd {
		rule.RecurrenceEndDate = nil
	} else if req.RecurrenceEndDate != nil {
		rule.RecurrenceEndDate = dayPtr(req.RecurrenceEndDate)
	}
	clearRecurrence(rule)

	if err := rule.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, rule); err != nil {
		return nil, err
	}
	return rule, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) checkRoomType(ctx context.Context, id string) error {
	if _, err := s.roomTypes.GetByID(ctx, id); err != nil {
		if errors.Is(err, roomtype.ErrNotFound) {
			return ErrRoomTypeNotFound
		}
		return err
	}
	return nil
}

// clearRecurrence drops recurrence fields from bounded rules so they are stored consistently.
func clearRecurrence(r *PriceRule) {
	if r.IsRecurring {
		return
	}
	r.RecurrenceType = ""
	r.DaysOfWeek = []int{}
	r.RecurrenceEndDate = nil
}

// normalizeDays sorts and dedupes weekday indices. Out of range values are kept for Validate to reject.
func normalizeDays(days []int) []int {
	out := slices.Clone(days)
	if out == nil {
		return []int{}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

func dayPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := calendar.Day(*t)
	return &d
}
