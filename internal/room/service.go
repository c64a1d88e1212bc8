package room

import (
	"context"
	"strings"
)

type CreateRequest struct {
	RoomTypeID     string
	Number         string
	Floor          int
	Status         Status
	CleaningStatus CleaningStatus
	Notes          string
}

type UpdateRequest struct {
	RoomTypeID *string
	Number     *string
	Floor      *int
	Notes      *string
}

// StatusUpdate changes the operational and/or cleaning status of a room.
type StatusUpdate struct {
	Status         *Status
	CleaningStatus *CleaningStatus
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Room, error)
	GetByID(ctx context.Context, id string) (*Room, error)
	List(ctx context.Context, filter Filter) ([]*Room, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Room, error)
	UpdateStatus(ctx context.Context, id string, req StatusUpdate) (*Room, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Room, error) {
	number := strings.TrimSpace(req.Number)
	if number == "" {
		return nil, ErrNumberRequired
	}

	status := req.Status
	if status == "" {
		status = StatusAvailable
	}
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	cleaning := req.CleaningStatus
	if cleaning == "" {
		cleaning = CleaningClean
	}
	if !cleaning.Valid() {
		return nil, ErrInvalidCleaningStatus
	}

	room := &Room{
		RoomTypeID:     req.RoomTypeID,
		Number:         number,
		Floor:          req.Floor,
		Status:         status,
		CleaningStatus: cleaning,
		Notes:          req.Notes,
	}
	if err := s.repo.Create(ctx, room); err != nil {
		return nil, err
	}

	// Reload to pick up the joined room type name.
	return s.repo.GetByID(ctx, room.ID)
}

func (s *service) GetByID(ctx context.Context, id string) (*Room, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Room, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Room, error) {
	room, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.RoomTypeID != nil {
		room.RoomTypeID = *req.RoomTypeID
	}
	if req.Number != nil {
		number := strings.TrimSpace(*req.Number)
		if number == "" {
			return nil, ErrNumberRequired
		}
		room.Number = number
	}
	if req.Floor != nil {
		room.Floor = *req.Floor
	}
	if req.Notes != nil {
		room.Notes = *req.Notes
	}

	if err := s.repo.Update(ctx, room); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) UpdateStatus(ctx context.Context, id string, req StatusUpdate) (*Room, error) {
	room, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, ErrInvalidStatus
		}
		room.Status = *req.Status
	}
	if req.CleaningStatus != nil {
		if !req.CleaningStatus.Valid() {
			return nil, ErrInvalidCleaningStatus
		}
		room.CleaningStatus = *req.CleaningStatus
	}

	if err := s.repo.Update(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
