package roomtype

import (
	"context"
	"strings"
)

type CreateRequest struct {
	Name        string
	Description string
	Category    string
	Capacity    int
	BasePrice   int64
	Amenities   []string
	IsActive    *bool
}

type UpdateRequest struct {
	Name        *string
	Description *string
	Category    *string
	Capacity    *int
	BasePrice   *int64
	Amenities   []string
	IsActive    *bool
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*RoomType, error)
	GetByID(ctx context.Context, id string) (*RoomType, error)
	List(ctx context.Context, filter Filter) ([]*RoomType, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*RoomType, error)
	Delete(ctx context.Context, id string) error
	AddImage(ctx context.Context, id, fileID string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*RoomType, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if req.Capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	if req.BasePrice < 0 {
		return nil, ErrInvalidBasePrice
	}

	rt := &RoomType{
		Name:        name,
		Description: req.Description,
		Category:    strings.TrimSpace(req.Category),
		Capacity:    req.Capacity,
		BasePrice:   req.BasePrice,
		Amenities:   cleanAmenities(req.Amenities),
		ImageIDs:    []string{},
		IsActive:    true,
	}
	if req.IsActive != nil {
		rt.IsActive = *req.IsActive
	}

	if err := s.repo.Create(ctx, rt); err != nil {
		return nil, err
	}
	return rt, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*RoomType, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*RoomType, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*RoomType, error) {
	rt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		rt.Name = name
	}
	if req.Description != nil {
		rt.Description = *req.Description
	}
	if req.Category != nil {
		rt.Category = strings.TrimSpace(*req.Category)
	}
	if req.Capacity != nil {
		if *req.Capacity <= 0 {
			return nil, ErrInvalidCapacity
		}
		rt.Capacity = *req.Capacity
	}
	if req.BasePrice != nil {
		if *req.BasePrice < 0 {
			return nil, ErrInvalidBasePrice
		}
		rt.BasePrice = *req.BasePrice
	}
	if req.Amenities != nil {
		rt.Amenities = cleanAmenities(req.Amenities)
	}
	if req.IsActive != nil {
		rt.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, rt); err != nil {
		return nil, err
	}
	return rt, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	// Check existence
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) AddImage(ctx context.Context, id, fileID string) error {
	return s.repo.AddImage(ctx, id, fileID)
}

// cleanAmenities trims entries and drops blanks and duplicates, keeping order.
func cleanAmenities(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, a := range in {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}
		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		out = append(out, a)
	}
	return out
}
