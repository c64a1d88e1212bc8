package guest

import (
	"context"
	"strings"
	"time"
)

type CreateRequest struct {
	FirstName            string
	LastName             string
	Email                string
	Phone                string
	IdentificationType   string
	IdentificationNumber string
	Country              string
	City                 string
	Address              string
	BirthDate            *time.Time
	Notes                string
	IsVIP                bool
}

// UpdateRequest changes the fields that are set. An empty Email clears it.
type UpdateRequest struct {
	FirstName            *string
	LastName             *string
	Email                *string
	Phone                *string
	IdentificationType   *string
	IdentificationNumber *string
	Country              *string
	City                 *string
	Address              *string
	BirthDate            *time.Time
	Notes                *string
	IsVIP                *bool
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Guest, error)
	GetByID(ctx context.Context, id string) (*Guest, error)
	List(ctx context.Context, filter Filter) ([]*Guest, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Guest, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// normalizeEmail lowercases the address so uniqueness is case insensitive.
func normalizeEmail(email string) *string {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil
	}
	return &email
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Guest, error) {
	first, last := strings.TrimSpace(req.FirstName), strings.TrimSpace(req.LastName)
	if first == "" || last == "" {
		return nil, ErrNameRequired
	}
	phone := strings.TrimSpace(req.Phone)
	if phone == "" {
		return nil, ErrPhoneRequired
	}

	guest := &Guest{
		FirstName:            first,
		LastName:             last,
		Email:                normalizeEmail(req.Email),
		Phone:                phone,
		IdentificationType:   strings.TrimSpace(req.IdentificationType),
		IdentificationNumber: strings.TrimSpace(req.IdentificationNumber),
		Country:              req.Country,
		City:                 req.City,
		Address:              req.Address,
		BirthDate:            req.BirthDate,
		Notes:                req.Notes,
		IsVIP:                req.IsVIP,
	}
	if err := s.repo.Create(ctx, guest); err != nil {
		return nil, err
	}
	return guest, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Guest, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Guest, int, error) {
	if filter.Email != "" {
		if email := normalizeEmail(filter.Email); email != nil {
			filter.Email = *email
		}
	}
	filter.Phone = strings.TrimSpace(filter.Phone)
	filter.Search = strings.TrimSpace(filter.Search)
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Guest, error) {
	guest, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		guest.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		guest.LastName = strings.TrimSpace(*req.LastName)
	}
	if guest.FirstName == "" || guest.LastName == "" {
		return nil, ErrNameRequired
	}
	if req.Phone != nil {
		phone := strings.TrimSpace(*req.Phone)
		if phone == "" {
			return nil, ErrPhoneRequired
		}
		guest.Phone = phone
	}
	if req.Email != nil {
		guest.Email = normalizeEmail(*req.Email)
	}
	if req.IdentificationType != nil {
		guest.IdentificationType = strings.TrimSpace(*req.IdentificationType)
	}
	if req.IdentificationNumber != nil {
		guest.IdentificationNumber = strings.TrimSpace(*req.IdentificationNumber)
	}
	if req.Country != nil {
		guest.Country = *req.Country
	}
	if req.City != nil {
		guest.City = *req.City
	}
	if req.Address != nil {
		guest.Address = *req.Address
	}
	if req.BirthDate != nil {
		guest.BirthDate = req.BirthDate
	}
	if req.Notes != nil {
		guest.Notes = *req.Notes
	}
	if req.IsVIP != nil {
		guest.IsVIP = *req.IsVIP
	}

	if err := s.repo.Update(ctx, guest); err != nil {
		return nil, err
	}
	return guest, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
