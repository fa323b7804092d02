package office

import (
	"context"
	"strings"

	"github.com/deskhive/office-booking-backend/internal/tag"
)

type CreateRequest struct {
	UserID          string
	Title           string
	Description     string
	Lat             float64
	Lng             float64
	AddressLine1    string
	Hidden          bool
	PricePerDay     int64
	MonthlyDiscount int
	TagIDs          []string
}

type UpdateRequest struct {
	Title           *string
	Description     *string
	Lat             *float64
	Lng             *float64
	AddressLine1    *string
	Hidden          *bool
	PricePerDay     *int64
	MonthlyDiscount *int
	TagIDs          []string // nil means leave tags untouched
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Office, error)
	GetByID(ctx context.Context, id string) (*Office, error)
	List(ctx context.Context, filter Filter) ([]*Office, int, error)
	Update(ctx context.Context, id string, req UpdateRequest, actorID string) (*Office, error)
	Delete(ctx context.Context, id string, actorID string) error
}

type service struct {
	repo       Repository
	tagService tag.Service
}

func NewService(repo Repository, tagService tag.Service) Service {
	return &service{
		repo:       repo,
		tagService: tagService,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Office, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrTitleRequired
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, ErrDescriptionRequired
	}
	if strings.TrimSpace(req.AddressLine1) == "" {
		return nil, ErrAddressRequired
	}
	if req.PricePerDay < MinPricePerDay {
		return nil, ErrPriceTooLow
	}
	if req.MonthlyDiscount < 0 || req.MonthlyDiscount > 90 {
		return nil, ErrInvalidDiscount
	}

	if err := s.validateTags(ctx, req.TagIDs); err != nil {
		return nil, err
	}

	o := &Office{
		UserID:          req.UserID,
		Title:           req.Title,
		Description:     req.Description,
		Lat:             req.Lat,
		Lng:             req.Lng,
		AddressLine1:    req.AddressLine1,
		Hidden:          req.Hidden,
		ApprovalStatus:  ApprovalPending, // new listings await moderation
		PricePerDay:     req.PricePerDay,
		MonthlyDiscount: req.MonthlyDiscount,
	}

	if err := s.repo.Create(ctx, o); err != nil {
		return nil, err
	}

	if len(req.TagIDs) > 0 {
		if err := s.repo.SetTags(ctx, o.ID, req.TagIDs); err != nil {
			return nil, err
		}
	}

	return s.repo.GetByID(ctx, o.ID)
}

func (s *service) GetByID(ctx context.Context, id string) (*Office, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Office, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest, actorID string) (*Office, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if o.UserID != actorID {
		return nil, ErrPermissionDenied
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, ErrTitleRequired
		}
		o.Title = *req.Title
	}
	if req.Description != nil {
		if strings.TrimSpace(*req.Description) == "" {
			return nil, ErrDescriptionRequired
		}
		o.Description = *req.Description
	}
	if req.Lat != nil {
		o.Lat = *req.Lat
	}
	if req.Lng != nil {
		o.Lng = *req.Lng
	}
	if req.AddressLine1 != nil {
		if strings.TrimSpace(*req.AddressLine1) == "" {
			return nil, ErrAddressRequired
		}
		o.AddressLine1 = *req.AddressLine1
	}
	if req.Hidden != nil {
		o.Hidden = *req.Hidden
	}
	if req.PricePerDay != nil {
		if *req.PricePerDay < MinPricePerDay {
			return nil, ErrPriceTooLow
		}
		o.PricePerDay = *req.PricePerDay
	}
	if req.MonthlyDiscount != nil {
		if *req.MonthlyDiscount < 0 || *req.MonthlyDiscount > 90 {
			return nil, ErrInvalidDiscount
		}
		o.MonthlyDiscount = *req.MonthlyDiscount
	}

	if req.TagIDs != nil {
		if err := s.validateTags(ctx, req.TagIDs); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, o); err != nil {
		return nil, err
	}

	if req.TagIDs != nil {
		if err := s.repo.SetTags(ctx, o.ID, req.TagIDs); err != nil {
			return nil, err
		}
	}

	return s.repo.GetByID(ctx, o.ID)
}

func (s *service) Delete(ctx context.Context, id string, actorID string) error {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if o.UserID != actorID {
		return ErrPermissionDenied
	}

	hasActive, err := s.repo.HasActiveReservations(ctx, id)
	if err != nil {
		return err
	}
	if hasActive {
		return ErrHasActiveReservations
	}

	return s.repo.Delete(ctx, id)
}

func (s *service) validateTags(ctx context.Context, tagIDs []string) error {
	if len(tagIDs) == 0 {
		return nil
	}

	tags, err := s.tagService.GetByIDs(ctx, tagIDs)
	if err != nil {
		return err
	}
	if len(tags) != len(tagIDs) {
		return ErrInvalidTag
	}
	return nil
}
