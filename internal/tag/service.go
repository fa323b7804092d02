package tag

import (
	"context"
	"strings"
)

type Service interface {
	Create(ctx context.Context, name string) (*Tag, error)
	List(ctx context.Context, filter Filter) ([]*Tag, int, error)
	GetByIDs(ctx context.Context, ids []string) ([]*Tag, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, name string) (*Tag, error) {
	name = strings.TrimSpace(strings.ToLower(name))
	if name == "" {
		return nil, ErrNameRequired
	}

	t := &Tag{Name: name}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Tag, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) GetByIDs(ctx context.Context, ids []string) ([]*Tag, error) {
	return s.repo.GetByIDs(ctx, ids)
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
