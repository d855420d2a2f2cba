package companies

import (
	"context"

	"github.com/mnzmnz10/yeter-sub001/internal/masterdata/shared"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]Company, int, error) {
	filters.Clamp()
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id int64) (Company, error) {
	if id <= 0 {
		return Company{}, shared.ErrInvalidID
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, company Company) (Company, error) {
	if err := s.validate(&company); err != nil {
		return Company{}, err
	}
	return s.repo.Create(ctx, company)
}

func (s *Service) Update(ctx context.Context, id int64, company Company) error {
	if id <= 0 {
		return shared.ErrInvalidID
	}
	if err := s.validate(&company); err != nil {
		return err
	}
	return s.repo.Update(ctx, id, company)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return shared.ErrInvalidID
	}
	return s.repo.Delete(ctx, id)
}
