// Package catalog owns the supplier product catalog: persistence, the
// normalized read path, and the paginated view state the operator browses.
package catalog

import (
	"context"
	"fmt"

	"github.com/mnzmnz10/yeter-sub001/internal/fx"
)

const (
	DefaultPageSize = 50
	MaxPageSize     = 200
)

// Service is the catalog read/import layer. Every read reprices items
// against the rate table current at that moment, so stored rows never carry
// normalized amounts.
type Service struct {
	repo  Repository
	rates *fx.Store
}

func NewService(repo Repository, rates *fx.Store) *Service {
	return &Service{repo: repo, rates: rates}
}

// Query returns one page of catalog items with derived base prices filled
// in. TotalCount reflects the filtered result size.
func (s *Service) Query(ctx context.Context, q Query) (Result, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}

	items, total, err := s.repo.List(ctx, q)
	if err != nil {
		return Result{}, fmt.Errorf("catalog: list items: %w", err)
	}

	table := s.rates.Table()
	for i := range items {
		items[i].Reprice(table)
	}
	return Result{Items: items, TotalCount: total}, nil
}

// Get returns a single item with derived base prices filled in.
func (s *Service) Get(ctx context.Context, id int64) (Item, error) {
	if id <= 0 {
		return Item{}, ErrNotFound
	}
	item, err := s.repo.Get(ctx, id)
	if err != nil {
		return Item{}, err
	}
	item.Reprice(s.rates.Table())
	return item, nil
}

// ImportCompanyList replaces a supplier's whole price list with the given
// rows. Parsing the upload into rows is the caller's concern; this validates
// and persists.
func (s *Service) ImportCompanyList(ctx context.Context, companyID int64, items []Item) (int, error) {
	if companyID <= 0 {
		return 0, fmt.Errorf("catalog: invalid company id %d", companyID)
	}
	if err := validateImport(items); err != nil {
		return 0, err
	}
	for i := range items {
		items[i].Currency = fx.Normalize3(items[i].Currency)
	}
	n, err := s.repo.ReplaceCompanyItems(ctx, companyID, items)
	if err != nil {
		return 0, fmt.Errorf("catalog: replace company %d items: %w", companyID, err)
	}
	return n, nil
}

// PurgeCompany removes a supplier's items, for when the supplier itself is
// removed.
func (s *Service) PurgeCompany(ctx context.Context, companyID int64) error {
	if companyID <= 0 {
		return fmt.Errorf("catalog: invalid company id %d", companyID)
	}
	return s.repo.DeleteCompanyItems(ctx, companyID)
}
