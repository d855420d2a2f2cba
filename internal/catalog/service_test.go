package catalog

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnzmnz10/yeter-sub001/internal/fx"
)

type mockRepository struct {
	items  map[int64]Item
	nextID int64

	lastQuery Query
	listError error
}

func newMockRepository() *mockRepository {
	return &mockRepository{items: make(map[int64]Item), nextID: 1}
}

func (m *mockRepository) add(item Item) Item {
	item.ID = m.nextID
	m.nextID++
	m.items[item.ID] = item
	return item
}

func (m *mockRepository) List(ctx context.Context, q Query) ([]Item, int, error) {
	if m.listError != nil {
		return nil, 0, m.listError
	}
	m.lastQuery = q

	var matched []Item
	for _, it := range m.items {
		if q.CompanyID != nil && it.CompanyID != *q.CompanyID {
			continue
		}
		if q.CategoryID != nil && (it.CategoryID == nil || *it.CategoryID != *q.CategoryID) {
			continue
		}
		if q.Search != "" && !strings.Contains(strings.ToLower(it.Name), strings.ToLower(q.Search)) {
			continue
		}
		matched = append(matched, it)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := len(matched)
	start := (q.Page - 1) * q.PageSize
	if start > total {
		start = total
	}
	end := start + q.PageSize
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (m *mockRepository) Get(ctx context.Context, id int64) (Item, error) {
	it, ok := m.items[id]
	if !ok {
		return Item{}, ErrNotFound
	}
	return it, nil
}

func (m *mockRepository) ReplaceCompanyItems(ctx context.Context, companyID int64, items []Item) (int, error) {
	for id, it := range m.items {
		if it.CompanyID == companyID {
			delete(m.items, id)
		}
	}
	for _, it := range items {
		it.CompanyID = companyID
		m.add(it)
	}
	return len(items), nil
}

func (m *mockRepository) DeleteCompanyItems(ctx context.Context, companyID int64) error {
	for id, it := range m.items {
		if it.CompanyID == companyID {
			delete(m.items, id)
		}
	}
	return nil
}

func newTestService(t *testing.T, rates map[string]float64) (*Service, *mockRepository, *fx.Store) {
	t.Helper()
	repo := newMockRepository()
	store := fx.NewStore("TRY")
	if len(rates) > 0 {
		table, err := fx.NewTable("TRY", rates, time.Now())
		require.NoError(t, err)
		store.Replace(table)
	}
	return NewService(repo, store), repo, store
}

func ptr[T any](v T) *T {
	return &v
}

func TestServiceQueryNormalizesOnRead(t *testing.T) {
	svc, repo, store := newTestService(t, map[string]float64{"USD": 40})
	repo.add(Item{CompanyID: 1, Name: "Kombi", ListPrice: 100, Currency: "USD"})

	res, err := svc.Query(context.Background(), Query{})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	require.NotNil(t, res.Items[0].ListPriceBase)
	assert.InDelta(t, 4000, *res.Items[0].ListPriceBase, 1e-9)

	// A rate refresh must show up on the very next read.
	table, err := fx.NewTable("TRY", map[string]float64{"USD": 41}, time.Now())
	require.NoError(t, err)
	store.Replace(table)

	res, err = svc.Query(context.Background(), Query{})
	require.NoError(t, err)
	require.NotNil(t, res.Items[0].ListPriceBase)
	assert.InDelta(t, 4100, *res.Items[0].ListPriceBase, 1e-9)
}

func TestServiceQueryMissingRateYieldsNoPrice(t *testing.T) {
	svc, repo, _ := newTestService(t, map[string]float64{"USD": 40})
	repo.add(Item{CompanyID: 1, Name: "Radyator", ListPrice: 80, Currency: "GBP"})

	res, err := svc.Query(context.Background(), Query{})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Nil(t, res.Items[0].ListPriceBase)
	assert.False(t, res.Items[0].PriceAvailable())
}

func TestServiceQueryClampsPaging(t *testing.T) {
	svc, repo, _ := newTestService(t, nil)
	repo.add(Item{CompanyID: 1, Name: "Vana", ListPrice: 5, Currency: "TRY"})

	_, err := svc.Query(context.Background(), Query{Page: 0, PageSize: 0})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.lastQuery.Page)
	assert.Equal(t, DefaultPageSize, repo.lastQuery.PageSize)

	_, err = svc.Query(context.Background(), Query{Page: 1, PageSize: 10000})
	require.NoError(t, err)
	assert.Equal(t, MaxPageSize, repo.lastQuery.PageSize)
}

func TestServiceQueryTotalCountIsFilterWide(t *testing.T) {
	svc, repo, _ := newTestService(t, nil)
	for i := 0; i < 5; i++ {
		repo.add(Item{CompanyID: 1, Name: "Kombi", ListPrice: 10, Currency: "TRY"})
	}
	repo.add(Item{CompanyID: 1, Name: "Vana", ListPrice: 2, Currency: "TRY"})

	res, err := svc.Query(context.Background(), Query{Search: "kombi", Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Len(t, res.Items, 2)
	assert.Equal(t, 5, res.TotalCount)
}

func TestServiceQueryWrapsRepositoryError(t *testing.T) {
	svc, repo, _ := newTestService(t, nil)
	repo.listError = errors.New("connection refused")

	_, err := svc.Query(context.Background(), Query{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestServiceGetNotFound(t *testing.T) {
	svc, _, _ := newTestService(t, nil)

	_, err := svc.Get(context.Background(), 99)
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = svc.Get(context.Background(), 0)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestServiceImportReplacesCompanyList(t *testing.T) {
	svc, repo, _ := newTestService(t, nil)
	repo.add(Item{CompanyID: 7, Name: "Eski kombi", ListPrice: 1, Currency: "TRY"})

	n, err := svc.ImportCompanyList(context.Background(), 7, []Item{
		{Name: "Yeni kombi", ListPrice: 100, Currency: " usd "},
		{Name: "Yeni vana", ListPrice: 5, DiscountedPrice: ptr(4.5), Currency: "EUR"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	items, total, err := repo.List(context.Background(), Query{CompanyID: ptr(int64(7)), Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	for _, it := range items {
		assert.NotEqual(t, "Eski kombi", it.Name)
	}
	assert.Equal(t, "USD", items[0].Currency)
}

func TestServiceImportRejectsBadRows(t *testing.T) {
	svc, _, _ := newTestService(t, nil)
	ctx := context.Background()

	_, err := svc.ImportCompanyList(ctx, 7, []Item{{Name: "", ListPrice: 1, Currency: "TRY"}})
	assert.Error(t, err)

	_, err = svc.ImportCompanyList(ctx, 7, []Item{{Name: "Kombi", ListPrice: 1, Currency: "JPY"}})
	assert.Error(t, err)

	_, err = svc.ImportCompanyList(ctx, 7, []Item{{Name: "Kombi", ListPrice: -3, Currency: "TRY"}})
	assert.Error(t, err)

	_, err = svc.ImportCompanyList(ctx, 0, []Item{{Name: "Kombi", ListPrice: 1, Currency: "TRY"}})
	assert.Error(t, err)
}
