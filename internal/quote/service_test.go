package quote

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnzmnz10/yeter-sub001/internal/selection"
)

type mockRepository struct {
	quotes     map[int64]*Quote
	lines      map[int64][]Line
	nextID     int64
	nextLineID int64

	txError     error
	createError error
	updateError error
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		quotes: make(map[int64]*Quote),
		lines:  make(map[int64][]Line),
		nextID: 1, nextLineID: 1,
	}
}

func (m *mockRepository) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	if m.txError != nil {
		return m.txError
	}
	return fn(ctx, m)
}

func (m *mockRepository) Create(ctx context.Context, q Quote) (int64, error) {
	if m.createError != nil {
		return 0, m.createError
	}
	id := m.nextID
	m.nextID++
	stored := q
	stored.ID = id
	stored.Lines = nil
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	m.quotes[id] = &stored
	return id, nil
}

func (m *mockRepository) Update(ctx context.Context, q Quote) error {
	if m.updateError != nil {
		return m.updateError
	}
	existing, ok := m.quotes[q.ID]
	if !ok {
		return ErrNotFound
	}
	updated := q
	updated.Lines = nil
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now()
	m.quotes[q.ID] = &updated
	return nil
}

func (m *mockRepository) InsertLine(ctx context.Context, line Line) (int64, error) {
	line.ID = m.nextLineID
	m.nextLineID++
	m.lines[line.QuoteID] = append(m.lines[line.QuoteID], line)
	return line.ID, nil
}

func (m *mockRepository) DeleteLines(ctx context.Context, quoteID int64) error {
	delete(m.lines, quoteID)
	return nil
}

func (m *mockRepository) Get(ctx context.Context, id int64) (*Quote, error) {
	q, ok := m.quotes[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *q
	out.Lines = append([]Line(nil), m.lines[id]...)
	return &out, nil
}

func (m *mockRepository) List(ctx context.Context, req ListRequest) ([]Summary, int, error) {
	var out []Summary
	for _, q := range m.quotes {
		if req.Search != "" && !strings.Contains(strings.ToLower(q.Name), strings.ToLower(req.Search)) {
			continue
		}
		out = append(out, Summary{ID: q.ID, Name: q.Name, TotalNetPrice: q.Totals.TotalNetPrice})
	}
	return out, len(out), nil
}

func (m *mockRepository) Delete(ctx context.Context, id int64) error {
	if _, ok := m.quotes[id]; !ok {
		return ErrNotFound
	}
	delete(m.quotes, id)
	delete(m.lines, id)
	return nil
}

func testService(t *testing.T) (*Service, *mockRepository) {
	t.Helper()
	repo := newMockRepository()
	return NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil))), repo
}

func testEntries() []selection.Entry {
	return []selection.Entry{
		{Item: pricedItem(11, "Kombi", 100), Quantity: 2},
		{Item: discountedItem(12, "Vana", 50, 40), Quantity: 1},
	}
}

func TestSaveCreate(t *testing.T) {
	svc, repo := testService(t)
	draft := Draft{DiscountPercent: 10, LaborCost: 50, PriceMode: PriceModeList}

	saved, err := svc.Save(context.Background(), Decision{Action: SaveCreate, Name: "Banyo"}, draft, testEntries())
	require.NoError(t, err)

	assert.Equal(t, "Banyo", saved.Name)
	assert.Equal(t, 250.0, saved.Totals.TotalListPrice)
	assert.Equal(t, 25.0, saved.Totals.DiscountAmount)
	assert.Equal(t, 275.0, saved.Totals.TotalNetPrice)
	assert.Equal(t, 3, saved.Totals.TotalQuantity)
	assert.Equal(t, 2, saved.Totals.ProductCount)

	require.Len(t, saved.Lines, 2)
	first := saved.Lines[0]
	assert.Equal(t, int64(11), first.ItemID)
	assert.Equal(t, saved.ID, first.QuoteID)
	assert.Equal(t, "Kombi", first.Name)
	assert.Equal(t, 1, first.LineOrder)
	require.NotNil(t, first.UnitPriceBase)
	assert.Equal(t, 100.0, *first.UnitPriceBase)
	assert.Equal(t, 200.0, first.LineTotalBase)

	_, ok := repo.quotes[saved.ID]
	assert.True(t, ok)
}

func TestSaveDiscountedModeRecordsChosenPrice(t *testing.T) {
	svc, _ := testService(t)
	draft := Draft{PriceMode: PriceModeDiscounted}

	saved, err := svc.Save(context.Background(), Decision{Action: SaveCreate, Name: "Teklif"}, draft, testEntries())
	require.NoError(t, err)

	// Kombi has no discounted price and falls back; Vana uses its own.
	require.NotNil(t, saved.Lines[0].UnitPriceBase)
	assert.Equal(t, 100.0, *saved.Lines[0].UnitPriceBase)
	require.NotNil(t, saved.Lines[1].UnitPriceBase)
	assert.Equal(t, 40.0, *saved.Lines[1].UnitPriceBase)
	assert.Equal(t, 240.0, saved.Totals.TotalListPrice)
}

func TestSaveUpdateReplacesLines(t *testing.T) {
	svc, repo := testService(t)
	ctx := context.Background()

	first, err := svc.Save(ctx, Decision{Action: SaveCreate, Name: "Q1"}, Draft{PriceMode: PriceModeList}, testEntries())
	require.NoError(t, err)
	require.Len(t, repo.lines[first.ID], 2)

	newEntries := []selection.Entry{{Item: pricedItem(13, "Radyator", 75), Quantity: 4}}
	updated, err := svc.Save(ctx, Decision{Action: SaveUpdate, QuoteID: first.ID, Name: "Q1"},
		Draft{DiscountPercent: 0, LaborCost: 0, PriceMode: PriceModeList}, newEntries)
	require.NoError(t, err)

	assert.Equal(t, first.ID, updated.ID)
	require.Len(t, updated.Lines, 1)
	assert.Equal(t, int64(13), updated.Lines[0].ItemID)
	assert.Equal(t, 300.0, updated.Totals.TotalListPrice)
	assert.Len(t, repo.quotes, 1)
}

func TestSaveUnpricedLineStoredWithoutUnitPrice(t *testing.T) {
	svc, _ := testService(t)
	entries := []selection.Entry{
		{Item: pricedItem(1, "Kombi", 100), Quantity: 1},
		{Item: unpricedItem(2, "Radyator"), Quantity: 3},
	}

	saved, err := svc.Save(context.Background(), Decision{Action: SaveCreate, Name: "Q"}, Draft{PriceMode: PriceModeList}, entries)
	require.NoError(t, err)

	require.Len(t, saved.Lines, 2)
	assert.Nil(t, saved.Lines[1].UnitPriceBase)
	assert.Equal(t, 0.0, saved.Lines[1].LineTotalBase)
	assert.Equal(t, 100.0, saved.Totals.TotalListPrice)
	assert.Equal(t, 4, saved.Totals.TotalQuantity)
}

func TestSaveRejectsEmptySelection(t *testing.T) {
	svc, _ := testService(t)

	_, err := svc.Save(context.Background(), Decision{Action: SaveCreate, Name: "Q"}, NewDraft(), nil)
	assert.ErrorIs(t, err, ErrEmptySelection)
}

func TestSaveRejectsUnresolvedName(t *testing.T) {
	svc, _ := testService(t)

	_, err := svc.Save(context.Background(), Decision{Action: SaveCreate}, NewDraft(), testEntries())
	assert.ErrorIs(t, err, ErrInvalidDraft)
}

func TestSaveTxFailureLeavesNothingBehind(t *testing.T) {
	svc, repo := testService(t)
	repo.txError = errors.New("deadlock detected")

	_, err := svc.Save(context.Background(), Decision{Action: SaveCreate, Name: "Q"}, NewDraft(), testEntries())
	require.Error(t, err)
	assert.Empty(t, repo.quotes)
	assert.Empty(t, repo.lines)
}

func TestSaveUpdateMissingQuote(t *testing.T) {
	svc, _ := testService(t)

	_, err := svc.Save(context.Background(), Decision{Action: SaveUpdate, QuoteID: 404, Name: "Q"}, NewDraft(), testEntries())
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestGetAndDelete(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	saved, err := svc.Save(ctx, Decision{Action: SaveCreate, Name: "Q"}, NewDraft(), testEntries())
	require.NoError(t, err)

	got, err := svc.Get(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, got.ID)

	require.NoError(t, svc.Delete(ctx, saved.ID))
	_, err = svc.Get(ctx, saved.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, saved.ID), ErrNotFound)
}

func TestGetInvalidID(t *testing.T) {
	svc, _ := testService(t)
	_, err := svc.Get(context.Background(), 0)
	assert.ErrorIs(t, err, ErrNotFound)
}
