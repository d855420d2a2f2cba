package quote

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func persistedQuote(id int64, name string, lineCount int) Quote {
	q := Quote{
		ID:              id,
		Name:            name,
		DiscountPercent: 10,
		LaborCost:       250,
		PriceMode:       PriceModeDiscounted,
		CreatedAt:       time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC),
	}
	for i := 0; i < lineCount; i++ {
		q.Lines = append(q.Lines, Line{
			ID:        int64(100 + i),
			QuoteID:   id,
			ItemID:    int64(i + 1),
			Quantity:  i + 1,
			Name:      "Kalem",
			CompanyID: 1,
			ListPrice: 100,
			Currency:  "USD",
			LineOrder: i + 1,
		})
	}
	return q
}

func TestBindForEditDerivesDraftAndEntries(t *testing.T) {
	r := NewReconciler()
	q := persistedQuote(7, "Q1", 3)

	draft, entries := r.BindForEdit(q)

	assert.Equal(t, "Q1", draft.Name)
	assert.Equal(t, 10.0, draft.DiscountPercent)
	assert.Equal(t, 250.0, draft.LaborCost)
	assert.Equal(t, PriceModeDiscounted, draft.PriceMode)
	assert.Equal(t, "10", draft.DiscountInput)
	assert.Equal(t, "250", draft.LaborInput)

	require.Len(t, entries, 3)
	assert.Equal(t, int64(1), entries[0].Item.ID)
	assert.Equal(t, 2, entries[1].Quantity)
	assert.Equal(t, "USD", entries[0].Item.Currency)
	// Base prices come from the current rate table, not from the record.
	assert.Nil(t, entries[0].Item.ListPriceBase)

	bound, ok := r.Bound()
	require.True(t, ok)
	assert.Equal(t, int64(7), bound.ID)
}

func TestResolveUnchangedNameUpdatesBound(t *testing.T) {
	r := NewReconciler()
	r.BindForEdit(persistedQuote(7, "Q1", 3))

	d := r.Resolve("Q1", time.Now())
	assert.Equal(t, SaveUpdate, d.Action)
	assert.Equal(t, int64(7), d.QuoteID)
	assert.Equal(t, "Q1", d.Name)
}

func TestResolveChangedNameCreates(t *testing.T) {
	r := NewReconciler()
	r.BindForEdit(persistedQuote(7, "Q1", 3))

	d := r.Resolve("Q1-revised", time.Now())
	assert.Equal(t, SaveCreate, d.Action)
	assert.Equal(t, int64(0), d.QuoteID)
	assert.Equal(t, "Q1-revised", d.Name)
}

func TestResolveEmptyNameKeepsBoundName(t *testing.T) {
	r := NewReconciler()
	r.BindForEdit(persistedQuote(7, "Q1", 1))

	d := r.Resolve("   ", time.Now())
	assert.Equal(t, SaveUpdate, d.Action)
	assert.Equal(t, int64(7), d.QuoteID)
	assert.Equal(t, "Q1", d.Name)
}

func TestResolveUnboundCreatesWithDefaultName(t *testing.T) {
	r := NewReconciler()
	now := time.Date(2026, 8, 22, 14, 30, 0, 0, time.Local)

	d := r.Resolve("", now)
	assert.Equal(t, SaveCreate, d.Action)
	assert.Equal(t, "Teklif 22.08.2026 14:30", d.Name)

	d = r.Resolve("Banyo tadilat", now)
	assert.Equal(t, SaveCreate, d.Action)
	assert.Equal(t, "Banyo tadilat", d.Name)
}

func TestRebindAfterSave(t *testing.T) {
	r := NewReconciler()
	r.BindForEdit(persistedQuote(7, "Q1", 1))

	// A rename forks into a new record; after the save the session follows it.
	d := r.Resolve("Q2", time.Now())
	require.Equal(t, SaveCreate, d.Action)
	r.Rebind(persistedQuote(8, "Q2", 1))

	d = r.Resolve("Q2", time.Now())
	assert.Equal(t, SaveUpdate, d.Action)
	assert.Equal(t, int64(8), d.QuoteID)

	// The original record is untouched and no longer the target.
	d = r.Resolve("Q1", time.Now())
	assert.Equal(t, SaveCreate, d.Action)
}

func TestUnbind(t *testing.T) {
	r := NewReconciler()
	r.BindForEdit(persistedQuote(7, "Q1", 1))
	r.Unbind()

	_, ok := r.Bound()
	assert.False(t, ok)

	d := r.Resolve("Q1", time.Now())
	assert.Equal(t, SaveCreate, d.Action)
}

func TestDefaultNameFormat(t *testing.T) {
	now := time.Date(2026, 1, 2, 9, 5, 0, 0, time.Local)
	assert.Equal(t, "Teklif 02.01.2026 09:05", DefaultName(now))
}
