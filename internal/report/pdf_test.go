package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnzmnz10/yeter-sub001/internal/quote"
)

func ptr[T any](v T) *T { return &v }

func sampleQuote() quote.Quote {
	return quote.Quote{
		ID:              12,
		Name:            "Teklif Çalışması Şükrü Bey",
		DiscountPercent: 12.5,
		LaborCost:       750,
		PriceMode:       quote.PriceModeList,
		Notes:           ptr("Montaj ve nakliye dahildir. Geçerlilik: 15 gün."),
		Totals: quote.Totals{
			TotalListPrice: 10400,
			DiscountAmount: 1300,
			LaborCost:      750,
			TotalNetPrice:  9850,
			TotalQuantity:  7,
			ProductCount:   3,
		},
		Lines: []quote.Line{
			{ID: 1, Name: "Pano 40x60 IP65 Çelik Gövde", Quantity: 2, UnitPriceBase: ptr(1500.0), LineTotalBase: 3000, Currency: "TRY"},
			{ID: 2, Name: "Kontaktör 3P 32A Isıtıcı Grubu İçin", Quantity: 4, UnitPriceBase: ptr(1850.0), LineTotalBase: 7400, Currency: "USD"},
			{ID: 3, Name: "Özel Sipariş Klemens", Quantity: 1, UnitPriceBase: nil, LineTotalBase: 0, Currency: "EUR"},
		},
		CreatedAt: time.Date(2026, 3, 14, 11, 30, 0, 0, time.UTC),
	}
}

func TestRenderQuotePDF(t *testing.T) {
	g := NewPDFGenerator()

	out, err := g.Render(sampleQuote())
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF-", string(out[:5]))
	assert.Greater(t, len(out), 800)
}

func TestRenderEmptyQuote(t *testing.T) {
	g := NewPDFGenerator()

	q := quote.Quote{Name: "Boş Teklif", CreatedAt: time.Now()}
	out, err := g.Render(q)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-", string(out[:5]))
}

func TestRenderSkipsZeroDiscountAndLabor(t *testing.T) {
	g := NewPDFGenerator()

	q := sampleQuote()
	q.DiscountPercent = 0
	q.LaborCost = 0
	q.Notes = nil
	out, err := g.Render(q)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-", string(out[:5]))
}
