// Package share turns saved quotes into share targets for the operator.
package share

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/mnzmnz10/yeter-sub001/internal/fx"
	"github.com/mnzmnz10/yeter-sub001/internal/quote"
)

const defaultBaseURL = "https://wa.me/"

// WhatsAppLinker builds wa.me links carrying a text summary of the quote.
type WhatsAppLinker struct {
	baseURL string
}

func NewWhatsAppLinker() *WhatsAppLinker {
	return &WhatsAppLinker{baseURL: defaultBaseURL}
}

// Link returns the share URL for a quote.
func (l *WhatsAppLinker) Link(q quote.Quote) string {
	return l.baseURL + "?text=" + url.QueryEscape(l.Text(q))
}

// Text renders the plain-text summary that goes into the message body.
func (l *WhatsAppLinker) Text(q quote.Quote) string {
	var b strings.Builder
	b.WriteString(q.Name)
	b.WriteString("\n\n")

	for _, line := range q.Lines {
		if line.UnitPriceBase != nil {
			fmt.Fprintf(&b, "%d adet %s = %s\n", line.Quantity, line.Name, fx.FormatBase(line.LineTotalBase))
		} else {
			fmt.Fprintf(&b, "%d adet %s (fiyat sorunuz)\n", line.Quantity, line.Name)
		}
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "Ara Toplam: %s\n", fx.FormatBase(q.Totals.TotalListPrice))
	if q.DiscountPercent > 0 {
		fmt.Fprintf(&b, "İskonto: %s\n", fx.FormatBase(q.Totals.DiscountAmount))
	}
	if q.LaborCost > 0 {
		fmt.Fprintf(&b, "İşçilik: %s\n", fx.FormatBase(q.Totals.LaborCost))
	}
	fmt.Fprintf(&b, "Genel Toplam: %s", fx.FormatBase(q.Totals.TotalNetPrice))
	return b.String()
}
