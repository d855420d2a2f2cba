// Package report renders quotes into shareable documents.
package report

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	"github.com/mnzmnz10/yeter-sub001/internal/fx"
	"github.com/mnzmnz10/yeter-sub001/internal/quote"
)

// PDFGenerator renders a quote as an A4 PDF. Text goes through the cp1254
// translator so the core fonts cover Turkish characters without bundled
// font files.
type PDFGenerator struct{}

func NewPDFGenerator() *PDFGenerator { return &PDFGenerator{} }

func (g *PDFGenerator) Render(q quote.Quote) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(q.Name, true)
	tr := pdf.UnicodeTranslatorFromDescriptor("cp1254")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr(q.Name))
	pdf.Ln(9)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Tarih: %s", q.CreatedAt.Format("02.01.2006 15:04"))))
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.Cell(90, 7, tr("Ürün"))
	pdf.CellFormat(15, 7, tr("Adet"), "", 0, "R", false, 0, "")
	pdf.CellFormat(40, 7, tr("Birim Fiyat"), "", 0, "R", false, 0, "")
	pdf.CellFormat(40, 7, tr("Tutar"), "", 0, "R", false, 0, "")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 9)
	for _, l := range q.Lines {
		pdf.Cell(90, 6, tr(trim(l.Name, 52)))
		pdf.CellFormat(15, 6, fmt.Sprintf("%d", l.Quantity), "", 0, "R", false, 0, "")
		if l.UnitPriceBase != nil {
			pdf.CellFormat(40, 6, tr(money(*l.UnitPriceBase)), "", 0, "R", false, 0, "")
			pdf.CellFormat(40, 6, tr(money(l.LineTotalBase)), "", 0, "R", false, 0, "")
		} else {
			pdf.CellFormat(40, 6, "-", "", 0, "R", false, 0, "")
			pdf.CellFormat(40, 6, "-", "", 0, "R", false, 0, "")
		}
		pdf.Ln(6)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "", 10)
	g.totalRow(pdf, tr, "Ara Toplam", money(q.Totals.TotalListPrice))
	if q.DiscountPercent > 0 {
		label := fmt.Sprintf("İskonto (%%%s)", strconv.FormatFloat(q.DiscountPercent, 'f', -1, 64))
		g.totalRow(pdf, tr, label, "-"+money(q.Totals.DiscountAmount))
	}
	if q.LaborCost > 0 {
		g.totalRow(pdf, tr, "İşçilik", money(q.Totals.LaborCost))
	}
	pdf.SetFont("Helvetica", "B", 11)
	g.totalRow(pdf, tr, "Genel Toplam", money(q.Totals.TotalNetPrice))

	if q.Notes != nil && *q.Notes != "" {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "", 9)
		pdf.MultiCell(0, 5, tr("Not: "+*q.Notes), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("report: render quote pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (g *PDFGenerator) totalRow(pdf *gofpdf.Fpdf, tr func(string) string, label, value string) {
	pdf.Cell(105, 6, "")
	pdf.Cell(40, 6, tr(label))
	pdf.CellFormat(40, 6, tr(value), "", 0, "R", false, 0, "")
	pdf.Ln(6)
}

// Amounts print in lira with Turkish digit grouping. The lira sign is not
// in cp1254, so the suffix is the plain TL abbreviation.
func money(v float64) string {
	return fx.FormatAmount(v, "TL")
}

func trim(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
