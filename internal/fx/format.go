package fx

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var displayPrinter = message.NewPrinter(language.Turkish)

var currencySymbols = map[string]string{
	"TRY": "₺",
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
}

// FormatAmount renders an amount for display with Turkish digit grouping,
// rounded to two digits. All arithmetic upstream runs on unrounded values;
// this is the only place precision is dropped.
func FormatAmount(amount float64, currency string) string {
	symbol, ok := currencySymbols[Normalize3(currency)]
	if !ok {
		symbol = Normalize3(currency)
	}
	return displayPrinter.Sprintf("%.2f %s", amount, symbol)
}

// FormatBase renders a base-currency (lira) amount for display.
func FormatBase(amount float64) string {
	return FormatAmount(amount, "TRY")
}
