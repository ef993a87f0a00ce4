// Package price formats monetary amounts for display using Turkish
// locale conventions (dot thousands separator, comma decimals).
package price

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter maps a numeric amount to a localized currency string.
// Services take one as a dependency so tests can substitute a fixed
// format.
type Formatter func(amount float64) string

var printer = message.NewPrinter(language.Turkish)

// Format renders an amount as Turkish lira, always with two decimals:
// Format(1234.5) == "₺1.234,50".
func Format(amount float64) string {
	return printer.Sprintf("₺%v", number.Decimal(amount,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
}
