package utils

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var rubPrinter = message.NewPrinter(language.Russian)

// FormatRubles renders an amount with Russian digit grouping, e.g. "1 500 ₽".
// Fractions are kept only when non-zero.
func FormatRubles(amount decimal.Decimal) string {
	if amount.Equal(amount.Truncate(0)) {
		return rubPrinter.Sprintf("%d ₽", amount.IntPart())
	}
	return rubPrinter.Sprintf("%.2f ₽", amount.InexactFloat64())
}
