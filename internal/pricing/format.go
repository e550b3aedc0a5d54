package pricing

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// EmptyTotalPlaceholder is rendered in place of a zero grand total.
const EmptyTotalPlaceholder = "-"

var vnPrinter = message.NewPrinter(language.Vietnamese)

// FormatVND renders an amount with Vietnamese thousands separators, zero
// decimal places and the literal currency suffix.
func FormatVND(amount float64) string {
	return vnPrinter.Sprintf("%v đ", number.Decimal(amount, number.MaxFractionDigits(0)))
}

// FormatTotal renders a grand total, substituting the placeholder dash when
// nothing has been selected yet.
func FormatTotal(amount float64) string {
	if amount == 0 {
		return EmptyTotalPlaceholder
	}
	return FormatVND(amount)
}
