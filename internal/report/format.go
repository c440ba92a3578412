package report

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var centThreshold = decimal.NewFromFloat(0.01)

// grouping renders locale thousands separators for large values.
var grouping = message.NewPrinter(language.English)

// FormatPrice renders a price with the given currency prefix: 6 decimal
// places below one cent, 2 otherwise. A nil price renders "unknown".
func FormatPrice(price *decimal.Decimal, currency string) string {
	if price == nil {
		return "unknown"
	}
	places := int32(2)
	if price.Abs().LessThan(centThreshold) {
		places = 6
	}
	return currency + price.StringFixed(places)
}

// FormatChange renders a 24h percentage change with an explicit sign and 2
// decimal places. A nil change renders "unknown".
func FormatChange(change *float64) string {
	if change == nil {
		return "unknown"
	}
	return fmt.Sprintf("%+.2f%%", *change)
}

// FormatAmount renders a numeric string with thousands separators. Anything
// that does not parse as a number renders "unknown" instead of failing.
func FormatAmount(raw string) string {
	if raw == "" {
		return "unknown"
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return "unknown"
	}
	f, _ := d.Float64()
	return grouping.Sprint(number.Decimal(f))
}

// FormatCap renders a computed market cap: grouped digits, 2 decimal
// places, dollar prefix.
func FormatCap(mcap decimal.Decimal) string {
	f, _ := mcap.Float64()
	return "$" + grouping.Sprint(number.Decimal(f, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}
