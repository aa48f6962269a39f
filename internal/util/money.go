package util

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatUSD renders an amount as a dollar string with thousands separators,
// e.g. -2517.17 -> "-$2,517.17".
func FormatUSD(d decimal.Decimal) string {
	negative := d.IsNegative()
	fixed := d.Abs().StringFixed(2)

	whole, frac, _ := strings.Cut(fixed, ".")
	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}

// FormatPercent renders a rate with two decimals and a percent sign.
func FormatPercent(d decimal.Decimal) string {
	return d.StringFixed(2) + "%"
}

// FormatRatio renders a unitless ratio such as a DSCR with two decimals.
func FormatRatio(d decimal.Decimal) string {
	return d.StringFixed(2)
}
