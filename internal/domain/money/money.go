// Package money holds currency parsing and formatting shared by all
// three ledgers. Amounts are decimals end to end.
package money

import (
	"strings"

	"github.com/Spok95/whiplash-bot/internal/fault"
	"github.com/shopspring/decimal"
)

const Symbol = "₱"

// Format renders an amount with the currency symbol, 3-digit grouping and
// exactly two decimal places: 1234.5 → "₱1,234.50".
func Format(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	dot := strings.IndexByte(s, '.')
	intPart, frac := s[:dot], s[dot:]

	var b strings.Builder
	b.WriteString(Symbol)
	if neg {
		b.WriteByte('-')
	}
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	b.WriteString(frac)
	return b.String()
}

// ParseAmount reads a user-entered non-negative amount. Comma is accepted
// as a decimal separator.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fault.Validationf("enter a valid number")
	}
	if d.IsNegative() {
		return decimal.Zero, fault.Validationf("enter a non-negative amount")
	}
	return d, nil
}

// ParseOptionalAmount is ParseAmount for fields where a blank, malformed
// or negative value silently falls back to zero (the VAT input rule).
func ParseOptionalAmount(s string) decimal.Decimal {
	d, err := ParseAmount(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
