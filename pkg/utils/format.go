// Package utils provides shared utility functions.
package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatCurrency formats an amount in US dollars with thousands separators,
// e.g. -$1,234.56.
func FormatCurrency(amount decimal.Decimal) string {
	str := amount.Abs().StringFixed(2)
	parts := strings.SplitN(str, ".", 2)

	result := "$" + FormatThousands(parts[0]) + "." + parts[1]
	if amount.Round(2).IsNegative() {
		result = "-" + result
	}
	return result
}

// FormatThousands inserts commas into a string of digits.
func FormatThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	var b strings.Builder
	head := n % 3
	if head > 0 {
		b.WriteString(s[:head])
	}
	for i := head; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// FormatPnL formats P&L with an explicit sign, e.g. +$1,234.56. Zero is
// shown as +$0.00.
func FormatPnL(pnl decimal.Decimal) string {
	formatted := FormatCurrency(pnl)
	if !strings.HasPrefix(formatted, "-") {
		return "+" + formatted
	}
	return formatted
}

// FormatPercent formats a percentage with the given number of decimals.
func FormatPercent(value decimal.Decimal, places int32) string {
	return value.StringFixed(places) + "%"
}

// FormatQuantity formats a contract count with commas, keeping any
// fractional part.
func FormatQuantity(qty decimal.Decimal) string {
	str := qty.Abs().String()
	intPart, frac, hasFrac := strings.Cut(str, ".")

	result := FormatThousands(intPart)
	if hasFrac {
		result += "." + frac
	}
	if qty.IsNegative() {
		result = "-" + result
	}
	return result
}
