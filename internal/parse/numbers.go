// Package parse provides lenient parsers for the text fields of captured
// brokerage activity. None of them fail: malformed input yields a documented
// fallback value.
package parse

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// leadingNumber matches the longest numeric prefix a lenient float parse
	// would accept.
	leadingNumber = regexp.MustCompile(`^[-+]?(\d+(\.\d+)?|\.\d+)([eE][-+]?\d+)?`)
	orderPrice    = regexp.MustCompile(`\$([\d.]+)`)

	amountStripper = strings.NewReplacer("$", "", ",", "", "+", "")
	priceStripper  = strings.NewReplacer("$", "", ",", "")
)

// Number parses the numeric prefix of s, ignoring leading whitespace.
// Anything without a numeric prefix yields zero.
func Number(s string) decimal.Decimal {
	m := leadingNumber.FindString(strings.TrimSpace(s))
	if m == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(strings.TrimPrefix(m, "+"))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseAmount parses a signed currency amount such as "-$1,234.56" or
// "+$20.00". Empty input, "--" and non-numeric text yield zero.
func ParseAmount(s string) decimal.Decimal {
	if s == "" || s == "--" {
		return decimal.Zero
	}
	return Number(amountStripper.Replace(s))
}

// ParsePrice parses a price, commission or fee field, stripping "$" and ",".
func ParsePrice(s string) decimal.Decimal {
	return Number(priceStripper.Replace(s))
}

// ParseDigits keeps only the digits of s, so "2 contracts" and "-2" both
// yield 2. No digits yields zero.
func ParseDigits(s string) decimal.Decimal {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(b.String())
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseContracts parses a history contract count: digits and the decimal
// point are kept, the result is never negative.
func ParseContracts(s string) decimal.Decimal {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	return Number(b.String()).Abs()
}

// ParseOrderPrice returns the first dollar amount in an order-type
// description such as "Limit at $1.25", or zero when there is none.
func ParseOrderPrice(s string) decimal.Decimal {
	m := orderPrice.FindStringSubmatch(s)
	if m == nil {
		return decimal.Zero
	}
	return Number(m[1])
}
