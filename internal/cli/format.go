package cli

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"options-tracker/internal/models"
	"options-tracker/pkg/utils"
)

// FormatCurrency formats an amount as a signed dollar figure, e.g. +$1,234.56.
func FormatCurrency(amount decimal.Decimal) string {
	return utils.FormatPnL(amount)
}

// FormatPremium formats collected premium, always shown as a credit.
func FormatPremium(amount decimal.Decimal) string {
	return "+" + utils.FormatCurrency(amount.Abs())
}

// FormatFees formats fees, always shown as a debit.
func FormatFees(amount decimal.Decimal) string {
	return "-" + utils.FormatCurrency(amount.Abs())
}

// FormatWinRate formats a win rate with one decimal, e.g. 66.7%.
func FormatWinRate(rate decimal.Decimal) string {
	return utils.FormatPercent(rate, 1)
}

// FormatPrice formats a per-contract price, e.g. $1.50.
func FormatPrice(price decimal.Decimal) string {
	return "$" + price.StringFixed(2)
}

// FormatAmountCell formats a row amount, showing "-" for zero.
func FormatAmountCell(amount decimal.Decimal) string {
	if amount.IsZero() {
		return "-"
	}
	return FormatCurrency(amount)
}

// FormatQuantityCell formats a row quantity. Aggregated rows built from more
// than one trade show the trade count, e.g. "4 (2)".
func FormatQuantityCell(row models.AggregatedTrade, aggregated bool) string {
	qty := utils.FormatQuantity(row.Quantity)
	if aggregated && row.TradeCount > 1 {
		return fmt.Sprintf("%s (%d)", qty, row.TradeCount)
	}
	return qty
}

// FormatAction formats an action, showing "-" when unknown.
func FormatAction(a models.Action) string {
	if a == models.ActionNone {
		return "-"
	}
	return string(a)
}

// FormatDateTime formats a capture timestamp in loc.
func FormatDateTime(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format("2006-01-02 15:04:05")
}

// TruncateString truncates a string to the specified length.
func TruncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
