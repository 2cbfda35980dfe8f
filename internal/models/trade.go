package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Trade is the unified view of a pending order or an executed history record.
type Trade struct {
	Date       string
	When       time.Time
	Ticker     string
	Expiry     string
	Type       OptionType
	Strike     string
	Action     Action
	Quantity   decimal.Decimal
	Price      decimal.Decimal
	Commission decimal.Decimal
	Fees       decimal.Decimal
	Amount     decimal.Decimal
	Status     string
	Source     Source
}

// IsCancelled reports whether the status mentions a cancellation.
func (t Trade) IsCancelled() bool {
	return strings.Contains(strings.ToLower(t.Status), "cancel")
}

// StatusLabel returns the derived display status.
func (t Trade) StatusLabel() string {
	if t.IsCancelled() {
		return StatusCancelled
	}
	return StatusExecuted
}

// IsExecuted reports whether the trade came from executed history.
func (t Trade) IsExecuted() bool {
	return t.Source == SourceHistory
}

// AggregatedTrade is a report row combining trades that share ticker, date,
// expiry, action and type.
type AggregatedTrade struct {
	Trade
	TradeCount int
}

// Row adapts a plain trade to a single-member report row.
func Row(t Trade) AggregatedTrade {
	return AggregatedTrade{Trade: t, TradeCount: 1}
}

// Rows adapts a trade list to report rows.
func Rows(trades []Trade) []AggregatedTrade {
	rows := make([]AggregatedTrade, len(trades))
	for i, t := range trades {
		rows[i] = Row(t)
	}
	return rows
}
