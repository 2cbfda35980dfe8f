package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// StartLabel labels the synthetic zero point at the head of a P&L series.
const StartLabel = "Start"

// PnLPoint is one point of the cumulative realized P&L series.
type PnLPoint struct {
	Label      string
	When       time.Time
	Ticker     string
	Amount     decimal.Decimal
	Cumulative decimal.Decimal
}

// TickerPnL is the realized P&L of one ticker.
type TickerPnL struct {
	Ticker string
	PnL    decimal.Decimal
}

// Metrics summarizes a trade list.
type Metrics struct {
	TotalPnL         decimal.Decimal
	TotalTrades      int
	ExecutedTrades   int
	Wins             int
	WinRate          decimal.Decimal // percent, one decimal place
	PremiumCollected decimal.Decimal
	PremiumPaid      decimal.Decimal
	TotalFees        decimal.Decimal
	ByTicker         []TickerPnL // first-seen order
	ByAction         map[Action]int
	ByType           map[OptionType]int // always holds Put and Call
	PnLSeries        []PnLPoint
}

// Losses returns the number of executed trades that did not make money.
func (m Metrics) Losses() int {
	return m.ExecutedTrades - m.Wins
}
