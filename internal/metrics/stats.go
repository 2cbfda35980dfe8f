package metrics

import (
	"github.com/shopspring/decimal"

	"options-tracker/internal/models"
)

// ActionCount is the number of executed trades with a given action.
type ActionCount struct {
	Action models.Action
	Count  int
}

// ActionStats lists the non-zero action counts in display order.
func ActionStats(m models.Metrics) []ActionCount {
	var out []ActionCount
	for _, a := range models.Actions {
		if n := m.ByAction[a]; n > 0 {
			out = append(out, ActionCount{Action: a, Count: n})
		}
	}
	return out
}

// TypeSplit is the put/call breakdown of executed trades.
type TypeSplit struct {
	Puts      int
	Calls     int
	PutShare  decimal.Decimal // percent, whole number
	CallShare decimal.Decimal
}

// TypeShare returns put and call counts with their whole-percent shares.
// Shares are zero when no trade carries a type.
func TypeShare(m models.Metrics) TypeSplit {
	split := TypeSplit{
		Puts:      m.ByType[models.OptionPut],
		Calls:     m.ByType[models.OptionCall],
		PutShare:  decimal.Zero,
		CallShare: decimal.Zero,
	}
	total := split.Puts + split.Calls
	if total == 0 {
		return split
	}
	t := decimal.NewFromInt(int64(total))
	split.PutShare = decimal.NewFromInt(int64(split.Puts)).Mul(hundred).Div(t).Round(0)
	split.CallShare = decimal.NewFromInt(int64(split.Calls)).Mul(hundred).Div(t).Round(0)
	return split
}
