// Package aggregate combines same-day executions of the same contract into
// single report rows.
package aggregate

import (
	"sort"

	"github.com/shopspring/decimal"

	"options-tracker/internal/models"
)

// Key identifies a group of trades that are reported as one row.
type Key struct {
	Ticker string
	Date   string
	Expiry string
	Action models.Action
	Type   models.OptionType
}

// KeyOf returns the grouping key of a trade.
func KeyOf(t models.Trade) Key {
	return Key{
		Ticker: t.Ticker,
		Date:   t.Date,
		Expiry: t.Expiry,
		Action: t.Action,
		Type:   t.Type,
	}
}

type group struct {
	row      models.AggregatedTrade
	notional decimal.Decimal // sum of price*qty
}

// Aggregate groups trades by ticker, display date, expiry, action and type.
// Quantity, amount, commission and fees are summed, price becomes the
// quantity-weighted average, and the remaining fields come from the first
// trade of each group. Rows are sorted most recent first.
func Aggregate(trades []models.Trade) []models.AggregatedTrade {
	index := make(map[Key]int)
	groups := make([]group, 0)

	for _, t := range trades {
		k := KeyOf(t)
		i, ok := index[k]
		if !ok {
			first := t
			first.Quantity = decimal.Zero
			first.Amount = decimal.Zero
			first.Commission = decimal.Zero
			first.Fees = decimal.Zero
			first.Price = decimal.Zero

			i = len(groups)
			index[k] = i
			groups = append(groups, group{
				row:      models.AggregatedTrade{Trade: first},
				notional: decimal.Zero,
			})
		}

		g := &groups[i]
		g.row.Quantity = g.row.Quantity.Add(t.Quantity)
		g.row.Amount = g.row.Amount.Add(t.Amount)
		g.row.Commission = g.row.Commission.Add(t.Commission)
		g.row.Fees = g.row.Fees.Add(t.Fees)
		g.row.TradeCount++
		g.notional = g.notional.Add(t.Price.Mul(t.Quantity))
	}

	rows := make([]models.AggregatedTrade, len(groups))
	for i, g := range groups {
		row := g.row
		if row.Quantity.IsPositive() {
			row.Price = g.notional.Div(row.Quantity)
		}
		rows[i] = row
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].When.After(rows[j].When)
	})
	return rows
}
