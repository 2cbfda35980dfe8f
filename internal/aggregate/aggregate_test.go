package aggregate

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"options-tracker/internal/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func fill(ticker string, d int, qty, price, amount string) models.Trade {
	when := time.Date(2025, time.June, d, 0, 0, 0, 0, time.UTC)
	return models.Trade{
		Date:       when.Format("Jan-02-2006"),
		When:       when,
		Ticker:     ticker,
		Expiry:     "06/20/2025",
		Type:       models.OptionPut,
		Strike:     "150",
		Action:     models.ActionSellToOpen,
		Quantity:   dec(qty),
		Price:      dec(price),
		Commission: dec("0.65"),
		Fees:       dec("0.02"),
		Amount:     dec(amount),
		Status:     "Executed",
		Source:     models.SourceHistory,
	}
}

func TestAggregateCombinesGroup(t *testing.T) {
	a := fill("AAPL", 2, "1", "1.00", "100")
	b := fill("AAPL", 2, "3", "2.00", "600")
	b.Strike = "155"
	b.Status = "later status"

	rows := Aggregate([]models.Trade{a, b})
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, 2, row.TradeCount)
	assert.True(t, row.Quantity.Equal(dec("4")))
	assert.True(t, row.Amount.Equal(dec("700")))
	assert.True(t, row.Commission.Equal(dec("1.3")))
	assert.True(t, row.Fees.Equal(dec("0.04")))
	assert.True(t, row.Price.Equal(dec("1.75")), row.Price.String())
	assert.Equal(t, "150", row.Strike, "strike comes from the first member")
	assert.Equal(t, "Executed", row.Status)
}

func TestAggregateSeparatesKeys(t *testing.T) {
	put := fill("AAPL", 2, "1", "1", "100")
	call := fill("AAPL", 2, "1", "1", "100")
	call.Type = models.OptionCall
	closing := fill("AAPL", 2, "1", "1", "-50")
	closing.Action = models.ActionBuyToClose
	otherDay := fill("AAPL", 3, "1", "1", "100")

	rows := Aggregate([]models.Trade{put, call, closing, otherDay})
	require.Len(t, rows, 4)
	assert.Equal(t, "Jun-03-2025", rows[0].Date)
	for _, r := range rows {
		assert.Equal(t, 1, r.TradeCount)
	}
}

func TestAggregateZeroQuantityPrice(t *testing.T) {
	rows := Aggregate([]models.Trade{fill("X", 1, "0", "3.50", "0")})
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Price.IsZero())
}

func TestAggregateOrdersByDateNotInsertion(t *testing.T) {
	rows := Aggregate([]models.Trade{
		fill("OLD", 1, "1", "1", "1"),
		fill("NEW", 9, "1", "1", "1"),
		fill("MID", 5, "1", "1", "1"),
	})
	var got []string
	for _, r := range rows {
		got = append(got, r.Ticker)
	}
	assert.Equal(t, []string{"NEW", "MID", "OLD"}, got)
}

func TestAggregateEmpty(t *testing.T) {
	rows := Aggregate(nil)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

// Group totals match the sums over their members.
func TestProperty_AggregationRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	tickers := []string{"AAPL", "SPY", "QQQ"}

	properties.Property("quantity and notional are preserved per group", prop.ForAll(
		func(picks []int, qtys []int, cents []int) bool {
			n := len(picks)
			if len(qtys) < n {
				n = len(qtys)
			}
			if len(cents) < n {
				n = len(cents)
			}

			trades := make([]models.Trade, n)
			for i := 0; i < n; i++ {
				trades[i] = fill(tickers[picks[i]%len(tickers)], 1+picks[i]%2,
					decimal.NewFromInt(int64(qtys[i])).String(),
					decimal.New(int64(cents[i]), -2).String(),
					"1")
			}

			rows := Aggregate(trades)

			var totalRows, totalTrades decimal.Decimal
			for _, r := range rows {
				totalRows = totalRows.Add(r.Quantity)

				var qty, notional decimal.Decimal
				count := 0
				for _, tr := range trades {
					if KeyOf(tr) == KeyOf(r.Trade) {
						qty = qty.Add(tr.Quantity)
						notional = notional.Add(tr.Price.Mul(tr.Quantity))
						count++
					}
				}
				if !qty.Equal(r.Quantity) || count != r.TradeCount {
					return false
				}
				if qty.IsPositive() && r.Price.Mul(r.Quantity).Sub(notional).Abs().GreaterThan(dec("0.000001")) {
					return false
				}
			}
			for _, tr := range trades {
				totalTrades = totalTrades.Add(tr.Quantity)
			}
			return totalRows.Equal(totalTrades)
		},
		gen.SliceOf(gen.IntRange(0, 5)),
		gen.SliceOf(gen.IntRange(0, 20)),
		gen.SliceOf(gen.IntRange(0, 100000)),
	))

	properties.TestingRun(t)
}
