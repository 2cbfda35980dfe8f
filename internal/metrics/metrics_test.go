package metrics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"options-tracker/internal/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(d int) time.Time {
	return time.Date(2025, time.June, d, 0, 0, 0, 0, time.UTC)
}

func executed(ticker string, d int, amount string) models.Trade {
	return models.Trade{
		Date:       day(d).Format("Jan-02-2006"),
		When:       day(d),
		Ticker:     ticker,
		Type:       models.OptionPut,
		Action:     models.ActionSellToOpen,
		Amount:     dec(amount),
		Commission: dec("0.65"),
		Fees:       dec("0.03"),
		Source:     models.SourceHistory,
	}
}

func TestComputeBasic(t *testing.T) {
	trades := []models.Trade{
		executed("AAPL", 3, "100"),
		executed("SPY", 2, "-50"),
		executed("AAPL", 1, "25"),
	}

	m := Compute(trades)

	assert.True(t, m.TotalPnL.Equal(dec("75")))
	assert.Equal(t, 3, m.TotalTrades)
	assert.Equal(t, 3, m.ExecutedTrades)
	assert.Equal(t, 2, m.Wins)
	assert.Equal(t, "66.7", m.WinRate.StringFixed(1))
	assert.True(t, m.PremiumCollected.Equal(dec("125")))
	assert.True(t, m.PremiumPaid.Equal(dec("50")))
	assert.True(t, m.TotalFees.Equal(dec("2.04")))

	require.Len(t, m.ByTicker, 2)
	assert.Equal(t, "AAPL", m.ByTicker[0].Ticker)
	assert.True(t, m.ByTicker[0].PnL.Equal(dec("125")))
	assert.Equal(t, "SPY", m.ByTicker[1].Ticker)
	assert.True(t, m.ByTicker[1].PnL.Equal(dec("-50")))

	assert.Equal(t, 3, m.ByAction[models.ActionSellToOpen])
	assert.Equal(t, 3, m.ByType[models.OptionPut])
	assert.Equal(t, 0, m.ByType[models.OptionCall])
}

func TestComputeEmpty(t *testing.T) {
	m := Compute(nil)

	assert.True(t, m.WinRate.IsZero())
	assert.True(t, m.TotalPnL.IsZero())
	assert.Equal(t, 0, m.TotalTrades)
	assert.Empty(t, m.PnLSeries)
	assert.Contains(t, m.ByType, models.OptionPut)
	assert.Contains(t, m.ByType, models.OptionCall)
}

func TestComputeIgnoresPendingForPnL(t *testing.T) {
	pending := executed("TSLA", 4, "900")
	pending.Source = models.SourcePending

	m := Compute([]models.Trade{pending, executed("AAPL", 1, "-10")})

	assert.Equal(t, 2, m.TotalTrades)
	assert.Equal(t, 1, m.ExecutedTrades)
	assert.True(t, m.TotalPnL.Equal(dec("-10")))
	assert.True(t, m.WinRate.IsZero())
	require.Len(t, m.ByTicker, 1)
	assert.Equal(t, "AAPL", m.ByTicker[0].Ticker)
	require.Len(t, m.PnLSeries, 2)
}

func TestComputeSkipsEmptyActionAndUnknownType(t *testing.T) {
	tr := executed("XYZ", 1, "5")
	tr.Action = models.ActionNone
	tr.Type = models.OptionUnknown

	m := Compute([]models.Trade{tr})

	assert.Empty(t, m.ByAction)
	assert.Equal(t, 0, m.ByType[models.OptionPut])
	assert.Len(t, m.ByType, 2)
}

func TestZeroAmountCountsAsPaidNotWin(t *testing.T) {
	m := Compute([]models.Trade{executed("A", 1, "0")})
	assert.Equal(t, 0, m.Wins)
	assert.True(t, m.PremiumPaid.IsZero())
	assert.Equal(t, 1, m.Losses())
}

func TestCumulativeSeries(t *testing.T) {
	trades := []models.Trade{
		executed("C", 5, "30"),
		executed("A", 2, "100"),
		executed("B", 2, "-40"),
	}

	series := CumulativeSeries(trades)
	require.Len(t, series, 4)

	assert.Equal(t, models.StartLabel, series[0].Label)
	assert.True(t, series[0].When.Equal(day(1)))
	assert.True(t, series[0].Cumulative.IsZero())
	assert.Equal(t, "", series[0].Ticker)

	var tickers []string
	var cumulative []string
	for _, p := range series[1:] {
		tickers = append(tickers, p.Ticker)
		cumulative = append(cumulative, p.Cumulative.String())
	}
	assert.Equal(t, []string{"A", "B", "C"}, tickers)
	assert.Equal(t, []string{"100", "60", "90"}, cumulative)
	assert.Equal(t, "Jun-02-2025", series[1].Label)

	// input is untouched
	assert.Equal(t, "C", trades[0].Ticker)
}

func TestWinRateRounding(t *testing.T) {
	assert.Equal(t, "66.7", WinRate(2, 3).String())
	assert.Equal(t, "33.3", WinRate(1, 3).String())
	assert.Equal(t, "100", WinRate(4, 4).String())
	assert.Equal(t, "0", WinRate(0, 0).String())
	assert.Equal(t, "14.3", WinRate(1, 7).String())
}

func TestActionStatsOrder(t *testing.T) {
	m := models.Metrics{ByAction: map[models.Action]int{
		models.ActionBuyToClose: 2,
		models.ActionSellToOpen: 5,
	}}

	stats := ActionStats(m)
	require.Len(t, stats, 2)
	assert.Equal(t, models.ActionSellToOpen, stats[0].Action)
	assert.Equal(t, 5, stats[0].Count)
	assert.Equal(t, models.ActionBuyToClose, stats[1].Action)
}

func TestTypeShare(t *testing.T) {
	split := TypeShare(models.Metrics{ByType: map[models.OptionType]int{
		models.OptionPut:  2,
		models.OptionCall: 1,
	}})
	assert.Equal(t, 2, split.Puts)
	assert.Equal(t, "67", split.PutShare.String())
	assert.Equal(t, "33", split.CallShare.String())

	empty := TypeShare(Compute(nil))
	assert.True(t, empty.PutShare.IsZero())
	assert.True(t, empty.CallShare.IsZero())
}
