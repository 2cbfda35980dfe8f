// Package metrics computes realized performance statistics over a trade list.
package metrics

import (
	"sort"

	"github.com/shopspring/decimal"

	"options-tracker/internal/models"
)

var hundred = decimal.NewFromInt(100)

// accumulator is the running state of the single metrics pass. It is
// threaded through the fold and only escapes as the returned Metrics.
type accumulator struct {
	totalPnL         decimal.Decimal
	totalFees        decimal.Decimal
	premiumCollected decimal.Decimal
	premiumPaid      decimal.Decimal
	wins             int
	executed         []models.Trade
	tickers          []models.TickerPnL
	tickerIndex      map[string]int
	byAction         map[models.Action]int
	byType           map[models.OptionType]int
}

func newAccumulator() accumulator {
	return accumulator{
		totalPnL:         decimal.Zero,
		totalFees:        decimal.Zero,
		premiumCollected: decimal.Zero,
		premiumPaid:      decimal.Zero,
		tickerIndex:      make(map[string]int),
		byAction:         make(map[models.Action]int),
		byType:           map[models.OptionType]int{models.OptionPut: 0, models.OptionCall: 0},
	}
}

func (a accumulator) add(t models.Trade) accumulator {
	a.totalPnL = a.totalPnL.Add(t.Amount)
	a.totalFees = a.totalFees.Add(t.Commission).Add(t.Fees)

	if t.Amount.IsPositive() {
		a.wins++
		a.premiumCollected = a.premiumCollected.Add(t.Amount)
	} else {
		a.premiumPaid = a.premiumPaid.Add(t.Amount.Abs())
	}

	if i, ok := a.tickerIndex[t.Ticker]; ok {
		a.tickers[i].PnL = a.tickers[i].PnL.Add(t.Amount)
	} else {
		a.tickerIndex[t.Ticker] = len(a.tickers)
		a.tickers = append(a.tickers, models.TickerPnL{Ticker: t.Ticker, PnL: t.Amount})
	}

	if t.Action != models.ActionNone {
		a.byAction[t.Action]++
	}
	if t.Type == models.OptionPut || t.Type == models.OptionCall {
		a.byType[t.Type]++
	}

	a.executed = append(a.executed, t)
	return a
}

// Compute summarizes trades. Callers drop cancelled trades first. Only
// executed (history) trades contribute to P&L, fees, wins and premiums;
// pending trades only count towards TotalTrades.
func Compute(trades []models.Trade) models.Metrics {
	acc := newAccumulator()
	for _, t := range trades {
		if t.IsExecuted() {
			acc = acc.add(t)
		}
	}

	executed := len(acc.executed)
	return models.Metrics{
		TotalPnL:         acc.totalPnL,
		TotalTrades:      len(trades),
		ExecutedTrades:   executed,
		Wins:             acc.wins,
		WinRate:          WinRate(acc.wins, executed),
		PremiumCollected: acc.premiumCollected,
		PremiumPaid:      acc.premiumPaid,
		TotalFees:        acc.totalFees,
		ByTicker:         acc.tickers,
		ByAction:         acc.byAction,
		ByType:           acc.byType,
		PnLSeries:        CumulativeSeries(acc.executed),
	}
}

// WinRate returns wins/total as a percentage rounded to one decimal place,
// or zero when there are no trades.
func WinRate(wins, total int) decimal.Decimal {
	if total == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(wins)).
		Mul(hundred).
		Div(decimal.NewFromInt(int64(total))).
		Round(1)
}

// CumulativeSeries orders executed trades oldest first and returns the
// running P&L, headed by a zero "Start" point dated one day before the first
// trade. Trades on the same date keep their relative order.
func CumulativeSeries(executed []models.Trade) []models.PnLPoint {
	if len(executed) == 0 {
		return []models.PnLPoint{}
	}

	sorted := make([]models.Trade, len(executed))
	copy(sorted, executed)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].When.Before(sorted[j].When)
	})

	points := make([]models.PnLPoint, 0, len(sorted)+1)
	points = append(points, models.PnLPoint{
		Label:      models.StartLabel,
		When:       sorted[0].When.AddDate(0, 0, -1),
		Amount:     decimal.Zero,
		Cumulative: decimal.Zero,
	})

	cumulative := decimal.Zero
	for _, t := range sorted {
		cumulative = cumulative.Add(t.Amount)
		points = append(points, models.PnLPoint{
			Label:      t.Date,
			When:       t.When,
			Ticker:     t.Ticker,
			Amount:     t.Amount,
			Cumulative: cumulative,
		})
	}
	return points
}
