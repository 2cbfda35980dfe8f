// Package ledger ties the parsing, metrics and export stages together for one
// captured snapshot of account activity.
package ledger

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"options-tracker/internal/export"
	"options-tracker/internal/metrics"
	"options-tracker/internal/models"
	"options-tracker/internal/normalize"
	"options-tracker/internal/parse"
)

// ViewOptions controls which rows a table view shows.
type ViewOptions struct {
	ShowCancelled bool
	Aggregate     bool
}

// Ledger holds the option trades of one snapshot.
type Ledger struct {
	trades    []models.Trade
	orders    int
	histories int
	now       time.Time
}

// New builds a ledger from raw activity. Dates are read in loc; unparsable
// dates resolve to now.
func New(orders []models.RawOrder, histories []models.RawHistoryRecord, loc *time.Location, now time.Time, logger zerolog.Logger) *Ledger {
	optionOrders, optionHistories := normalize.FilterOptions(orders, histories)
	trades := normalize.New(loc, now).Normalize(optionOrders, optionHistories)

	q := inspect(optionOrders, optionHistories, parse.NewDateParser(loc, now))
	logger.Debug().
		Int("orders", len(orders)).
		Int("histories", len(histories)).
		Int("option_trades", len(trades)).
		Int("undecoded_symbols", q.undecodedSymbols).
		Msg("Normalized activity")
	if q.undatedRecords > 0 {
		logger.Warn().
			Int("records", q.undatedRecords).
			Time("fallback", now).
			Msg("Unparsable activity dates, using capture time")
	}

	return &Ledger{
		trades:    trades,
		orders:    len(orders),
		histories: len(histories),
		now:       now,
	}
}

// quality counts option records whose fields fell back to defaults.
type quality struct {
	undatedRecords   int
	undecodedSymbols int
}

func inspect(orders []models.RawOrder, histories []models.RawHistoryRecord, dates parse.DateParser) quality {
	var q quality
	check := func(date, symbol string) {
		if !dates.Valid(date) {
			q.undatedRecords++
		}
		if !parse.ParseSymbol(symbol).Valid() {
			q.undecodedSymbols++
		}
	}
	for _, o := range orders {
		check(o.Date, o.BriefSymbol)
	}
	for _, h := range histories {
		check(h.Date, h.Symbol)
	}
	return q
}

// FromSnapshot builds a ledger from a stored snapshot.
func FromSnapshot(s *models.Snapshot, loc *time.Location, now time.Time, logger zerolog.Logger) *Ledger {
	if s == nil {
		return New(nil, nil, loc, now, logger)
	}
	return New(s.Orders, s.Histories, loc, now, logger.With().Str("snapshot", s.ID).Logger())
}

// NormalizeAndFilter keeps the option records of a capture and returns them
// as trades sorted most recent first, using the local zone and the current
// time as the date fallback.
func NormalizeAndFilter(orders []models.RawOrder, histories []models.RawHistoryRecord) []models.Trade {
	return normalize.New(time.Local, time.Now()).NormalizeAndFilter(orders, histories)
}

// All returns every option trade, cancelled ones included.
func (l *Ledger) All() []models.Trade {
	return l.trades
}

// Active returns the trades that were not cancelled.
func (l *Ledger) Active() []models.Trade {
	active := make([]models.Trade, 0, len(l.trades))
	for _, t := range l.trades {
		if !t.IsCancelled() {
			active = append(active, t)
		}
	}
	return active
}

// Metrics computes statistics over the active trades.
func (l *Ledger) Metrics() models.Metrics {
	return metrics.Compute(l.Active())
}

// View returns the rows of the trades table.
func (l *Ledger) View(opts ViewOptions) []models.AggregatedTrade {
	return export.Select(l.trades, export.Options(opts))
}

// Export renders the CSV download for the given view.
func (l *Ledger) Export(opts ViewOptions) []byte {
	return export.FormatCSV(l.trades, export.Options(opts))
}

// WriteExport writes the CSV export to w.
func (l *Ledger) WriteExport(w io.Writer, opts ViewOptions) error {
	return export.WriteCSV(w, l.trades, export.Options(opts))
}

// ExportName is the default file name for an export of this ledger.
func (l *Ledger) ExportName() string {
	return export.FileName(l.now)
}

// Empty reports whether the snapshot holds no option trades.
func (l *Ledger) Empty() bool {
	return len(l.trades) == 0
}

// Counts returns the raw record counts the ledger was built from.
func (l *Ledger) Counts() (orders, histories int) {
	return l.orders, l.histories
}

// StatusLine summarizes the capture state in one line.
func (l *Ledger) StatusLine() string {
	if l.orders == 0 && l.histories == 0 {
		return "No data yet."
	}
	return fmt.Sprintf("Ready - %d trades found", len(l.trades))
}
