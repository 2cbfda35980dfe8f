// Package export renders trades as the downloadable CSV file.
package export

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"options-tracker/internal/aggregate"
	"options-tracker/internal/models"
)

// Header is the CSV header row.
var Header = []string{"Date", "Ticker", "Type", "Action", "Expiry", "Qty", "Price", "P&L", "Status"}

// Options selects which trades are exported and how.
type Options struct {
	ShowCancelled bool
	Aggregate     bool
}

// Select applies the table pipeline: cancelled trades are dropped unless
// ShowCancelled is set, then trades are grouped when Aggregate is set.
func Select(trades []models.Trade, opts Options) []models.AggregatedTrade {
	selected := trades
	if !opts.ShowCancelled {
		selected = make([]models.Trade, 0, len(trades))
		for _, t := range trades {
			if !t.IsCancelled() {
				selected = append(selected, t)
			}
		}
	}
	if opts.Aggregate {
		return aggregate.Aggregate(selected)
	}
	return models.Rows(selected)
}

// FormatCSV renders trades as CSV. The header row is bare, every data field
// is quoted, and rows are separated by "\n" without a trailing newline.
func FormatCSV(trades []models.Trade, opts Options) []byte {
	return FormatRows(Select(trades, opts))
}

// FormatRows renders rows that have already been selected. Cancelled rows are
// labelled, not dropped.
func FormatRows(rows []models.AggregatedTrade) []byte {
	var buf bytes.Buffer
	buf.WriteString(strings.Join(Header, ","))
	for _, r := range rows {
		buf.WriteByte('\n')
		fields := []string{
			r.Date,
			r.Ticker,
			string(r.Type),
			string(r.Action),
			r.Expiry,
			r.Quantity.String(),
			r.Price.StringFixed(2),
			r.Amount.StringFixed(2),
			r.StatusLabel(),
		}
		for i, f := range fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(quote(f))
		}
	}
	return buf.Bytes()
}

// WriteCSV writes the CSV for trades to w.
func WriteCSV(w io.Writer, trades []models.Trade, opts Options) error {
	if _, err := w.Write(FormatCSV(trades, opts)); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}
	return nil
}

// FileName returns the default download name for an export made at now.
func FileName(now time.Time) string {
	return "options_trades_" + now.Format("2006-01-02") + ".csv"
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
