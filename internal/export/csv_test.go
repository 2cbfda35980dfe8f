package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"options-tracker/internal/models"
)

func trade(ticker, date, qty, price, amount, status string) models.Trade {
	when, _ := time.Parse("Jan-02-2006", date)
	return models.Trade{
		Date:     date,
		When:     when,
		Ticker:   ticker,
		Expiry:   "06/20/2025",
		Type:     models.OptionPut,
		Strike:   "150",
		Action:   models.ActionSellToOpen,
		Quantity: decimal.RequireFromString(qty),
		Price:    decimal.RequireFromString(price),
		Amount:   decimal.RequireFromString(amount),
		Status:   status,
		Source:   models.SourceHistory,
	}
}

func TestFormatCSV(t *testing.T) {
	trades := []models.Trade{
		trade("AAPL", "Jun-02-2025", "2", "1.5", "299.3", "Executed"),
		trade("SPY", "Jun-01-2025", "1", "0.333", "-33.3", "Cancelled - Expired"),
	}

	got := string(FormatCSV(trades, Options{}))
	want := "Date,Ticker,Type,Action,Expiry,Qty,Price,P&L,Status\n" +
		`"Jun-02-2025","AAPL","Put","Sell to Open","06/20/2025","2","1.50","299.30","Executed"`
	assert.Equal(t, want, got)
}

func TestFormatCSVShowCancelled(t *testing.T) {
	trades := []models.Trade{
		trade("SPY", "Jun-01-2025", "1", "0.335", "-33.305", "Cancelled - Expired"),
	}

	got := string(FormatCSV(trades, Options{ShowCancelled: true}))
	lines := strings.Split(got, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `"Jun-01-2025","SPY","Put","Sell to Open","06/20/2025","1","0.34","-33.31","Cancelled"`, lines[1])
}

func TestFormatCSVAggregate(t *testing.T) {
	trades := []models.Trade{
		trade("AAPL", "Jun-02-2025", "1", "1", "100", "$9,000.00"),
		trade("AAPL", "Jun-02-2025", "3", "2", "600", "$9,600.00"),
		trade("AAPL", "Jun-02-2025", "5", "9", "900", "Cancelled"),
	}

	got := string(FormatCSV(trades, Options{Aggregate: true}))
	lines := strings.Split(got, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `"Jun-02-2025","AAPL","Put","Sell to Open","06/20/2025","4","1.75","700.00","Executed"`, lines[1])
}

func TestFormatCSVEmpty(t *testing.T) {
	assert.Equal(t, strings.Join(Header, ","), string(FormatCSV(nil, Options{})))
}

func TestFormatCSVIsReadableCSV(t *testing.T) {
	tr := trade(`BR"K`, "Jun-02-2025", "1", "1", "1", "")
	tr.Action = models.ActionNone

	r := csv.NewReader(bytes.NewReader(FormatCSV([]models.Trade{tr}, Options{})))
	records, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, Header, records[0])
	assert.Equal(t, `BR"K`, records[1][1])
	assert.Equal(t, "", records[1][3])
}

func TestFileName(t *testing.T) {
	now := time.Date(2026, 1, 13, 22, 5, 0, 0, time.UTC)
	assert.Equal(t, "options_trades_2026-01-13.csv", FileName(now))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil, Options{}))
	assert.Equal(t, strings.Join(Header, ","), buf.String())

	err := WriteCSV(failingWriter{}, nil, Options{})
	assert.ErrorContains(t, err, "disk full")
}
