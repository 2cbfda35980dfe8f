package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "options-tracker/internal/errors"
)

func TestDetailsGet(t *testing.T) {
	d := Details{
		{Key: "Action", Value: "Sell to Open Put"},
		{Key: "Quantity", Value: "2"},
		{Key: "Action", Value: "ignored duplicate"},
	}

	assert.Equal(t, "Sell to Open Put", d.Get(DetailAction))
	assert.Equal(t, "2", d.Get(DetailQuantity))
	assert.Equal(t, "", d.Get(DetailFees))
	assert.Equal(t, "", Details(nil).Get(DetailPrice))
}

func TestDetailsGetIsCaseSensitive(t *testing.T) {
	d := Details{{Key: "action", Value: "Buy to Close"}}
	assert.Equal(t, "", d.Get(DetailAction))
}

func TestDetailsLookupRejectsUnknownKey(t *testing.T) {
	d := Details{{Key: "Order Type", Value: "Limit at $1.25"}}

	v, err := d.Lookup("Order Type")
	require.NoError(t, err)
	assert.Equal(t, "Limit at $1.25", v)

	_, err = d.Lookup("Settlement Date")
	assert.True(t, apperrors.Is(err, apperrors.ErrUnknownDetailKey))
}

func TestTradeCancellation(t *testing.T) {
	tests := []struct {
		status    string
		cancelled bool
	}{
		{"Cancelled - Expired", true},
		{"CANCEL REQUESTED", true},
		{"Open", false},
		{"", false},
		{"$10,000.00", false},
	}

	for _, tt := range tests {
		tr := Trade{Status: tt.status}
		assert.Equal(t, tt.cancelled, tr.IsCancelled(), tt.status)
		if tt.cancelled {
			assert.Equal(t, StatusCancelled, tr.StatusLabel())
		} else {
			assert.Equal(t, StatusExecuted, tr.StatusLabel())
		}
	}
}

func TestRows(t *testing.T) {
	rows := Rows([]Trade{{Ticker: "AAPL"}, {Ticker: "SPY"}})
	require.Len(t, rows, 2)
	assert.Equal(t, "SPY", rows[1].Ticker)
	assert.Equal(t, 1, rows[0].TradeCount)
}

func TestMetricsLosses(t *testing.T) {
	m := Metrics{ExecutedTrades: 3, Wins: 2}
	assert.Equal(t, 1, m.Losses())
	assert.Equal(t, 0, Metrics{}.Losses())
}
