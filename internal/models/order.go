package models

import (
	"fmt"

	apperrors "options-tracker/internal/errors"
)

// DetailKey is a key from the closed vocabulary used in activity detail lists.
type DetailKey string

const (
	DetailAction     DetailKey = "Action"
	DetailQuantity   DetailKey = "Quantity"
	DetailOrderType  DetailKey = "Order Type"
	DetailContracts  DetailKey = "Contracts"
	DetailPrice      DetailKey = "Price"
	DetailCommission DetailKey = "Commission"
	DetailFees       DetailKey = "Fees"
)

var detailKeys = map[DetailKey]struct{}{
	DetailAction:     {},
	DetailQuantity:   {},
	DetailOrderType:  {},
	DetailContracts:  {},
	DetailPrice:      {},
	DetailCommission: {},
	DetailFees:       {},
}

// ParseDetailKey converts a free-form key name into a DetailKey. Names outside
// the vocabulary are rejected.
func ParseDetailKey(name string) (DetailKey, error) {
	k := DetailKey(name)
	if _, ok := detailKeys[k]; !ok {
		return "", fmt.Errorf("%w: %q", apperrors.ErrUnknownDetailKey, name)
	}
	return k, nil
}

// DetailItem is one key/value pair of a record's detail list.
type DetailItem struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Details is a record's detail list as captured.
type Details []DetailItem

// Get returns the value of the first item whose key matches exactly, or ""
// when the key is absent.
func (d Details) Get(key DetailKey) string {
	for _, item := range d {
		if item.Key == string(key) {
			return item.Value
		}
	}
	return ""
}

// RawOrder is a pending-order snapshot as returned by the activity API.
type RawOrder struct {
	BriefSymbol string  `json:"briefSymbol"`
	IsOption    bool    `json:"isOption"`
	DetailItems Details `json:"detailItems"`
	Date        string  `json:"date"`
	Amount      string  `json:"amount"`
	Status      string  `json:"status"`
}

// RawHistoryRecord is an executed-transaction snapshot as returned by the
// activity API.
type RawHistoryRecord struct {
	Symbol      string  `json:"symbol"`
	Description string  `json:"description"`
	DetailItems Details `json:"detailItems"`
	Date        string  `json:"date"`
	Amount      string  `json:"amount"`
	CashBalance string  `json:"cashBalance"`
}

// Lookup is Get for a key name known only at run time. Names outside the
// vocabulary return ErrUnknownDetailKey instead of a silent "".
func (d Details) Lookup(name string) (string, error) {
	key, err := ParseDetailKey(name)
	if err != nil {
		return "", err
	}
	return d.Get(key), nil
}
