// Package capture decodes activity payloads captured from the brokerage web
// activity API.
package capture

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	apperrors "options-tracker/internal/errors"
	"options-tracker/internal/models"
)

// Endpoint is the path fragment of the activity API.
const Endpoint = "webactivity/api/graphql"

// Payload is the pair of record lists one capture delivers.
type Payload struct {
	Orders    []models.RawOrder
	Histories []models.RawHistoryRecord
}

// Empty reports whether the payload has no records at all.
func (p Payload) Empty() bool {
	return len(p.Orders) == 0 && len(p.Histories) == 0
}

type transactions struct {
	Orders    []models.RawOrder         `json:"orders"`
	Histories []models.RawHistoryRecord `json:"historys"`
}

// envelope accepts both the raw API response and an export of the browser
// extension storage.
type envelope struct {
	Data *struct {
		GetTransactions *transactions `json:"getTransactions"`
	} `json:"data"`
	StoredOrders    *[]models.RawOrder         `json:"fidelity_orders"`
	StoredHistories *[]models.RawHistoryRecord `json:"fidelity_historys"`
}

// IsActivityEndpoint reports whether url is an activity API request.
func IsActivityEndpoint(url string) bool {
	return strings.Contains(url, Endpoint)
}

// Decode reads one payload from r. source names the input in errors.
func Decode(r io.Reader, source string) (Payload, error) {
	var env envelope
	if err := json.NewDecoder(r).Decode(&env); err != nil {
		return Payload{}, apperrors.NewCaptureError(source, "malformed JSON", err)
	}

	switch {
	case env.Data != nil && env.Data.GetTransactions != nil:
		txn := env.Data.GetTransactions
		return normalizePayload(txn.Orders, txn.Histories), nil
	case env.StoredOrders != nil || env.StoredHistories != nil:
		var p Payload
		if env.StoredOrders != nil {
			p.Orders = *env.StoredOrders
		}
		if env.StoredHistories != nil {
			p.Histories = *env.StoredHistories
		}
		return normalizePayload(p.Orders, p.Histories), nil
	default:
		return Payload{}, apperrors.NewCaptureError(source, "no getTransactions field", apperrors.ErrNoTransactions)
	}
}

// DecodeFile decodes the payload stored at path.
func DecodeFile(path string) (Payload, error) {
	f, err := os.Open(path)
	if err != nil {
		return Payload{}, apperrors.Wrap(err, "failed to open capture")
	}
	defer f.Close()

	return Decode(f, path)
}

func normalizePayload(orders []models.RawOrder, histories []models.RawHistoryRecord) Payload {
	if orders == nil {
		orders = []models.RawOrder{}
	}
	if histories == nil {
		histories = []models.RawHistoryRecord{}
	}
	return Payload{Orders: orders, Histories: histories}
}
