// Package normalize turns raw activity records into unified trades.
package normalize

import (
	"strings"

	"options-tracker/internal/models"
	"options-tracker/internal/parse"
)

// optionDescriptionMarkers flag a history description as an option
// transaction. Matching is done on the upper-cased description.
var optionDescriptionMarkers = []string{
	"PUT",
	"CALL",
	"OPENING TRANSACTION",
	"CLOSING TRANSACTION",
}

// IsOptionOrder reports whether a pending order is an option order.
func IsOptionOrder(o models.RawOrder) bool {
	return o.IsOption
}

// IsOptionHistory reports whether a history record is an option transaction,
// judged by its symbol suffix or its description.
func IsOptionHistory(h models.RawHistoryRecord) bool {
	if h.Symbol != "" && parse.HasOptionSuffix(h.Symbol) {
		return true
	}
	desc := strings.ToUpper(h.Description)
	for _, marker := range optionDescriptionMarkers {
		if strings.Contains(desc, marker) {
			return true
		}
	}
	return false
}

// FilterOptions drops records that are not option activity. Input order is
// preserved.
func FilterOptions(orders []models.RawOrder, histories []models.RawHistoryRecord) ([]models.RawOrder, []models.RawHistoryRecord) {
	optionOrders := make([]models.RawOrder, 0, len(orders))
	for _, o := range orders {
		if IsOptionOrder(o) {
			optionOrders = append(optionOrders, o)
		}
	}

	optionHistories := make([]models.RawHistoryRecord, 0, len(histories))
	for _, h := range histories {
		if IsOptionHistory(h) {
			optionHistories = append(optionHistories, h)
		}
	}

	return optionOrders, optionHistories
}
