package normalize

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"options-tracker/internal/models"
	"options-tracker/internal/parse"
)

// historyActions maps description phrases to actions, checked in order.
var historyActions = []struct {
	phrase string
	action models.Action
}{
	{"SOLD OPENING", models.ActionSellToOpen},
	{"SOLD CLOSING", models.ActionSellToClose},
	{"BOUGHT OPENING", models.ActionBuyToOpen},
	{"BOUGHT CLOSING", models.ActionBuyToClose},
}

// Normalizer converts raw records into trades.
type Normalizer struct {
	dates parse.DateParser
}

// New returns a Normalizer that reads dates in loc. Dates that cannot be
// parsed resolve to now.
func New(loc *time.Location, now time.Time) *Normalizer {
	return &Normalizer{dates: parse.NewDateParser(loc, now)}
}

// FromOrder converts a pending order.
func (n *Normalizer) FromOrder(o models.RawOrder) models.Trade {
	sym := parse.ParseSymbol(o.BriefSymbol)
	return models.Trade{
		Date:       o.Date,
		When:       n.dates.Parse(o.Date),
		Ticker:     sym.Ticker,
		Expiry:     sym.Expiry,
		Type:       sym.Type,
		Strike:     sym.Strike,
		Action:     parse.NormalizeAction(o.DetailItems.Get(models.DetailAction)),
		Quantity:   parse.ParseDigits(o.DetailItems.Get(models.DetailQuantity)),
		Price:      parse.ParseOrderPrice(o.DetailItems.Get(models.DetailOrderType)),
		Commission: decimal.Zero,
		Fees:       decimal.Zero,
		Amount:     parse.ParseAmount(o.Amount),
		Status:     o.Status,
		Source:     models.SourcePending,
	}
}

// FromHistory converts an executed history record. The cash balance doubles
// as the status, defaulting to "Executed".
func (n *Normalizer) FromHistory(h models.RawHistoryRecord) models.Trade {
	sym := parse.ParseSymbol(h.Symbol)
	status := h.CashBalance
	if status == "" {
		status = models.StatusExecuted
	}
	return models.Trade{
		Date:       h.Date,
		When:       n.dates.Parse(h.Date),
		Ticker:     sym.Ticker,
		Expiry:     sym.Expiry,
		Type:       sym.Type,
		Strike:     sym.Strike,
		Action:     HistoryAction(h.Description),
		Quantity:   parse.ParseContracts(h.DetailItems.Get(models.DetailContracts)),
		Price:      parse.ParsePrice(h.DetailItems.Get(models.DetailPrice)),
		Commission: parse.ParsePrice(h.DetailItems.Get(models.DetailCommission)),
		Fees:       parse.ParsePrice(h.DetailItems.Get(models.DetailFees)),
		Amount:     parse.ParseAmount(h.Amount),
		Status:     status,
		Source:     models.SourceHistory,
	}
}

// HistoryAction derives the action from a history description.
func HistoryAction(description string) models.Action {
	for _, rule := range historyActions {
		if strings.Contains(description, rule.phrase) {
			return rule.action
		}
	}
	return models.ActionNone
}

// Normalize converts orders then histories and sorts the result most recent
// first. Trades with equal dates keep their input order.
func (n *Normalizer) Normalize(orders []models.RawOrder, histories []models.RawHistoryRecord) []models.Trade {
	trades := make([]models.Trade, 0, len(orders)+len(histories))
	for _, o := range orders {
		trades = append(trades, n.FromOrder(o))
	}
	for _, h := range histories {
		trades = append(trades, n.FromHistory(h))
	}

	SortNewestFirst(trades)
	return trades
}

// NormalizeAndFilter keeps only option records and normalizes them.
func (n *Normalizer) NormalizeAndFilter(orders []models.RawOrder, histories []models.RawHistoryRecord) []models.Trade {
	optionOrders, optionHistories := FilterOptions(orders, histories)
	return n.Normalize(optionOrders, optionHistories)
}

// SortNewestFirst stable-sorts trades by date, most recent first.
func SortNewestFirst(trades []models.Trade) {
	sort.SliceStable(trades, func(i, j int) bool {
		return trades[i].When.After(trades[j].When)
	})
}
