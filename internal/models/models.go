// Package models provides domain models for the options tracker.
package models

// OptionType represents the right of an option contract.
type OptionType string

const (
	OptionCall    OptionType = "Call"
	OptionPut     OptionType = "Put"
	OptionUnknown OptionType = ""
)

// Action represents the opening/closing side of an option trade.
type Action string

const (
	ActionSellToOpen  Action = "Sell to Open"
	ActionSellToClose Action = "Sell to Close"
	ActionBuyToOpen   Action = "Buy to Open"
	ActionBuyToClose  Action = "Buy to Close"
	ActionNone        Action = ""
)

// Actions lists the known actions in display order.
var Actions = []Action{
	ActionSellToOpen,
	ActionSellToClose,
	ActionBuyToOpen,
	ActionBuyToClose,
}

// IsSell reports whether the action sells contracts.
func (a Action) IsSell() bool {
	return a == ActionSellToOpen || a == ActionSellToClose
}

// Source identifies where a trade came from. It never changes after
// normalization.
type Source string

const (
	SourcePending Source = "Pending"
	SourceHistory Source = "History"
)

// Status labels used for display and export.
const (
	StatusExecuted  = "Executed"
	StatusCancelled = "Cancelled"
)
