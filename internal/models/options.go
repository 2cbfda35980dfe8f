package models

// OptionSymbol is the decoded form of an option symbol such as
// AAPL250620C00150000. Fields other than Ticker are empty when the symbol
// could not be decoded.
type OptionSymbol struct {
	Ticker string
	Expiry string // MM/DD/YYYY
	Type   OptionType
	Strike string
}

// Valid reports whether the symbol decoded into a full contract.
func (s OptionSymbol) Valid() bool {
	return s.Expiry != "" && s.Type != OptionUnknown
}
