package parse

import (
	"regexp"

	"options-tracker/internal/models"
)

var (
	optionSymbol = regexp.MustCompile(`^-?([A-Z]+)(\d{6})([CP])([\d.]+)$`)
	// optionSuffix is the looser test used to recognize option history rows.
	optionSuffix = regexp.MustCompile(`[CP][\d.]+$`)
)

// ParseSymbol decodes an option symbol of the form
// <TICKER><YYMMDD><C|P><STRIKE>, optionally prefixed with "-". A symbol that
// does not match is returned verbatim as the ticker with the other fields
// empty.
func ParseSymbol(symbol string) models.OptionSymbol {
	if symbol == "" {
		return models.OptionSymbol{}
	}
	m := optionSymbol.FindStringSubmatch(symbol)
	if m == nil {
		return models.OptionSymbol{Ticker: symbol}
	}

	ticker, date, right, strike := m[1], m[2], m[3], m[4]
	typ := models.OptionPut
	if right == "C" {
		typ = models.OptionCall
	}
	return models.OptionSymbol{
		Ticker: ticker,
		Expiry: date[2:4] + "/" + date[4:6] + "/20" + date[0:2],
		Type:   typ,
		Strike: strike,
	}
}

// HasOptionSuffix reports whether a symbol ends in a C/P strike suffix.
func HasOptionSuffix(symbol string) bool {
	return optionSuffix.MatchString(symbol)
}
