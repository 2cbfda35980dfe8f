package parse

import (
	"strings"
	"time"
)

// dateLayouts are the accepted activity date formats, tried in order.
var dateLayouts = []string{
	"Jan-02-2006",
	"Jan-2-2006",
	"02 Jan 2006",
	"2 Jan 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"01/02/2006",
	"1/2/2006",
	"2006-01-02",
	"Jan-02-2006 15:04",
	"Jan-02-2006 3:04 PM",
	"01/02/2006 15:04",
	time.RFC3339,
}

// DateParser parses activity dates in a fixed location. Unparsable input
// resolves to Now(), which is a documented fallback and not an error.
type DateParser struct {
	Location *time.Location
	Now      func() time.Time
}

// NewDateParser returns a parser for loc whose fallback is frozen at now, so
// every unparsable date in one batch gets the same key.
func NewDateParser(loc *time.Location, now time.Time) DateParser {
	if loc == nil {
		loc = time.Local
	}
	return DateParser{
		Location: loc,
		Now:      func() time.Time { return now },
	}
}

// Parse returns the time for s, or the fallback.
func (p DateParser) Parse(s string) time.Time {
	t, ok := p.tryParse(s)
	if ok {
		return t
	}
	if p.Now == nil {
		return time.Now()
	}
	return p.Now()
}

// Valid reports whether s matches one of the accepted layouts.
func (p DateParser) Valid(s string) bool {
	_, ok := p.tryParse(s)
	return ok
}

func (p DateParser) tryParse(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	loc := p.Location
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
