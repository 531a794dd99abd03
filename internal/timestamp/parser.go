package timestamp

import (
	"strings"
	"time"
)

// Parser parses the timestamp formats the SyncFlow backend emits.
// Values without a zone are interpreted as UTC.
type Parser struct {
	layouts []string
}

// NewParser returns a Parser with the default layout set.
func NewParser() *Parser {
	return &Parser{
		layouts: []string{
			time.RFC3339Nano,
			time.RFC3339,
			"2006-01-02T15:04:05.999999999",
			"2006-01-02T15:04:05",
			"2006-01-02 15:04:05.999999999Z07:00",
			"2006-01-02 15:04:05Z07:00",
			"2006-01-02 15:04:05.999999999 -0700 MST",
			"2006-01-02 15:04:05.999999999",
			"2006-01-02 15:04:05",
			time.RFC1123Z,
			time.RFC1123,
		},
	}
}

var defaultParser = NewParser()

// Parse parses s with the package default parser.
func Parse(s string) (time.Time, bool) {
	return defaultParser.Parse(s)
}

// Parse returns the instant s denotes, in UTC.
func (p *Parser) Parse(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	// Comma decimal separators ("10:30:45,123") are common in JVM and Python logs.
	if i := strings.LastIndex(s, ","); i > 0 && i+1 < len(s) && isDigit(s[i-1]) && isDigit(s[i+1]) {
		s = s[:i] + "." + s[i+1:]
	}
	for _, layout := range p.layouts {
		if ts, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return ts.UTC(), true
		}
	}
	return time.Time{}, false
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
