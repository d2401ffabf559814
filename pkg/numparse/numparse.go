// Package numparse converts untrusted textual input into decimal values.
// Snapshot files and price APIs routinely contain blanks, placeholders and
// garbage; every numeric field read from them goes through this package so
// downstream code never has to deal with unparseable input.
package numparse

import (
	"strings"

	"github.com/shopspring/decimal"
)

// placeholders that spreadsheets and exporters commonly emit for "no value".
var emptyMarkers = map[string]struct{}{
	"":     {},
	"na":   {},
	"nan":  {},
	"none": {},
	"null": {},
}

// Decimal parses value into a decimal, falling back to zero for anything
// that is not a number. It never returns an error.
func Decimal(value string) decimal.Decimal {
	trimmed := strings.TrimSpace(value)
	if _, empty := emptyMarkers[strings.ToLower(trimmed)]; empty {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero
	}
	return d
}
