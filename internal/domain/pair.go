package domain

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Pair identifies a market for the native token on an exchange,
// e.g. GALA_USDT.
type Pair struct {
	Base  string
	Quote string
}

// ParsePair parses the BASE_QUOTE form used in configuration.
func ParsePair(s string) (Pair, error) {
	parts := strings.Split(s, "_")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Pair{}, errors.Errorf("invalid pair %q, expected BASE_QUOTE", s)
	}
	return Pair{Base: parts[0], Quote: parts[1]}, nil
}

func (p Pair) String() string {
	return fmt.Sprintf("%s_%s", p.Base, p.Quote)
}

// Symbol returns the concatenated exchange ticker symbol, e.g. GALAUSDT.
func (p Pair) Symbol() string {
	return p.Base + p.Quote
}
