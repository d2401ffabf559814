// Package pricer supplies the current USD price of the native token from a
// configurable market data source, with a TTL cache in front.
package pricer

import (
	"context"

	"github.com/shopspring/decimal"
)

// Pricer fetches the current USD price of the one tracked asset. Each
// implementation is bound to its asset identifier at construction.
type Pricer interface {
	Name() string
	GetPrice(ctx context.Context) (decimal.Decimal, error)
}
