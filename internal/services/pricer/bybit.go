package pricer

import (
	"context"

	"github.com/hirokisan/bybit/v2"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/zilviaxbt/galaboard/internal/domain"
)

// BybitPricer reads the V5 spot ticker for the configured pair.
type BybitPricer struct {
	client *bybit.Client
	pair   domain.Pair
}

func NewBybitPricer(client *bybit.Client, pair domain.Pair) *BybitPricer {
	return &BybitPricer{client: client, pair: pair}
}

func (p *BybitPricer) Name() string { return "bybit" }

func (p *BybitPricer) GetPrice(ctx context.Context) (decimal.Decimal, error) {
	symbol := bybit.SymbolV5(p.pair.Symbol())

	result, err := p.client.V5().Market().GetTickers(bybit.V5GetTickersParam{
		Category: "spot",
		Symbol:   &symbol,
	})
	if err != nil {
		return decimal.Zero, err
	}
	if len(result.Result.Spot.List) == 0 {
		return decimal.Zero, errors.Errorf("bybit API returned empty prices for %s", p.pair.String())
	}
	return decimal.NewFromString(result.Result.Spot.List[0].LastPrice)
}
