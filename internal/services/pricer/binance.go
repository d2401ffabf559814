package pricer

import (
	"context"

	"github.com/adshao/go-binance/v2"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/zilviaxbt/galaboard/internal/domain"
)

// BinancePricer reads the spot ticker for the configured pair, e.g. GALA_USDT.
type BinancePricer struct {
	client *binance.Client
	pair   domain.Pair
}

func NewBinancePricer(client *binance.Client, pair domain.Pair) *BinancePricer {
	return &BinancePricer{client: client, pair: pair}
}

func (p *BinancePricer) Name() string { return "binance" }

func (p *BinancePricer) GetPrice(ctx context.Context) (decimal.Decimal, error) {
	prices, err := p.client.NewListPricesService().Symbol(p.pair.Symbol()).Do(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	if len(prices) == 0 {
		return decimal.Zero, errors.Errorf("binance API returned empty prices for %s", p.pair.String())
	}
	return decimal.NewFromString(prices[0].Price)
}
