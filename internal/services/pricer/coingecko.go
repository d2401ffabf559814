package pricer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/buger/jsonparser"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/zilviaxbt/galaboard/pkg/numparse"
)

const (
	coingeckoBaseURL   = "https://api.coingecko.com/api/v3"
	coingeckoHTTPLimit = 10 * time.Second
)

// CoinGeckoPricer reads the simple/price endpoint for a single asset id
// (e.g. "gala"). The response nests the price as {"<id>":{"usd":<number>}};
// any shape deviation on a 2xx response degrades to a zero price instead of
// an error, since the fetch itself succeeded.
type CoinGeckoPricer struct {
	baseURL string
	assetID string
	client  *http.Client
}

func NewCoinGeckoPricer(assetID string) *CoinGeckoPricer {
	return &CoinGeckoPricer{
		baseURL: coingeckoBaseURL,
		assetID: assetID,
		client:  &http.Client{Timeout: coingeckoHTTPLimit},
	}
}

func (p *CoinGeckoPricer) Name() string { return "coingecko" }

func (p *CoinGeckoPricer) GetPrice(ctx context.Context) (decimal.Decimal, error) {
	endpoint := fmt.Sprintf("%s/simple/price?ids=%s&vs_currencies=usd",
		p.baseURL, url.QueryEscape(p.assetID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "build coingecko request")
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "query coingecko")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decimal.Zero, errors.Errorf("coingecko returned status %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "read coingecko response")
	}

	// missing keys or a non-numeric value are not a fetch failure,
	// they parse to zero
	raw, _, _, jsonErr := jsonparser.Get(body, p.assetID, "usd")
	if jsonErr != nil {
		return decimal.Zero, nil
	}
	return numparse.Decimal(string(raw)), nil
}
