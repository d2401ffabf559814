package pricer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newGeckoForTest(t *testing.T, handler http.HandlerFunc) *CoinGeckoPricer {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	p := NewCoinGeckoPricer("gala")
	p.baseURL = srv.URL
	return p
}

func TestCoinGeckoPrice(t *testing.T) {
	p := newGeckoForTest(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/simple/price", r.URL.Path)
		require.Equal(t, "gala", r.URL.Query().Get("ids"))
		require.Equal(t, "usd", r.URL.Query().Get("vs_currencies"))
		w.Write([]byte(`{"gala":{"usd":0.01634}}`))
	})

	price, err := p.GetPrice(context.Background())
	require.NoError(t, err)
	require.True(t, price.Equal(decimal.RequireFromString("0.01634")))
}

func TestCoinGeckoMalformedBodyDegradesToZero(t *testing.T) {
	for name, body := range map[string]string{
		"missing asset": `{"bitcoin":{"usd":1}}`,
		"missing usd":   `{"gala":{}}`,
		"non numeric":   `{"gala":{"usd":"oops"}}`,
		"empty object":  `{}`,
	} {
		t.Run(name, func(t *testing.T) {
			p := newGeckoForTest(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(body))
			})

			price, err := p.GetPrice(context.Background())
			require.NoError(t, err, "a 2xx response is a successful fetch even when the shape is off")
			require.True(t, price.IsZero())
		})
	}
}

func TestCoinGeckoNon2xxIsFetchFailure(t *testing.T) {
	p := newGeckoForTest(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	})

	_, err := p.GetPrice(context.Background())
	require.Error(t, err)
}
