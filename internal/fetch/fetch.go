// Package fetch implements the out-of-process balance fetch job: it queries
// the GalaChain gateway for every configured owner and atomically rewrites
// the balances snapshot the server reads.
package fetch

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/buger/jsonparser"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/zilviaxbt/galaboard/internal/domain"
	"github.com/zilviaxbt/galaboard/pkg/numparse"
)

const (
	requestTimeout = 30 * time.Second
	fetchAttempts  = 3
	fetchDelay     = 500 * time.Millisecond
)

// TokenClass is the GalaChain token class key used by FetchBalances.
type TokenClass struct {
	Collection    string `json:"collection"`
	Category      string `json:"category"`
	Type          string `json:"type"`
	AdditionalKey string `json:"additionalKey"`
}

func unitClass(collection string) TokenClass {
	return TokenClass{Collection: collection, Category: "Unit", Type: "none", AdditionalKey: "none"}
}

// tracked token classes, in snapshot column order
var tokenClasses = []struct {
	token string
	class TokenClass
}{
	{domain.TokenGala, unitClass("GALA")},
	{domain.TokenGUSDC, unitClass("GUSDC")},
	{domain.TokenGUSDT, unitClass("GUSDT")},
}

// Client queries balances from a GalaChain gateway.
type Client struct {
	gatewayURL string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(gatewayURL string, logger *zap.Logger) *Client {
	return &Client{
		gatewayURL: strings.TrimRight(gatewayURL, "/"),
		httpClient: &http.Client{Timeout: requestTimeout},
		logger:     logger,
	}
}

// OwnerBalances fetches all tracked token balances for one owner, retrying
// transient gateway failures per token.
func (c *Client) OwnerBalances(ctx context.Context, owner string) (domain.AssetBalances, error) {
	var balances domain.AssetBalances
	for _, tc := range tokenClasses {
		amount, err := retry.DoWithData(
			func() (decimal.Decimal, error) {
				return c.fetchBalance(ctx, owner, tc.class)
			},
			retry.Context(ctx),
			retry.Attempts(fetchAttempts),
			retry.Delay(fetchDelay),
			retry.LastErrorOnly(true),
		)
		if err != nil {
			return domain.AssetBalances{}, errors.Wrapf(err, "fetch %s balance for %s", tc.token, owner)
		}

		switch tc.token {
		case domain.TokenGala:
			balances.Gala = amount
		case domain.TokenGUSDC:
			balances.GUSDC = amount
		case domain.TokenGUSDT:
			balances.GUSDT = amount
		}
	}
	return balances, nil
}

// fetchBalance sums the quantities of all balance entries the gateway
// returns for one owner and token class.
func (c *Client) fetchBalance(ctx context.Context, owner string, class TokenClass) (decimal.Decimal, error) {
	payload, err := json.Marshal(struct {
		Owner string `json:"owner"`
		TokenClass
	}{Owner: owner, TokenClass: class})
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "marshal FetchBalances request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.gatewayURL+"/FetchBalances", bytes.NewReader(payload))
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "build FetchBalances request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "query gateway")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "read gateway response")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decimal.Zero, errors.Errorf("gateway returned status %s", resp.Status)
	}

	total := decimal.Zero
	_, err = jsonparser.ArrayEach(body, func(value []byte, _ jsonparser.ValueType, _ int, _ error) {
		quantity, _ := jsonparser.GetString(value, "quantity")
		total = total.Add(numparse.Decimal(quantity))
	}, "Data")
	if err != nil {
		// an owner with no balances comes back without a Data array
		return decimal.Zero, nil
	}
	return total, nil
}

// ReadOwners loads the owners list: one identifier per line, blank lines and
// #-comments ignored.
func ReadOwners(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open owners file %s", path)
	}
	defer f.Close()

	var owners []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		owners = append(owners, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "read owners file %s", path)
	}
	return owners, nil
}

// WriteSnapshot rewrites the snapshot file atomically (temp file + rename)
// so a concurrently rendering server never reads a torn table.
func WriteSnapshot(path string, owners []string, balances map[string]domain.AssetBalances) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".balances-*.csv")
	if err != nil {
		return errors.Wrap(err, "create temp snapshot")
	}
	defer os.Remove(tmp.Name())

	writer := csv.NewWriter(tmp)
	records := [][]string{{"owner", domain.TokenGala, domain.TokenGUSDC, domain.TokenGUSDT}}
	for _, owner := range owners {
		b := balances[owner]
		records = append(records, []string{owner, b.Gala.String(), b.GUSDC.String(), b.GUSDT.String()})
	}
	if err := writer.WriteAll(records); err != nil {
		tmp.Close()
		return errors.Wrap(err, "write snapshot")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "close snapshot")
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrap(err, "replace snapshot")
	}
	return nil
}

// Run executes one full fetch cycle: owners in, snapshot out. Owners whose
// balances cannot be fetched are skipped with a warning so one bad account
// does not block the rest of the leaderboard from refreshing.
func Run(ctx context.Context, client *Client, ownersPath, snapshotPath string, logger *zap.Logger) error {
	owners, err := ReadOwners(ownersPath)
	if err != nil {
		return err
	}

	balances := make(map[string]domain.AssetBalances, len(owners))
	fetched := make([]string, 0, len(owners))
	for _, owner := range owners {
		b, err := client.OwnerBalances(ctx, owner)
		if err != nil {
			logger.Warn("skipping owner", zap.String("owner", owner), zap.Error(err))
			continue
		}
		balances[owner] = b
		fetched = append(fetched, owner)
	}

	if err := WriteSnapshot(snapshotPath, fetched, balances); err != nil {
		return err
	}

	logger.Info("snapshot written",
		zap.String("path", snapshotPath),
		zap.Int("owners", len(fetched)),
		zap.Int("skipped", len(owners)-len(fetched)))
	return nil
}
