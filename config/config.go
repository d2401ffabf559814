// Package config loads service configuration from a YAML file with
// sensible defaults for every field, so the server runs with no config at
// all next to its snapshot files.
package config

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/zilviaxbt/galaboard/internal/domain"
)

// Price source identifiers accepted in configuration.
const (
	SourceCoinGecko = "coingecko"
	SourceBinance   = "binance"
	SourceBybit     = "bybit"
)

type Config struct {
	ListenAddr           string
	BalancesFile         string
	StartingBalancesFile string

	PriceSource       string
	AssetID           string // CoinGecko asset id
	Pair              domain.Pair
	PriceTTL          time.Duration
	PriceFetchTimeout time.Duration

	RefreshCommand string
	RefreshArgs    []string

	// fetcher job settings
	OwnersFile string
	GatewayURL string
}

// FileConfig is the on-disk yaml shape. Empty fields fall back to Default.
type FileConfig struct {
	ListenAddr           string   `yaml:"listen_addr,omitempty"`
	BalancesFile         string   `yaml:"balances_file,omitempty"`
	StartingBalancesFile string   `yaml:"starting_balances_file,omitempty"`
	PriceSource          string   `yaml:"price_source,omitempty"`
	AssetID              string   `yaml:"asset_id,omitempty"`
	Pair                 string   `yaml:"pair,omitempty"`
	PriceTTL             string   `yaml:"price_ttl,omitempty"`
	PriceFetchTimeout    string   `yaml:"price_fetch_timeout,omitempty"`
	RefreshCommand       string   `yaml:"refresh_command,omitempty"`
	RefreshArgs          []string `yaml:"refresh_args,omitempty"`
	OwnersFile           string   `yaml:"owners_file,omitempty"`
	GatewayURL           string   `yaml:"gateway_url,omitempty"`
}

// Default returns the configuration matching the original deployment layout:
// snapshot files in the working directory, CoinGecko pricing, a fetcher
// binary next to the server.
func Default() Config {
	return Config{
		ListenAddr:           "127.0.0.1:8000",
		BalancesFile:         "balances.csv",
		StartingBalancesFile: "startingbalances.csv",
		PriceSource:          SourceCoinGecko,
		AssetID:              "gala",
		Pair:                 domain.Pair{Base: "GALA", Quote: "USDT"},
		PriceTTL:             60 * time.Second,
		PriceFetchTimeout:    10 * time.Second,
		RefreshCommand:       "./galaboard-fetcher",
		OwnersFile:           "owners.txt",
		GatewayURL:           "https://gateway-mainnet.galachain.com/api/asset/token-contract",
	}
}

// Load reads the YAML file at path, overlaying it on the defaults. An empty
// path, or a missing file at the default location, yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	usingDefaultPath := path == ""
	if usingDefaultPath {
		path = "config.yaml"
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && usingDefaultPath {
			return cfg, nil
		}
		return Config{}, errors.Wrapf(err, "read config %s", path)
	}

	var y FileConfig
	if err := yaml.Unmarshal(raw, &y); err != nil {
		return Config{}, errors.Wrapf(err, "parse config %s", path)
	}

	overlayString(&cfg.ListenAddr, y.ListenAddr)
	overlayString(&cfg.BalancesFile, y.BalancesFile)
	overlayString(&cfg.StartingBalancesFile, y.StartingBalancesFile)
	overlayString(&cfg.PriceSource, y.PriceSource)
	overlayString(&cfg.AssetID, y.AssetID)
	overlayString(&cfg.RefreshCommand, y.RefreshCommand)
	overlayString(&cfg.OwnersFile, y.OwnersFile)
	overlayString(&cfg.GatewayURL, y.GatewayURL)
	if len(y.RefreshArgs) > 0 {
		cfg.RefreshArgs = y.RefreshArgs
	}

	if y.Pair != "" {
		pair, err := domain.ParsePair(y.Pair)
		if err != nil {
			return Config{}, errors.Wrap(err, "incorrect 'pair' param in yaml config")
		}
		cfg.Pair = pair
	}
	if y.PriceTTL != "" {
		ttl, err := time.ParseDuration(y.PriceTTL)
		if err != nil {
			return Config{}, errors.Wrap(err, "incorrect 'price_ttl' param in yaml config")
		}
		cfg.PriceTTL = ttl
	}
	if y.PriceFetchTimeout != "" {
		timeout, err := time.ParseDuration(y.PriceFetchTimeout)
		if err != nil {
			return Config{}, errors.Wrap(err, "incorrect 'price_fetch_timeout' param in yaml config")
		}
		cfg.PriceFetchTimeout = timeout
	}

	switch cfg.PriceSource {
	case SourceCoinGecko, SourceBinance, SourceBybit:
	default:
		return Config{}, errors.Errorf("unsupported price source %q", cfg.PriceSource)
	}

	return cfg, nil
}

func overlayString(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}
