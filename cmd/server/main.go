// Command galaboard serves the GalaChain balance leaderboard.
// It reads the current and starting balance snapshots from disk,
// quotes GALA/USD from the configured source (CoinGecko, Binance
// or Bybit) and renders a ranked HTML table.
//
// Usage:
//
//	galaboard --config config.yaml
//	galaboard --setup (interactive configuration wizard)
//
// Required environment variables:
//
//	For Binance pricing: BINANCE_API_KEY, BINANCE_API_SECRET
//	For Bybit pricing: BYBIT_API_KEY, BYBIT_API_SECRET
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/adshao/go-binance/v2"
	"github.com/hirokisan/bybit/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/zilviaxbt/galaboard/config"
	"github.com/zilviaxbt/galaboard/internal/services/leaderboard"
	"github.com/zilviaxbt/galaboard/internal/services/pricer"
	"github.com/zilviaxbt/galaboard/internal/services/refresher"
	"github.com/zilviaxbt/galaboard/internal/setup"
	"github.com/zilviaxbt/galaboard/internal/web"
)

func main() {
	configPath := flag.String("config", "", "path to the yaml configuration file")
	runSetup := flag.Bool("setup", false, "run the interactive configuration wizard and exit")
	flag.Parse()

	if *runSetup {
		if err := setup.RunTUI(); err != nil {
			log.Fatal(err)
		}
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	source, err := buildPricer(cfg)
	if err != nil {
		logger.Fatal("failed to build price source", zap.Error(err))
	}

	prices := pricer.NewCachedPricer(source, logger,
		pricer.WithTTL(cfg.PriceTTL),
		pricer.WithFetchTimeout(cfg.PriceFetchTimeout),
	)

	boards := leaderboard.NewService(cfg.BalancesFile, cfg.StartingBalancesFile, prices, logger)
	launcher := refresher.NewExecLauncher(cfg.RefreshCommand, cfg.RefreshArgs, logger)
	server := web.NewServer(cfg.ListenAddr, boards, launcher, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Start(ctx)
	})

	logger.Info("leaderboard started",
		zap.String("addr", cfg.ListenAddr),
		zap.String("price_source", cfg.PriceSource))

	if err := g.Wait(); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}

func buildPricer(cfg config.Config) (pricer.Pricer, error) {
	switch cfg.PriceSource {
	case config.SourceCoinGecko:
		return pricer.NewCoinGeckoPricer(cfg.AssetID), nil
	case config.SourceBinance:
		client := binance.NewClient(os.Getenv("BINANCE_API_KEY"), os.Getenv("BINANCE_API_SECRET"))
		return pricer.NewBinancePricer(client, cfg.Pair), nil
	case config.SourceBybit:
		client := bybit.NewClient().WithAuth(os.Getenv("BYBIT_API_KEY"), os.Getenv("BYBIT_API_SECRET"))
		return pricer.NewBybitPricer(client, cfg.Pair), nil
	}
	return nil, errors.Errorf("unknown price source %q", cfg.PriceSource)
}
