// Command galaboard-fetcher pulls token balances for every owner listed
// in the owners file from the GalaChain gateway and writes the balances
// snapshot consumed by the leaderboard server.
package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/zilviaxbt/galaboard/config"
	"github.com/zilviaxbt/galaboard/internal/fetch"
)

func main() {
	configPath := flag.String("config", "", "path to the yaml configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := fetch.NewClient(cfg.GatewayURL, logger)
	if err := fetch.Run(ctx, client, cfg.OwnersFile, cfg.BalancesFile, logger); err != nil {
		logger.Fatal("snapshot fetch failed", zap.Error(err))
	}
}
