package leaderboard

import (
	"context"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/zilviaxbt/galaboard/internal/domain"
	"github.com/zilviaxbt/galaboard/internal/snapshot"
)

// PriceSource supplies the current GALA/USD price without ever failing;
// the cached pricer satisfies it.
type PriceSource interface {
	Price(ctx context.Context) decimal.Decimal
}

// View is everything one leaderboard render needs.
type View struct {
	Price       decimal.Decimal
	Rows        []domain.Row
	HasStarting bool
	// BalancesUpdatedAt is the modification time of the current balances
	// file, nil when the file is missing or unreadable.
	BalancesUpdatedAt *time.Time
}

// Service assembles leaderboard views from the snapshot files and the price
// cache. It holds no mutable state of its own.
type Service struct {
	balancesPath string
	startingPath string
	prices       PriceSource
	logger       *zap.Logger
}

func NewService(balancesPath, startingPath string, prices PriceSource, logger *zap.Logger) *Service {
	return &Service{
		balancesPath: balancesPath,
		startingPath: startingPath,
		prices:       prices,
		logger:       logger,
	}
}

// BuildView reads both snapshots, consults the price cache and ranks the
// rows. The only error it can return is a structurally unreadable snapshot
// file; every other degradation already happened silently further down.
func (s *Service) BuildView(ctx context.Context) (View, error) {
	price := s.prices.Price(ctx)

	current, err := snapshot.Read(s.balancesPath)
	if err != nil {
		return View{}, err
	}
	starting, err := snapshot.Read(s.startingPath)
	if err != nil {
		return View{}, err
	}

	view := View{
		Price:       price,
		Rows:        Build(current, starting, price),
		HasStarting: snapshot.Exists(s.startingPath),
	}
	if info, statErr := os.Stat(s.balancesPath); statErr == nil {
		mtime := info.ModTime()
		view.BalancesUpdatedAt = &mtime
	}

	s.logger.Debug("leaderboard view built",
		zap.Int("accounts", len(view.Rows)),
		zap.String("price", price.String()),
		zap.Bool("has_starting", view.HasStarting))

	return view, nil
}
