package leaderboard

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixedPrice struct{ price decimal.Decimal }

func (f fixedPrice) Price(context.Context) decimal.Decimal { return f.price }

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestBuildViewWithBothSnapshots(t *testing.T) {
	dir := t.TempDir()
	balances := writeFile(t, dir, "balances.csv", "owner,GALA,GUSDC,GUSDT\nA,10,5,0\n")
	starting := writeFile(t, dir, "startingbalances.csv", "owner,GALA,GUSDC,GUSDT\nA,5,5,0\n")

	svc := NewService(balances, starting, fixedPrice{dec("2")}, zap.NewNop())
	view, err := svc.BuildView(context.Background())
	require.NoError(t, err)

	require.True(t, view.Price.Equal(dec("2")))
	require.True(t, view.HasStarting)
	require.NotNil(t, view.BalancesUpdatedAt)
	require.Len(t, view.Rows, 1)
	require.True(t, view.Rows[0].CurrentTotal.Equal(dec("25")))
}

func TestBuildViewMissingStartingFile(t *testing.T) {
	dir := t.TempDir()
	balances := writeFile(t, dir, "balances.csv", "owner,GALA,GUSDC,GUSDT\nA,10,0,0\nB,1,0,0\n")

	svc := NewService(balances, filepath.Join(dir, "startingbalances.csv"), fixedPrice{dec("1")}, zap.NewNop())
	view, err := svc.BuildView(context.Background())
	require.NoError(t, err)

	require.False(t, view.HasStarting)
	for _, row := range view.Rows {
		require.Nil(t, row.PctChange, "no starting file means pct change is absent everywhere")
		require.True(t, row.StartingTotal.IsZero())
	}
}

func TestBuildViewMissingBalancesFile(t *testing.T) {
	dir := t.TempDir()

	svc := NewService(filepath.Join(dir, "balances.csv"), filepath.Join(dir, "startingbalances.csv"),
		fixedPrice{dec("1")}, zap.NewNop())
	view, err := svc.BuildView(context.Background())
	require.NoError(t, err)

	require.Empty(t, view.Rows)
	require.Nil(t, view.BalancesUpdatedAt)
}

func TestBuildViewBrokenBalancesFile(t *testing.T) {
	dir := t.TempDir()
	balances := writeFile(t, dir, "balances.csv", "owner,GALA\n\"unterminated,1\njunk\"extra\",2\n")

	svc := NewService(balances, filepath.Join(dir, "startingbalances.csv"), fixedPrice{dec("1")}, zap.NewNop())
	_, err := svc.BuildView(context.Background())
	require.Error(t, err, "a file that is not a table at all is the one hard error")
}
