package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/zilviaxbt/galaboard/internal/services/leaderboard"
)

type fixedPrice struct {
	price decimal.Decimal
}

func (f fixedPrice) Price(_ context.Context) decimal.Decimal {
	return f.price
}

type countingLauncher struct {
	calls atomic.Int64
}

func (c *countingLauncher) Launch() {
	c.calls.Add(1)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644), "write fixture")
	return path
}

func newTestServer(t *testing.T, balances, starting string) (*Server, *countingLauncher) {
	t.Helper()

	dir := t.TempDir()
	balancesPath := filepath.Join(dir, "balances.csv")
	startingPath := filepath.Join(dir, "startingbalances.csv")
	if balances != "" {
		balancesPath = writeFile(t, dir, "balances.csv", balances)
	}
	if starting != "" {
		startingPath = writeFile(t, dir, "startingbalances.csv", starting)
	}

	svc := leaderboard.NewService(balancesPath, startingPath, fixedPrice{price: decimal.NewFromInt(2)}, zap.NewNop())
	launcher := &countingLauncher{}

	return NewServer("127.0.0.1:0", svc, launcher, zap.NewNop()), launcher
}

func TestIndexRendersLeaderboard(t *testing.T) {
	srv, _ := newTestServer(t,
		"owner,GALA,GUSDC,GUSDT\nclient|alice,10,5,0\nclient|bob,1,0,0\n",
		"owner,GALA,GUSDC,GUSDT\nclient|alice,5,5,0\n",
	)

	rec := httptest.NewRecorder()
	srv.handleIndex(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code, "index should render")
	body := rec.Body.String()
	require.Contains(t, body, "client|alice", "owner should appear in the table")
	require.Contains(t, body, "client|bob", "owner should appear in the table")
	require.Contains(t, body, "$2.000000", "current price should be shown")
	require.True(t, strings.Index(body, "client|alice") < strings.Index(body, "client|bob"),
		"rows should be ordered by current total descending")
}

func TestIndexShowsNoticeWithoutStartingSnapshot(t *testing.T) {
	srv, _ := newTestServer(t, "owner,GALA,GUSDC,GUSDT\nclient|alice,10,0,0\n", "")

	rec := httptest.NewRecorder()
	srv.handleIndex(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "No starting balances snapshot found",
		"missing starting snapshot should be surfaced")
}

func TestIndexFailsOnBrokenSnapshot(t *testing.T) {
	srv, _ := newTestServer(t, "owner,GALA,GUSDC,GUSDT\n\"client|alice,10,0,0\n", "")

	rec := httptest.NewRecorder()
	srv.handleIndex(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code, "broken snapshot should be a 500")
}

func TestIndexRejectsUnknownPath(t *testing.T) {
	srv, _ := newTestServer(t, "", "")

	rec := httptest.NewRecorder()
	srv.handleIndex(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRefreshLaunchesAndRedirects(t *testing.T) {
	srv, launcher := newTestServer(t, "", "")

	rec := httptest.NewRecorder()
	srv.handleRefresh(rec, httptest.NewRequest(http.MethodPost, "/refresh", nil))

	require.Equal(t, http.StatusSeeOther, rec.Code, "refresh should redirect back to the page")
	require.Equal(t, "/", rec.Header().Get("Location"))
	require.EqualValues(t, 1, launcher.calls.Load(), "refresh should launch the fetcher once")
}

func TestRefreshRejectsGet(t *testing.T) {
	srv, launcher := newTestServer(t, "", "")

	rec := httptest.NewRecorder()
	srv.handleRefresh(rec, httptest.NewRequest(http.MethodGet, "/refresh", nil))

	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	require.Zero(t, launcher.calls.Load(), "GET must not trigger a refresh")
}
