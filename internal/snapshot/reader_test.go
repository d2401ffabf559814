package snapshot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func writeSnapshot(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "balances.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadMissingFile(t *testing.T) {
	snap, err := Read(filepath.Join(t.TempDir(), "no-such-file.csv"))
	require.NoError(t, err)
	require.Empty(t, snap)
}

func TestReadBasic(t *testing.T) {
	path := writeSnapshot(t, "owner,GALA,GUSDC,GUSDT\nalice,100.5,10,0\nbob,0,5.25,2\n")

	snap, err := Read(path)
	require.NoError(t, err)
	require.Len(t, snap, 2)

	require.True(t, snap["alice"].Gala.Equal(decimal.RequireFromString("100.5")))
	require.True(t, snap["alice"].GUSDC.Equal(decimal.NewFromInt(10)))
	require.True(t, snap["alice"].GUSDT.IsZero())
	require.True(t, snap["bob"].GUSDC.Equal(decimal.RequireFromString("5.25")))
}

func TestReadSkipsBlankOwner(t *testing.T) {
	path := writeSnapshot(t, "owner,GALA,GUSDC,GUSDT\n,1,2,3\n   ,4,5,6\ncarol,7,8,9\n")

	snap, err := Read(path)
	require.NoError(t, err)
	require.Len(t, snap, 1)
	require.Contains(t, snap, "carol")
}

func TestReadTrimsOwner(t *testing.T) {
	path := writeSnapshot(t, "owner,GALA,GUSDC,GUSDT\n  dave  ,1,0,0\n")

	snap, err := Read(path)
	require.NoError(t, err)
	require.Contains(t, snap, "dave")
}

func TestReadDuplicateOwnerLastWins(t *testing.T) {
	path := writeSnapshot(t, "owner,GALA,GUSDC,GUSDT\neve,1,0,0\neve,2,0,0\n")

	snap, err := Read(path)
	require.NoError(t, err)
	require.Len(t, snap, 1)
	require.True(t, snap["eve"].Gala.Equal(decimal.NewFromInt(2)))
}

func TestReadMalformedNumbersDegradeToZero(t *testing.T) {
	path := writeSnapshot(t, "owner,GALA,GUSDC,GUSDT\nfrank,not-a-number,NaN,\n")

	snap, err := Read(path)
	require.NoError(t, err)
	b := snap["frank"]
	require.True(t, b.Gala.IsZero())
	require.True(t, b.GUSDC.IsZero())
	require.True(t, b.GUSDT.IsZero())
}

func TestReadRaggedRows(t *testing.T) {
	// short row misses asset cells, long row carries extras
	path := writeSnapshot(t, "owner,GALA,GUSDC,GUSDT\ngina,5\nhank,1,2,3,extra\n")

	snap, err := Read(path)
	require.NoError(t, err)
	require.True(t, snap["gina"].Gala.Equal(decimal.NewFromInt(5)))
	require.True(t, snap["gina"].GUSDC.IsZero())
	require.True(t, snap["hank"].GUSDT.Equal(decimal.NewFromInt(3)))
}

func TestReadMissingColumns(t *testing.T) {
	path := writeSnapshot(t, "owner,GALA\nivy,12\n")

	snap, err := Read(path)
	require.NoError(t, err)
	require.True(t, snap["ivy"].Gala.Equal(decimal.NewFromInt(12)))
	require.True(t, snap["ivy"].GUSDC.IsZero())
}

func TestReadEmptyFile(t *testing.T) {
	path := writeSnapshot(t, "")

	snap, err := Read(path)
	require.NoError(t, err)
	require.Empty(t, snap)
}

func TestReadStructurallyBroken(t *testing.T) {
	// unbalanced quote in a cell makes the file unparseable as a table
	path := writeSnapshot(t, "owner,GALA,GUSDC,GUSDT\n\"broken,1,2,3\nmore\"garbage\",x\n")

	_, err := Read(path)
	require.Error(t, err)
}

func TestExists(t *testing.T) {
	path := writeSnapshot(t, "owner,GALA,GUSDC,GUSDT\n")
	require.True(t, Exists(path))
	require.False(t, Exists(filepath.Join(t.TempDir(), "absent.csv")))
}
