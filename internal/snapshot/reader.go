// Package snapshot loads balance snapshot files produced by the fetcher job.
package snapshot

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/zilviaxbt/galaboard/internal/domain"
	"github.com/zilviaxbt/galaboard/pkg/numparse"
)

// column labels are fixed by the snapshot file format.
const (
	colOwner = "owner"
	colGala  = domain.TokenGala
	colGUSDC = domain.TokenGUSDC
	colGUSDT = domain.TokenGUSDT
)

// Read loads the snapshot file at path. A missing file is a normal state and
// yields an empty snapshot. Row-level problems (blank owner, bad numbers,
// ragged rows) degrade to skipped rows or zero amounts; only a file that
// cannot be interpreted as a CSV table at all returns an error.
func Read(path string) (domain.Snapshot, error) {
	result := make(domain.Snapshot)

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return result, nil
		}
		return nil, errors.Wrapf(err, "open snapshot %s", path)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // tolerate ragged rows
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return result, nil
		}
		return nil, errors.Wrapf(err, "read snapshot header %s", path)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "read snapshot row %s", path)
		}

		owner := strings.TrimSpace(field(record, columns, colOwner))
		if owner == "" {
			continue
		}
		// last occurrence of a duplicate owner wins
		result[owner] = domain.AssetBalances{
			Gala:  numparse.Decimal(field(record, columns, colGala)),
			GUSDC: numparse.Decimal(field(record, columns, colGUSDC)),
			GUSDT: numparse.Decimal(field(record, columns, colGUSDT)),
		}
	}

	return result, nil
}

// Exists reports whether a snapshot file is present, used to tell callers
// whether percent-change figures are meaningful.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func field(record []string, columns map[string]int, name string) string {
	idx, ok := columns[name]
	if !ok || idx >= len(record) {
		return ""
	}
	return record[idx]
}
