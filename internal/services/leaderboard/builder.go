// Package leaderboard merges balance snapshots into ranked valuation rows.
package leaderboard

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/zilviaxbt/galaboard/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// Build joins the current and starting snapshots into one row per account,
// valued at the given GALA price, sorted by current total descending. Equal
// totals are ordered by owner ascending so ranks are reproducible. Ranks are
// dense, 1..N.
//
// An account present in only one snapshot contributes all-zero balances for
// the missing side. Percent change is set only when the starting total is
// strictly positive.
func Build(current, starting domain.Snapshot, price decimal.Decimal) []domain.Row {
	owners := make(map[string]struct{}, len(current)+len(starting))
	for owner := range current {
		owners[owner] = struct{}{}
	}
	for owner := range starting {
		owners[owner] = struct{}{}
	}

	rows := make([]domain.Row, 0, len(owners))
	for owner := range owners {
		cur := current[owner]  // zero AssetBalances when absent
		start := starting[owner]

		currentTotal := cur.Total(price)
		startingTotal := start.Total(price)
		change := currentTotal.Sub(startingTotal)

		var pct *decimal.Decimal
		if startingTotal.IsPositive() {
			v := change.Div(startingTotal).Mul(hundred)
			pct = &v
		}

		rows = append(rows, domain.Row{
			Owner:         owner,
			Gala:          cur.Gala,
			GUSDC:         cur.GUSDC,
			GUSDT:         cur.GUSDT,
			StartingTotal: startingTotal,
			CurrentTotal:  currentTotal,
			Change:        change,
			PctChange:     pct,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		cmp := rows[i].CurrentTotal.Cmp(rows[j].CurrentTotal)
		if cmp != 0 {
			return cmp > 0
		}
		return rows[i].Owner < rows[j].Owner
	})
	for i := range rows {
		rows[i].Rank = i + 1
	}

	return rows
}
