package domain

import "github.com/shopspring/decimal"

// Row is one account's derived valuation for a single leaderboard render.
// Rows are rebuilt on every request and never written back anywhere.
type Row struct {
	Owner string

	// current-snapshot amounts, kept for display
	Gala  decimal.Decimal
	GUSDC decimal.Decimal
	GUSDT decimal.Decimal

	StartingTotal decimal.Decimal
	CurrentTotal  decimal.Decimal
	Change        decimal.Decimal

	// PctChange is nil when the starting total is not strictly positive,
	// which is distinct from an actual 0% change.
	PctChange *decimal.Decimal

	// Rank is 1-based and dense, assigned after sorting.
	Rank int
}
