package domain

import "github.com/shopspring/decimal"

// Token identifiers tracked by the leaderboard. GALA is the single
// market-priced asset; GUSDC and GUSDT are treated as pegged 1:1 to USD.
const (
	TokenGala  = "GALA"
	TokenGUSDC = "GUSDC"
	TokenGUSDT = "GUSDT"
)

// AssetBalances holds one account's per-token amounts. The zero value is a
// valid all-zero balance, used for accounts absent from a snapshot.
type AssetBalances struct {
	Gala  decimal.Decimal
	GUSDC decimal.Decimal
	GUSDT decimal.Decimal
}

// Total values the balances in USD at the given GALA price. Stable tokens
// contribute their face amount.
func (b AssetBalances) Total(galaPrice decimal.Decimal) decimal.Decimal {
	return b.Gala.Mul(galaPrice).Add(b.GUSDC).Add(b.GUSDT)
}

// Snapshot maps account owner to balances at one point in time, as read from
// a single balances file.
type Snapshot map[string]AssetBalances
