package core

import (
	"context"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Database the transactional scope operations commit through. *db.DB
// satisfies it.
type Database interface {
	Tx(fn func(tx *db.DB) error) error
}

// SupplyResult result of a committed supply
type SupplyResult struct {
	SupplyRate decimal.Decimal `json:"supply_rate"`
	Health     *HealthSnapshot `json:"health"`
}

// WithdrawResult result of a committed withdraw
type WithdrawResult struct {
	Health *HealthSnapshot `json:"health"`
}

// BorrowResult result of a committed borrow
type BorrowResult struct {
	BorrowRate decimal.Decimal `json:"borrow_rate"`
	Health     *HealthSnapshot `json:"health"`
}

// RepayResult result of a committed repay
type RepayResult struct {
	Health *HealthSnapshot `json:"health"`
}

// IEngine the operation orchestrator. Every call either commits the
// position and reserve mutations as one unit or leaves state exactly
// as it was.
type IEngine interface {
	Supply(ctx context.Context, userID string, asset Asset, chain Chain, amount decimal.Decimal) (*SupplyResult, error)
	Withdraw(ctx context.Context, userID string, asset Asset, chain Chain, amount decimal.Decimal) (*WithdrawResult, error)
	Borrow(ctx context.Context, userID string, asset Asset, chain Chain, amount decimal.Decimal, mode RateMode) (*BorrowResult, error)
	Repay(ctx context.Context, userID string, asset Asset, chain Chain, amount decimal.Decimal) (*RepayResult, error)
}
