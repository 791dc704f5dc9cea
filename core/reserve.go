package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Reserve pool reserve, one row per (asset, chain). Mutated by every
// operation touching the asset, never deleted.
type Reserve struct {
	ID                 uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	Asset              Asset           `sql:"size:20;unique_index:reserve_idx" json:"asset"`
	Chain              Chain           `sql:"size:20;unique_index:reserve_idx" json:"chain"`
	TotalSupplied      decimal.Decimal `sql:"type:decimal(32,16)" json:"total_supplied"`
	TotalBorrowed      decimal.Decimal `sql:"type:decimal(32,16)" json:"total_borrowed"`
	AvailableLiquidity decimal.Decimal `sql:"type:decimal(32,16)" json:"available_liquidity"`
	UtilizationRate    decimal.Decimal `sql:"type:decimal(20,16)" json:"utilization_rate"`
	SupplyRate         decimal.Decimal `sql:"type:decimal(20,16)" json:"supply_rate"`
	BorrowRateVariable decimal.Decimal `sql:"type:decimal(20,16)" json:"borrow_rate_variable"`
	BorrowRateStable   decimal.Decimal `sql:"type:decimal(20,16)" json:"borrow_rate_stable"`
	Version            int64           `sql:"default:0" json:"version"`
	LastUpdatedAt      time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"last_updated_at"`
	CreatedAt          time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

// IReserveStore reserve store interface
type IReserveStore interface {
	Save(ctx context.Context, tx *db.DB, reserve *Reserve) error
	Find(ctx context.Context, asset Asset, chain Chain) (*Reserve, error)
	All(ctx context.Context) ([]*Reserve, error)
	// Update writes the reserve guarded by its previous version and
	// returns ErrConflict when another writer won.
	Update(ctx context.Context, tx *db.DB, reserve *Reserve) error
}

// ReserveDelta the four ledger mutations
type ReserveDelta int

const (
	// ReserveDeltaSupply add liquidity
	ReserveDeltaSupply ReserveDelta = iota
	// ReserveDeltaWithdraw remove liquidity
	ReserveDeltaWithdraw
	// ReserveDeltaBorrow draw liquidity against collateral
	ReserveDeltaBorrow
	// ReserveDeltaRepay return borrowed liquidity
	ReserveDeltaRepay
)

// IReserveService pool reserve ledger interface
type IReserveService interface {
	// Apply mutates the reserve aggregates in place, recomputing
	// utilization and all three rates, or fails without mutation.
	Apply(ctx context.Context, reserve *Reserve, kind ReserveDelta, amount decimal.Decimal, now time.Time) error
}
