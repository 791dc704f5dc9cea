package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Supply user supply position, one row per (user, asset, chain).
// Created on first supply, deleted once the interest-inclusive balance
// drops below the dust threshold.
type Supply struct {
	ID                 uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	UserID             string          `sql:"size:36;unique_index:supply_idx" json:"user_id"`
	Asset              Asset           `sql:"size:20;unique_index:supply_idx" json:"asset"`
	Chain              Chain           `sql:"size:20;unique_index:supply_idx" json:"chain"`
	Principal          decimal.Decimal `sql:"type:decimal(32,16)" json:"principal"`
	AccruedInterest    decimal.Decimal `sql:"type:decimal(32,16)" json:"accrued_interest"`
	RateAtDeposit      decimal.Decimal `sql:"type:decimal(20,16)" json:"rate_at_deposit"`
	UsedAsCollateral   bool            `sql:"default:1" json:"used_as_collateral"`
	LastInterestUpdate time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"last_interest_update"`
	Version            int64           `sql:"default:0" json:"version"`
	CreatedAt          time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt          time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// ISupplyStore supply store interface
type ISupplyStore interface {
	Create(ctx context.Context, tx *db.DB, supply *Supply) error
	Find(ctx context.Context, userID string, asset Asset, chain Chain) (*Supply, error)
	FindByUser(ctx context.Context, userID string, chain Chain) ([]*Supply, error)
	Update(ctx context.Context, tx *db.DB, supply *Supply) error
	Delete(ctx context.Context, tx *db.DB, supply *Supply) error
}
