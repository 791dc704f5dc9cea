package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// RateMode borrow rate mode
type RateMode string

const (
	// RateModeVariable utilization-tracking rate
	RateModeVariable RateMode = "variable"
	// RateModeStable rate fixed at origination
	RateModeStable RateMode = "stable"
)

// Valid reports whether the mode is one of the two known modes.
func (m RateMode) Valid() bool {
	return m == RateModeVariable || m == RateModeStable
}

// Borrow user borrow position, one row per (user, asset, chain).
// Created on first borrow, deleted when fully repaid.
type Borrow struct {
	ID                 uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	UserID             string          `sql:"size:36;unique_index:borrow_idx" json:"user_id"`
	Asset              Asset           `sql:"size:20;unique_index:borrow_idx" json:"asset"`
	Chain              Chain           `sql:"size:20;unique_index:borrow_idx" json:"chain"`
	Principal          decimal.Decimal `sql:"type:decimal(32,16)" json:"principal"`
	AccruedInterest    decimal.Decimal `sql:"type:decimal(32,16)" json:"accrued_interest"`
	RateMode           RateMode        `sql:"size:10" json:"rate_mode"`
	RateAtOrigination  decimal.Decimal `sql:"type:decimal(20,16)" json:"rate_at_origination"`
	LastInterestUpdate time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"last_interest_update"`
	Version            int64           `sql:"default:0" json:"version"`
	CreatedAt          time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt          time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// IBorrowStore borrow store interface
type IBorrowStore interface {
	Create(ctx context.Context, tx *db.DB, borrow *Borrow) error
	Find(ctx context.Context, userID string, asset Asset, chain Chain) (*Borrow, error)
	FindByUser(ctx context.Context, userID string, chain Chain) ([]*Borrow, error)
	Update(ctx context.Context, tx *db.DB, borrow *Borrow) error
	Delete(ctx context.Context, tx *db.DB, borrow *Borrow) error
}
