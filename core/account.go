package core

import (
	"context"

	"github.com/shopspring/decimal"
)

// HealthSnapshot derived solvency view of one user on one chain.
// Recomputed on demand, never persisted as source of truth.
type HealthSnapshot struct {
	TotalCollateralUsd           decimal.Decimal `json:"total_collateral_usd"`
	TotalDebtUsd                 decimal.Decimal `json:"total_debt_usd"`
	WeightedLiquidationThreshold decimal.Decimal `json:"weighted_liquidation_threshold"`
	HealthFactor                 decimal.Decimal `json:"health_factor"`
	// Infinite is set when the user has no debt; HealthFactor is
	// meaningless in that case.
	Infinite bool `json:"infinite"`
}

// AtLeast reports whether the health factor clears min. An infinite
// factor clears any gate.
func (s *HealthSnapshot) AtLeast(min decimal.Decimal) bool {
	return s.Infinite || s.HealthFactor.GreaterThanOrEqual(min)
}

// Liquidatable reports whether the position may be seized.
func (s *HealthSnapshot) Liquidatable() bool {
	return !s.Infinite && s.HealthFactor.LessThan(decimal.New(1, 0))
}

// IAccountService risk engine over a user's full position set
type IAccountService interface {
	// GetHealthSnapshot computes the current snapshot, accruing
	// interest as of now and pricing every position via the oracle.
	GetHealthSnapshot(ctx context.Context, userID string, chain Chain) (*HealthSnapshot, error)
	// SimulateHealthSnapshot computes the snapshot with the given
	// position overlays applied in place of the stored rows. A nil
	// overlay leaves the stored position untouched; a zero-balance
	// overlay simulates its removal.
	SimulateHealthSnapshot(ctx context.Context, userID string, chain Chain, supply *Supply, borrow *Borrow) (*HealthSnapshot, error)
}
