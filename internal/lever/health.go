package lever

import (
	"lever/core"

	"github.com/shopspring/decimal"
)

// CollateralInput one collateral-flagged supply position, priced
type CollateralInput struct {
	Balance              decimal.Decimal
	PriceUsd             decimal.Decimal
	LiquidationThreshold decimal.Decimal
}

// DebtInput one borrow position, priced
type DebtInput struct {
	Balance  decimal.Decimal
	PriceUsd decimal.Decimal
}

// Health computes the solvency snapshot:
//
//	health_factor = total_collateral_usd * weighted_liquidation_threshold / total_debt_usd
//
// where the weighted threshold is the collateral-value-weighted mean of
// the per-asset liquidation thresholds. A user with no debt is
// infinitely healthy regardless of collateral.
func Health(collaterals []CollateralInput, debts []DebtInput) *core.HealthSnapshot {
	totalCollateral := decimal.Zero
	weightedSum := decimal.Zero
	for _, c := range collaterals {
		value := c.Balance.Mul(c.PriceUsd)
		totalCollateral = totalCollateral.Add(value)
		weightedSum = weightedSum.Add(value.Mul(c.LiquidationThreshold))
	}

	totalDebt := decimal.Zero
	for _, d := range debts {
		totalDebt = totalDebt.Add(d.Balance.Mul(d.PriceUsd))
	}

	snapshot := &core.HealthSnapshot{
		TotalCollateralUsd: totalCollateral.Truncate(MaxPrecision),
		TotalDebtUsd:       totalDebt.Truncate(MaxPrecision),
	}

	if totalCollateral.IsPositive() {
		snapshot.WeightedLiquidationThreshold = weightedSum.Div(totalCollateral).Truncate(MaxPrecision)
	}

	if !totalDebt.IsPositive() {
		snapshot.Infinite = true
		return snapshot
	}

	snapshot.HealthFactor = totalCollateral.
		Mul(snapshot.WeightedLiquidationThreshold).
		Div(totalDebt).
		Truncate(MaxPrecision)

	return snapshot
}
