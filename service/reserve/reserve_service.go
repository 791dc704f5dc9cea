package reserve

import (
	"context"
	"time"

	"lever/core"
	"lever/internal/lever"

	"github.com/shopspring/decimal"
)

type reserveService struct{}

// New new reserve service
func New() core.IReserveService {
	return &reserveService{}
}

// Apply mutates the reserve aggregates for one operation and
// recomputes utilization and rates from the asset's curve. The bounds
// checks run before any field changes, so a failed call leaves the
// reserve untouched.
func (s *reserveService) Apply(ctx context.Context, reserve *core.Reserve, kind core.ReserveDelta, amount decimal.Decimal, now time.Time) error {
	if !amount.IsPositive() {
		return core.ErrInvalidAmount
	}

	switch kind {
	case core.ReserveDeltaSupply:
		reserve.TotalSupplied = reserve.TotalSupplied.Add(amount)
		reserve.AvailableLiquidity = reserve.AvailableLiquidity.Add(amount)

	case core.ReserveDeltaWithdraw:
		if amount.GreaterThan(reserve.AvailableLiquidity) {
			return core.ErrInsufficientLiquidity
		}
		reserve.TotalSupplied = reserve.TotalSupplied.Sub(amount)
		reserve.AvailableLiquidity = reserve.AvailableLiquidity.Sub(amount)

	case core.ReserveDeltaBorrow:
		if amount.GreaterThan(reserve.AvailableLiquidity) {
			return core.ErrInsufficientLiquidity
		}
		reserve.TotalBorrowed = reserve.TotalBorrowed.Add(amount)
		reserve.AvailableLiquidity = reserve.AvailableLiquidity.Sub(amount)

	case core.ReserveDeltaRepay:
		if amount.GreaterThan(reserve.TotalBorrowed) {
			return core.ErrInvalidAmount
		}
		reserve.TotalBorrowed = reserve.TotalBorrowed.Sub(amount)
		reserve.AvailableLiquidity = reserve.AvailableLiquidity.Add(amount)

	default:
		return core.ErrOperationForbidden
	}

	market, err := core.GetMarket(reserve.Asset, reserve.Chain)
	if err != nil {
		return err
	}

	utilization := lever.UtilizationRate(reserve.TotalSupplied, reserve.TotalBorrowed)
	reserve.UtilizationRate = utilization
	reserve.BorrowRateVariable = lever.GetBorrowRateVariable(utilization, market.Curve)
	reserve.BorrowRateStable = lever.GetBorrowRateStable(utilization, market.Curve)
	reserve.SupplyRate = lever.GetSupplyRate(utilization, market.Curve, market.Risk.ReserveFactor)
	reserve.LastUpdatedAt = now

	return nil
}
