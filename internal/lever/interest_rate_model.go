package lever

import (
	"lever/core"

	"github.com/shopspring/decimal"
)

var (
	// SecondsPerYear seconds per year
	SecondsPerYear = decimal.NewFromInt(31536000)
	// MaxPrecision max precision
	MaxPrecision int32 = 16

	one = decimal.New(1, 0)
)

// UtilizationRate utilization rate
// utilization_rate = reserve.total_borrowed / reserve.total_supplied
func UtilizationRate(totalSupplied, totalBorrowed decimal.Decimal) decimal.Decimal {
	if totalSupplied.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	return totalBorrowed.Div(totalSupplied).Truncate(MaxPrecision)
}

// GetBorrowRateVariable variable borrow APR on the kinked curve.
//
// Below the kink the rate climbs gently toward base + slope1; past it
// slope2 takes over so the cost of borrowing rises sharply and the
// pool is pushed back toward the optimal utilization.
func GetBorrowRateVariable(utilization decimal.Decimal, curve core.RateCurve) decimal.Decimal {
	return kinkedRate(utilization, curve.Base, curve.Slope1, curve.Slope2, curve.OptimalUtilization)
}

// GetBorrowRateStable stable borrow APR, same two-slope shape with its
// own base and slopes.
func GetBorrowRateStable(utilization decimal.Decimal, curve core.RateCurve) decimal.Decimal {
	return kinkedRate(utilization, curve.StableBase, curve.StableSlope1, curve.StableSlope2, curve.OptimalUtilization)
}

// GetSupplyRate supply APR
// supply_rate = borrow_variable * utilization * (1 - reserve_factor)
func GetSupplyRate(utilization decimal.Decimal, curve core.RateCurve, reserveFactor decimal.Decimal) decimal.Decimal {
	borrowRate := GetBorrowRateVariable(utilization, curve)
	return borrowRate.Mul(utilization).Mul(one.Sub(reserveFactor)).Truncate(MaxPrecision)
}

func kinkedRate(utilization, base, slope1, slope2, optimal decimal.Decimal) decimal.Decimal {
	if optimal.IsPositive() && utilization.LessThanOrEqual(optimal) {
		return base.Add(slope1.Mul(utilization.Div(optimal))).Truncate(MaxPrecision)
	}

	excess := utilization.Sub(optimal)
	span := one.Sub(optimal)
	if !span.IsPositive() {
		return base.Add(slope1).Add(slope2).Truncate(MaxPrecision)
	}

	return base.Add(slope1).Add(slope2.Mul(excess.Div(span))).Truncate(MaxPrecision)
}
