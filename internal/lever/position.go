package lever

import (
	"time"

	"lever/core"

	"github.com/shopspring/decimal"
)

// Accrue simple proportional interest since last:
// accrued += principal * rate * elapsed_seconds / seconds_per_year.
// Accrual is lazy, applied whenever a position is read or mutated, so
// no background job is needed.
func Accrue(principal, accrued, rate decimal.Decimal, last, now time.Time) decimal.Decimal {
	elapsed := now.Unix() - last.Unix()
	if elapsed <= 0 {
		return accrued
	}

	interest := principal.Mul(rate).
		Mul(decimal.NewFromInt(elapsed)).
		Div(SecondsPerYear).
		Truncate(MaxPrecision)

	return accrued.Add(interest)
}

// SupplyBalance interest-inclusive balance as of now, without mutating
// the position.
func SupplyBalance(s *core.Supply, now time.Time) decimal.Decimal {
	if s == nil {
		return decimal.Zero
	}

	accrued := Accrue(s.Principal, s.AccruedInterest, s.RateAtDeposit, s.LastInterestUpdate, now)
	return s.Principal.Add(accrued)
}

// BorrowBalance interest-inclusive debt as of now, without mutating
// the position.
func BorrowBalance(b *core.Borrow, now time.Time) decimal.Decimal {
	if b == nil {
		return decimal.Zero
	}

	accrued := Accrue(b.Principal, b.AccruedInterest, b.RateAtOrigination, b.LastInterestUpdate, now)
	return b.Principal.Add(accrued)
}

func touchSupply(s *core.Supply, now time.Time) {
	s.AccruedInterest = Accrue(s.Principal, s.AccruedInterest, s.RateAtDeposit, s.LastInterestUpdate, now)
	s.LastInterestUpdate = now
}

func touchBorrow(b *core.Borrow, now time.Time) {
	b.AccruedInterest = Accrue(b.Principal, b.AccruedInterest, b.RateAtOrigination, b.LastInterestUpdate, now)
	b.LastInterestUpdate = now
}

// CreditSupply accrues then adds amount to the principal. The stored
// rate snapshot is refreshed to the current supply rate.
func CreditSupply(s *core.Supply, amount, currentRate decimal.Decimal, now time.Time) {
	touchSupply(s, now)
	s.Principal = s.Principal.Add(amount)
	s.RateAtDeposit = currentRate
}

// DebitSupply accrues then removes amount, consuming accrued interest
// before principal. Fails when the interest-inclusive balance cannot
// cover the amount.
func DebitSupply(s *core.Supply, amount decimal.Decimal, now time.Time) error {
	if s == nil || s.ID == 0 {
		return core.ErrSupplyNotFound
	}

	touchSupply(s, now)
	if amount.GreaterThan(s.Principal.Add(s.AccruedInterest)) {
		return core.ErrInsufficientBalance
	}

	fromInterest := decimal.Min(amount, s.AccruedInterest)
	s.AccruedInterest = s.AccruedInterest.Sub(fromInterest)
	s.Principal = s.Principal.Sub(amount.Sub(fromInterest))
	return nil
}

// CreditBorrow accrues then adds amount to the debt principal,
// refreshing the rate snapshot for variable-mode positions. A stable
// position keeps its origination rate.
func CreditBorrow(b *core.Borrow, amount, currentRate decimal.Decimal, now time.Time) {
	touchBorrow(b, now)
	b.Principal = b.Principal.Add(amount)
	if b.RateMode == core.RateModeVariable {
		b.RateAtOrigination = currentRate
	}
}

// DebitBorrow accrues then repays amount, consuming accrued interest
// before principal.
func DebitBorrow(b *core.Borrow, amount decimal.Decimal, now time.Time) error {
	if b == nil || b.ID == 0 {
		return core.ErrBorrowNotFound
	}

	touchBorrow(b, now)
	if amount.GreaterThan(b.Principal.Add(b.AccruedInterest)) {
		return core.ErrInsufficientBalance
	}

	fromInterest := decimal.Min(amount, b.AccruedInterest)
	b.AccruedInterest = b.AccruedInterest.Sub(fromInterest)
	b.Principal = b.Principal.Sub(amount.Sub(fromInterest))
	return nil
}

// IsDust reports whether a balance is too small to keep as a row.
func IsDust(balance, threshold decimal.Decimal) bool {
	return balance.LessThanOrEqual(threshold)
}
