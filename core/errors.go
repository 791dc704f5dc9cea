package core

import "strconv"

// ErrorCode int
type ErrorCode int

const (
	// ErrUnknown unknown
	ErrUnknown ErrorCode = 100000
	// ErrOperationForbidden operation forbidden
	ErrOperationForbidden ErrorCode = 100001

	// ErrAssetNotSupported asset/chain pair is not registered
	ErrAssetNotSupported ErrorCode = 100100
	// ErrInvalidAmount amount is zero, negative or not finite
	ErrInvalidAmount ErrorCode = 100101
	// ErrSupplyNotFound no supply position
	ErrSupplyNotFound ErrorCode = 100102
	// ErrBorrowNotFound no borrow position
	ErrBorrowNotFound ErrorCode = 100103
	// ErrInsufficientBalance position balance below requested amount
	ErrInsufficientBalance ErrorCode = 100104
	// ErrInsufficientLiquidity reserve cannot cover the requested amount
	ErrInsufficientLiquidity ErrorCode = 100105
	// ErrHealthFactorTooLow simulated post-state fails the risk gate
	ErrHealthFactorTooLow ErrorCode = 100106
	// ErrConflict concurrent commit retries exhausted
	ErrConflict ErrorCode = 100107
	// ErrPriceUnavailable oracle could not price the asset
	ErrPriceUnavailable ErrorCode = 100108
	// ErrCollateralDisabled asset cannot be used as collateral
	ErrCollateralDisabled ErrorCode = 100109
	// ErrBorrowingDisabled asset cannot be borrowed
	ErrBorrowingDisabled ErrorCode = 100110
	// ErrStableBorrowOverCap stable-rate borrow exceeds the size cap
	ErrStableBorrowOverCap ErrorCode = 100111
	// ErrReserveNotFound reserve row missing, run reserve init
	ErrReserveNotFound ErrorCode = 100112
)

func (e ErrorCode) String() string {
	return strconv.Itoa(int(e))
}

func (e ErrorCode) Error() string {
	return e.String()
}
