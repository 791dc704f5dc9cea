package core

import (
	"context"

	"github.com/shopspring/decimal"
)

// PriceTicker oracle price for one asset
type PriceTicker struct {
	Asset Asset           `json:"asset"`
	Price decimal.Decimal `json:"price"`
}

// IPriceOracleService price lookup supplied by the external oracle
// collaborator. A failed or non-positive lookup surfaces
// ErrPriceUnavailable; prices are never defaulted.
type IPriceOracleService interface {
	GetPrice(ctx context.Context, asset Asset) (decimal.Decimal, error)
}
