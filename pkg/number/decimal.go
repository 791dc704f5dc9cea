package number

import (
	"github.com/shopspring/decimal"
)

// Decimal parses v, returning zero on malformed input.
func Decimal(v string) decimal.Decimal {
	d, _ := decimal.NewFromString(v)
	return d
}

// Ceil rounds d up at the given precision.
func Ceil(d decimal.Decimal, precision int32) decimal.Decimal {
	return d.Shift(precision).Ceil().Shift(-precision)
}

// IsPositiveAmount reports whether d is a usable operation amount:
// strictly positive and within a sane magnitude.
func IsPositiveAmount(d decimal.Decimal) bool {
	return d.IsPositive() && d.LessThan(decimal.New(1, 18))
}
