package usecase

import (
	"math"

	"github.com/shopspring/decimal"
)

// MaxQuoteAmount caps operator input at one million euros.
const MaxQuoteAmount = 1_000_000

var hundred = decimal.NewFromInt(100)

// NormalizeAmount converts a euro amount into cents, rounding half away from zero.
// A nil input stays nil (the document then shows the default amount).
func NormalizeAmount(euros *float64) (*int64, error) {
	if euros == nil {
		return nil, nil
	}
	v := *euros
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 || v > MaxQuoteAmount {
		return nil, ErrInvalidAmount
	}
	cents := decimal.NewFromFloat(v).Mul(hundred).Round(0).IntPart()
	return &cents, nil
}

// DepositAmount is percent% of total, rounded to the cent.
func DepositAmount(total int64, percent int) int64 {
	if percent <= 0 {
		return 0
	}
	if percent >= 100 {
		return total
	}
	return decimal.NewFromInt(total).
		Mul(decimal.NewFromInt(int64(percent))).
		Div(hundred).
		Round(0).
		IntPart()
}
