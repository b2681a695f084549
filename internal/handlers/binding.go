package handlers

import (
	"github.com/shopspring/decimal"
)

// parseAmount converts an optional request amount to a decimal; empty
// means zero
func parseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
