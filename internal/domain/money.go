package domain

import (
	"fmt"
	"math"
)

// All ledger arithmetic uses int64 cents; dollars appear only at the
// configuration and reporting boundary.

// DollarsToCents converts a float64 dollar amount to int64 cents. It
// rejects inputs with more than 2 decimal places. Uses math.Round after
// scaling to absorb floating-point representation artifacts.
func DollarsToCents(f float64) (int64, error) {
	// Scale by 1000 to detect a third decimal place; round first to avoid
	// artifacts like 1.10 * 1000 = 1099.9999....
	scaled := math.Round(f * 1000)
	if math.Mod(scaled, 10) != 0 {
		return 0, fmt.Errorf("monetary values must have at most 2 decimal places")
	}
	return int64(math.Round(f * 100)), nil
}

// CentsToDollars converts an int64 cents value to a float64 dollar amount.
func CentsToDollars(c int64) float64 {
	return float64(c) / 100.0
}

// FormatCents renders a cents amount as a dollar string, e.g. 123456 →
// "$1234.56". Negative amounts keep the sign ahead of the dollar symbol.
func FormatCents(c int64) string {
	sign := ""
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%s$%d.%02d", sign, c/100, c%100)
}
