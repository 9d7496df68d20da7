package ledger

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidAmount is returned for amounts that are empty, non-numeric, or zero
// after normalization.
var ErrInvalidAmount = errors.New("invalid amount")

// amountPlaces is the number of fractional digits amounts are stored with.
const amountPlaces = 2

// Exponent bounds checked before any rescaling. Rounding or comparing a
// decimal with an extreme exponent allocates a big.Int of that many digits.
const (
	maxExponent = 15
	minExponent = -32
)

// maxAmount bounds amounts after rounding; it is itself rejected.
var maxAmount = decimal.New(1, maxExponent)

// ParseAmount parses a user-entered amount and normalizes it. Negative input is
// accepted as its absolute value.
//
//	ParseAmount("19.999") -> 20.00
//	ParseAmount("1.005")  -> 1.01
//	ParseAmount("-5")     -> 5.00
//	ParseAmount("0.001")  -> ErrInvalidAmount
//	ParseAmount("1e20")   -> ErrInvalidAmount
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, raw)
	}
	if exp := d.Exponent(); exp > maxExponent || exp < minExponent {
		return decimal.Zero, fmt.Errorf("%w: %q out of range", ErrInvalidAmount, raw)
	}
	d = NormalizeAmount(d)
	if d.GreaterThanOrEqual(maxAmount) {
		return decimal.Zero, fmt.Errorf("%w: %q exceeds %s", ErrInvalidAmount, raw, maxAmount)
	}
	if d.IsZero() {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// NormalizeAmount takes the absolute value and rounds half away from zero to
// two fractional digits. The rounding runs on the exact decimal, so ties such
// as 1.005 always go up.
func NormalizeAmount(d decimal.Decimal) decimal.Decimal {
	return d.Abs().Round(amountPlaces)
}

// ClampAmountInput drops the sign from a negative numeric entry and returns
// anything else unchanged.
func ClampAmountInput(raw string) string {
	s := strings.TrimSpace(raw)
	d, err := decimal.NewFromString(s)
	if err != nil || !d.IsNegative() {
		return raw
	}
	return strings.TrimPrefix(s, "-")
}
