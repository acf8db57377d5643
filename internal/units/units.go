// Package units converts between the ledger's integer base units and
// decimal display strings. The ledger keeps 18 fractional decimal digits
// below the display unit; every conversion here is exact, so a value
// survives any number of round trips unchanged.
package units

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// Decimals is the fixed scale of the ledger's base units.
const Decimals = 18

// ErrInvalidAmount indicates a display amount that cannot be represented
// in base units.
var ErrInvalidAmount = errors.New("invalid amount")

// ToBase converts a decimal display string to integer base units.
// Amounts with more than 18 fractional digits are rejected rather than
// rounded.
func ToBase(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("%w: empty string", ErrInvalidAmount)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if d.IsNegative() {
		return nil, fmt.Errorf("%w: negative amount %q", ErrInvalidAmount, s)
	}

	shifted := d.Shift(Decimals)
	if !shifted.IsInteger() {
		return nil, fmt.Errorf("%w: %q exceeds %d decimal places", ErrInvalidAmount, s, Decimals)
	}
	return shifted.BigInt(), nil
}

// FromBase converts integer base units to a decimal display string with
// trailing zeros trimmed.
func FromBase(i *big.Int) string {
	return decimal.NewFromBigInt(i, -Decimals).String()
}

// ParseBase parses a base-unit integer string as produced by the ledger.
func ParseBase(s string) (*big.Int, error) {
	i, ok := new(big.Int).SetString(strings.TrimSpace(s), 10)
	if !ok {
		return nil, fmt.Errorf("%w: malformed base units %q", ErrInvalidAmount, s)
	}
	return i, nil
}
