package budget

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	dErrors "govledger/pkg/domain-errors"
)

// MomentAmounts holds the accumulated amount per moment of one budget line
// (partida) or revenue concept. A missing moment reads as zero.
type MomentAmounts map[Moment]decimal.Decimal

// Amount returns the recorded amount for m, or zero.
func (a MomentAmounts) Amount(m Moment) decimal.Decimal {
	if v, ok := a[m]; ok {
		return v
	}
	return decimal.Zero
}

// Recorded reports whether m has a positive amount. A zero amount means the
// moment has not been registered yet.
func (a MomentAmounts) Recorded(m Moment) bool {
	return a.Amount(m).IsPositive()
}

// Bounds on accepted amounts. Comparing or rounding a decimal rescales its
// coefficient by the exponent, so an unbounded exponent costs unbounded work.
const (
	maxAmountExponent = 18
	maxAmountDigits   = 30
)

// ParseAmount parses a decimal amount such as "1500", "1500.25" or "-3".
// Malformed or out of range input is a CodeMalformedAmount error, never a
// silent zero.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, dErrors.New(dErrors.CodeMalformedAmount, "amount is empty")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, dErrors.Wrap(err, dErrors.CodeMalformedAmount, fmt.Sprintf("amount %q is not a number", s))
	}
	if exp := d.Exponent(); exp > maxAmountExponent || exp < -maxAmountExponent {
		return decimal.Zero, dErrors.Newf(dErrors.CodeMalformedAmount, "amount %q is out of range", s)
	}
	if d.NumDigits() > maxAmountDigits {
		return decimal.Zero, dErrors.Newf(dErrors.CodeMalformedAmount, "amount %q has too many digits", s)
	}
	return d, nil
}

// MustAmount parses s and panics on malformed input. Intended for literals.
func MustAmount(s string) decimal.Decimal {
	d, err := ParseAmount(s)
	if err != nil {
		panic(err)
	}
	return d
}
