// Package money converts between decimal amounts and their exact
// numerator/denominator storage representation. Monetary values are never
// passed through binary floating point.
package money

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// DefaultDenom is the denominator a zero-value amount is seeded with,
// corresponding to two fractional digits.
const DefaultDenom int64 = 100

// maxScale bounds the number of fractional digits so the denominator fits in
// an int64 (10^18 is the largest int64 power of ten).
const maxScale = 18

// ErrUnrepresentable indicates that an amount cannot be converted losslessly
// to the integer numerator/denominator pair.
var ErrUnrepresentable = errors.New("amount not representable as an exact fraction")

// Fraction is a signed monetary amount stored as Num/Denom. Denom is always
// positive; the sign lives on Num.
type Fraction struct {
	Num   int64 `json:"num"`
	Denom int64 `json:"denom"`
}

// Zero returns the zero amount with the default denominator.
func Zero() Fraction {
	return Fraction{Num: 0, Denom: DefaultDenom}
}

// FromDecimal converts a decimal amount to its exact fraction form. The
// denominator is derived from the decimal's exponent: 100.50 becomes
// (10050, 100), 0.125 becomes (125, 1000), 3 becomes (3, 1).
func FromDecimal(d decimal.Decimal) (Fraction, error) {
	exp := int64(d.Exponent())
	coef := d.Coefficient() // returns a copy

	if exp >= 0 {
		if exp > maxScale {
			return Fraction{}, fmt.Errorf("%w: exponent %d too large", ErrUnrepresentable, exp)
		}
		num := new(big.Int).Mul(coef, pow10(exp))
		if !num.IsInt64() {
			return Fraction{}, fmt.Errorf("%w: %s exceeds int64 range", ErrUnrepresentable, d.String())
		}
		return Fraction{Num: num.Int64(), Denom: 1}, nil
	}

	scale := -exp
	if scale > maxScale {
		return Fraction{}, fmt.Errorf("%w: %s has more than %d fractional digits", ErrUnrepresentable, d.String(), maxScale)
	}
	if !coef.IsInt64() {
		return Fraction{}, fmt.Errorf("%w: %s exceeds int64 range", ErrUnrepresentable, d.String())
	}
	return Fraction{Num: coef.Int64(), Denom: pow10(scale).Int64()}, nil
}

// MustFromDecimal is FromDecimal for amounts known to be in range, such as
// literals in tests and fixtures.
func MustFromDecimal(d decimal.Decimal) Fraction {
	f, err := FromDecimal(d)
	if err != nil {
		panic(err)
	}
	return f
}

// Decimal converts the fraction back to a decimal amount, exactly for
// power-of-ten denominators.
func (f Fraction) Decimal() decimal.Decimal {
	if f.Denom == 0 {
		// Zero value constructed without Zero(); treat as the default scale.
		return decimal.New(f.Num, -2)
	}
	if scale, ok := powerOfTen(f.Denom); ok {
		return decimal.New(f.Num, -scale)
	}
	// Non-power-of-ten denominators do not round-trip through a finite
	// decimal; approximate via a rational.
	return decimal.NewFromBigRat(big.NewRat(f.Num, f.Denom), 9)
}

// IsZero reports whether the amount is zero regardless of denominator.
func (f Fraction) IsZero() bool {
	return f.Num == 0
}

// Neg returns the fraction with its sign flipped.
func (f Fraction) Neg() Fraction {
	return Fraction{Num: -f.Num, Denom: f.Denom}
}

func pow10(n int64) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(n), nil)
}

// powerOfTen returns k such that d == 10^k, if such k exists.
func powerOfTen(d int64) (int32, bool) {
	if d <= 0 {
		return 0, false
	}
	var k int32
	for d > 1 {
		if d%10 != 0 {
			return 0, false
		}
		d /= 10
		k++
	}
	return k, true
}
