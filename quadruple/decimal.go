package quadruple

import "math/big"

// arbitraryDecimalPrecision is the big.Float precision used for the
// Value<->arbitrary-precision-decimal bridge (§4.4.5): comfortably past
// the spec's 100/120-digit working precision for each direction.
const arbitraryDecimalPrecision = 420

// ToArbitraryDecimal returns the exact decimal value of v as a big.Float,
// for callers that need arbitrary-precision decimal output (test oracles,
// external reporting). It fails with ErrNotFinite for NaN and infinite
// operands, the only two inputs that have no decimal value.
func ToArbitraryDecimal(v Value) (*big.Float, error) {
	if !v.IsFinite() {
		return nil, ErrNotFinite
	}

	d := new(big.Float).SetPrec(arbitraryDecimalPrecision)
	if v.IsZero() {
		if v.negative {
			d.Neg(d)
		}
		return d, nil
	}

	ext, hi, lo := fullSignificand(v)
	mantissa := significandBigInt(ext, hi, lo)
	shiftExp := int(v.UnbiasedExponent()) - 128

	d.SetInt(mantissa)
	powerOfTwo := new(big.Float).SetPrec(arbitraryDecimalPrecision).SetMantExp(big.NewFloat(1), shiftExp)
	d.Mul(d, powerOfTwo)
	if v.negative {
		d.Neg(d)
	}
	return d, nil
}

// FromArbitraryDecimal converts an arbitrary-precision decimal value to
// the nearest Value, rounding to nearest with ties away from zero and
// going through subnormal conversion (§4.2.5) at the low end of range.
func FromArbitraryDecimal(d *big.Float) Value {
	if d.Sign() == 0 {
		if d.Signbit() {
			return NegativeZero
		}
		return Zero
	}

	negative := d.Signbit()
	magnitude := new(big.Float).SetPrec(arbitraryDecimalPrecision).Abs(d)
	return finalizeParsed(negative, magnitude)
}
