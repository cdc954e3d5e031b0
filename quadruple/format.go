package quadruple

import "math/big"

// formatPrecision is the big.Float working precision used while rendering
// a Value to decimal; comfortably more than the ~133 bits needed to
// correctly round a 129-bit significand to 40 significant decimal digits.
const formatPrecision = 200

// Format renders v in the producer grammar of spec §4.4.3: exactly
// "[-]D.(39 fractional digits)e(sign)(>=2 digits)" for finite nonzero
// values, the literal "NaN"/"Infinity"/"-Infinity" for non-finite values,
// and "0.0"/"-0.0" for zero.
func Format(v Value) string {
	switch {
	case v.IsNaN():
		return "NaN"
	case v.IsInfinite():
		if v.negative {
			return "-Infinity"
		}
		return "Infinity"
	case v.IsZero():
		if v.negative {
			return "-0.0"
		}
		return "0.0"
	}

	ext, hi, lo := fullSignificand(v)
	mantissa := significandBigInt(ext, hi, lo)
	shiftExp := int(v.UnbiasedExponent()) - 128

	f := new(big.Float).SetPrec(formatPrecision).SetInt(mantissa)
	powerOfTwo := new(big.Float).SetPrec(formatPrecision).SetMantExp(big.NewFloat(1), shiftExp)
	f.Mul(f, powerOfTwo)

	text := f.Text('e', 39)
	if v.negative {
		text = "-" + text
	}
	return text
}

// String implements fmt.Stringer via Format, so a bare %v/%s of a Value
// prints the same decimal grammar the package's own parser accepts back.
func (v Value) String() string {
	return Format(v)
}
