package quadruple

import "math/big"

// sqrtWorkingPrecision is the big.Float precision used while extracting
// the square root's top 129 bits of mantissa; it is comfortably larger
// than the 129 bits actually kept so the final round-to-nearest step is
// never itself starved of precision.
const sqrtWorkingPrecision = 320

// Sqrt returns the square root of v, rounded to nearest with ties away
// from zero (§4.3). Negative finite operands (other than -0) produce NaN,
// matching the IEEE-754 convention the rest of the package follows.
func Sqrt(v Value) Value {
	switch {
	case v.IsNaN():
		return NaN
	case v.IsZero():
		return v
	case v.negative:
		return NaN
	case v.IsInfinite():
		return PositiveInfinity
	}

	ext, hi, lo := fullSignificand(v)
	na := significandBigInt(ext, hi, lo)
	ea := v.UnbiasedExponent()

	e2 := ea - 128
	var adjusted *big.Int
	var m int64
	if e2%2 == 0 {
		adjusted = na
		m = e2 / 2
	} else {
		adjusted = new(big.Int).Lsh(na, 1)
		m = (e2 - 1) / 2
	}
	// A subnormal radicand is widened by an even shift to 129..130 bits so
	// its root carries the full 129 significant bits.
	if k := (130 - adjusted.BitLen()) &^ 1; k > 0 {
		adjusted = new(big.Int).Lsh(adjusted, uint(k))
		m -= int64(k / 2)
	}

	radicand := new(big.Float).SetPrec(sqrtWorkingPrecision).SetInt(adjusted)
	root := new(big.Float).SetPrec(sqrtWorkingPrecision).Sqrt(radicand)

	scale := new(big.Float).SetPrec(sqrtWorkingPrecision).SetInt(new(big.Int).Lsh(big.NewInt(1), 64))
	scaled := new(big.Float).SetPrec(sqrtWorkingPrecision).Mul(root, scale)
	scaled.Add(scaled, big.NewFloat(0.5))

	rounded, _ := scaled.Int(nil)
	return normalizeSqrt(m, rounded)
}

// normalizeSqrt brings the rounded root (approximately sqrt(adjusted)*2^64)
// back to the ext-bit-at-128 canonical form and computes the final
// exponent, with overflow and subnormal handling at the edges of range.
func normalizeSqrt(m int64, rounded *big.Int) Value {
	if rounded.Sign() == 0 {
		return Zero
	}

	msbPos := rounded.BitLen() - 1
	shift := msbPos - 128
	switch {
	case shift > 0:
		rounded = new(big.Int).Rsh(rounded, uint(shift))
	case shift < 0:
		rounded = new(big.Int).Lsh(rounded, uint(-shift))
	}

	mantHi, mantLo := extractMant128(rounded)
	newExp := m + 64 + int64(shift)
	return finishNormal(false, newExp, mantHi, mantLo)
}
