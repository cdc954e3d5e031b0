package quadruple

import "math/big"

// Div returns a / b, rounded to nearest with ties away from zero (§4.2.4).
// The 129-bit significands are converted to big.Int just for the division
// step itself (QuoRem plus a remainder-vs-half-divisor comparison for
// rounding) — the same library the package's decimal bridge and test
// oracles already depend on, rather than hand-rolling a multi-limb
// quotient-estimation loop for a single call site.
func Div(a, b Value) Value {
	switch {
	case a.IsNaN() || b.IsNaN():
		return NaN
	case a.IsInfinite() && b.IsInfinite():
		return NaN
	case a.IsInfinite():
		return saturate(a.negative != b.negative)
	case b.IsInfinite():
		return Value{negative: a.negative != b.negative}
	case b.IsZero():
		if a.IsZero() {
			return NaN
		}
		return saturate(a.negative != b.negative)
	case a.IsZero():
		return Value{negative: a.negative != b.negative}
	}

	negative := a.negative != b.negative
	ea, eb := a.UnbiasedExponent(), b.UnbiasedExponent()
	extA, hiA, loA := fullSignificand(a)
	extB, hiB, loB := fullSignificand(b)

	na := significandBigInt(extA, hiA, loA)
	nb := significandBigInt(extB, hiB, loB)

	// Scale the dividend so the quotient lands in [2^128, 2^129) and so
	// carries all 129 significant bits before it is rounded, even when the
	// dividend's significand is the smaller one or an operand is subnormal.
	scale := 128 + nb.BitLen() - na.BitLen()
	if new(big.Int).Lsh(na, uint(scale)).Cmp(new(big.Int).Lsh(nb, 128)) < 0 {
		scale++
	}
	numerator := new(big.Int).Lsh(na, uint(scale))
	remainder := new(big.Int)
	quotient := new(big.Int)
	quotient.QuoRem(numerator, nb, remainder)

	twiceRemainder := new(big.Int).Lsh(remainder, 1)
	if twiceRemainder.Cmp(nb) >= 0 {
		quotient.Add(quotient, big.NewInt(1))
	}

	return normalizeQuotient(negative, ea-int64(scale-128), eb, quotient)
}

// significandBigInt packs a 129-bit significand (implicit bit plus 128-bit
// mantissa) into a big.Int for use as a division operand.
func significandBigInt(ext, hi, lo uint64) *big.Int {
	x := new(big.Int).SetUint64(hi)
	x.Lsh(x, 64)
	x.Or(x, new(big.Int).SetUint64(lo))
	if ext != 0 {
		x.Or(x, new(big.Int).Lsh(big.NewInt(1), 128))
	}
	return x
}

// normalizeQuotient brings a rounded quotient back to the ext-bit-at-128
// canonical form, adjusting the combined exponent, with overflow and
// subnormal handling at the edges of range.
func normalizeQuotient(negative bool, ea, eb int64, quotient *big.Int) Value {
	if quotient.Sign() == 0 {
		return Value{negative: negative}
	}

	msbPos := quotient.BitLen() - 1
	shift := msbPos - 128
	switch {
	case shift > 0:
		quotient = new(big.Int).Rsh(quotient, uint(shift))
	case shift < 0:
		quotient = new(big.Int).Lsh(quotient, uint(-shift))
	}

	mantHi, mantLo := extractMant128(quotient)
	newExp := ea - eb + int64(shift)
	return finishNormal(negative, newExp, mantHi, mantLo)
}

// extractMant128 returns the low 128 bits of x as (hi, lo) words.
func extractMant128(x *big.Int) (hi, lo uint64) {
	mask := new(big.Int).Lsh(big.NewInt(1), 64)
	mask.Sub(mask, big.NewInt(1))
	loBig := new(big.Int).And(x, mask)
	hiBig := new(big.Int).Rsh(x, 64)
	hiBig.And(hiBig, mask)
	return hiBig.Uint64(), loBig.Uint64()
}
