package quadruple

import "github.com/go-quadruple/quad/imath"

// Add returns a + b, rounded to nearest with ties away from zero (§4.2.1).
// Arithmetic is total: NaN propagates, and signed infinities combine or
// cancel to NaN the same way the teacher's FixedPoint Add handles its own
// Infinity/NaN operands before ever touching a coefficient.
func Add(a, b Value) Value {
	switch {
	case a.IsNaN() || b.IsNaN():
		return NaN
	case a.IsInfinite() || b.IsInfinite():
		return addInfinities(a, b)
	case a.IsZero() && b.IsZero():
		return addZeros(a, b)
	case a.IsZero():
		return b
	case b.IsZero():
		return a
	}

	if a.negative == b.negative {
		return addMagnitudes(a, b, a.negative)
	}
	return subMagnitudes(a, b)
}

// Sub returns a - b (§4.2.2), defined as Add(a, -b).
func Sub(a, b Value) Value {
	neg := b
	neg.Negate()
	return Add(a, neg)
}

func addInfinities(a, b Value) Value {
	aInf, bInf := a.IsInfinite(), b.IsInfinite()
	switch {
	case aInf && bInf:
		if a.negative != b.negative {
			return NaN
		}
		return a
	case aInf:
		return a
	default:
		return b
	}
}

func addZeros(a, b Value) Value {
	if a.negative == b.negative {
		return a
	}
	return Zero
}

// fullSignificand returns the operand's significand as a 129-bit integer
// split into an implicit-bit word and the stored mantissa halves: ext is 1
// for normals (the implicit leading bit) and 0 for subnormals.
func fullSignificand(v Value) (ext, hi, lo uint64) {
	if v.exponent == ExpSubnormal {
		return 0, v.mantHi, v.mantLo
	}
	return 1, v.mantHi, v.mantLo
}

// addMagnitudes adds two same-signed, nonzero, finite operands.
func addMagnitudes(a, b Value, negative bool) Value {
	ea, eb := a.UnbiasedExponent(), b.UnbiasedExponent()
	if ea < eb {
		a, b = b, a
		ea, eb = eb, ea
	}

	extA, hiA, loA := fullSignificand(a)
	extB, hiB, loB := fullSignificand(b)

	sExt, sHi, sLo, guard, _ := imath.ShiftRight192(extB, hiB, loB, uint(ea-eb))
	r2, r1, r0, _ := imath.Add192(extA, hiA, loA, sExt, sHi, sLo)
	if guard {
		r2, r1, r0, _ = imath.Add192(r2, r1, r0, 0, 0, 1)
	}

	return normalizeSum(negative, ea, r2, r1, r0)
}

// normalizeSum brings a raw 129..130-bit addition result back to the
// ext-bit-at-128 canonical form, adjusting the exponent for any carry-out,
// and dispatches to subnormal/overflow handling at the edges of range.
func normalizeSum(negative bool, ea int64, r2, r1, r0 uint64) Value {
	msbPos := imath.BitLen192(r2, r1, r0) - 1
	if msbPos < 0 {
		return Value{negative: negative}
	}
	if msbPos < 128 {
		// Only reachable when the larger operand was itself subnormal; the
		// sum stays at subnormal scale with no implicit bit.
		return Value{negative: negative, exponent: ExpSubnormal, mantHi: r1, mantLo: r0}
	}

	shiftAmt := msbPos - 128
	if shiftAmt > 0 {
		var carryGuard bool
		r2, r1, r0, carryGuard, _ = imath.ShiftRight192(r2, r1, r0, uint(shiftAmt))
		if carryGuard {
			r2, r1, r0, _ = imath.Add192(r2, r1, r0, 0, 0, 1)
			if extra := imath.BitLen192(r2, r1, r0) - 1 - 128; extra > 0 {
				r2, r1, r0, _, _ = imath.ShiftRight192(r2, r1, r0, uint(extra))
				shiftAmt += extra
			}
		}
	}

	newExp := ea + int64(shiftAmt)
	return finishNormal(negative, newExp, r1, r0)
}

// subMagnitudes adds two finite, nonzero operands of opposite sign by
// subtracting the smaller magnitude from the larger; the larger operand's
// sign wins.
func subMagnitudes(a, b Value) Value {
	switch CompareMagnitudeTo(a, b) {
	case 0:
		return Zero
	case 1:
		return subtractAligned(a, b, a.negative)
	default:
		return subtractAligned(b, a, b.negative)
	}
}

// subtractAligned computes |big| - |small| (big's magnitude strictly
// greater), producing a correctly rounded, correctly signed Value.
func subtractAligned(big, small Value, negative bool) Value {
	eBig, eSmall := big.UnbiasedExponent(), small.UnbiasedExponent()
	shift := uint(eBig - eSmall)

	extBig, hiBig, loBig := fullSignificand(big)
	extSmall, hiSmall, loSmall := fullSignificand(small)

	sExt, sHi, sLo, guard, sticky := imath.ShiftRight192(extSmall, hiSmall, loSmall, shift)

	d2, d1, d0, _ := imath.Sub192(extBig, hiBig, loBig, sExt, sHi, sLo)
	if guard || sticky {
		d2, d1, d0, _ = imath.Sub192(d2, d1, d0, 0, 0, 1)
		switch {
		case guard && !sticky:
			// remainder was exactly half an ULP; stays exactly half after
			// the borrow, so the rounding decision below is unaffected.
		case guard && sticky:
			guard = false
		case !guard && sticky:
			guard = true
		}
	}

	if guard {
		d2, d1, d0, _ = imath.Add192(d2, d1, d0, 0, 0, 1)
	}

	return normalizeDifference(negative, eBig, d2, d1, d0, big.exponent == ExpSubnormal)
}

// normalizeDifference left-shifts a subtraction result back to the
// ext-bit-at-128 canonical form (catastrophic cancellation can leave many
// leading zeros) and adjusts the exponent downward accordingly. If the
// larger operand was already subnormal there is no lower scale to shift
// into, so the difference stays subnormal as-is.
func normalizeDifference(negative bool, eBig int64, d2, d1, d0 uint64, bigWasSubnormal bool) Value {
	msbPos := imath.BitLen192(d2, d1, d0) - 1
	if msbPos < 0 {
		return Value{negative: negative}
	}
	if bigWasSubnormal {
		return Value{negative: negative, exponent: ExpSubnormal, mantHi: d1, mantLo: d0}
	}

	leftShift := 128 - msbPos
	if leftShift > 0 {
		if leftShift >= 128 {
			d1, d0 = 0, 0
		} else {
			d1, d0 = imath.ShiftLeft128(d1, d0, uint(leftShift))
		}
		d2 = 0
	} else if leftShift < 0 {
		d2, d1, d0, _, _ = imath.ShiftRight192(d2, d1, d0, uint(-leftShift))
	}

	newExp := eBig - int64(leftShift)
	return finishNormal(negative, newExp, d1, d0)
}
