package quadruple

import "github.com/go-quadruple/quad/imath"

// Mul returns a * b, rounded to nearest with ties away from zero (§4.2.3).
// The 129-bit significands (implicit bit plus 128-bit mantissa) are
// multiplied exactly as three-limb operands via imath.Mul192, producing a
// 384-bit product that is then renormalized back to a single implicit bit.
func Mul(a, b Value) Value {
	switch {
	case a.IsNaN() || b.IsNaN():
		return NaN
	case a.IsInfinite() || b.IsInfinite():
		return mulInfinite(a, b)
	case a.IsZero() || b.IsZero():
		return mulZero(a, b)
	}

	negative := a.negative != b.negative
	ea, eb := a.UnbiasedExponent(), b.UnbiasedExponent()
	extA, hiA, loA := fullSignificand(a)
	extB, hiB, loB := fullSignificand(b)

	product := imath.Mul192(extA, hiA, loA, extB, hiB, loB)
	return normalizeProduct(negative, ea, eb, product)
}

func mulInfinite(a, b Value) Value {
	if a.IsZero() || b.IsZero() {
		return NaN
	}
	return saturate(a.negative != b.negative)
}

func mulZero(a, b Value) Value {
	if a.IsInfinite() || b.IsInfinite() {
		return NaN
	}
	if a.negative != b.negative {
		return NegativeZero
	}
	return Zero
}

// bitLen384 returns the position of the highest set bit in words (words[5]
// most significant, words[0] least), counting from 1, or 0 if zero.
func bitLen384(words [6]uint64) int {
	for i := 5; i >= 0; i-- {
		if words[i] != 0 {
			return i*64 + bitLenWord(words[i])
		}
	}
	return 0
}

func bitLenWord(w uint64) int {
	n := 0
	for w != 0 {
		w >>= 1
		n++
	}
	return n
}

// shiftRight384 shifts a 384-bit value right by n bits, returning the
// shifted value plus the guard bit (highest bit shifted out) and the
// sticky bit (whether any other shifted-out bit was set).
func shiftRight384(words [6]uint64, n int) (result [6]uint64, guard, sticky bool) {
	if n <= 0 {
		return words, false, false
	}
	guardWordIdx := (n - 1) / 64
	guardBitIdx := uint((n - 1) % 64)
	if guardWordIdx < 6 {
		guard = (words[guardWordIdx]>>guardBitIdx)&1 != 0
	}
	for i := 0; i < 6; i++ {
		var mask uint64
		switch {
		case i < guardWordIdx:
			mask = words[i]
		case i == guardWordIdx && guardBitIdx > 0:
			mask = words[i] & ((uint64(1) << guardBitIdx) - 1)
		}
		if mask != 0 {
			sticky = true
		}
	}

	wordShift := n / 64
	bitShift := uint(n % 64)
	for i := 0; i < 6; i++ {
		srcIdx := i + wordShift
		if srcIdx >= 6 {
			continue
		}
		v := words[srcIdx] >> bitShift
		if bitShift > 0 && srcIdx+1 < 6 {
			v |= words[srcIdx+1] << (64 - bitShift)
		}
		result[i] = v
	}
	return result, guard, sticky
}

// normalizeProduct renormalizes the exact 384-bit product of two 129-bit
// significands back to a single implicit bit at position 128, rounding the
// discarded tail and adjusting the combined exponent, with overflow and
// subnormal handling at the edges of range (§4.2.5).
func normalizeProduct(negative bool, ea, eb int64, product [6]uint64) Value {
	msbPos := bitLen384(product) - 1
	if msbPos < 0 {
		return Value{negative: negative}
	}
	if msbPos < 128 {
		// Only reachable when both operands were subnormal: their product
		// is far below MinValue at this format's scale and flushes to zero,
		// the same way two IEEE-754 subnormals multiplied underflow to zero.
		return Value{negative: negative}
	}

	shift := msbPos - 128
	shifted, guard, _ := shiftRight384(product, shift)
	mantHi, mantLo := shifted[1], shifted[0]

	if guard {
		var carry uint64
		mantLo, carry = addCarry(mantLo, 1)
		mantHi, carry = addCarry(mantHi, carry)
		if carry != 0 {
			// mantissa rolled over to exactly the next power of two.
			mantHi, mantLo = 0, 0
			shift++
		}
	}

	newExp := ea + eb - 128 + int64(shift)
	return finishNormal(negative, newExp, mantHi, mantLo)
}

func addCarry(x, c uint64) (sum, carryOut uint64) {
	sum = x + c
	if sum < x {
		carryOut = 1
	}
	return sum, carryOut
}
