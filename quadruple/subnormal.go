package quadruple

import (
	"math/bits"

	"github.com/go-quadruple/quad/imath"
)

// toSubnormal converts a normal-looking mantissa (mantHi, mantLo, with an
// implicit leading 1) carrying the given unbiased exponent, which has
// underflowed below MinNormal's scale, into subnormal form (§4.2.5). It
// shifts the 129-bit significand (implicit 1 followed by mantHi:mantLo)
// right by the distance between unbiasedExp and the subnormal scale,
// keeps the highest shifted-out bit as a guard, and rounds up on a carry —
// which can overflow back into a normal MIN_NORMAL result.
func toSubnormal(negative bool, mantHi, mantLo uint64, unbiasedExp int64) Value {
	shift := uint(unbiasedSubnormalExponent - unbiasedExp)
	_, rHi, rLo, guard, _ := imath.ShiftRight192(1, mantHi, mantLo, shift)

	if guard {
		var carry uint64
		rLo, carry = bits.Add64(rLo, 1, 0)
		rHi, carry = bits.Add64(rHi, 0, carry)
		if carry != 0 {
			return Value{negative: negative, exponent: ExpMinNormal}
		}
	}

	if rHi == 0 && rLo == 0 {
		return Value{negative: negative}
	}

	return Value{negative: negative, exponent: ExpSubnormal, mantHi: rHi, mantLo: rLo}
}

// saturate returns the correctly-signed infinity, used whenever an
// arithmetic result's exponent overflows past ExpMaxValue.
func saturate(negative bool) Value {
	if negative {
		return NegativeInfinity
	}
	return PositiveInfinity
}

// finishNormal takes a candidate result already normalized so its implicit
// leading bit sits at position 128 of (mantHi, mantLo), together with the
// unbiased exponent that candidate would carry as a normal value, and
// dispatches to infinity, subnormal, or normal encoding depending on where
// the biased exponent actually lands. Every arithmetic operation's
// normalization step funnels through this one exponent-range decision.
func finishNormal(negative bool, unbiasedExp int64, mantHi, mantLo uint64) Value {
	biasedExp := unbiasedExp + int64(ExpBias)
	switch {
	case biasedExp > int64(ExpMaxValue):
		return saturate(negative)
	case biasedExp < int64(ExpMinNormal):
		return toSubnormal(negative, mantHi, mantLo, unbiasedExp)
	default:
		return Value{negative: negative, exponent: uint32(biasedExp), mantHi: mantHi, mantLo: mantLo}
	}
}
