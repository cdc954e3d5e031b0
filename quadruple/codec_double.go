package quadruple

import (
	"math"
	"math/bits"

	"github.com/go-quadruple/quad/imath"
)

const (
	doubleBias    = 1023
	doubleMaxExp  = 2046 // largest biased exponent of a finite double
	doubleMantLen = 52
)

// SetFloat64 loads v from a host double, decomposing its sign, 11-bit
// biased exponent and 52-bit mantissa (§4.1 host double assignment).
// Subnormal doubles are renormalized the same way SetInt64 renormalizes a
// host integer: the leading set bit of the fraction becomes the implicit 1.
func (v *Value) SetFloat64(f float64) *Value {
	bits64 := math.Float64bits(f)
	negative := bits64>>63 != 0
	hostExp := int((bits64 >> 52) & 0x7FF)
	frac := bits64 & (1<<52 - 1)

	switch {
	case hostExp == 0x7FF && frac != 0:
		*v = NaN
		return v
	case hostExp == 0x7FF:
		if negative {
			*v = NegativeInfinity
		} else {
			*v = PositiveInfinity
		}
		return v
	case hostExp == 0 && frac == 0:
		*v = signedCopy(Zero, negative)
		return v
	case hostExp == 0:
		frac64 := frac << 12
		lz := bits.LeadingZeros64(frac64)
		mantHi := frac64 << uint(lz+1)
		unbiasedExp := int64(-doubleBias) - int64(lz)
		v.SetRawPartsUnbiased(negative, unbiasedExp, mantHi, 0)
		return v
	default:
		mantHi := frac << 12
		unbiasedExp := int64(hostExp) - doubleBias
		v.SetRawPartsUnbiased(negative, unbiasedExp, mantHi, 0)
		return v
	}
}

// FromFloat64 returns the Value equal to the host double f.
func FromFloat64(f float64) Value {
	var v Value
	v.SetFloat64(f)
	return v
}

// ToHostDouble converts v to the nearest host double, rounding to nearest
// with ties to even (matching the host's BigDecimal.doubleValue
// convention, the one place in this package that departs from
// round-half-away-from-zero). Overflow saturates to ±Inf; underflow
// saturates to ±0; values in the double subnormal range are shifted with
// the same rounding rule.
func ToHostDouble(v Value) float64 {
	switch {
	case v.IsNaN():
		return math.NaN()
	case v.IsInfinite():
		if v.negative {
			return math.Inf(-1)
		}
		return math.Inf(1)
	case v.IsZero():
		if v.negative {
			return math.Copysign(0, -1)
		}
		return 0
	}

	unbiasedExp := v.UnbiasedExponent()
	hostExp := unbiasedExp + doubleBias

	if hostExp > doubleMaxExp {
		if v.negative {
			return math.Inf(-1)
		}
		return math.Inf(1)
	}

	if hostExp >= 1 {
		return assembleHostDouble(v.negative, uint64(hostExp), v.mantHi, v.mantLo)
	}

	return assembleSubnormalDouble(v, hostExp)
}

// assembleHostDouble rounds a normal-range mantissa (the 128 bits after
// the implicit 1) down to the 52 bits a double keeps, using round-half-to-
// even on the 76 discarded bits.
func assembleHostDouble(negative bool, hostExp uint64, mantHi, mantLo uint64) float64 {
	kept := mantHi >> 12
	guard := (mantHi>>11)&1 != 0
	sticky := mantHi&0x7FF != 0 || mantLo != 0

	if roundHalfEven(guard, sticky, kept&1 != 0) {
		kept++
		if kept == 1<<doubleMantLen {
			kept = 0
			hostExp++
			if hostExp > doubleMaxExp {
				if negative {
					return math.Inf(-1)
				}
				return math.Inf(1)
			}
		}
	}

	return assembleFloat64(negative, hostExp, kept)
}

// assembleSubnormalDouble handles results whose host-normal exponent would
// be <= 0: it right-shifts the full 129-bit significand (implicit bit
// included) down to the double's fixed subnormal scale in one step — at
// hostExp == 0 that lands the former implicit bit at position 51, exactly
// the double subnormal's top bit — then rounds the low 52 bits.
func assembleSubnormalDouble(v Value, hostExp int64) float64 {
	ext, hi, lo := fullSignificand(v)
	shift := uint(77 - hostExp)

	_, _, kept, guard, sticky := imath.ShiftRight192(ext, hi, lo, shift)

	if roundHalfEven(guard, sticky, kept&1 != 0) {
		kept++
		if kept == 1<<doubleMantLen {
			return assembleFloat64(v.negative, 1, 0)
		}
	}

	return assembleFloat64(v.negative, 0, kept)
}

func roundHalfEven(guard, sticky, keptIsOdd bool) bool {
	if !guard {
		return false
	}
	return sticky || keptIsOdd
}

func assembleFloat64(negative bool, hostExp uint64, fraction uint64) float64 {
	bits64 := hostExp<<52 | (fraction & (1<<52 - 1))
	if negative {
		bits64 |= 1 << 63
	}
	return math.Float64frombits(bits64)
}
