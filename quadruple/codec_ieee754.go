package quadruple

import (
	"encoding/binary"
	"math/bits"

	"github.com/go-quadruple/quad/imath"
)

// IEEE-754 binary128 layout: 1 sign bit, a 15-bit biased exponent (bias
// 16383), 112 bits of fraction. This is a distinct, narrower format from
// the package's own 32-bit-exponent/128-bit-mantissa Value; PackIEEE754 and
// UnpackIEEE754 are the conversion at that boundary (§4.5/§6), not a
// redefinition of Value itself.
const (
	ieee754ExpBias           = 16383
	ieee754MaxBiasedExp      = 0x7FFE
	ieee754InfNaNBiasedExp   = 0x7FFF
	ieee754MinNormalUnbiased = 1 - ieee754ExpBias
	ieee754FracHiMask uint64 = 1<<48 - 1
)

// PackIEEE754 renders v as the two big-endian 64-bit words of an IEEE-754
// binary128: word[0] holds sign|exponent|top 48 fraction bits, word[1] the
// low 64 fraction bits. Out-of-range magnitudes saturate to ±Infinity;
// values below binary128's subnormal floor saturate to ±0.
func PackIEEE754(v Value) [2]uint64 {
	switch {
	case v.IsNaN():
		return ieee754Words(v.negative, ieee754InfNaNBiasedExp, 1<<47, 0)
	case v.IsInfinite():
		return ieee754Words(v.negative, ieee754InfNaNBiasedExp, 0, 0)
	case v.IsZero():
		return ieee754Words(v.negative, 0, 0, 0)
	}

	unbiasedExp := v.UnbiasedExponent()
	ieeeExp := unbiasedExp + ieee754ExpBias

	if ieeeExp > ieee754MaxBiasedExp {
		return ieee754Words(v.negative, ieee754InfNaNBiasedExp, 0, 0)
	}

	if ieeeExp < 1 {
		shift := uint(ieee754MinNormalUnbiased - unbiasedExp + 16)
		ext, hi, lo := fullSignificand(v)
		_, fracHi, fracLo, guard, _ := imath.ShiftRight192(ext, hi, lo, shift)
		fracHi, fracLo = roundFraction112(fracHi, fracLo, guard)
		if fracHi >= 1<<48 {
			return ieee754Words(v.negative, 1, 0, 0)
		}
		return ieee754Words(v.negative, 0, fracHi, fracLo)
	}

	fracHi, fracLo, guard, _ := imath.ShiftRight128(v.mantHi, v.mantLo, 16)
	fracHi, fracLo = roundFraction112(fracHi, fracLo, guard)
	if fracHi >= 1<<48 {
		ieeeExp++
		fracHi, fracLo = 0, 0
		if ieeeExp > ieee754MaxBiasedExp {
			return ieee754Words(v.negative, ieee754InfNaNBiasedExp, 0, 0)
		}
	}
	return ieee754Words(v.negative, uint64(ieeeExp), fracHi, fracLo)
}

// roundFraction112 rounds a 112-bit fraction (split fracHi:fracLo, fracHi
// holding the high 48 bits) up by one on a set guard bit, matching the rest
// of the package's round-half-up convention. The caller checks for a carry
// out of the top bit.
func roundFraction112(fracHi, fracLo uint64, guard bool) (uint64, uint64) {
	if !guard {
		return fracHi, fracLo
	}
	var carry uint64
	fracLo, carry = bits.Add64(fracLo, 1, 0)
	fracHi, _ = bits.Add64(fracHi, 0, carry)
	return fracHi, fracLo
}

func ieee754Words(negative bool, biasedExp, fracHi, fracLo uint64) [2]uint64 {
	w0 := biasedExp<<48 | (fracHi & ieee754FracHiMask)
	if negative {
		w0 |= 1 << 63
	}
	return [2]uint64{w0, fracLo}
}

// UnpackIEEE754 is the inverse of PackIEEE754. Subnormal binary128 inputs
// are renormalized into Value's much wider exponent range, the same way
// SetFloat64 renormalizes a subnormal host double.
func UnpackIEEE754(words [2]uint64) Value {
	negative := words[0]>>63 != 0
	biasedExp := (words[0] >> 48) & 0x7FFF
	fracHi := words[0] & ieee754FracHiMask
	fracLo := words[1]

	switch {
	case biasedExp == ieee754InfNaNBiasedExp && (fracHi != 0 || fracLo != 0):
		return signedCopy(NaN, negative)
	case biasedExp == ieee754InfNaNBiasedExp:
		return saturate(negative)
	case biasedExp == 0 && fracHi == 0 && fracLo == 0:
		return signedCopy(Zero, negative)
	}

	mantHi := fracHi<<16 | fracLo>>48
	mantLo := fracLo << 16

	if biasedExp == 0 {
		lz := leadingZeros128(mantHi, mantLo)
		shiftedHi, shiftedLo := imath.ShiftLeft128(mantHi, mantLo, uint(lz+1))
		unbiasedExp := int64(ieee754MinNormalUnbiased) - int64(lz) - 1
		var v Value
		v.SetRawPartsUnbiased(negative, unbiasedExp, shiftedHi, shiftedLo)
		return v
	}

	unbiasedExp := int64(biasedExp) - ieee754ExpBias
	var v Value
	v.SetRawPartsUnbiased(negative, unbiasedExp, mantHi, mantLo)
	return v
}

func leadingZeros128(hi, lo uint64) int {
	if hi != 0 {
		return bits.LeadingZeros64(hi)
	}
	return 64 + bits.LeadingZeros64(lo)
}

// PackIEEE754Bytes renders v as the 16-byte big-endian binary128 image.
func PackIEEE754Bytes(v Value) [16]byte {
	words := PackIEEE754(v)
	var out [16]byte
	binary.BigEndian.PutUint64(out[0:8], words[0])
	binary.BigEndian.PutUint64(out[8:16], words[1])
	return out
}

// UnpackIEEE754Bytes is the inverse of PackIEEE754Bytes.
func UnpackIEEE754Bytes(b [16]byte) Value {
	words := [2]uint64{
		binary.BigEndian.Uint64(b[0:8]),
		binary.BigEndian.Uint64(b[8:16]),
	}
	return UnpackIEEE754(words)
}
