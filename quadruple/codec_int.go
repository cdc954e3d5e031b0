package quadruple

import "math"

// ToHostInt64 converts v to a host signed 64-bit integer, truncating
// toward zero. NaN converts to 0; magnitudes outside the representable
// range clamp to INT64_MIN/INT64_MAX (§4.5).
func ToHostInt64(v Value) int64 {
	if v.IsNaN() {
		return 0
	}
	return int64(clampAndTruncate(v, math.MaxInt64, math.MinInt64))
}

// ToHostInt32 converts v to a host signed 32-bit integer with the same
// rules as ToHostInt64, scaled down to the 32-bit range.
func ToHostInt32(v Value) int32 {
	if v.IsNaN() {
		return 0
	}
	clamped := clampAndTruncate(v, math.MaxInt32, math.MinInt32)
	return int32(clamped)
}

// clampAndTruncate truncates v toward zero into [lo, hi], saturating
// infinities and overlarge finite magnitudes to the matching bound.
func clampAndTruncate(v Value, hi, lo int64) int64 {
	if v.IsInfinite() {
		if v.negative {
			return lo
		}
		return hi
	}
	if v.IsZero() {
		return 0
	}

	unbiasedExp := v.UnbiasedExponent()
	if unbiasedExp < 0 {
		return 0
	}

	// magnitude = floor((1 + mantHi/2^64 + mantLo/2^128) * 2^unbiasedExp):
	// with the 129-bit significand (ext:mantHi:mantLo), this is exactly
	// (ext*2^64 + mantHi) >> (64 - unbiasedExp), the fractional bits of
	// mantHi and all of mantLo falling below the truncation point.
	if unbiasedExp >= 63 {
		if v.negative {
			return lo
		}
		return hi
	}

	ext, mantHi, _ := fullSignificand(v)
	magnitude := ext<<uint(unbiasedExp) + mantHi>>uint(64-unbiasedExp)

	if v.negative {
		if magnitude > uint64(hi)+1 {
			return lo
		}
		return -int64(magnitude)
	}
	if magnitude > uint64(hi) {
		return hi
	}
	return int64(magnitude)
}
