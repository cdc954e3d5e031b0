package quadruple

import "math/rand/v2"

// NextRandom fills a Value's sign, full 32-bit exponent and full 128-bit
// mantissa directly from rng. The result spans the entire representable
// range (including NaN and infinities) and is not uniformly distributed
// over that range — it is uniform only in its raw bit pattern.
func NextRandom(rng *rand.Rand) Value {
	var v Value
	v.SetRawParts(rng.Uint64()&1 != 0, uint32(rng.Uint64()), rng.Uint64(), rng.Uint64())
	return v
}

// Random is NextRandom drawn from the package's own process-wide,
// auto-seeded generator (math/rand/v2's top-level source), the convenience
// overload for callers that don't need a dedicated *rand.Rand.
func Random() Value {
	var v Value
	v.SetRawParts(rand.Uint64()&1 != 0, uint32(rand.Uint64()), rand.Uint64(), rand.Uint64())
	return v
}

// NextNormalRandom returns a Value uniformly distributed over [0, 1): it
// fills the mantissa from rng at exponent EXP_ONE, landing in [1, 2), then
// subtracts One.
func NextNormalRandom(rng *rand.Rand) Value {
	v := Value{exponent: ExpOne, mantHi: rng.Uint64(), mantLo: rng.Uint64()}
	return Sub(v, One)
}

// NormalRandom is NextNormalRandom drawn from the process-wide generator.
func NormalRandom() Value {
	v := Value{exponent: ExpOne, mantHi: rand.Uint64(), mantLo: rand.Uint64()}
	return Sub(v, One)
}
