package quadruple

import (
	"math/bits"
	"testing"
)

// ieee754Rounded returns v with its 128-bit fraction rounded half-up to the
// 112 bits a binary128 keeps: what a pack/unpack round trip gives back for a
// normal value inside binary128's exponent range.
func ieee754Rounded(v Value) Value {
	lo, hi := v.mantLo&^0xFFFF, v.mantHi
	if v.mantLo&0x8000 != 0 {
		var carry uint64
		lo, carry = bits.Add64(lo, 1<<16, 0)
		hi, carry = bits.Add64(hi, 0, carry)
		v.exponent += uint32(carry)
	}
	v.mantHi, v.mantLo = hi, lo
	return v
}

func TestIEEE754RoundTripWellKnown(t *testing.T) {
	values := []Value{One, Two, Ten, FromInt64(-7), Pi}
	for _, v := range values {
		got := UnpackIEEE754(PackIEEE754(v))
		if want := ieee754Rounded(v); !got.Equal(want) {
			t.Errorf("IEEE754 round trip of %+v produced %+v; want %+v", v, got, want)
		}
	}
}

func TestIEEE754ZeroSign(t *testing.T) {
	words := PackIEEE754(NegativeZero)
	if words[0]>>63 == 0 {
		t.Errorf("PackIEEE754(-0) sign bit not set")
	}
	got := UnpackIEEE754(words)
	if !got.IsZero() || !got.IsNegative() {
		t.Errorf("UnpackIEEE754(pack(-0)) = %+v; want -0", got)
	}
}

func TestIEEE754Infinities(t *testing.T) {
	got := UnpackIEEE754(PackIEEE754(PositiveInfinity))
	if !got.IsInfinite() || got.IsNegative() {
		t.Errorf("round trip of +Inf = %+v", got)
	}
	got = UnpackIEEE754(PackIEEE754(NegativeInfinity))
	if !got.IsInfinite() || !got.IsNegative() {
		t.Errorf("round trip of -Inf = %+v", got)
	}
}

func TestIEEE754NaN(t *testing.T) {
	got := UnpackIEEE754(PackIEEE754(NaN))
	if !got.IsNaN() {
		t.Errorf("round trip of NaN = %+v; want NaN", got)
	}
}

func TestIEEE754SaturatesOnOverflow(t *testing.T) {
	huge, err := Parse("1e6000")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	words := PackIEEE754(huge)
	if (words[0]>>48)&0x7FFF != ieee754InfNaNBiasedExp {
		t.Errorf("PackIEEE754(1e6000) did not saturate to infinity exponent")
	}
	got := UnpackIEEE754(words)
	if !got.IsInfinite() || got.IsNegative() {
		t.Errorf("round trip of overflowed value = %+v; want +Inf", got)
	}
}

func TestIEEE754UnderflowsToZero(t *testing.T) {
	tiny, err := Parse("1e-6000")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	words := PackIEEE754(tiny)
	got := UnpackIEEE754(words)
	if !got.IsZero() {
		t.Errorf("round trip of underflowed value = %+v; want 0", got)
	}
}

func TestIEEE754SubnormalRoundTrip(t *testing.T) {
	// A Value whose magnitude is within binary128's subnormal range: pack
	// should produce a subnormal (exponent field zero, nonzero fraction),
	// and unpacking it back should renormalize to (approximately) the same
	// Value once re-widened to this package's own exponent range.
	small, err := Parse("1e-4950")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	words := PackIEEE754(small)
	if (words[0]>>48)&0x7FFF != 0 {
		t.Fatalf("expected a binary128 subnormal encoding, got biased exponent %d", (words[0]>>48)&0x7FFF)
	}
	got := UnpackIEEE754(words)
	if got.IsZero() || got.IsNegative() {
		t.Errorf("UnpackIEEE754 of a binary128 subnormal = %+v; want a small positive value", got)
	}
}

func TestIEEE754Bytes(t *testing.T) {
	v := Pi
	b := PackIEEE754Bytes(v)
	got := UnpackIEEE754Bytes(b)
	if want := ieee754Rounded(v); !got.Equal(want) {
		t.Errorf("byte round trip of Pi produced %+v; want %+v", got, want)
	}

	words := PackIEEE754(v)
	wantHi := words[0]
	gotHi := uint64(b[0])<<56 | uint64(b[1])<<48 | uint64(b[2])<<40 | uint64(b[3])<<32 |
		uint64(b[4])<<24 | uint64(b[5])<<16 | uint64(b[6])<<8 | uint64(b[7])
	if gotHi != wantHi {
		t.Errorf("PackIEEE754Bytes word0 = %#016x; want %#016x", gotHi, wantHi)
	}
}
