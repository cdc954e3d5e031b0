package quadruple

import (
	"math/big"
	"regexp"
	"strings"
)

// parsePrecision is the big.Float working precision used while converting
// a decimal literal to binary; comfortably larger than the 129 significand
// bits actually kept so the final round-to-nearest-128 step never itself
// runs short of guard bits.
const parsePrecision = 320

// decimalPattern matches the digit/exponent grammar of spec §4.4.4, applied
// to the string with any sign prefix and underscores already stripped:
// an optional integer part, an optional fractional part, and an optional
// signed exponent. It deliberately allows the all-empty match ("", ".",
// "e5") that the spec's own regex permits; Parse rejects "" and "." by
// requiring at least one digit, and "e5" because big.Float finds no
// mantissa digits in it.
var decimalPattern = regexp.MustCompile(`(?i)^\d*(\.\d*)?([eE][+-]?\d+)?$`)

// Parse converts a decimal string to a Value (§4.4.4). It accepts the
// named constants (NaN, Infinity, MIN_VALUE, MAX_VALUE, MIN_NORMAL, each
// optionally "Quadruple."-prefixed and signed), or a general decimal
// literal in the grammar above. Underscores are stripped anywhere in the
// string before matching, so "1_000.5" and "1000.5" parse identically.
// Decimal exponents far enough outside the binary exponent range saturate
// to a signed zero or a signed infinity rather than erroring, matching the
// rest of the package's total-arithmetic convention for out-of-range
// magnitudes.
func Parse(s string) (Value, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(s), "_", "")
	if v, ok := parseNamedConstant(cleaned); ok {
		return v, nil
	}
	return parseDecimalLiteral(s, cleaned)
}

// MustParse is Parse for callers with a string they know is well-formed
// (literal constants, test fixtures); it panics on error, mirroring the
// teacher's own Must-on-failure convenience.
func MustParse(s string) Value {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

func parseNamedConstant(cleaned string) (Value, bool) {
	t := strings.ToLower(cleaned)
	negative := false
	switch {
	case strings.HasPrefix(t, "+"):
		t = t[1:]
	case strings.HasPrefix(t, "-"):
		negative = true
		t = t[1:]
	}
	t = strings.TrimPrefix(t, "quadruple.")

	switch t {
	case "nan":
		return NaN, true
	case "infinity":
		if negative {
			return NegativeInfinity, true
		}
		return PositiveInfinity, true
	// cleaned has had its underscores stripped, so MIN_VALUE arrives as
	// "minvalue" (and so on).
	case "minvalue":
		return signedCopy(MinValue, negative), true
	case "maxvalue":
		return signedCopy(MaxValue, negative), true
	case "minnormal":
		return signedCopy(MinNormal, negative), true
	default:
		return Value{}, false
	}
}

func signedCopy(v Value, negative bool) Value {
	v.negative = negative
	return v
}

func parseDecimalLiteral(original, cleaned string) (Value, error) {
	if cleaned == "" {
		return Value{}, newSyntaxError(original)
	}

	negative := false
	rest := cleaned
	switch rest[0] {
	case '+':
		rest = rest[1:]
	case '-':
		negative = true
		rest = rest[1:]
	}

	if !decimalPattern.MatchString(rest) || !hasDigit(rest) {
		return Value{}, newSyntaxError(original)
	}

	f, _, err := new(big.Float).SetPrec(parsePrecision).Parse(rest, 10)
	if err != nil {
		// With the grammar already checked and a digit before the exponent,
		// the only failure left is big.Float's "exponent overflow" for a
		// decimal exponent beyond its int32 range: saturate by its sign.
		if i := strings.IndexAny(rest, "eE"); i > 0 && hasDigit(rest[:i]) {
			if rest[i+1] == '-' {
				return signedCopy(Zero, negative), nil
			}
			return saturate(negative), nil
		}
		return Value{}, newSyntaxError(original)
	}

	switch {
	case f.Sign() == 0:
		return signedCopy(Zero, negative), nil
	case f.IsInf():
		// The magnitude overflowed big.Float's own exponent range during
		// parsing (it tops out just below 2^MaxInt32, slightly short of
		// MaxValue).
		return saturate(negative), nil
	}

	return finalizeParsed(negative, f), nil
}

func hasDigit(s string) bool {
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}

// finalizeParsed converts a positive, finite, nonzero big.Float to a Value
// by extracting its binary exponent and rounding its significand to 129
// bits (implicit bit plus 128-bit mantissa), then dispatching through the
// same overflow/subnormal/normal logic every arithmetic operation uses.
func finalizeParsed(negative bool, f *big.Float) Value {
	mant := new(big.Float).SetPrec(parsePrecision)
	exp2 := f.MantExp(mant) // f == mant * 2**exp2, mant in [0.5, 1)
	unbiasedExp := int64(exp2) - 1

	shiftExp := 129 - exp2
	powerOfTwo := new(big.Float).SetPrec(parsePrecision).SetMantExp(big.NewFloat(1), shiftExp)
	scaled := new(big.Float).SetPrec(parsePrecision).Mul(f, powerOfTwo)
	if scaled.IsInf() {
		// unbiasedExp is already destined for saturation; let finishNormal
		// decide, with a mantissa value that does not matter.
		return finishNormal(negative, unbiasedExp, 0, 0)
	}
	scaled.Add(scaled, big.NewFloat(0.5))

	rounded, _ := scaled.Int(nil)
	if rounded.BitLen()-1 == 129 {
		// rounding pushed the significand up to exactly 2**129.
		rounded.Rsh(rounded, 1)
		unbiasedExp++
	}

	mantHi, mantLo := extractMant128(rounded)
	return finishNormal(negative, unbiasedExp, mantHi, mantLo)
}
