package quadruple

import "github.com/go-quadruple/quad/imath"

// CompareTo returns a total order over Values: NaN compares strictly
// greater than every non-NaN value and equal to every other NaN; -0 < +0;
// otherwise the natural numeric order applies.
func CompareTo(a, b Value) int {
	aNaN, bNaN := a.IsNaN(), b.IsNaN()
	switch {
	case aNaN && bNaN:
		return 0
	case aNaN:
		return 1
	case bNaN:
		return -1
	}

	if a.IsZero() && b.IsZero() {
		switch {
		case a.negative == b.negative:
			return 0
		case a.negative:
			return -1
		default:
			return 1
		}
	}

	switch {
	case a.negative && !b.negative:
		return -1
	case !a.negative && b.negative:
		return 1
	}

	mag := CompareMagnitudeTo(a, b)
	if a.negative {
		return -mag
	}
	return mag
}

// CompareMagnitudeTo compares |a| and |b|, ignoring sign. NaN is still
// treated as greater than anything else.
func CompareMagnitudeTo(a, b Value) int {
	aNaN, bNaN := a.IsNaN(), b.IsNaN()
	switch {
	case aNaN && bNaN:
		return 0
	case aNaN:
		return 1
	case bNaN:
		return -1
	}

	if a.exponent != b.exponent {
		if a.exponent < b.exponent {
			return -1
		}
		return 1
	}
	return imath.Cmp128(a.mantHi, a.mantLo, b.mantHi, b.mantLo)
}
