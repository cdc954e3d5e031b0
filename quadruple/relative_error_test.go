package quadruple

import (
	"math/big"
	"testing"
)

// relativeErrorOracle compares the kernel's own rounded result against a
// much higher precision math/big oracle value and fails the test when their
// relative error exceeds the bound below.
func relativeErrorOracle(t *testing.T, got Value, oracle *big.Float) {
	t.Helper()
	got64, err := ToArbitraryDecimal(got)
	if err != nil {
		t.Fatalf("ToArbitraryDecimal: %v", err)
	}

	diff := new(big.Float).SetPrec(arbitraryDecimalPrecision).Sub(got64, oracle)
	diff.Abs(diff)
	if diff.Sign() == 0 {
		return
	}

	relative := new(big.Float).SetPrec(arbitraryDecimalPrecision).Quo(diff, oracle)
	relative.Abs(relative)

	// 2^-125: the spec's own property-4 bound (2^-129) with four bits of
	// headroom for the rounding the decimal inputs already carry once
	// parsed into Values (the oracle uses the exact decimals), not 512x
	// slack that would hide a real precision regression.
	bound := new(big.Float).SetPrec(arbitraryDecimalPrecision).SetMantExp(big.NewFloat(1), -125)
	if relative.Cmp(bound) > 0 {
		t.Errorf("relative error %v exceeds bound %v (got %v, oracle %v)", relative, bound, got64, oracle)
	}
}

func oracleFloat(t *testing.T, s string) *big.Float {
	t.Helper()
	f, _, err := big.ParseFloat(s, 10, arbitraryDecimalPrecision, big.ToNearestEven)
	if err != nil {
		t.Fatalf("big.ParseFloat(%q): %v", s, err)
	}
	return f
}

func TestRelativeErrorAddSubMulDiv(t *testing.T) {
	cases := []struct {
		a, b string
	}{
		{"1.1", "2.2"},
		{"355", "113"},
		{"0.1", "0.2"},
		{"123456789.987654321", "0.000000001"},
		{"1e50", "1e-50"},
		{"7", "3"},
	}

	for _, c := range cases {
		a, err := Parse(c.a)
		if err != nil {
			t.Fatalf("Parse(%q): %v", c.a, err)
		}
		b, err := Parse(c.b)
		if err != nil {
			t.Fatalf("Parse(%q): %v", c.b, err)
		}
		oa := oracleFloat(t, c.a)
		ob := oracleFloat(t, c.b)

		sum := new(big.Float).SetPrec(arbitraryDecimalPrecision).Add(oa, ob)
		relativeErrorOracle(t, Add(a, b), sum)

		diff := new(big.Float).SetPrec(arbitraryDecimalPrecision).Sub(oa, ob)
		relativeErrorOracle(t, Sub(a, b), diff)

		prod := new(big.Float).SetPrec(arbitraryDecimalPrecision).Mul(oa, ob)
		relativeErrorOracle(t, Mul(a, b), prod)

		if !b.IsZero() {
			quo := new(big.Float).SetPrec(arbitraryDecimalPrecision).Quo(oa, ob)
			relativeErrorOracle(t, Div(a, b), quo)
		}
	}
}

func TestRelativeErrorSqrt(t *testing.T) {
	inputs := []string{"2", "3", "1e100", "1e-100", "0.000123456789"}
	for _, s := range inputs {
		v, err := Parse(s)
		if err != nil {
			t.Fatalf("Parse(%q): %v", s, err)
		}
		oracle := oracleFloat(t, s)
		root := new(big.Float).SetPrec(arbitraryDecimalPrecision).Sqrt(oracle)
		relativeErrorOracle(t, Sqrt(v), root)
	}
}
