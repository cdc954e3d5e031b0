package quadruple

import (
	"strings"
	"testing"
)

func TestFormatSpecialValues(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{NaN, "NaN"},
		{PositiveInfinity, "Infinity"},
		{NegativeInfinity, "-Infinity"},
		{Zero, "0.0"},
		{NegativeZero, "-0.0"},
	}
	for _, c := range cases {
		if got := Format(c.v); got != c.want {
			t.Errorf("Format(%+v) = %q; want %q", c.v, got, c.want)
		}
	}
}

func TestFormatGrammar(t *testing.T) {
	got := Format(One)
	if !strings.Contains(got, ".") || !strings.Contains(got, "e") {
		t.Fatalf("Format(One) = %q; want decimal-point-and-exponent grammar", got)
	}
	mantissa := got[:strings.IndexByte(got, 'e')]
	frac := mantissa[strings.IndexByte(mantissa, '.')+1:]
	if len(frac) != 39 {
		t.Errorf("Format(One) = %q has %d fractional digits; want 39", got, len(frac))
	}
	exp := got[strings.IndexByte(got, 'e')+1:]
	if exp[0] != '+' && exp[0] != '-' {
		t.Errorf("Format(One) exponent %q missing explicit sign", exp)
	}
	if len(exp)-1 < 2 {
		t.Errorf("Format(One) exponent %q shorter than 2 digits", exp)
	}
}

func TestFormatKnownValue(t *testing.T) {
	got := Format(One)
	want := "1." + strings.Repeat("0", 39) + "e+00"
	if got != want {
		t.Errorf("Format(One) = %q; want %q", got, want)
	}
}

func TestFormatEndToEndScenario(t *testing.T) {
	five5, _ := Parse("5.5")
	pi40, _ := Parse("3.141592653589793238462643383279502884195")
	product := Mul(Mul(five5, five5), pi40)
	got := Format(product)
	want := "9.503317777109124546349496234420496224688e+01"
	if got != want {
		t.Errorf("5.5*5.5*pi formats to %q; want %q", got, want)
	}
}

func TestFormatSqrtTwoScenario(t *testing.T) {
	two, _ := Parse("2")
	got := Format(Sqrt(two))
	want := "1.414213562373095048801688724209698078570e+00"
	if got != want {
		t.Errorf("sqrt(2) formats to %q; want %q", got, want)
	}
}
