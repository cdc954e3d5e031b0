package quadruple

import (
	"errors"
	"testing"
)

func TestSyntaxErrorWrapsNumberFormat(t *testing.T) {
	err := newSyntaxError("not-a-number")
	if !errors.Is(err, ErrNumberFormat) {
		t.Error("syntaxError should unwrap to ErrNumberFormat")
	}
	if err.Error() == "" {
		t.Error("syntaxError.Error() should not be empty")
	}
}

func TestParseReturnsWrappedSyntaxError(t *testing.T) {
	_, err := Parse("not-a-number")
	if err == nil {
		t.Fatal("Parse(\"not-a-number\") should return an error")
	}
	if !errors.Is(err, ErrNumberFormat) {
		t.Errorf("Parse error = %v; want wrapping ErrNumberFormat", err)
	}
}
