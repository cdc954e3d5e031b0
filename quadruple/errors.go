package quadruple

import "fmt"

// Error surface (spec §6). Arithmetic is total and never returns an error;
// only parsing and the external codecs can fail, mirroring the split in the
// teacher's context.go between infallible FixedPointOperations and fallible
// Parse/pack.
var (
	// ErrNumberFormat is returned when a string could not be parsed as a Value.
	ErrNumberFormat = fmt.Errorf("quadruple: invalid number format")

	// ErrNotFinite is returned by ToArbitraryDecimal for NaN or infinite operands.
	ErrNotFinite = fmt.Errorf("quadruple: value is not finite")
)

// syntaxError wraps ErrNumberFormat with the offending input, matching the
// teacher's internalError pattern of attaching the bad data to the message.
type syntaxError struct {
	input string
}

func (e *syntaxError) Error() string {
	return fmt.Sprintf("%s: %q", ErrNumberFormat, e.input)
}

func (e *syntaxError) Unwrap() error {
	return ErrNumberFormat
}

func newSyntaxError(input string) error {
	return &syntaxError{input: input}
}
