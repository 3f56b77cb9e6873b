package jsonscan

import (
	"strconv"
)

// ErrorKind classifies a DecodeError. It is an error itself so that
//
//	errors.Is(err, jsonscan.InvalidEscape)
//
// matches any DecodeError of that kind.
type ErrorKind string

const (
	UnterminatedString      ErrorKind = "unterminated string"
	InvalidControlCharacter ErrorKind = "invalid control character"
	InvalidEscape           ErrorKind = "invalid escape"
	InvalidUnicodeEscape    ErrorKind = "invalid unicode escape"

	// raised by Decoder only.
	ExpectingValue        ErrorKind = "expecting value"
	ExpectingDelimiter    ErrorKind = "expecting delimiter"
	ExpectingPropertyName ErrorKind = "expecting property name"
	TrailingComma         ErrorKind = "trailing comma"
	ExtraData             ErrorKind = "extra data"
	UnexpectedBOM         ErrorKind = "unexpected BOM"
	DepthExceeded         ErrorKind = "depth exceeded"

	// a converter or hook returned an error, see DecodeError.Err.
	ConversionFailed ErrorKind = "conversion failed"
)

func (kind ErrorKind) Error() string {
	return "jsonscan: " + string(kind)
}

// A DecodeError reports malformed input at Pos, a code point index into
// the scanned Buffer. It carries no partial result.
type DecodeError struct {
	Kind ErrorKind
	Msg  string // description, e.g. "Unterminated string starting at"
	Pos  int
	Err  error // cause, set for ConversionFailed
}

func (err *DecodeError) Error() string {
	msg := err.Msg + ": char " + strconv.Itoa(err.Pos)
	if err.Err != nil {
		msg += ": " + err.Err.Error()
	}
	return msg
}

// Is matches ErrorKind targets.
func (err *DecodeError) Is(target error) bool {
	kind, ok := target.(ErrorKind)
	return ok && kind == err.Kind
}

// Unwrap returns the converter or hook error, if any.
func (err *DecodeError) Unwrap() error {
	return err.Err
}

func errSyntax(kind ErrorKind, msg string, pos int) error {
	return &DecodeError{Kind: kind, Msg: msg, Pos: pos}
}
