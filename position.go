package jsonscan

import (
	"fmt"

	"github.com/pkg/errors"
)

// A SyntaxError is a DecodeError placed in its document. Line and
// Column are 1-based; Column counts code points.
type SyntaxError struct {
	*DecodeError
	Line   int
	Column int
}

// NewSyntaxError locates err in doc.
func NewSyntaxError(err *DecodeError, doc Buffer) *SyntaxError {
	line, col := Locate(doc, err.Pos)
	return &SyntaxError{DecodeError: err, Line: line, Column: col}
}

func (err *SyntaxError) Error() string {
	msg := fmt.Sprintf("%s: line %d column %d (char %d)", err.Msg, err.Line, err.Column, err.Pos)
	if err.Err != nil {
		msg += ": " + err.Err.Error()
	}
	return msg
}

// Unwrap returns the located DecodeError.
func (err *SyntaxError) Unwrap() error {
	return err.DecodeError
}

// Locate converts pos into a 1-based line and column. Lines end at
// '\n' only.
func Locate(doc Buffer, pos int) (line, col int) {
	pos = max(0, min(pos, len(doc)))
	line = 1
	last := -1
	for idx, run := range doc[:pos] {
		if run == '\n' {
			line++
			last = idx
		}
	}
	return line, pos - last
}

// locate turns a *DecodeError into a *SyntaxError and leaves other
// errors alone.
func locate(err error, doc Buffer) error {
	var decErr *DecodeError
	if errors.As(err, &decErr) {
		return NewSyntaxError(decErr, doc)
	}
	return err
}
