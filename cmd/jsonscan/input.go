package main

import (
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/sugawarayuuta/jsonscan"
)

type input struct {
	name string
	data []byte
}

// readInput reads file, or standard input for "-".
func readInput(file string) (input, error) {
	if file == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return input{}, errors.Wrap(err, "reading stdin")
		}
		return input{name: "<stdin>", data: data}, nil
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return input{}, errors.Wrapf(err, "reading %s", file)
	}
	return input{name: file, data: data}, nil
}

// forEachInput calls fn with every file in turn, standard input when
// there are none.
func forEachInput(files []string, fn func(in input) error) error {
	if len(files) == 0 {
		files = []string{"-"}
	}
	for _, file := range files {
		in, err := readInput(file)
		if err != nil {
			return err
		}
		if err := fn(in); err != nil {
			return err
		}
	}
	return nil
}

// walk calls fn for every token of buf in document order. Separators and
// closing brackets are skipped, so containers show up only as their
// opening token.
func walk(scan *jsonscan.Scanner, buf jsonscan.Buffer, fn func(pos int, tok jsonscan.Token) error) error {
	pos := 0
	for pos < len(buf) {
		switch buf[pos] {
		case ' ', '\t', '\n', '\r', ',', ':', ']', '}':
			pos++
			continue
		}
		tok, ok, err := scan.Scan(buf, pos)
		if err != nil {
			return err
		}
		if !ok {
			return &jsonscan.DecodeError{Kind: jsonscan.ExpectingValue, Msg: "Expecting value", Pos: pos}
		}
		if err := fn(pos, tok); err != nil {
			return err
		}
		pos = tok.End
	}
	return nil
}

// located places a *jsonscan.DecodeError in buf.
func located(err error, buf jsonscan.Buffer) error {
	var decErr *jsonscan.DecodeError
	if errors.As(err, &decErr) {
		return jsonscan.NewSyntaxError(decErr, buf)
	}
	return err
}
