package jsonscan

// A Scanner recognizes one JSON value at a time. The zero value is
// usable and strict about control characters.
//
// A Scanner holds no state between calls, so it may be shared when its
// converters may be.
type Scanner struct {
	// Lenient copies raw control characters inside string literals
	// instead of rejecting them.
	Lenient bool
	Converters
}

// NewScanner returns a strict Scanner with the default converters.
func NewScanner() *Scanner {
	return &Scanner{}
}

// ContainerBuilder assembles objects and arrays. Scanner.Value hands it
// the index just past the opening bracket and itself as next, which the
// builder calls for every member value. It returns the value and the
// index just past the closing bracket.
type ContainerBuilder interface {
	BuildObject(buf Buffer, start int, next ValueFunc) (any, int, error)
	BuildArray(buf Buffer, start int, next ValueFunc) (any, int, error)
}

// ValueFunc scans the complete value at start. ok is false, with a nil
// error, when no value starts there.
type ValueFunc func(buf Buffer, start int) (val any, end int, ok bool, err error)

// Scan classifies the value at start and decodes it unless it is an
// object or an array, for which only the opening bracket is consumed.
//
// ok is false, with a nil error, when start is at the end of buf or
// holds no value; the caller decides whether that is the end of a
// container or a syntax error. Literals are tried in this order:
// string, object, array, null, true, false, number, NaN, Infinity,
// -Infinity.
func (scan *Scanner) Scan(buf Buffer, start int) (Token, bool, error) {
	if start < 0 || start >= len(buf) {
		return Token{}, false, nil
	}
	switch buf[start] {
	case '"':
		str, end, err := DecodeString(buf, start+1, !scan.Lenient)
		if err != nil {
			return Token{}, false, err
		}
		return Token{Kind: String, Value: str, Raw: str, End: end}, true, nil
	case '{':
		return Token{Kind: ObjectStart, End: start + 1}, true, nil
	case '[':
		return Token{Kind: ArrayStart, End: start + 1}, true, nil
	}

	switch {
	case buf.hasPrefix(start, "null"):
		return Token{Kind: Null, Raw: "null", End: start + len("null")}, true, nil
	case buf.hasPrefix(start, "true"):
		return Token{Kind: Bool, Value: true, Raw: "true", End: start + len("true")}, true, nil
	case buf.hasPrefix(start, "false"):
		return Token{Kind: Bool, Value: false, Raw: "false", End: start + len("false")}, true, nil
	}

	if text, float, ok := ScanNumber(buf, start); ok {
		var val any
		var err error
		if float {
			val, err = scan.parseFloat(text)
		} else {
			val, err = scan.parseInt(text)
		}
		if err != nil {
			return Token{}, false, &DecodeError{Kind: ConversionFailed, Msg: "Invalid number " + text, Pos: start, Err: err}
		}
		return Token{Kind: Number, Value: val, Raw: text, End: start + len(text), Float: float}, true, nil
	}

	for _, name := range constants {
		if !buf.hasPrefix(start, name) {
			continue
		}
		val, err := scan.parseConstant(name)
		if err != nil {
			return Token{}, false, &DecodeError{Kind: ConversionFailed, Msg: "Invalid constant " + name, Pos: start, Err: err}
		}
		return Token{Kind: Constant, Value: val, Raw: name, End: start + len(name)}, true, nil
	}
	return Token{}, false, nil
}

var constants = [...]string{"NaN", "Infinity", "-Infinity"}

// Value scans the complete value at start, handing objects and arrays
// to builder. A nil builder builds them the way a zero Decoder with this
// Scanner's settings does.
func (scan *Scanner) Value(buf Buffer, start int, builder ContainerBuilder) (any, int, bool, error) {
	if builder == nil {
		builder = (&Decoder{Scanner: *scan}).Builder()
	}
	var next ValueFunc
	next = func(buf Buffer, start int) (any, int, bool, error) {
		tok, ok, err := scan.Scan(buf, start)
		if err != nil || !ok {
			return nil, start, false, err
		}
		var val any
		var end int
		switch tok.Kind {
		case ObjectStart:
			val, end, err = builder.BuildObject(buf, tok.End, next)
		case ArrayStart:
			val, end, err = builder.BuildArray(buf, tok.End, next)
		default:
			return tok.Value, tok.End, true, nil
		}
		if err != nil {
			return nil, start, false, err
		}
		return val, end, true, nil
	}
	return next(buf, start)
}
