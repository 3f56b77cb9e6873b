package jsonscan

import (
	"strconv"

	"github.com/pkg/errors"
)

// Pair is one object member, in document order.
type Pair struct {
	Key   string
	Value any
}

// A Decoder decodes whole documents. It builds objects as
// map[string]any and arrays as []any unless hooks say otherwise.
type Decoder struct {
	Scanner
	// ObjectPairsHook, when set, builds every object from its members in
	// document order, duplicates included. It wins over ObjectHook.
	ObjectPairsHook func(pairs []Pair) (any, error)
	// ObjectHook, when set, replaces every decoded map.
	ObjectHook func(obj map[string]any) (any, error)
	// MaxDepth limits the nesting of objects and arrays; 0 means no limit.
	MaxDepth int
}

// NewDecoder returns a strict Decoder with the default converters.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode decodes the single value in text. Whitespace may surround it;
// anything else after it is ExtraData. Errors are *SyntaxError.
func Decode(text string) (any, error) {
	return NewDecoder().Decode(text)
}

// Decode decodes the single value in text, see the package level Decode.
func (dec *Decoder) Decode(text string) (any, error) {
	buf := NewBuffer(text)
	val, err := dec.DecodeBuffer(buf)
	if err != nil {
		return nil, locate(err, buf)
	}
	return val, nil
}

// DecodeBuffer is Decode on an already decoded Buffer. Errors are
// *DecodeError.
func (dec *Decoder) DecodeBuffer(buf Buffer) (any, error) {
	if len(buf) > 0 && buf[0] == '\ufeff' {
		return nil, errSyntax(UnexpectedBOM, "Unexpected UTF-8 BOM (decode using utf-8-sig)", 0)
	}
	val, end, err := dec.RawDecode(buf, skipSpaces(buf, 0))
	if err != nil {
		return nil, err
	}
	if end = skipSpaces(buf, end); end != len(buf) {
		return nil, errSyntax(ExtraData, "Extra data", end)
	}
	return val, nil
}

// RawDecode decodes the value starting exactly at idx and returns it
// with the index just past it. Trailing input is left alone.
func (dec *Decoder) RawDecode(buf Buffer, idx int) (any, int, error) {
	val, end, ok, err := dec.Scanner.Value(buf, idx, dec.Builder())
	if err != nil {
		return nil, 0, err
	}
	if !ok {
		return nil, 0, errSyntax(ExpectingValue, "Expecting value", idx)
	}
	return val, end, nil
}

// Builder returns a ContainerBuilder applying dec's hooks and depth
// limit. Keys are interned for the lifetime of the builder, so use one
// per document.
func (dec *Decoder) Builder() ContainerBuilder {
	return &session{dec: dec, memo: make(map[string]string)}
}

type session struct {
	dec   *Decoder
	memo  map[string]string
	depth int
}

func (sess *session) enter(pos int) error {
	sess.depth++
	if sess.dec.MaxDepth > 0 && sess.depth > sess.dec.MaxDepth {
		sess.depth--
		return errSyntax(DepthExceeded, "Maximum nesting depth of "+strconv.Itoa(sess.dec.MaxDepth)+" exceeded", pos)
	}
	return nil
}

func (sess *session) leave() {
	sess.depth--
}

func (sess *session) intern(key string) string {
	if memo, ok := sess.memo[key]; ok {
		return memo
	}
	sess.memo[key] = key
	return key
}

// BuildObject parses members from start, just past '{'.
func (sess *session) BuildObject(buf Buffer, start int, next ValueFunc) (any, int, error) {
	if err := sess.enter(start - 1); err != nil {
		return nil, 0, err
	}
	defer sess.leave()

	var pairs []Pair
	pos := skipSpaces(buf, start)
	if pos < len(buf) && buf[pos] == '}' {
		obj, err := sess.object(pairs, start-1)
		return obj, pos + 1, err
	}
	if pos >= len(buf) || buf[pos] != '"' {
		return nil, 0, errSyntax(ExpectingPropertyName, "Expecting property name enclosed in double quotes", pos)
	}
	for {
		key, end, err := DecodeString(buf, pos+1, !sess.dec.Lenient)
		if err != nil {
			return nil, 0, err
		}
		key = sess.intern(key)
		pos = skipSpaces(buf, end)
		if pos >= len(buf) || buf[pos] != ':' {
			return nil, 0, errSyntax(ExpectingDelimiter, "Expecting ':' delimiter", pos)
		}
		pos = skipSpaces(buf, pos+1)
		val, end, ok, err := next(buf, pos)
		if err != nil {
			return nil, 0, err
		}
		if !ok {
			return nil, 0, errSyntax(ExpectingValue, "Expecting value", pos)
		}
		pairs = append(pairs, Pair{Key: key, Value: val})

		pos = skipSpaces(buf, end)
		if pos < len(buf) && buf[pos] == '}' {
			obj, err := sess.object(pairs, start-1)
			return obj, pos + 1, err
		}
		if pos >= len(buf) || buf[pos] != ',' {
			return nil, 0, errSyntax(ExpectingDelimiter, "Expecting ',' delimiter", pos)
		}
		comma := pos
		pos = skipSpaces(buf, pos+1)
		if pos < len(buf) && buf[pos] == '}' {
			return nil, 0, errSyntax(TrailingComma, "Illegal trailing comma before end of object", comma)
		}
		if pos >= len(buf) || buf[pos] != '"' {
			return nil, 0, errSyntax(ExpectingPropertyName, "Expecting property name enclosed in double quotes", pos)
		}
	}
}

// BuildArray parses elements from start, just past '['.
func (sess *session) BuildArray(buf Buffer, start int, next ValueFunc) (any, int, error) {
	if err := sess.enter(start - 1); err != nil {
		return nil, 0, err
	}
	defer sess.leave()

	values := make([]any, 0)
	pos := skipSpaces(buf, start)
	if pos < len(buf) && buf[pos] == ']' {
		return values, pos + 1, nil
	}
	for {
		val, end, ok, err := next(buf, pos)
		if err != nil {
			return nil, 0, err
		}
		if !ok {
			return nil, 0, errSyntax(ExpectingValue, "Expecting value", pos)
		}
		values = append(values, val)

		pos = skipSpaces(buf, end)
		if pos < len(buf) && buf[pos] == ']' {
			return values, pos + 1, nil
		}
		if pos >= len(buf) || buf[pos] != ',' {
			return nil, 0, errSyntax(ExpectingDelimiter, "Expecting ',' delimiter", pos)
		}
		comma := pos
		pos = skipSpaces(buf, pos+1)
		if pos < len(buf) && buf[pos] == ']' {
			return nil, 0, errSyntax(TrailingComma, "Illegal trailing comma before end of array", comma)
		}
	}
}

// object applies the hooks to the members of the object opened at pos.
func (sess *session) object(pairs []Pair, pos int) (any, error) {
	if hook := sess.dec.ObjectPairsHook; hook != nil {
		if pairs == nil {
			pairs = []Pair{}
		}
		obj, err := hook(pairs)
		if err != nil {
			return nil, hookError(err, pos)
		}
		return obj, nil
	}
	obj := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		obj[pair.Key] = pair.Value
	}
	if hook := sess.dec.ObjectHook; hook != nil {
		val, err := hook(obj)
		if err != nil {
			return nil, hookError(err, pos)
		}
		return val, nil
	}
	return obj, nil
}

func hookError(err error, pos int) error {
	return &DecodeError{Kind: ConversionFailed, Msg: "Object hook failed", Pos: pos, Err: errors.WithStack(err)}
}

// skipSpaces returns the first index at or after pos that isn't JSON
// whitespace.
func skipSpaces(buf Buffer, pos int) int {
	for pos < len(buf) {
		switch buf[pos] {
		case ' ', '\t', '\n', '\r':
			pos++
		default:
			return pos
		}
	}
	return pos
}
