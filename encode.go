package jsonscan

import (
	"math"
	"math/big"
	"reflect"
	"sort"
	"strconv"

	"github.com/cockroachdb/apd/v3"

	"github.com/sugawarayuuta/jsonscan/internal/encoder"
	"github.com/sugawarayuuta/jsonscan/internal/pool"
)

// EncodeString returns text as a quoted JSON string literal. '"', '\\'
// and control characters are always escaped; with asciiOnly, so is
// every code point from U+0080 up, supplementary ones as a surrogate
// pair. text may be WTF-8, as DecodeString returns it: its unpaired
// surrogates are passed through, or escaped on their own with asciiOnly.
func EncodeString(text string, asciiOnly bool) string {
	dst := pool.Get(len(text) + 2)
	dst = encoder.AppendString(dst, text, asciiOnly)
	str := string(dst)
	pool.Put(dst)
	return str
}

// AppendString is EncodeString appending to dst.
func AppendString(dst []byte, text string, asciiOnly bool) []byte {
	return encoder.AppendString(dst, text, asciiOnly)
}

// EncodeOptions control Marshal. The zero value writes UTF-8 and rejects
// NaN and infinities.
type EncodeOptions struct {
	// ASCIIOnly escapes everything from U+0080 up.
	ASCIIOnly bool
	// AllowNaN writes NaN, Infinity and -Infinity for the float values
	// that have no JSON literal instead of failing.
	AllowNaN bool
}

// An UnsupportedValueError is returned by Marshal when attempting
// to encode an unsupported value.
type UnsupportedValueError struct {
	Value any
	Str   string
}

func (err *UnsupportedValueError) Error() string {
	return "jsonscan: unsupported value: " + err.Str
}

// An UnsupportedTypeError is returned by Marshal when attempting
// to encode an unsupported value type.
type UnsupportedTypeError struct {
	Type reflect.Type
}

func (err *UnsupportedTypeError) Error() string {
	return "jsonscan: unsupported type: " + err.Type.String()
}

// Marshal encodes a tree of decoded values compactly. It accepts what a
// Decoder produces: nil, bool, string, the Go integer and float types,
// *big.Int, *apd.Decimal, []any, map[string]any (keys sorted) and
// []Pair (order kept).
func Marshal(val any, opts EncodeOptions) ([]byte, error) {
	return AppendValue(nil, val, opts)
}

// AppendValue is Marshal appending to dst.
func AppendValue(dst []byte, val any, opts EncodeOptions) ([]byte, error) {
	switch val := val.(type) {
	case nil:
		return append(dst, "null"...), nil
	case bool:
		if val {
			return append(dst, "true"...), nil
		}
		return append(dst, "false"...), nil
	case string:
		return encoder.AppendString(dst, val, opts.ASCIIOnly), nil
	case int:
		return encoder.AppendInt(dst, int64(val)), nil
	case int8:
		return encoder.AppendInt(dst, int64(val)), nil
	case int16:
		return encoder.AppendInt(dst, int64(val)), nil
	case int32:
		return encoder.AppendInt(dst, int64(val)), nil
	case int64:
		return encoder.AppendInt(dst, val), nil
	case uint:
		return encoder.AppendUint(dst, uint64(val), false), nil
	case uint8:
		return encoder.AppendUint(dst, uint64(val), false), nil
	case uint16:
		return encoder.AppendUint(dst, uint64(val), false), nil
	case uint32:
		return encoder.AppendUint(dst, uint64(val), false), nil
	case uint64:
		return encoder.AppendUint(dst, val, false), nil
	case float32:
		return appendFloat(dst, float64(val), 32, opts)
	case float64:
		return appendFloat(dst, val, 64, opts)
	case *big.Int:
		if val == nil {
			return append(dst, "null"...), nil
		}
		return val.Append(dst, 10), nil
	case *apd.Decimal:
		return appendDecimal(dst, val, opts)
	case []any:
		return appendArray(dst, val, opts)
	case map[string]any:
		return appendMap(dst, val, opts)
	case []Pair:
		return appendPairs(dst, val, opts)
	}
	return nil, &UnsupportedTypeError{Type: reflect.TypeOf(val)}
}

func appendFloat(dst []byte, f64 float64, bits int, opts EncodeOptions) ([]byte, error) {
	dst, ok := encoder.AppendFloat(dst, f64, bits)
	if ok {
		return dst, nil
	}
	if !opts.AllowNaN {
		return nil, &UnsupportedValueError{Value: f64, Str: strconv.FormatFloat(f64, 'g', -1, bits)}
	}
	return append(dst, encoder.Constant(f64)...), nil
}

func appendDecimal(dst []byte, dec *apd.Decimal, opts EncodeOptions) ([]byte, error) {
	if dec == nil {
		return append(dst, "null"...), nil
	}
	switch dec.Form {
	case apd.Finite:
		return dec.Append(dst, 'G'), nil
	case apd.Infinite:
		if dec.Negative {
			return appendFloat(dst, math.Inf(-1), 64, opts)
		}
		return appendFloat(dst, math.Inf(1), 64, opts)
	default:
		return appendFloat(dst, math.NaN(), 64, opts)
	}
}

func appendArray(dst []byte, values []any, opts EncodeOptions) ([]byte, error) {
	var err error
	dst = append(dst, '[')
	for idx, val := range values {
		if idx != 0 {
			dst = append(dst, ',')
		}
		dst, err = AppendValue(dst, val, opts)
		if err != nil {
			return nil, err
		}
	}
	return append(dst, ']'), nil
}

func appendMap(dst []byte, obj map[string]any, opts EncodeOptions) ([]byte, error) {
	keys := make([]string, 0, len(obj))
	for key := range obj {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	var err error
	dst = append(dst, '{')
	for idx, key := range keys {
		if idx != 0 {
			dst = append(dst, ',')
		}
		dst = encoder.AppendString(dst, key, opts.ASCIIOnly)
		dst = append(dst, ':')
		dst, err = AppendValue(dst, obj[key], opts)
		if err != nil {
			return nil, err
		}
	}
	return append(dst, '}'), nil
}

func appendPairs(dst []byte, pairs []Pair, opts EncodeOptions) ([]byte, error) {
	var err error
	dst = append(dst, '{')
	for idx, pair := range pairs {
		if idx != 0 {
			dst = append(dst, ',')
		}
		dst = encoder.AppendString(dst, pair.Key, opts.ASCIIOnly)
		dst = append(dst, ':')
		dst, err = AppendValue(dst, pair.Value, opts)
		if err != nil {
			return nil, err
		}
	}
	return append(dst, '}'), nil
}
