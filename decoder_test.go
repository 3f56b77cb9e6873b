package jsonscan

import (
	"math/big"
	"testing"

	"github.com/google/go-cmp/cmp"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   string
		want any
	}{
		{name: "scalars", in: `[1, -2.5, "x", true, false, null]`, want: []any{int64(1), -2.5, "x", true, false, nil}},
		{name: "empty containers", in: ` { "a" : [ ] , "b" : { } } `, want: map[string]any{"a": []any{}, "b": map[string]any{}}},
		{name: "nested", in: "{\"a\": {\"b\": [[], [{\"c\": \"\\u00e9\"}]]}}", want: map[string]any{
			"a": map[string]any{"b": []any{[]any{}, []any{map[string]any{"c": "é"}}}},
		}},
		{name: "duplicate keys", in: `{"a": 1, "a": 2}`, want: map[string]any{"a": int64(2)}},
		{name: "big int", in: `123456789012345678901234567890`, want: mustBigInt(t, "123456789012345678901234567890")},
		{name: "whitespace around", in: "\r\n\t 7 \n", want: int64(7)},
		{name: "string", in: `"a\/b"`, want: "a/b"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Decode(tc.in)
			require.NoError(t, err)
			if diff := cmp.Diff(tc.want, got, cmp.Comparer(func(x, y *big.Int) bool { return x.Cmp(y) == 0 })); diff != "" {
				t.Errorf("Decode(%q) mismatch (-want +got):\n%s", tc.in, diff)
			}
		})
	}
}

func mustBigInt(t *testing.T, text string) *big.Int {
	t.Helper()
	val, ok := new(big.Int).SetString(text, 10)
	require.True(t, ok)
	return val
}

func TestDecodeErrors(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   string
		kind ErrorKind
		msg  string
		pos  int
		line int
		col  int
	}{
		{name: "empty", in: ``, kind: ExpectingValue, msg: "Expecting value", pos: 0, line: 1, col: 1},
		{name: "only spaces", in: `   `, kind: ExpectingValue, msg: "Expecting value", pos: 3, line: 1, col: 4},
		{name: "open array", in: `[`, kind: ExpectingValue, msg: "Expecting value", pos: 1, line: 1, col: 2},
		{name: "open object", in: `{`, kind: ExpectingPropertyName, msg: "Expecting property name enclosed in double quotes", pos: 1, line: 1, col: 2},
		{name: "unfinished array", in: `[1`, kind: ExpectingDelimiter, msg: "Expecting ',' delimiter", pos: 2, line: 1, col: 3},
		{name: "missing member value", in: `{"a":`, kind: ExpectingValue, msg: "Expecting value", pos: 5, line: 1, col: 6},
		{name: "array trailing comma", in: `[1,]`, kind: TrailingComma, msg: "Illegal trailing comma before end of array", pos: 2, line: 1, col: 3},
		{name: "object trailing comma", in: `{"a":1,}`, kind: TrailingComma, msg: "Illegal trailing comma before end of object", pos: 6, line: 1, col: 7},
		{name: "missing colon", in: `{"a" 1}`, kind: ExpectingDelimiter, msg: "Expecting ':' delimiter", pos: 5, line: 1, col: 6},
		{name: "missing comma in object", in: `{"a":1 "b":2}`, kind: ExpectingDelimiter, msg: "Expecting ',' delimiter", pos: 7, line: 1, col: 8},
		{name: "missing comma in array", in: `[1 2]`, kind: ExpectingDelimiter, msg: "Expecting ',' delimiter", pos: 3, line: 1, col: 4},
		{name: "unquoted key", in: `{1:2}`, kind: ExpectingPropertyName, msg: "Expecting property name enclosed in double quotes", pos: 1, line: 1, col: 2},
		{name: "second key unquoted", in: `{"a":1, 2}`, kind: ExpectingPropertyName, msg: "Expecting property name enclosed in double quotes", pos: 8, line: 1, col: 9},
		{name: "extra data", in: `1 2`, kind: ExtraData, msg: "Extra data", pos: 2, line: 1, col: 3},
		{name: "bom", in: "\xef\xbb\xbf1", kind: UnexpectedBOM, msg: "Unexpected UTF-8 BOM (decode using utf-8-sig)", pos: 0, line: 1, col: 1},
		{name: "unterminated", in: `"abc`, kind: UnterminatedString, msg: "Unterminated string starting at", pos: 0, line: 1, col: 1},
		{name: "second line", in: "[1,\n  x]", kind: ExpectingValue, msg: "Expecting value", pos: 6, line: 2, col: 3},
		{name: "bad escape in key", in: "{\n\"a\\q\": 1}", kind: InvalidEscape, msg: `Invalid \escape: 'q'`, pos: 4, line: 2, col: 3},
		{name: "control character", in: "[\"a\x01\"]", kind: InvalidControlCharacter, msg: "Invalid control character at", pos: 3, line: 1, col: 4},
		{name: "single quotes", in: `['a']`, kind: ExpectingValue, msg: "Expecting value", pos: 1, line: 1, col: 2},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(tc.in)
			require.Error(t, err)
			require.ErrorIs(t, err, tc.kind)

			var synErr *SyntaxError
			require.ErrorAs(t, err, &synErr)
			assert.Equal(t, tc.msg, synErr.Msg)
			assert.Equal(t, tc.pos, synErr.Pos)
			assert.Equal(t, tc.line, synErr.Line)
			assert.Equal(t, tc.col, synErr.Column)
		})
	}
}

func TestDecodeErrorString(t *testing.T) {
	_, err := Decode("[1,\n]")
	require.EqualError(t, err, "Illegal trailing comma before end of array: line 1 column 3 (char 2)")

	_, err = Decode(``)
	require.EqualError(t, err, "Expecting value: line 1 column 1 (char 0)")
}

func TestDecodeObjectPairsHook(t *testing.T) {
	dec := NewDecoder()
	dec.ObjectPairsHook = func(pairs []Pair) (any, error) {
		return pairs, nil
	}
	dec.ObjectHook = func(map[string]any) (any, error) {
		t.Fatal("ObjectHook called although ObjectPairsHook is set")
		return nil, nil
	}
	got, err := dec.Decode(`{"b": 1, "a": {}, "b": [2]}`)
	require.NoError(t, err)
	assert.Equal(t, []Pair{
		{Key: "b", Value: int64(1)},
		{Key: "a", Value: []Pair{}},
		{Key: "b", Value: []any{int64(2)}},
	}, got)
}

func TestDecodeObjectHook(t *testing.T) {
	type point struct{ X, Y any }
	dec := NewDecoder()
	dec.ObjectHook = func(obj map[string]any) (any, error) {
		if _, ok := obj["x"]; !ok {
			return obj, nil
		}
		return point{X: obj["x"], Y: obj["y"]}, nil
	}
	got, err := dec.Decode(`[{"x": 1, "y": 2}, {"z": 3}]`)
	require.NoError(t, err)
	assert.Equal(t, []any{point{X: int64(1), Y: int64(2)}, map[string]any{"z": int64(3)}}, got)
}

func TestDecodeHookError(t *testing.T) {
	cause := errors.New("rejected")
	dec := NewDecoder()
	dec.ObjectHook = func(map[string]any) (any, error) {
		return nil, cause
	}
	_, err := dec.Decode(`[0, {"a": 1}]`)
	require.ErrorIs(t, err, ConversionFailed)
	require.ErrorIs(t, err, cause)

	var synErr *SyntaxError
	require.ErrorAs(t, err, &synErr)
	assert.Equal(t, 4, synErr.Pos)
	assert.Equal(t, "Object hook failed", synErr.Msg)
}

func TestDecodeMaxDepth(t *testing.T) {
	dec := NewDecoder()
	dec.MaxDepth = 3

	_, err := dec.Decode(`[[{"a": []}]]`)
	require.ErrorIs(t, err, DepthExceeded)
	var synErr *SyntaxError
	require.ErrorAs(t, err, &synErr)
	assert.Equal(t, "Maximum nesting depth of 3 exceeded", synErr.Msg)
	assert.Equal(t, 8, synErr.Pos)

	// siblings don't add up.
	got, err := dec.Decode(`[[[1]], [[2]], {"a": [3]}]`)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestRawDecode(t *testing.T) {
	buf := NewBuffer(`xx {"a": 1} tail`)
	val, end, err := NewDecoder().RawDecode(buf, 3)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": int64(1)}, val)
	assert.Equal(t, 11, end)

	_, _, err = NewDecoder().RawDecode(buf, 0)
	require.ErrorIs(t, err, ExpectingValue)
	var decErr *DecodeError
	require.ErrorAs(t, err, &decErr)
	assert.Equal(t, 0, decErr.Pos)
}

func TestDecodeInternsKeys(t *testing.T) {
	sess := NewDecoder().Builder().(*session)
	one := sess.intern(string([]byte("key")))
	two := sess.intern(string([]byte("key")))
	assert.Equal(t, one, two)
	assert.Len(t, sess.memo, 1)
}

// normalize maps every number to float64, the way encoding/json
// compatible decoders report them.
func normalize(val any) any {
	switch val := val.(type) {
	case int64:
		return float64(val)
	case []any:
		out := make([]any, len(val))
		for idx, elem := range val {
			out[idx] = normalize(elem)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(val))
		for key, elem := range val {
			out[key] = normalize(elem)
		}
		return out
	}
	return val
}

func TestDecodeMatchesJsoniter(t *testing.T) {
	for _, doc := range []string{
		`{"name": "jsonscan", "tags": ["a", "b"], "n": 3, "pi": 3.14159, "ok": true, "none": null}`,
		`[1e3, -0.5, 1E-7, 12345678901234, 0.1]`,
		"\"line\\nbreak \\u00e9 \\ud83d\\ude00 tab\\t\"",
		`{"a": {"a": {"a": [[], {}, [{}]]}}}`,
		`{"dup": 1, "dup": 2}`,
		`  "  spaced  "  `,
	} {
		got, err := Decode(doc)
		require.NoError(t, err, doc)

		var want any
		require.NoError(t, jsoniter.ConfigCompatibleWithStandardLibrary.UnmarshalFromString(doc, &want), doc)
		if diff := cmp.Diff(want, normalize(got)); diff != "" {
			t.Errorf("Decode(%q) differs from jsoniter (-jsoniter +ours):\n%s", doc, diff)
		}
	}
}

func TestDecoderZeroValueIsStrict(t *testing.T) {
	var dec Decoder
	_, err := dec.Decode("{\"k\x02\": \"v\"}")
	require.ErrorIs(t, err, InvalidControlCharacter)

	dec.Lenient = true
	got, err := dec.Decode("{\"k\x02\": \"v\x1f\"}")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"k\x02": "v\x1f"}, got)
}
