package jsonscan

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeString(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   string
		want string
		end  int
	}{
		{name: "empty", in: `""`, want: "", end: 2},
		{name: "plain", in: `"abc" tail`, want: "abc", end: 5},
		{name: "short escapes", in: `"\"\\\/\b\f\n\r\t"`, want: "\"\\/\b\f\n\r\t", end: 18},
		{name: "unicode escape", in: `"caf\u00e9"`, want: "caf\u00e9", end: 11},
		{name: "upper hex", in: `"\u00C9"`, want: "\u00c9", end: 8},
		{name: "raw non ascii", in: `"日本"`, want: "日本", end: 4},
		{name: "surrogate pair", in: `"\ud83d\ude00"`, want: "\U0001f600", end: 14},
		{name: "lone high surrogate", in: `"\ud83dX"`, want: "\xed\xa0\xbdX", end: 9},
		{name: "lone low surrogate", in: `"\ude00"`, want: "\xed\xb8\x80", end: 8},
		{name: "high then non surrogate escape", in: `"\ud83d\u0041"`, want: "\xed\xa0\xbdA", end: 14},
		{name: "reversed pair", in: `"\ude00\ud83d"`, want: "\xed\xb8\x80\xed\xa0\xbd", end: 14},
		{name: "escape after plain run", in: `"ab\ncd"`, want: "ab\ncd", end: 8},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, end, err := DecodeString(NewBuffer(tc.in), 1, true)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.end, end)
		})
	}
}

func TestDecodeStringErrors(t *testing.T) {
	for _, tc := range []struct {
		name   string
		in     string
		start  int
		strict bool
		kind   ErrorKind
		msg    string
		pos    int
	}{
		{name: "unterminated", in: `"abc`, start: 1, kind: UnterminatedString, msg: "Unterminated string starting at", pos: 0},
		{name: "unterminated after escape", in: `["a\"`, start: 2, kind: UnterminatedString, msg: "Unterminated string starting at", pos: 1},
		{name: "backslash at end", in: `"a\`, start: 1, kind: UnterminatedString, msg: "Unterminated string starting at", pos: 0},
		{name: "start past end", in: `"`, start: 5, kind: UnterminatedString, msg: "Unterminated string starting at", pos: 1},
		{name: "invalid escape", in: `"ab\x"`, start: 1, kind: InvalidEscape, msg: `Invalid \escape: 'x'`, pos: 3},
		{name: "single quote escape", in: `"\'"`, start: 1, kind: InvalidEscape, msg: `Invalid \escape: '\''`, pos: 1},
		{name: "short unicode escape", in: `"\u12"`, start: 1, kind: InvalidUnicodeEscape, msg: `Invalid \uXXXX escape`, pos: 1},
		{name: "bad hex", in: `"xx\u12G4"`, start: 1, kind: InvalidUnicodeEscape, msg: `Invalid \uXXXX escape`, pos: 3},
		{name: "bad second half", in: `"\ud83d\uZZZZ"`, start: 1, kind: InvalidUnicodeEscape, msg: `Invalid \uXXXX escape`, pos: 7},
		{name: "control character", in: "\"a\nb\"", start: 1, strict: true, kind: InvalidControlCharacter, msg: "Invalid control character at", pos: 2},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := DecodeString(NewBuffer(tc.in), tc.start, tc.strict)
			require.Error(t, err)
			require.ErrorIs(t, err, tc.kind)

			var decErr *DecodeError
			require.ErrorAs(t, err, &decErr)
			assert.Equal(t, tc.msg, decErr.Msg)
			assert.Equal(t, tc.pos, decErr.Pos)
		})
	}
}

func TestDecodeStringControlCharacters(t *testing.T) {
	buf := NewBuffer("\"a\tb\x00\"")

	_, _, err := DecodeString(buf, 1, true)
	require.ErrorIs(t, err, InvalidControlCharacter)

	got, end, err := DecodeString(buf, 1, false)
	require.NoError(t, err)
	assert.Equal(t, "a\tb\x00", got)
	assert.Equal(t, len(buf), end)
}

func TestDecodeStringKeepsSurrogatesInBuffer(t *testing.T) {
	// an unpaired surrogate written raw in WTF-8 input survives as well.
	buf := NewBuffer("\"\xed\xa0\xbd\"")
	require.Len(t, buf, 3)

	got, end, err := DecodeString(buf, 1, true)
	require.NoError(t, err)
	assert.Equal(t, "\xed\xa0\xbd", got)
	assert.Equal(t, 3, end)
	assert.False(t, WellFormed(got))
	assert.Equal(t, "\ufffd", ToValidUTF8(got))
}

func TestDecodeStringLong(t *testing.T) {
	long := strings.Repeat("abcdefgh", 512)
	in := `"` + long + `\n` + long + `"`
	got, end, err := DecodeString(NewBuffer(in), 1, true)
	require.NoError(t, err)
	assert.Equal(t, long+"\n"+long, got)
	assert.Equal(t, len(in), end)
}

func TestDecodeStringJoinsSurrogates(t *testing.T) {
	for _, tc := range []struct {
		name string
		buf  Buffer
		want string
	}{
		{name: "escaped high raw low", buf: append(NewBuffer(`"\ud83d`), 0xde00, '"'), want: "\U0001f600"},
		{name: "raw high escaped low", buf: append(Buffer{'"', 0xd83d}, NewBuffer(`\ude00"`)...), want: "\U0001f600"},
		{name: "raw pair", buf: Buffer{'"', 0xd83d, 0xde00, '"'}, want: "\U0001f600"},
		{name: "raw pair after escape", buf: append(NewBuffer(`"\n`), 0xd83d, 0xde00, '"'), want: "\n\U0001f600"},
		{name: "raw low then high", buf: Buffer{'"', 0xde00, 0xd83d, '"'}, want: "\xed\xb8\x80\xed\xa0\xbd"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, end, err := DecodeString(tc.buf, 1, true)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, len(tc.buf), end)

			again, _, err := DecodeString(NewBuffer(EncodeString(got, true)), 1, true)
			require.NoError(t, err)
			assert.Equal(t, got, again)
		})
	}
}

func TestDecodeStringNegativeRune(t *testing.T) {
	_, _, err := DecodeString(Buffer{'\\', -1, '"'}, 0, true)
	require.ErrorIs(t, err, InvalidEscape)

	var decErr *DecodeError
	require.ErrorAs(t, err, &decErr)
	assert.Equal(t, 0, decErr.Pos)
}
