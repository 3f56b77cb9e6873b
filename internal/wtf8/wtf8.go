// Package wtf8 handles WTF-8, the superset of UTF-8 that also admits
// unpaired surrogate code points (U+D800 to U+DFFF) written in the
// generalized three byte form. Decoded JSON strings use it so that a
// lone \ud83d escape survives a decode/encode round trip.
package wtf8

import (
	"unicode/utf16"
	"unicode/utf8"
)

const (
	surrMin = 0xd800
	surrMax = 0xdfff
)

// IsSurrogate reports whether run is a UTF-16 surrogate code point.
func IsSurrogate(run rune) bool {
	return surrMin <= run && run <= surrMax
}

// AppendRune appends the WTF-8 encoding of run to dst.
// Surrogates are kept rather than replaced with U+FFFD.
func AppendRune(dst []byte, run rune) []byte {
	if IsSurrogate(run) {
		return append(dst, 0xe0|byte(run>>12), 0x80|byte(run>>6)&0x3f, 0x80|byte(run)&0x3f)
	}
	if run < utf8.RuneSelf && run >= 0 {
		return append(dst, byte(run))
	}
	return utf8.AppendRune(dst, run)
}

// AppendJoin is AppendRune, except that a low surrogate written right
// after an encoded high surrogate replaces it with the supplementary
// character the two stand for. WTF-8 never holds such a pair.
func AppendJoin(dst []byte, run rune) []byte {
	if 0xdc00 <= run && run <= surrMax {
		if size := len(dst); size >= 3 && dst[size-3] == 0xed && dst[size-2]&0xf0 == 0xa0 {
			high := 0xd000 | rune(dst[size-2]&0x3f)<<6 | rune(dst[size-1]&0x3f)
			return utf8.AppendRune(dst[:size-3], utf16.DecodeRune(high, run))
		}
	}
	return AppendRune(dst, run)
}

// DecodeRuneInString is utf8.DecodeRuneInString that also accepts
// encoded surrogates. Invalid bytes decode as (utf8.RuneError, 1).
func DecodeRuneInString(str string) (rune, int) {
	if len(str) >= 3 && str[0] == 0xed && str[1]&0xe0 == 0xa0 && str[2]&0xc0 == 0x80 {
		return 0xd000 | rune(str[1]&0x3f)<<6 | rune(str[2]&0x3f), 3
	}
	return utf8.DecodeRuneInString(str)
}

// Runes decodes str into code points, surrogates included.
func Runes(str string) []rune {
	runes := make([]rune, 0, len(str))
	for idx := 0; idx < len(str); {
		char := str[idx]
		if char < utf8.RuneSelf {
			runes = append(runes, rune(char))
			idx++
			continue
		}
		run, size := DecodeRuneInString(str[idx:])
		runes = append(runes, run)
		idx += size
	}
	return runes
}

// String encodes runes as WTF-8.
func String(runes []rune) string {
	size := 0
	for _, run := range runes {
		size += RuneLen(run)
	}
	dst := make([]byte, 0, size)
	for _, run := range runes {
		dst = AppendRune(dst, run)
	}
	return string(dst)
}

// RuneLen returns the number of bytes AppendRune writes for run.
func RuneLen(run rune) int {
	if IsSurrogate(run) {
		return 3
	}
	if size := utf8.RuneLen(run); size > 0 {
		return size
	}
	return 3 // U+FFFD
}

// WellFormed reports whether str is plain UTF-8, i.e. holds no
// encoded surrogate and no invalid byte.
func WellFormed(str string) bool {
	return utf8.ValidString(str)
}

// ToValidUTF8 returns str with every encoded surrogate and every
// invalid byte replaced by U+FFFD.
func ToValidUTF8(str string) string {
	if utf8.ValidString(str) {
		return str
	}
	dst := make([]byte, 0, len(str))
	for idx := 0; idx < len(str); {
		run, size := DecodeRuneInString(str[idx:])
		if IsSurrogate(run) {
			run = utf8.RuneError
		}
		dst = utf8.AppendRune(dst, run)
		idx += size
	}
	return string(dst)
}
