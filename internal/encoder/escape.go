package encoder

import (
	"unicode/utf16"
	"unicode/utf8"

	"github.com/sugawarayuuta/jsonscan/internal/arith"
	"github.com/sugawarayuuta/jsonscan/internal/wtf8"
)

var (
	// short forms, zero where \u00XX is used instead.
	shorts = [utf8.RuneSelf]byte{
		'"':  '"',
		'\\': '\\',
		'\b': 'b',
		'\f': 'f',
		'\n': 'n',
		'\r': 'r',
		'\t': 't',
	}
	escapeTab = [utf8.RuneSelf]bool{
		'"':  true,
		'\\': true,
	}
)

const (
	hex = "0123456789abcdef"
)

func init() {
	for char := byte(0); char < byte(' '); char++ {
		escapeTab[char] = true
	}
}

// AppendString appends src as a quoted JSON string literal. src is
// WTF-8: encoded surrogates are kept as they are, or written as their
// own \uXXXX escape when ascii is set. Bytes that don't decode are
// written as U+FFFD.
func AppendString(dst []byte, src string, ascii bool) []byte {
	dst = append(dst, '"')
	mult := len(src) &^ 7
	var total int
	for idx := 0; idx < mult; idx += 8 {
		pos := arith.Escape(arith.Load64(src[idx:]))
		total += pos
		if pos != 8 {
			return appendStringOut(dst, src, ascii, total)
		}
	}
	for idx := mult; idx < len(src); idx++ {
		char := src[idx]
		if char >= utf8.RuneSelf || escapeTab[char] {
			return appendStringOut(dst, src, ascii, total)
		}
		total++
	}
	dst = append(dst, src...)
	return append(dst, '"')
}

func appendStringOut(dst []byte, src string, ascii bool, idx int) []byte {
	dst = append(dst, src[:idx]...)
	start := idx
	for idx < len(src) {
		char := src[idx]
		if char < utf8.RuneSelf {
			if !escapeTab[char] {
				idx++
				continue
			}
			if start < idx {
				dst = append(dst, src[start:idx]...)
			}
			if short := shorts[char]; short != 0 {
				dst = append(dst, '\\', short)
			} else {
				dst = append(dst, '\\', 'u', '0', '0', hex[char>>4], hex[char&0xf])
			}
			idx++
			start = idx
			continue
		}
		run, size := wtf8.DecodeRuneInString(src[idx:])
		switch {
		case run == utf8.RuneError && size == 1:
			if start < idx {
				dst = append(dst, src[start:idx]...)
			}
			if ascii {
				dst = appendUnit(dst, utf8.RuneError)
			} else {
				dst = append(dst, "\ufffd"...)
			}
			idx += size
			start = idx
		case ascii:
			if start < idx {
				dst = append(dst, src[start:idx]...)
			}
			if run > 0xffff {
				one, two := utf16.EncodeRune(run)
				dst = appendUnit(appendUnit(dst, one), two)
			} else {
				dst = appendUnit(dst, run)
			}
			idx += size
			start = idx
		default:
			idx += size
		}
	}
	if start < len(src) {
		dst = append(dst, src[start:]...)
	}
	return append(dst, '"')
}

func appendUnit(dst []byte, unit rune) []byte {
	return append(dst, '\\', 'u', hex[unit>>12&0xf], hex[unit>>8&0xf], hex[unit>>4&0xf], hex[unit&0xf])
}
