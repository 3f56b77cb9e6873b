package jsonscan

import (
	"strconv"
	"unicode/utf16"

	"github.com/sugawarayuuta/jsonscan/internal/pool"
	"github.com/sugawarayuuta/jsonscan/internal/wtf8"
)

var (
	replacer = [128]byte{
		'"':  '"',
		'\\': '\\',
		'/':  '/',
		'b':  '\b',
		'f':  '\f',
		'n':  '\n',
		'r':  '\r',
		't':  '\t',
	}
	hexes = [128]int8{
		'0': 1, '1': 2, '2': 3, '3': 4, '4': 5, '5': 6, '6': 7, '7': 8, '8': 9, '9': 10,
		'A': 11, 'B': 12, 'C': 13, 'D': 14, 'E': 15, 'F': 16,
		'a': 11, 'b': 12, 'c': 13, 'd': 14, 'e': 15, 'f': 16,
	}
)

// DecodeString decodes the string literal whose opening quote sits just
// before start. It returns the text and the index just past the closing
// quote.
//
// The text is WTF-8: a surrogate that has no partner is kept as is, so
// it is plain UTF-8 exactly when WellFormed reports so. A high surrogate
// followed by a low one, escaped or raw, becomes one character. With
// strict set, raw control characters below U+0020 are rejected;
// otherwise they are copied.
func DecodeString(buf Buffer, start int, strict bool) (string, int, error) {
	begin := start - 1
	if begin < 0 {
		begin = start
	}
	if start < 0 || start > len(buf) {
		return "", 0, errSyntax(UnterminatedString, "Unterminated string starting at", max(0, min(begin, len(buf))))
	}
	pos := start
	// fast path, nothing to unescape.
	for pos < len(buf) {
		run := buf[pos]
		if run == '"' {
			return wtf8.String(buf[start:pos]), pos + 1, nil
		}
		if run == '\\' || run < ' ' || wtf8.IsSurrogate(run) {
			break
		}
		pos++
	}
	dst := pool.Get(pos - start + 16)
	for _, run := range buf[start:pos] {
		dst = wtf8.AppendJoin(dst, run)
	}
	return unescape(dst, buf, pos, begin, strict)
}

func unescape(dst []byte, buf Buffer, pos, begin int, strict bool) (string, int, error) {
	defer func() { pool.Put(dst) }()
	for {
		if pos >= len(buf) {
			return "", 0, errSyntax(UnterminatedString, "Unterminated string starting at", begin)
		}
		run := buf[pos]
		switch {
		case run == '"':
			return string(dst), pos + 1, nil
		case run == '\\':
			pos++
			if pos >= len(buf) {
				return "", 0, errSyntax(UnterminatedString, "Unterminated string starting at", begin)
			}
			esc := buf[pos]
			if esc != 'u' {
				if esc < 0 || esc >= 128 || replacer[esc] == 0 {
					return "", 0, errSyntax(InvalidEscape, "Invalid \\escape: "+strconv.QuoteRune(esc), pos-1)
				}
				dst = append(dst, replacer[esc])
				pos++
				continue
			}
			one, ok := unhex(buf, pos+1)
			if !ok {
				return "", 0, errSyntax(InvalidUnicodeEscape, "Invalid \\uXXXX escape", pos-1)
			}
			pos += 5
			if 0xd800 <= one && one <= 0xdbff && buf.hasPrefix(pos, `\u`) {
				// a malformed second escape is reported on the next round.
				if two, ok := unhex(buf, pos+2); ok && 0xdc00 <= two && two <= 0xdfff {
					one = utf16.DecodeRune(one, two)
					pos += 6
				}
			}
			dst = wtf8.AppendJoin(dst, one)
		case run < ' ':
			if strict {
				return "", 0, errSyntax(InvalidControlCharacter, "Invalid control character at", pos)
			}
			dst = append(dst, byte(run))
			pos++
		default:
			dst = wtf8.AppendJoin(dst, run)
			pos++
		}
	}
}

// unhex reads the 4 hex digits at pos.
func unhex(buf Buffer, pos int) (rune, bool) {
	if len(buf)-pos < 4 {
		return 0, false
	}
	var run rune
	for _, char := range buf[pos : pos+4] {
		if char < 0 || char >= 128 || hexes[char] == 0 {
			return 0, false
		}
		run = run<<4 | rune(hexes[char]-1)
	}
	return run, true
}
