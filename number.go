package jsonscan

// ScanNumber matches the longest number literal at start: an optional
// '-', digits, then optionally '.' and digits, then optionally 'e' or
// 'E', an optional sign and digits. A fraction or exponent without a
// digit after it is left out of the match, so "1.2.3" gives "1.2" and
// "1e" gives "1". float is set when a fraction or exponent was taken.
//
// The text is returned verbatim for the converters. ok is false when no
// digit was found, including a lone "-".
func ScanNumber(buf Buffer, start int) (text string, float bool, ok bool) {
	if start < 0 || start >= len(buf) {
		return "", false, false
	}
	pos := start
	if buf[pos] == '-' {
		pos++
	}
	end := eatDigits(buf, pos)
	if end == pos {
		return "", false, false
	}
	pos = end
	if pos+1 < len(buf) && buf[pos] == '.' && isDigit(buf[pos+1]) {
		pos = eatDigits(buf, pos+2)
		float = true
	}
	if pos < len(buf) && (buf[pos] == 'e' || buf[pos] == 'E') {
		exp := pos + 1
		if exp < len(buf) && (buf[exp] == '+' || buf[exp] == '-') {
			exp++
		}
		if exp < len(buf) && isDigit(buf[exp]) {
			pos = eatDigits(buf, exp+1)
			float = true
		}
	}
	return string(buf[start:pos]), float, true
}

func isDigit(run rune) bool {
	return '0' <= run && run <= '9'
}

func eatDigits(buf Buffer, pos int) int {
	for pos < len(buf) && isDigit(buf[pos]) {
		pos++
	}
	return pos
}
