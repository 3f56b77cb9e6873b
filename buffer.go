package jsonscan

import (
	"github.com/sugawarayuuta/jsonscan/internal/wtf8"
)

// Buffer is JSON text addressed by code point. Every position taken or
// returned by this package is an index into a Buffer.
//
// A Buffer may hold surrogate code points; NewBuffer keeps the ones
// found in WTF-8 input instead of replacing them.
type Buffer []rune

// NewBuffer decodes text, UTF-8 or WTF-8, into a Buffer.
// Bytes that are neither decode as U+FFFD.
func NewBuffer(text string) Buffer {
	return Buffer(wtf8.Runes(text))
}

// String encodes buf back to WTF-8.
func (buf Buffer) String() string {
	return wtf8.String(buf)
}

// hasPrefix reports whether buf holds lit at pos.
func (buf Buffer) hasPrefix(pos int, lit string) bool {
	if len(buf)-pos < len(lit) {
		return false
	}
	for idx := 0; idx < len(lit); idx++ {
		if buf[pos+idx] != rune(lit[idx]) {
			return false
		}
	}
	return true
}

// WellFormed reports whether text, as returned by DecodeString, holds
// no unpaired surrogate and is therefore plain UTF-8.
func WellFormed(text string) bool {
	return wtf8.WellFormed(text)
}

// ToValidUTF8 replaces every unpaired surrogate in text with U+FFFD.
func ToValidUTF8(text string) string {
	return wtf8.ToValidUTF8(text)
}
