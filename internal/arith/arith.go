package arith

import "math/bits"

const (
	x01 = 0x0101010101010101
)

// Escape returns the index of the first byte in the little endian
// word u64 that can't be copied into a string literal as is: a control
// character, '"', '\\' or any byte with the high bit set. 8 means none.
func Escape(u64 uint64) int {
	// https://graphics.stanford.edu/~seander/bithacks.html#HasLessInWord
	return bits.TrailingZeros64((u64|(u64-x01*' ')|(u64^x01*'\\'-x01)|(u64^x01*'"'-x01))&(x01*0x80)) >> 3
}

// Uint64 converts 8 ASCII digits, first digit in the lowest byte.
// The caller checks them with CanUint64 first.
func Uint64(u64 uint64) uint64 {
	u64 = u64 & 0x0F0F0F0F0F0F0F0F * 2561 >> 8
	u64 = u64 & 0x00FF00FF00FF00FF * 6553601 >> 16
	u64 = u64 & 0x0000FFFF0000FFFF * 42949672960001 >> 32
	return u64
}

// CanUint64 reports whether all 8 bytes of u64 are ASCII digits.
func CanUint64(u64 uint64) bool {
	return u64&(u64+x01*0x06)&(x01*0xf0) == x01*0x30
}

// Load64 reads 8 bytes of str as a little endian word.
func Load64(str string) uint64 {
	_ = str[7] // bounds check hint to compiler; see golang.org/issue/14808
	return uint64(str[0]) | uint64(str[1])<<8 | uint64(str[2])<<16 | uint64(str[3])<<24 |
		uint64(str[4])<<32 | uint64(str[5])<<40 | uint64(str[6])<<48 | uint64(str[7])<<56
}
