package encoder

import (
	"encoding/binary"
	"math"
	"strconv"
)

var (
	lit = binary.LittleEndian
)

var (
	double = [100]uint16{
		0x3030, 0x3130, 0x3230, 0x3330, 0x3430, 0x3530, 0x3630, 0x3730, 0x3830, 0x3930,
		0x3031, 0x3131, 0x3231, 0x3331, 0x3431, 0x3531, 0x3631, 0x3731, 0x3831, 0x3931,
		0x3032, 0x3132, 0x3232, 0x3332, 0x3432, 0x3532, 0x3632, 0x3732, 0x3832, 0x3932,
		0x3033, 0x3133, 0x3233, 0x3333, 0x3433, 0x3533, 0x3633, 0x3733, 0x3833, 0x3933,
		0x3034, 0x3134, 0x3234, 0x3334, 0x3434, 0x3534, 0x3634, 0x3734, 0x3834, 0x3934,
		0x3035, 0x3135, 0x3235, 0x3335, 0x3435, 0x3535, 0x3635, 0x3735, 0x3835, 0x3935,
		0x3036, 0x3136, 0x3236, 0x3336, 0x3436, 0x3536, 0x3636, 0x3736, 0x3836, 0x3936,
		0x3037, 0x3137, 0x3237, 0x3337, 0x3437, 0x3537, 0x3637, 0x3737, 0x3837, 0x3937,
		0x3038, 0x3138, 0x3238, 0x3338, 0x3438, 0x3538, 0x3638, 0x3738, 0x3838, 0x3938,
		0x3039, 0x3139, 0x3239, 0x3339, 0x3439, 0x3539, 0x3639, 0x3739, 0x3839, 0x3939,
	}
)

// Constant spellings for the values JSON has no literal for.
const (
	NaN    = "NaN"
	Inf    = "Infinity"
	NegInf = "-Infinity"
)

// AppendUint appends u64 in decimal, two digits at a time.
func AppendUint(dst []byte, u64 uint64, neg bool) []byte {
	var buf [22]byte
	pos := 22
	for ; u64 >= 100; u64 /= 100 {
		pos -= 2
		lit.PutUint16(buf[pos:], double[u64%100])
	}
	pos -= 2
	lit.PutUint16(buf[pos:], double[u64])
	if u64 < 10 {
		pos++
	}
	if neg {
		pos--
		buf[pos] = '-'
	}
	return append(dst, buf[pos:]...)
}

// AppendInt appends i64 in decimal.
func AppendInt(dst []byte, i64 int64) []byte {
	if i64 < 0 {
		return AppendUint(dst, uint64(-(i64+1))+1, true)
	}
	return AppendUint(dst, uint64(i64), false)
}

// AppendFloat appends f64 in its shortest round trip form, always with
// a fraction or an exponent so that it reads back as a float: 1.0,
// 0.0001, 1e-05, 1e+16. ok is false for NaN and infinities, which have
// no JSON spelling; see Constant.
func AppendFloat(dst []byte, f64 float64, bits int) ([]byte, bool) {
	if math.IsInf(f64, 0) || math.IsNaN(f64) {
		return dst, false
	}
	start := len(dst)
	dst = strconv.AppendFloat(dst, f64, 'e', -1, bits)
	exp := exponent(dst[start:])
	if exp < -4 || exp >= 16 {
		return dst, true
	}
	dst = strconv.AppendFloat(dst[:start], f64, 'f', -1, bits)
	for _, char := range dst[start:] {
		if char == '.' {
			return dst, true
		}
	}
	return append(dst, '.', '0'), true
}

// Constant returns the extended literal for NaN and the infinities.
func Constant(f64 float64) string {
	switch {
	case math.IsNaN(f64):
		return NaN
	case math.IsInf(f64, 1):
		return Inf
	default:
		return NegInf
	}
}

// exponent reads the decimal exponent of strconv's 'e' format.
func exponent(num []byte) int {
	var pos int
	for pos < len(num) && num[pos] != 'e' {
		pos++
	}
	pos++
	if pos >= len(num) {
		return 0
	}
	neg := num[pos] == '-'
	pos++
	var exp int
	for ; pos < len(num); pos++ {
		exp = exp*10 + int(num[pos]-'0')
	}
	if neg {
		return -exp
	}
	return exp
}
