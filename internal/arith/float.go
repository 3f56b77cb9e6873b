package arith

import (
	"math"
)

var (
	// don't use math.Pow10, they don't use lookup tables directly,
	// and makes some operations which leads to inaccuracy.
	pow10 = [...]float64{
		1e0, 1e1, 1e2, 1e3, 1e4, 1e5, 1e6, 1e7, 1e8, 1e9, 1e10, 1e11,
		1e12, 1e13, 1e14, 1e15, 1e16, 1e17, 1e18, 1e19, 1e20, 1e21, 1e22,
	}
)

// Exact64 computes mant * 10^pow when both fit the range where a single
// IEEE multiplication or division is correctly rounded (Clinger's fast
// path). ok is false otherwise, and the caller falls back to strconv.
func Exact64(mant uint64, pow int64, neg bool) (f64 float64, ok bool) {
	const (
		sign    = 1 << 63
		lenFrac = 53
	)
	if absInt(pow) > 22 || mant > 1<<lenFrac-1 {
		return 0, false
	}
	f64 = float64(mant)
	if pow < 0 {
		f64 /= pow10[-pow]
	} else {
		f64 *= pow10[pow]
	}
	if neg {
		f64 = math.Float64frombits(math.Float64bits(f64) | sign)
	}
	return f64, true
}

func absInt(i64 int64) int64 {
	mask := i64 >> (64 - 1)
	return (i64 + mask) ^ mask
}
