package jsonscan

import (
	"math"
	"math/big"
	"strconv"

	"github.com/cockroachdb/apd/v3"
	"github.com/pkg/errors"

	"github.com/sugawarayuuta/jsonscan/internal/arith"
)

// Converters turn matched literal text into values. A nil field falls
// back to the package level function of the same name. Converters are
// only called during a scan and may keep state, e.g. to memoize.
type Converters struct {
	// ParseFloat gets number literals with a fraction or an exponent.
	ParseFloat func(text string) (any, error)
	// ParseInt gets the other number literals.
	ParseInt func(text string) (any, error)
	// ParseConstant gets "NaN", "Infinity" or "-Infinity".
	ParseConstant func(name string) (any, error)
}

func (conv *Converters) parseFloat(text string) (any, error) {
	if conv.ParseFloat != nil {
		return conv.ParseFloat(text)
	}
	return ParseFloat(text)
}

func (conv *Converters) parseInt(text string) (any, error) {
	if conv.ParseInt != nil {
		return conv.ParseInt(text)
	}
	return ParseInt(text)
}

func (conv *Converters) parseConstant(name string) (any, error) {
	if conv.ParseConstant != nil {
		return conv.ParseConstant(name)
	}
	return ParseConstant(name)
}

// ParseFloat is the default float converter. It returns a float64;
// literals too large for one give ±Inf rather than an error.
func ParseFloat(text string) (any, error) {
	if f64, ok := exactFloat(text); ok {
		return f64, nil
	}
	f64, err := strconv.ParseFloat(text, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return nil, errors.Wrapf(err, "jsonscan: invalid float literal %q", text)
	}
	return f64, nil
}

// exactFloat handles the literals whose mantissa has at most 19 digits
// and whose exponent is small, which covers most documents.
func exactFloat(text string) (float64, bool) {
	var pos int
	neg := pos < len(text) && text[pos] == '-'
	if neg {
		pos++
	}
	var mant uint64
	var pow int64
	var digits int
	for ; pos < len(text) && text[pos]-'0' < 10; pos++ {
		mant = mant*10 + uint64(text[pos]-'0')
		digits++
	}
	if pos < len(text) && text[pos] == '.' {
		pos++
		for ; pos < len(text) && text[pos]-'0' < 10; pos++ {
			mant = mant*10 + uint64(text[pos]-'0')
			digits++
			pow--
		}
	}
	if digits == 0 || digits > 19 {
		return 0, false
	}
	if pos < len(text) && text[pos]|0x20 == 'e' {
		pos++
		eneg := pos < len(text) && text[pos] == '-'
		if pos < len(text) && (text[pos] == '-' || text[pos] == '+') {
			pos++
		}
		var exp int64
		begin := pos
		for ; pos < len(text) && text[pos]-'0' < 10; pos++ {
			if exp < 1<<16 {
				exp = exp*10 + int64(text[pos]-'0')
			}
		}
		if pos == begin {
			return 0, false
		}
		if eneg {
			exp = -exp
		}
		pow += exp
	}
	if pos != len(text) {
		return 0, false
	}
	return arith.Exact64(mant, pow, neg)
}

// ParseInt is the default integer converter. It returns an int64 when
// the literal fits one and a *big.Int otherwise.
func ParseInt(text string) (any, error) {
	if i64, ok := smallInt(text); ok {
		return i64, nil
	}
	bigInt, ok := new(big.Int).SetString(text, 10)
	if !ok {
		return nil, errors.Errorf("jsonscan: invalid integer literal %q", text)
	}
	if bigInt.IsInt64() {
		return bigInt.Int64(), nil
	}
	return bigInt, nil
}

// smallInt parses up to 18 digits, 8 at a time where it can.
func smallInt(text string) (int64, bool) {
	neg := len(text) > 0 && text[0] == '-'
	if neg {
		text = text[1:]
	}
	if len(text) == 0 || len(text) > 18 {
		return 0, false
	}
	var u64 uint64
	for len(text) >= 8 {
		chunk := arith.Load64(text)
		if !arith.CanUint64(chunk) {
			return 0, false
		}
		u64 = u64*100000000 + arith.Uint64(chunk)
		text = text[8:]
	}
	for ; len(text) > 0; text = text[1:] {
		num := uint64(text[0] - '0')
		if num > 9 {
			return 0, false
		}
		u64 = u64*10 + num
	}
	if neg {
		return -int64(u64), true
	}
	return int64(u64), true
}

// ParseConstant is the default constant converter, mapping the extended
// literals to math.NaN() and ±math.Inf.
func ParseConstant(name string) (any, error) {
	switch name {
	case "NaN":
		return math.NaN(), nil
	case "Infinity":
		return math.Inf(1), nil
	case "-Infinity":
		return math.Inf(-1), nil
	}
	return nil, errors.Errorf("jsonscan: unknown constant %q", name)
}

// DecimalConverters returns converters producing *apd.Decimal for every
// float literal and constant, keeping the literal's exact digits. Set
// ints to convert integer literals to decimals too.
func DecimalConverters(ints bool) Converters {
	conv := Converters{
		ParseFloat:    parseDecimal,
		ParseConstant: parseDecimal,
	}
	if ints {
		conv.ParseInt = parseDecimal
	}
	return conv
}

func parseDecimal(text string) (any, error) {
	dec, _, err := apd.NewFromString(text)
	if err != nil {
		return nil, errors.Wrapf(err, "jsonscan: invalid decimal literal %q", text)
	}
	return dec, nil
}
