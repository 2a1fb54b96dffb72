package fastnum

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/biggeezerdevelopment/fastnum/internal/parser"
)

// Decimal is an exact decimal value: Unscaled × 10^-Scale. The zero value
// is 0.
type Decimal struct {
	unscaled *big.Int
	scale    int32
}

// NewDecimal returns unscaled × 10^-scale. unscaled is copied.
func NewDecimal(unscaled *big.Int, scale int32) Decimal {
	return Decimal{unscaled: new(big.Int).Set(unscaled), scale: scale}
}

// Unscaled returns a copy of the unscaled value.
func (d Decimal) Unscaled() *big.Int {
	if d.unscaled == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(d.unscaled)
}

// Scale returns the number of digits after the decimal point. A negative
// scale multiplies by a power of ten.
func (d Decimal) Scale() int32 { return d.scale }

// Sign returns -1, 0 or +1.
func (d Decimal) Sign() int {
	if d.unscaled == nil {
		return 0
	}
	return d.unscaled.Sign()
}

// Rat returns d as a fraction.
func (d Decimal) Rat() *big.Rat {
	r := new(big.Rat).SetInt(d.Unscaled())
	if d.scale == 0 {
		return r
	}
	p := new(big.Rat).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(abs64(int64(d.scale))), nil))
	if d.scale > 0 {
		return r.Quo(r, p)
	}
	return r.Mul(r, p)
}

// Float64 returns the float64 nearest to d.
func (d Decimal) Float64() float64 {
	u := d.Unscaled()
	neg := u.Sign() < 0
	digits := []byte(u.Abs(u).String())
	if len(digits) == 1 && digits[0] == '0' {
		digits = nil
	}
	return parser.Exact64(digits, -int64(d.scale), neg)
}

// maxPlainZeros is the most zeros String pads with before it switches to
// scientific notation.
const maxPlainZeros = 32

// String formats d in plain notation, keeping trailing zeros implied by the
// scale. When that would take more than 32 padding zeros, it uses
// scientific notation with an adjusted exponent instead, as in
// "1.5E+1000000000" or "0E-40".
func (d Decimal) String() string {
	u := d.Unscaled()
	neg := u.Sign() < 0
	digits := u.Abs(u).String()

	var sb strings.Builder
	if neg {
		sb.WriteByte('-')
	}
	switch scale := int64(d.scale); {
	case scale <= 0 && (digits == "0" || -scale <= maxPlainZeros):
		sb.WriteString(digits)
		if digits != "0" {
			sb.WriteString(strings.Repeat("0", int(-scale)))
		}
	case scale > 0 && scale < int64(len(digits)):
		sb.WriteString(digits[:int64(len(digits))-scale])
		sb.WriteByte('.')
		sb.WriteString(digits[int64(len(digits))-scale:])
	case scale > 0 && scale-int64(len(digits)) <= maxPlainZeros:
		sb.WriteString("0.")
		sb.WriteString(strings.Repeat("0", int(scale)-len(digits)))
		sb.WriteString(digits)
	default:
		sb.WriteByte(digits[0])
		if len(digits) > 1 {
			sb.WriteByte('.')
			sb.WriteString(digits[1:])
		}
		sb.WriteByte('E')
		adjusted := int64(len(digits)) - 1 - scale
		if adjusted >= 0 {
			sb.WriteByte('+')
		}
		sb.WriteString(strconv.FormatInt(adjusted, 10))
	}
	return sb.String()
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
