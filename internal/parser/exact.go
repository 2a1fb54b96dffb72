package parser

import (
	"math/big"

	"github.com/biggeezerdevelopment/fastnum/internal/bignum"
	"github.com/biggeezerdevelopment/fastnum/internal/swar"
)

// MaxFloatDigits is the number of significant digits the exact path keeps.
// Any float64 halfway point needs at most 767, so later digits only matter
// through whether they are all zero.
const MaxFloatDigits = 800

// exactPowers is shared by all exact conversions. The leading-digit checks
// bound its exponents to about ±(MaxFloatDigits + 350), so it stays small.
var exactPowers bignum.Powers

// exact returns the correctly rounded bits of digits × 10^exp10. digits is
// an ASCII run without leading zeros.
func (f *format) exact(digits []byte, exp10 int64, neg bool) uint64 {
	if len(digits) == 0 {
		return f.zero(neg)
	}
	lead := int64(len(digits)) - 1 + exp10
	switch {
	case lead > f.maxLead:
		return f.inf(neg)
	case lead < f.minLead:
		return f.zero(neg)
	}

	tail := false
	if len(digits) > MaxFloatDigits {
		tail = !swar.AllZeros(digits[MaxFloatDigits:])
		exp10 += int64(len(digits) - MaxFloatDigits)
		digits = digits[:MaxFloatDigits]
	}
	n := bignum.Decimal(digits, bignum.Config{Powers: &exactPowers})
	if tail {
		// A trailing 1 stands for the dropped non-zero digits: it keeps
		// the value strictly between the same two halfway points.
		n.Mul(n, big.NewInt(10))
		n.Add(n, big.NewInt(1))
		exp10--
	}

	var exp2 int64
	sticky := false
	if exp10 >= 0 {
		n.Mul(n, exactPowers.Ten(int(exp10)))
	} else {
		d := exactPowers.Ten(int(-exp10))
		k := max(0, 64+d.BitLen()-n.BitLen())
		n.Lsh(n, uint(k))
		var r big.Int
		n.QuoRem(n, d, &r)
		sticky = r.Sign() != 0
		exp2 = -int64(k)
	}

	mant, shift, lost := top64(n)
	return f.round(mant, exp2+int64(shift), sticky || lost, neg)
}

// top64 returns the 64 leading bits of n, how far they were shifted down
// and whether any of the bits shifted out was set.
func top64(n *big.Int) (uint64, uint, bool) {
	l := n.BitLen()
	if l <= 64 {
		return n.Uint64(), 0, false
	}
	shift := uint(l - 64)
	lost := n.TrailingZeroBits() < shift
	var t big.Int
	return t.Rsh(n, shift).Uint64(), shift, lost
}
