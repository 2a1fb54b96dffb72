package parser

import "math/bits"

const (
	detailedPowersOfTenMinExp10 = -348
	detailedPowersOfTenMaxExp10 = +347
)

// lemire converts man × 10^exp10 with the Eisel-Lemire algorithm. It
// reports false when the 128-bit approximation of the power of ten leaves
// the rounding undecided, or the result is subnormal or infinite.
func (f *format) lemire(man uint64, exp10 int64, neg bool) (uint64, bool) {
	if man == 0 {
		return f.zero(neg), true
	}
	if exp10 < detailedPowersOfTenMinExp10 || exp10 > detailedPowersOfTenMaxExp10 {
		return 0, false
	}
	q := int(exp10)

	clz := bits.LeadingZeros64(man)
	man <<= uint(clz)
	// 217706/2^16 approximates log2(10).
	exp2 := uint64(int64(217706*q>>16)+64+f.bias) - uint64(clz)

	pow := &detailedPowersOfTen[q-detailedPowersOfTenMinExp10]
	hi, lo := bits.Mul64(man, pow[1])

	// The product may be short by up to man; widen with the low word of the
	// power when that could carry into the retained bits.
	if hi&f.lowMask == f.lowMask && lo+man < man {
		yHi, yLo := bits.Mul64(man, pow[0])
		mHi, mLo := hi, lo+yHi
		if mLo < lo {
			mHi++
		}
		if mHi&f.lowMask == f.lowMask && mLo+1 == 0 && yLo+man < man {
			return 0, false
		}
		hi, lo = mHi, mLo
	}

	msb := hi >> 63
	mant := hi >> (msb + f.shift)
	exp2 -= 1 ^ msb

	// An exact half cannot be told apart from a value just above it.
	if lo == 0 && hi&f.lowMask == 0 && mant&3 == 1 {
		return 0, false
	}

	mant += mant & 1
	mant >>= 1
	if mant>>(f.mantBits+1) != 0 {
		mant >>= 1
		exp2++
	}
	if exp2-1 >= f.maxExp-1 {
		return 0, false
	}
	return exp2<<f.mantBits | mant&(1<<f.mantBits-1) | f.zero(neg), true
}
