package parser

import "math/bits"

// format describes a binary floating-point target.
type format struct {
	mantBits  uint   // stored mantissa bits
	bias      int64  // exponent bias
	maxExp    uint64 // all-ones biased exponent
	signShift uint

	// Eisel-Lemire: bits of the high product word below the retained
	// mantissa plus round bit.
	lowMask uint64
	shift   uint64

	// Decimal exponents of the leading digit beyond which the result is
	// infinite or zero regardless of the other digits.
	maxLead int64
	minLead int64
}

var (
	float64info = format{
		mantBits:  52,
		bias:      1023,
		maxExp:    0x7FF,
		signShift: 63,
		lowMask:   0x1FF,
		shift:     9,
		maxLead:   308,
		minLead:   -324,
	}
	float32info = format{
		mantBits:  23,
		bias:      127,
		maxExp:    0xFF,
		signShift: 31,
		lowMask:   0x3FFFFFFFFF,
		shift:     38,
		maxLead:   38,
		minLead:   -46,
	}
)

func (f *format) zero(neg bool) uint64 {
	if neg {
		return 1 << f.signShift
	}
	return 0
}

func (f *format) inf(neg bool) uint64 {
	return f.maxExp<<f.mantBits | f.zero(neg)
}

func (f *format) nan() uint64 {
	return f.maxExp<<f.mantBits | 1<<(f.mantBits-1)
}

// round returns the bits of the value mant × 2^exp2, rounded half to even.
// sticky marks a non-zero tail below mant, so an exact half rounds up.
func (f *format) round(mant uint64, exp2 int64, sticky, neg bool) uint64 {
	if mant == 0 {
		return f.zero(neg)
	}
	clz := bits.LeadingZeros64(mant)
	mant <<= uint(clz)
	lead := exp2 + 63 - int64(clz)

	prec := int64(f.mantBits) + 1
	emin := 1 - f.bias
	keep := prec
	if lead < emin {
		keep -= emin - lead
	}
	if keep < 0 {
		return f.zero(neg)
	}

	drop := uint(64 - keep)
	var kept, rem uint64
	if drop == 64 {
		rem = mant
	} else {
		kept = mant >> drop
		rem = mant << (64 - drop)
	}
	const half = 1 << 63
	if rem > half || rem == half && (sticky || kept&1 == 1) {
		kept++
	}

	if lead < emin {
		// Subnormal; rounding up into the smallest normal sets the exponent
		// field on its own.
		return kept | f.zero(neg)
	}
	if kept>>prec != 0 {
		kept >>= 1
		lead++
	}
	if lead+f.bias >= int64(f.maxExp) {
		return f.inf(neg)
	}
	biased := uint64(lead + f.bias)
	return biased<<f.mantBits | kept&(1<<f.mantBits-1) | f.zero(neg)
}
