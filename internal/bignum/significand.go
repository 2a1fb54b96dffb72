// Package bignum assembles exact integers from long runs of ASCII digits.
// Short runs accumulate into a Significand eight digits at a time; long
// runs are split, assembled recursively and joined with a power of ten,
// optionally on several goroutines.
package bignum

import (
	"math/big"
	"math/bits"
)

// Significand is a fixed-capacity unsigned accumulator. Limbs are little
// endian; used counts the limbs that may be non-zero so the arithmetic
// never touches the unused high part.
type Significand struct {
	limbs []big.Word
	used  int
}

// NewSignificand returns a Significand large enough for a value of the
// given number of decimal digits.
func NewSignificand(digits int) *Significand {
	// log2(10) ≈ 3.321928095
	nbits := uint64(digits)*3321928095/1000000000 + 1
	n := int(nbits/bits.UintSize) + 1
	return &Significand{limbs: make([]big.Word, n)}
}

// FMA sets s to s*factor + addend.
func (s *Significand) FMA(factor, addend big.Word) {
	carry := uint(addend)
	for i := 0; i < s.used; i++ {
		hi, lo := bits.Mul(uint(s.limbs[i]), uint(factor))
		lo, c := bits.Add(lo, carry, 0)
		s.limbs[i] = big.Word(lo)
		carry = hi + c
	}
	if carry != 0 {
		s.limbs[s.used] = big.Word(carry)
		s.used++
	}
}

// Add sets s to s + v.
func (s *Significand) Add(v big.Word) {
	carry := uint(v)
	for i := 0; i < s.used && carry != 0; i++ {
		var sum uint
		sum, carry = bits.Add(uint(s.limbs[i]), carry, 0)
		s.limbs[i] = big.Word(sum)
	}
	if carry != 0 {
		s.limbs[s.used] = big.Word(carry)
		s.used++
	}
}

// Int returns the accumulated value. The result shares storage with s.
func (s *Significand) Int() *big.Int {
	return new(big.Int).SetBits(s.limbs[:s.used])
}
