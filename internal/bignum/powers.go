package bignum

import (
	"math/big"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"
)

var smallFive [28]*big.Int

func init() {
	v := uint64(1)
	for i := range smallFive {
		smallFive[i] = new(big.Int).SetUint64(v)
		v *= 5
	}
}

// Powers memoises powers of five and ten. Values it returns are shared and
// must not be modified. The zero value is ready to use and safe for
// concurrent use: each power is computed once even when several goroutines
// ask for it at the same time.
type Powers struct {
	five  sync.Map
	ten   sync.Map
	group singleflight.Group
}

// Five returns 5^n.
func (p *Powers) Five(n int) *big.Int {
	if n < len(smallFive) {
		return smallFive[n]
	}
	if v, ok := p.five.Load(n); ok {
		return v.(*big.Int)
	}
	v, _, _ := p.group.Do("5^"+strconv.Itoa(n), func() (interface{}, error) {
		if v, ok := p.five.Load(n); ok {
			return v, nil
		}
		h := n / 2
		r := new(big.Int).Mul(p.Five(h), p.Five(n-h))
		p.five.Store(n, r)
		return r, nil
	})
	return v.(*big.Int)
}

// Ten returns 10^n, computed as 5^n << n.
func (p *Powers) Ten(n int) *big.Int {
	if v, ok := p.ten.Load(n); ok {
		return v.(*big.Int)
	}
	v, _, _ := p.group.Do("10^"+strconv.Itoa(n), func() (interface{}, error) {
		if v, ok := p.ten.Load(n); ok {
			return v, nil
		}
		r := new(big.Int).Lsh(p.Five(n), uint(n))
		p.ten.Store(n, r)
		return r, nil
	})
	return v.(*big.Int)
}

// Cached reports whether 10^n is already memoised.
func (p *Powers) Cached(n int) bool {
	_, ok := p.ten.Load(n)
	return ok
}

// Seed computes every power of ten a divide-and-conquer assembly of n
// digits will join with, so that parallel branches only read the table.
func (p *Powers) Seed(n, threshold int) {
	seen := make(map[int]struct{})
	var walk func(n int)
	walk = func(n int) {
		if n <= threshold {
			return
		}
		if _, ok := seen[n]; ok {
			return
		}
		seen[n] = struct{}{}
		low := split(n)
		p.Ten(low)
		walk(n - low)
		walk(low)
	}
	walk(n)
}

// split returns the length of the low half of an n-digit run: about half,
// rounded down to a multiple of 16.
func split(n int) int {
	low := (n / 2) &^ 15
	if low == 0 {
		low = n / 2
	}
	return low
}
