package bignum

import (
	"math/big"
	"math/bits"
	"math/rand/v2"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func randomDigits(r *rand.Rand, n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte('0' + r.IntN(10))
	}
	if n > 0 && b[0] == '0' {
		b[0] = '7'
	}
	return b
}

// naive accumulates left to right, one digit at a time.
func naive(digits []byte) *big.Int {
	x := new(big.Int)
	ten := big.NewInt(10)
	d := new(big.Int)
	for _, c := range digits {
		x.Mul(x, ten)
		x.Add(x, d.SetInt64(int64(c-'0')))
	}
	return x
}

func TestSignificand(t *testing.T) {
	s := NewSignificand(40)
	s.Add(12345678)
	s.FMA(100000000, 90123456)
	s.FMA(100000000, 0)
	s.Add(7)

	want, ok := new(big.Int).SetString("1234567890123456" + "00000007", 10)
	require.True(t, ok)
	assert.Equal(t, 0, want.Cmp(s.Int()))

	zero := NewSignificand(0)
	zero.FMA(10, 0)
	assert.Equal(t, 0, zero.Int().Sign())
}

func TestSignificandCarry(t *testing.T) {
	s := NewSignificand(60)
	s.Add(^big.Word(0))
	s.Add(1)
	want := new(big.Int).Lsh(big.NewInt(1), bits.UintSize)
	assert.Equal(t, 0, want.Cmp(s.Int()))
}

func TestDecimalMatchesNaive(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for _, n := range []int{1, 7, 8, 9, 10, 19, 20, 64, 399, 400, 401, 1000, 10000} {
		digits := randomDigits(r, n)
		want := naive(digits)
		assert.Equal(t, 0, want.Cmp(Decimal(digits, Config{})), "n=%d", n)
		assert.Equal(t, 0, want.Cmp(Decimal(digits, Config{RecursionThreshold: 32})), "n=%d small threshold", n)
	}
}

func TestDecimalZeros(t *testing.T) {
	digits := []byte("1" + strings.Repeat("0", 5000))
	want := new(big.Int).Exp(big.NewInt(10), big.NewInt(5000), nil)
	assert.Equal(t, 0, want.Cmp(Decimal(digits, Config{})))
	assert.Equal(t, 0, Decimal(nil, Config{}).Sign())
}

func TestParallelMatchesSequential(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))
	cfg := Config{RecursionThreshold: 64, ParallelThreshold: 256, Workers: 4}
	for _, n := range []int{100, 257, 4096, 20000, 100000} {
		digits := randomDigits(r, n)
		seq := Decimal(digits, cfg)
		par := DecimalParallel(digits, cfg)
		assert.Equal(t, 0, seq.Cmp(par), "n=%d", n)
	}
}

func TestTenMillionDigits(t *testing.T) {
	if testing.Short() {
		t.Skip("slow")
	}
	r := rand.New(rand.NewPCG(5, 6))
	digits := randomDigits(r, 10_000_000)
	want, ok := new(big.Int).SetString(string(digits), 10)
	require.True(t, ok)

	seq := Decimal(digits, Config{})
	require.Equal(t, 0, want.Cmp(seq))
	par := DecimalParallel(digits, Config{})
	require.Equal(t, 0, seq.Cmp(par))
}

func TestPowersConcurrent(t *testing.T) {
	var p Powers
	var wg sync.WaitGroup
	results := make([]*big.Int, 16)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = p.Ten(1234)
		}()
	}
	wg.Wait()

	want := new(big.Int).Exp(big.NewInt(10), big.NewInt(1234), nil)
	for _, r := range results {
		assert.Equal(t, 0, want.Cmp(r))
	}
	assert.Equal(t, 0, new(big.Int).Exp(big.NewInt(5), big.NewInt(77), nil).Cmp(p.Five(77)))
}

func TestSeed(t *testing.T) {
	var p Powers
	p.Seed(10000, 400)
	for n := 10000; n > 400; {
		low := split(n)
		_, ok := p.ten.Load(low)
		assert.True(t, ok, "10^%d", low)
		assert.Zero(t, low%16)
		n -= low
	}
}

func TestSharedPowers(t *testing.T) {
	var p Powers
	cfg := Config{RecursionThreshold: 64, Powers: &p}
	digits := []byte(strings.Repeat("31415926535897932384", 50))

	want, ok := new(big.Int).SetString(string(digits), 10)
	require.True(t, ok)
	assert.Equal(t, 0, want.Cmp(Decimal(digits, cfg)))
	assert.True(t, p.Cached(split(len(digits))))

	// Results never alias the shared table.
	again := Decimal(digits, cfg)
	again.Add(again, big.NewInt(1))
	assert.Equal(t, 0, want.Cmp(Decimal(digits, cfg)))
	assert.Equal(t, 0, new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(split(len(digits)))), nil).Cmp(p.Ten(split(len(digits)))))

	var private Powers
	assert.False(t, private.Cached(split(len(digits))))
}

func TestHex(t *testing.T) {
	tests := []string{
		"0", "f", "F", "10", "deadbeef", "DEADBEEF", "123456789abcdef",
		"123456789abcdef0", "123456789abcdef01", strings.Repeat("fedcba9876543210", 40) + "abc",
	}
	for _, s := range tests {
		t.Run(s[:min(len(s), 20)], func(t *testing.T) {
			want, ok := new(big.Int).SetString(s, 16)
			require.True(t, ok)
			assert.Equal(t, 0, want.Cmp(Hex([]byte(s))))
		})
	}
	assert.Equal(t, 0, Hex(nil).Sign())
}
