package bignum

import (
	"math/big"
	"math/bits"
	"runtime"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/biggeezerdevelopment/fastnum/internal/swar"
)

const (
	// DefaultRecursionThreshold is the run length above which assembly
	// switches from the Significand to divide and conquer.
	DefaultRecursionThreshold = 400

	// DefaultParallelThreshold is the run length below which parallel
	// assembly stays on the calling goroutine.
	DefaultParallelThreshold = 10000

	minRecursionThreshold = 32
)

// Config tunes assembly. Zero fields take the defaults.
type Config struct {
	RecursionThreshold int
	ParallelThreshold  int
	// Workers bounds the goroutines a parallel assembly may fork.
	// Zero means GOMAXPROCS.
	Workers int64
	// Powers is shared across calls when set; otherwise each call memoises
	// its own powers.
	Powers *Powers
}

func (c Config) recursion() int {
	if c.RecursionThreshold <= 0 {
		return DefaultRecursionThreshold
	}
	return max(c.RecursionThreshold, minRecursionThreshold)
}

func (c Config) parallel() int {
	if c.ParallelThreshold <= 0 {
		return DefaultParallelThreshold
	}
	return max(c.ParallelThreshold, c.recursion())
}

func (c Config) powers() *Powers {
	if c.Powers != nil {
		return c.Powers
	}
	return new(Powers)
}

func (c Config) workers() int64 {
	if c.Workers <= 0 {
		return int64(runtime.GOMAXPROCS(0))
	}
	return c.Workers
}

type assembler struct {
	recursion int
	parallel  int
	pow       *Powers
	sem       *semaphore.Weighted
}

// Decimal returns the value of the ASCII decimal digits.
func Decimal(digits []byte, cfg Config) *big.Int {
	a := assembler{recursion: cfg.recursion(), pow: cfg.powers()}
	return a.parse(digits)
}

// DecimalParallel is Decimal with the halves of long runs assembled on
// separate goroutines when a worker is free.
func DecimalParallel(digits []byte, cfg Config) *big.Int {
	a := assembler{
		recursion: cfg.recursion(),
		parallel:  cfg.parallel(),
		pow:       cfg.powers(),
		sem:       semaphore.NewWeighted(cfg.workers()),
	}
	if len(digits) <= a.parallel {
		return a.parse(digits)
	}
	a.pow.Seed(len(digits), a.recursion)
	return a.fork(digits)
}

func (a *assembler) parse(digits []byte) *big.Int {
	if len(digits) <= a.recursion {
		return accumulate(digits)
	}
	low := split(len(digits))
	hi := len(digits) - low
	x := a.parse(digits[:hi])
	y := a.parse(digits[hi:])
	x.Mul(x, a.pow.Ten(low))
	return x.Add(x, y)
}

func (a *assembler) fork(digits []byte) *big.Int {
	if len(digits) <= a.parallel {
		return a.parse(digits)
	}
	low := split(len(digits))
	hi := len(digits) - low

	var x *big.Int
	if a.sem.TryAcquire(1) {
		var g errgroup.Group
		g.Go(func() error {
			defer a.sem.Release(1)
			x = a.fork(digits[:hi])
			return nil
		})
		y := a.fork(digits[hi:])
		_ = g.Wait()
		x.Mul(x, a.pow.Ten(low))
		return x.Add(x, y)
	}
	x = a.fork(digits[:hi])
	y := a.fork(digits[hi:])
	x.Mul(x, a.pow.Ten(low))
	return x.Add(x, y)
}

// accumulate folds digits into a Significand, eight at a time after a
// leading partial chunk.
func accumulate(digits []byte) *big.Int {
	s := NewSignificand(len(digits))
	head := len(digits) % 8
	if head > 0 {
		s.Add(big.Word(swar.ParseDigits(digits[:head])))
	}
	for i := head; i < len(digits); i += 8 {
		s.FMA(100000000, big.Word(swar.ParseDigits(digits[i:i+8])))
	}
	return s.Int()
}

const hexPerWord = bits.UintSize / 4

// Hex returns the value of the ASCII hex digits, in either case.
func Hex(digits []byte) *big.Int {
	n := len(digits)
	limbs := make([]big.Word, (n+hexPerWord-1)/hexPerWord)
	for i := range limbs {
		end := n - i*hexPerWord
		limbs[i] = hexWord(digits[max(end-hexPerWord, 0):end])
	}
	return new(big.Int).SetBits(limbs)
}

func hexWord(b []byte) big.Word {
	var w uint
	i := 0
	if swar.Enabled {
		for ; i+8 <= len(b); i += 8 {
			v, _ := swar.EightHexDigits(swar.Load8(b, i))
			w = w<<32 | uint(v)
		}
	}
	for ; i < len(b); i++ {
		c := b[i]
		switch {
		case c <= '9':
			c -= '0'
		default:
			c = c|0x20 - 'a' + 10
		}
		w = w<<4 | uint(c)
	}
	return big.Word(w)
}
