package parser

import (
	"math"
	"math/big"
	"math/rand/v2"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biggeezerdevelopment/fastnum/internal/scanner"
)

var matcher = func() *scanner.Matcher[byte] {
	m, err := scanner.New[byte](scanner.Config{
		Decimal:  []rune{'.'},
		Minus:    []rune{'-'},
		Plus:     []rune{'+'},
		Exponent: []string{"e", "E"},
		Infinity: []string{"Infinity"},
		NaN:      []string{"NaN"},
		Digits:   []rune("0123456789"),
	})
	if err != nil {
		panic(err)
	}
	return m
}()

func token(t testing.TB, s string) (scanner.Token, []byte) {
	t.Helper()
	var tok scanner.Token
	b := []byte(s)
	require.True(t, matcher.Scan(b, 0, len(b), &tok), "scan %q", s)
	return tok, b
}

func parse64(t testing.TB, s string) float64 {
	tok, b := token(t, s)
	if f, ok := Float64(&tok); ok {
		return f
	}
	sc := scanner.GetScratch()
	defer sc.Release()
	return Exact64(matcher.Digits(b, &tok, sc), tok.DigitsExp(), tok.Negative)
}

func parse32(t testing.TB, s string) float32 {
	tok, b := token(t, s)
	if f, ok := Float32(&tok); ok {
		return f
	}
	sc := scanner.GetScratch()
	defer sc.Release()
	return Exact32(matcher.Digits(b, &tok, sc), tok.DigitsExp(), tok.Negative)
}

func exactOf64(t testing.TB, s string) float64 {
	tok, b := token(t, s)
	sc := scanner.GetScratch()
	defer sc.Release()
	return Exact64(matcher.Digits(b, &tok, sc), tok.DigitsExp(), tok.Negative)
}

func assertSame64(t *testing.T, s string, got float64) {
	t.Helper()
	want, _ := strconv.ParseFloat(s, 64)
	assert.Equal(t, math.Float64bits(want), math.Float64bits(got), "%q: want %v got %v", s, want, got)
}

func assertSame32(t *testing.T, s string, got float32) {
	t.Helper()
	want, _ := strconv.ParseFloat(s, 32)
	assert.Equal(t, math.Float32bits(float32(want)), math.Float32bits(got), "%q: want %v got %v", s, want, got)
}

func TestBoundaries(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{"underflow", "1e-326", 0},
		{"negative underflow", "-1e-326", math.Copysign(0, -1)},
		{"overflow", "1e310", math.Inf(1)},
		{"negative overflow", "-1e310", math.Inf(-1)},
		{"leading zeros", "0049", 49},
		{"negative zero", "-0", math.Copysign(0, -1)},
		{"max", "1.7976931348623157e308", math.MaxFloat64},
		{"smallest normal", "2.2250738585072014e-308", 0x1p-1022},
		{"smallest subnormal", "4.9406564584124654e-324", math.SmallestNonzeroFloat64},
		{"hex pi", "0x1.921fb54442d18p1", 2 * (1 + float64(0x921fb54442d18)/(1<<52))},
		{"hex subnormal", "0x1p-1074", math.SmallestNonzeroFloat64},
		{"hex underflow", "0x1p-1076", 0},
		{"hex overflow", "0x1p1024", math.Inf(1)},
		{"exponent saturation", "1e9999999999999", math.Inf(1)},
		{"zero with huge exponent", "0e9999999999999", 0},
		{"infinity", "-Infinity", math.Inf(-1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parse64(t, tt.input)
			assert.Equal(t, math.Float64bits(tt.want), math.Float64bits(got))
		})
	}

	assert.True(t, math.IsNaN(parse64(t, "NaN")))
	assert.True(t, math.IsNaN(float64(parse32(t, "NaN"))))
}

func TestFastPathRange(t *testing.T) {
	tok, _ := token(t, "9007199254740991e22")
	f, ok := fast64(tok.Mantissa, tok.Exp, tok.Negative)
	require.True(t, ok)
	assert.Equal(t, 9007199254740991e22, f)

	tok, _ = token(t, "9007199254740991e23")
	_, ok = fast64(tok.Mantissa, tok.Exp, tok.Negative)
	assert.False(t, ok)
	assertSame64(t, "9007199254740991e23", parse64(t, "9007199254740991e23"))

	tok, _ = token(t, "9007199254740992")
	_, ok = fast64(tok.Mantissa, tok.Exp, tok.Negative)
	assert.False(t, ok, "2^53 is outside the exact mantissa range")

	tok, _ = token(t, "16777215e10")
	_, ok = fast32(tok.Mantissa, tok.Exp, tok.Negative)
	assert.True(t, ok)
	tok, _ = token(t, "16777216")
	_, ok = fast32(tok.Mantissa, tok.Exp, tok.Negative)
	assert.False(t, ok)
}

func randomLiteral(r *rand.Rand) string {
	var sb strings.Builder
	if r.IntN(2) == 0 {
		sb.WriteByte('-')
	}
	n := 1 + r.IntN(25)
	if r.IntN(20) == 0 {
		n = 700 + r.IntN(200)
	}
	for i := 0; i < n; i++ {
		sb.WriteByte(byte('0' + r.IntN(10)))
	}
	if r.IntN(2) == 0 {
		sb.WriteString(".")
		for i := r.IntN(10); i > 0; i-- {
			sb.WriteByte(byte('0' + r.IntN(10)))
		}
	}
	sb.WriteString("e")
	sb.WriteString(strconv.Itoa(r.IntN(700) - 360))
	return sb.String()
}

func TestMatchesStrconv(t *testing.T) {
	r := rand.New(rand.NewPCG(42, 1))
	for i := 0; i < 20000; i++ {
		s := randomLiteral(r)
		assertSame64(t, s, parse64(t, s))
		assertSame32(t, s, parse32(t, s))
	}
}

func TestRandomBitsRoundTrip(t *testing.T) {
	r := rand.New(rand.NewPCG(9, 9))
	for i := 0; i < 20000; i++ {
		f := math.Float64frombits(r.Uint64())
		if math.IsNaN(f) || math.IsInf(f, 0) {
			continue
		}
		for _, s := range []string{
			strconv.FormatFloat(f, 'g', -1, 64),
			strconv.FormatFloat(f, 'e', 25, 64),
		} {
			got := parse64(t, s)
			require.Equal(t, math.Float64bits(f), math.Float64bits(got), s)
		}
	}
}

// halfway returns the exact decimal digits and exponent of the midpoint
// between f and the next float64 up. f must be positive and finite.
func halfway(f float64) (string, int) {
	mant, exp := math.Frexp(f)
	m := int64(mant * (1 << 53))
	e := exp - 53
	if e < -1074 {
		m >>= uint(-1074 - e)
		e = -1074
	}
	// midpoint = (2m+1) × 2^(e-1) = (2m+1) × 5^(1-e) / 10^(1-e)
	n := big.NewInt(2*m + 1)
	if e-1 >= 0 {
		n.Lsh(n, uint(e-1))
		return n.String(), 0
	}
	n.Mul(n, new(big.Int).Exp(big.NewInt(5), big.NewInt(int64(1-e)), nil))
	return n.String(), -(1 - e)
}

func TestHalfwayWithDroppedDigits(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 5))
	values := []float64{1, 9007199254740992, math.MaxFloat64 / 3, 0x1p-1022, math.SmallestNonzeroFloat64, 5e-324 * 3}
	for len(values) < 300 {
		f := math.Float64frombits(r.Uint64() &^ (1 << 63))
		if !math.IsNaN(f) && !math.IsInf(f, 0) {
			values = append(values, f)
		}
	}

	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(20), nil)
	one := big.NewInt(1)
	for _, f := range values {
		digits, exp := halfway(f)
		n, ok := new(big.Int).SetString(digits, 10)
		require.True(t, ok)
		n.Mul(n, scale)
		suffix := "e" + strconv.Itoa(exp-20)

		tie := digits + "e" + strconv.Itoa(exp)
		above := new(big.Int).Add(n, one).String() + suffix
		below := new(big.Int).Sub(n, one).String() + suffix

		for _, s := range []string{tie, above, below} {
			got := parse64(t, s)
			assertSame64(t, s, got)
			assert.Equal(t, math.Float64bits(exactOf64(t, s)), math.Float64bits(got), s)
		}
	}
}

func TestTiersAgree(t *testing.T) {
	r := rand.New(rand.NewPCG(11, 13))
	fast, ext := 0, 0
	for i := 0; i < 50000; i++ {
		man := r.Uint64N(10_000_000_000_000_000_000)
		if man == 0 {
			continue
		}
		if r.IntN(2) == 0 {
			man >>= r.UintN(60)
			man++
		}
		exp10 := int64(r.IntN(700) - 350)
		if r.IntN(3) == 0 {
			exp10 = int64(r.IntN(45) - 22)
		}
		digits := []byte(strconv.FormatUint(man, 10))
		want := float64info.exact(digits, exp10, false)

		if f, ok := fast64(man, exp10, false); ok {
			fast++
			require.Equal(t, want, math.Float64bits(f), "fast %de%d", man, exp10)
		}
		if b, ok := float64info.lemire(man, exp10, false); ok {
			ext++
			require.Equal(t, want, b, "lemire %de%d", man, exp10)
		}

		want32 := float32info.exact(digits, exp10, false)
		if f, ok := fast32(man, exp10, false); ok {
			require.Equal(t, want32, uint64(math.Float32bits(f)), "fast32 %de%d", man, exp10)
		}
		if b, ok := float32info.lemire(man, exp10, false); ok {
			require.Equal(t, want32, b, "lemire32 %de%d", man, exp10)
		}
	}
	assert.Positive(t, fast)
	assert.Positive(t, ext)
}

func TestExactTruncatesLongInput(t *testing.T) {
	long := "1." + strings.Repeat("0", 2000) + "1"
	assert.Equal(t, 1.0, exactOf64(t, long))
	assertSame64(t, long, parse64(t, long))

	// One past halfway between 1 and the next float, far beyond 800 digits.
	digits, exp := halfway(1)
	s := digits + strings.Repeat("0", 1500) + "1e" + strconv.Itoa(exp-1501)
	assert.Equal(t, math.Nextafter(1, 2), exactOf64(t, s))
}

func TestHex32(t *testing.T) {
	assert.Equal(t, float32(3), parse32(t, "0x1.8p1"))
	assert.Equal(t, float32(math.SmallestNonzeroFloat32), parse32(t, "0x1p-149"))
	assert.Equal(t, float32(0), parse32(t, "0x1p-151"))
	assert.Equal(t, float32(math.SmallestNonzeroFloat32), parse32(t, "0x1.0000001p-150"), "sticky above half")
	assert.Equal(t, float32(math.Inf(1)), parse32(t, "0x1p128"))
	assert.Equal(t, float32(1), parse32(t, "0x1.000001p0"), "ties to even")
	assert.Equal(t, math.Nextafter32(1, 2), parse32(t, "0x1.0000011p0"))
}

func TestExactReusesPowers(t *testing.T) {
	digits := []byte(strings.Repeat("7", 100))
	s := string(digits) + "e-400"
	want, _ := strconv.ParseFloat(s, 64)

	got := Exact64(digits, -400, false)
	assert.Equal(t, math.Float64bits(want), math.Float64bits(got))
	assert.True(t, exactPowers.Cached(400))

	// Later conversions read the same table and stay exact.
	for i := 0; i < 3; i++ {
		assert.Equal(t, math.Float64bits(want), math.Float64bits(Exact64(digits, -400, false)))
	}
}
