package scanner

import (
	"math/rand/v2"
	"strings"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biggeezerdevelopment/fastnum/internal/symbols"
)

func defaultConfig() Config {
	return Config{
		Decimal:  []rune{'.'},
		Minus:    []rune{'-'},
		Plus:     []rune{'+'},
		Exponent: []string{"e", "E"},
		Infinity: []string{"Infinity"},
		NaN:      []string{"NaN"},
		Digits:   []rune("0123456789"),
	}
}

func arabicConfig() Config {
	return Config{
		Decimal:  []rune{'٫'},
		Grouping: []rune{'٬'},
		Minus:    []rune{'-', '؜'},
		Plus:     []rune{'+'},
		Exponent: []string{"أس"},
		Infinity: []string{"∞"},
		NaN:      []string{"ليس رقم"},
		Digits:   []rune("٠١٢٣٤٥٦٧٨٩"),
	}
}

func mustMatcher[T symbols.Unit](t *testing.T, cfg Config) *Matcher[T] {
	t.Helper()
	m, err := New[T](cfg)
	require.NoError(t, err)
	return m
}

func scan(t *testing.T, m *Matcher[byte], s string) (Token, bool) {
	t.Helper()
	var tok Token
	b := []byte(s)
	ok := m.Scan(b, 0, len(b), &tok)
	return tok, ok
}

func TestScanDecimal(t *testing.T) {
	m := mustMatcher[byte](t, defaultConfig())

	tests := []struct {
		name     string
		input    string
		mant     uint64
		exp      int64
		digits   int
		fracLen  int
		negative bool
		many     bool
		trunc    bool
	}{
		{"leading zeros", "0049", 49, 0, 2, 0, false, false, false},
		{"fraction", "123.45", 12345, -2, 5, 2, false, false, false},
		{"small fraction", "-0.00120", 120, -5, 3, 5, true, false, false},
		{"dot first", ".5", 5, -1, 1, 1, false, false, false},
		{"dot last", "5.", 5, 0, 1, 0, false, false, false},
		{"exponent", "+1e10", 1, 10, 1, 0, false, false, false},
		{"negative exponent", "1.5E-3", 15, -4, 2, 1, false, false, false},
		{"zero", "0.000", 0, -3, 0, 3, false, false, false},
		{"nineteen digits", "9999999999999999999", 9999999999999999999, 0, 19, 0, false, false, false},
		{"many digits", "12345678901234567890123", 1234567890123456789, 4, 23, 0, false, true, true},
		{"many zero digits", "10000000000000000000000", 1000000000000000000, 4, 23, 0, false, true, false},
		{"many fraction digits", "0.0000000000000000000000012345678901234567890", 1234567890123456789, -42, 20, 43, false, true, false},
		{"long zero run", "0.00000000000000000000000000000001", 1, -32, 1, 32, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok, ok := scan(t, m, tt.input)
			require.True(t, ok)
			assert.Equal(t, Decimal, tok.Kind)
			assert.Equal(t, tt.mant, tok.Mantissa, "mantissa")
			assert.Equal(t, tt.exp, tok.Exp, "exponent")
			assert.Equal(t, tt.digits, tok.Digits, "digits")
			assert.Equal(t, tt.fracLen, tok.FracLen, "fraction length")
			assert.Equal(t, tt.negative, tok.Negative)
			assert.Equal(t, tt.many, tok.ManyDigits)
			assert.Equal(t, tt.trunc, tok.Truncated)
		})
	}
}

func TestScanSpecials(t *testing.T) {
	m := mustMatcher[byte](t, defaultConfig())

	tests := []struct {
		input    string
		kind     Kind
		negative bool
	}{
		{"Infinity", Infinity, false},
		{"-Infinity", Infinity, true},
		{"+Infinity", Infinity, false},
		{"NaN", NaN, false},
		{"-NaN", NaN, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tok, ok := scan(t, m, tt.input)
			require.True(t, ok)
			assert.Equal(t, tt.kind, tok.Kind)
			assert.Equal(t, tt.negative, tok.Negative)
		})
	}

	ci := defaultConfig()
	ci.IgnoreCase = true
	mi := mustMatcher[byte](t, ci)
	for _, s := range []string{"INFINITY", "infinity", "nan", "NAN", "1E5", "1e5"} {
		_, ok := scan(t, mi, s)
		assert.True(t, ok, s)
	}
	_, ok := scan(t, m, "infinity")
	assert.False(t, ok, "case-sensitive by default")
}

func TestScanHex(t *testing.T) {
	m := mustMatcher[byte](t, defaultConfig())

	tests := []struct {
		input string
		mant  uint64
		exp   int64
	}{
		{"0x1.8p1", 0x18, -3},
		{"0X1P-2", 1, -2},
		{"0x.8p0", 8, -4},
		{"0x0.0001p0", 1, -16},
		{"-0xABCp+4", 0xABC, 4},
		{"0x1.921fb54442d18p1", 0x1921fb54442d18, -51},
		{"0x1234567890abcdef12p0", 0x1234567890abcdef, 8},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tok, ok := scan(t, m, tt.input)
			require.True(t, ok)
			assert.Equal(t, Hex, tok.Kind)
			assert.Equal(t, tt.mant, tok.Mantissa)
			assert.Equal(t, tt.exp, tok.Exp)
		})
	}

	tok, ok := scan(t, m, "0x1234567890abcdef1p0")
	require.True(t, ok)
	assert.True(t, tok.ManyDigits)
	assert.True(t, tok.Truncated)
}

func TestScanRejects(t *testing.T) {
	m := mustMatcher[byte](t, defaultConfig())
	inputs := []string{
		"", "-", "+", "1e", "1e+", "1e-", ".", "e5", "1..2", "1.2.3",
		"0x1.8", "0xp1", "0x", "1x", " 1", "1 ", "Infinityx", "NaN1",
		"1,000", "--1", "+-1", "1e5.5", "1ee5", "١٢",
	}
	for _, s := range inputs {
		t.Run(s, func(t *testing.T) {
			_, ok := scan(t, m, s)
			assert.False(t, ok)
		})
	}
}

func TestScanRange(t *testing.T) {
	m := mustMatcher[byte](t, defaultConfig())
	b := []byte("xx-12.5e1yy")
	var tok Token
	require.True(t, m.Scan(b, 2, 9, &tok))
	assert.Equal(t, uint64(125), tok.Mantissa)
	assert.Equal(t, int64(0), tok.Exp)
	assert.True(t, tok.Negative)
}

func TestExponentSaturates(t *testing.T) {
	m := mustMatcher[byte](t, defaultConfig())

	tok, ok := scan(t, m, "1e1073741824")
	require.True(t, ok)
	assert.False(t, tok.ExpOverflow)
	assert.Equal(t, int64(MaxExponent), tok.Explicit)

	tok, ok = scan(t, m, "1e99999999999999999999999")
	require.True(t, ok)
	assert.True(t, tok.ExpOverflow)
	assert.Equal(t, int64(MaxExponent), tok.Explicit)

	tok, ok = scan(t, m, "1e-99999999999999999999999")
	require.True(t, ok)
	assert.True(t, tok.ExpOverflow)
	assert.Equal(t, int64(-MaxExponent), tok.Explicit)
}

func TestScanInteger(t *testing.T) {
	m := mustMatcher[byte](t, defaultConfig())

	var tok Token
	for _, s := range []string{"-123", "+0", "007", "0x1F", "-0XdeadBEEF"} {
		b := []byte(s)
		assert.True(t, m.ScanInteger(b, 0, len(b), &tok), s)
	}
	for _, s := range []string{"1.5", "1e5", "0x1p1", "0x1.8", "12a", "", "-", "0x"} {
		b := []byte(s)
		assert.False(t, m.ScanInteger(b, 0, len(b), &tok), s)
	}

	b := []byte("-0x00FF")
	require.True(t, m.ScanInteger(b, 0, len(b), &tok))
	assert.Equal(t, Hex, tok.Kind)
	assert.Equal(t, uint64(0xFF), tok.Mantissa)
	assert.Equal(t, 2, tok.Digits)
	assert.True(t, tok.Negative)
}

func TestScanLocale(t *testing.T) {
	input := "-١٬٢٣٤٫٥أس٢"

	m8 := mustMatcher[byte](t, arabicConfig())
	m16 := mustMatcher[uint16](t, arabicConfig())
	m32 := mustMatcher[rune](t, arabicConfig())

	var t8, t16, t32 Token
	b := []byte(input)
	require.True(t, m8.Scan(b, 0, len(b), &t8))
	u := symbols.Encode[uint16](input)
	require.True(t, m16.Scan(u, 0, len(u), &t16))
	r := []rune(input)
	require.True(t, m32.Scan(r, 0, len(r), &t32))

	for _, tok := range []Token{t8, t16, t32} {
		assert.True(t, tok.Negative)
		assert.True(t, tok.Grouped)
		assert.Equal(t, uint64(12345), tok.Mantissa)
		assert.Equal(t, int64(1), tok.Exp)
		assert.Equal(t, 1, tok.FracLen)
	}

	s := GetScratch()
	defer s.Release()
	assert.Equal(t, "12345", string(m8.Digits(b, &t8, s)))
	assert.Equal(t, "12345", string(m16.Digits(u, &t16, s)))
	assert.Equal(t, "12345", string(m32.Digits(r, &t32, s)))

	inf := []byte("∞")
	require.True(t, m8.Scan(inf, 0, len(inf), &t8))
	assert.Equal(t, Infinity, t8.Kind)

	// Hex literals need an ASCII alphabet.
	hex := []byte("0x1p1")
	assert.False(t, m8.Scan(hex, 0, len(hex), &t8))
}

func TestGroupingNeedsDigit(t *testing.T) {
	cfg := defaultConfig()
	cfg.Grouping = []rune{','}
	m := mustMatcher[byte](t, cfg)

	tok, ok := scan(t, m, "1,234,567.5")
	require.True(t, ok)
	assert.Equal(t, uint64(12345675), tok.Mantissa)
	assert.Equal(t, int64(-1), tok.Exp)

	for _, s := range []string{",1", "1,", "1,,2", "1.2,3", "1,e5"} {
		_, ok := scan(t, m, s)
		assert.False(t, ok, s)
	}
}

func TestDigits(t *testing.T) {
	m := mustMatcher[byte](t, defaultConfig())
	s := GetScratch()
	defer s.Release()

	tests := []struct {
		input   string
		want    string
		aliased bool
	}{
		{"000123", "123", true},
		{"0.000123", "123", true},
		{"123.", "123", true},
		{"-00123.4500e7", "1234500", false},
		{"0.000", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			b := []byte(tt.input)
			var tok Token
			require.True(t, m.Scan(b, 0, len(b), &tok))
			got := m.Digits(b, &tok, s)
			assert.Equal(t, tt.want, string(got))
			if len(got) > 0 {
				inside := uintptr(unsafe.Pointer(&got[0])) >= uintptr(unsafe.Pointer(&b[0])) &&
					uintptr(unsafe.Pointer(&got[0])) < uintptr(unsafe.Pointer(&b[0]))+uintptr(len(b))
				assert.Equal(t, tt.aliased, inside)
			}
		})
	}
}

func randomLiteral(r *rand.Rand) string {
	var sb strings.Builder
	if r.IntN(4) == 0 {
		sb.WriteByte('-')
	}
	n := 1 + r.IntN(60)
	dot := -1
	if r.IntN(2) == 0 {
		dot = r.IntN(n + 1)
	}
	zeros := r.IntN(20)
	for i := 0; i < n; i++ {
		if i == dot {
			sb.WriteByte('.')
		}
		if i < zeros {
			sb.WriteByte('0')
		} else {
			sb.WriteByte(byte('0' + r.IntN(10)))
		}
	}
	if dot == n {
		sb.WriteByte('.')
	}
	if r.IntN(3) == 0 {
		sb.WriteString("e-")
		sb.WriteString(strings.Repeat("1", 1+r.IntN(3)))
	}
	return sb.String()
}

func TestSWARMatchesScalar(t *testing.T) {
	m := mustMatcher[byte](t, defaultConfig())
	m16 := mustMatcher[uint16](t, defaultConfig())
	plain := *m
	plain.swar = false

	r := rand.New(rand.NewPCG(7, 11))
	for i := 0; i < 5000; i++ {
		s := randomLiteral(r)
		b := []byte(s)
		u := symbols.Encode[uint16](s)

		var fast, slow, wide Token
		okFast := m.Scan(b, 0, len(b), &fast)
		okSlow := plain.Scan(b, 0, len(b), &slow)
		okWide := m16.Scan(u, 0, len(u), &wide)
		require.Equal(t, okSlow, okFast, s)
		require.Equal(t, okSlow, okWide, s)
		require.Equal(t, slow, fast, s)
		require.Equal(t, slow, wide, s)
	}
}
