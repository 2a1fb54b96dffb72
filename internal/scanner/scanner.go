// Package scanner matches numeric literals against a configurable grammar
// and reduces them to a Token: sign, leading significand digits, decimal (or
// binary) exponent and the positions needed to recover every digit.
package scanner

import (
	"errors"
	"unsafe"

	"github.com/biggeezerdevelopment/fastnum/internal/swar"
	"github.com/biggeezerdevelopment/fastnum/internal/symbols"
)

const (
	// MaxExponent bounds the magnitude of an explicit exponent. Larger
	// values saturate and set Token.ExpOverflow.
	MaxExponent = 1 << 30

	maxMantDigits = 19
	maxHexDigits  = 16
)

var (
	ErrAlphabet = errors.New("scanner: digit alphabet must be ten distinct code points")
)

var pow10u = [...]uint64{1, 10, 100, 1000, 10000, 100000, 1000000, 10000000, 100000000}

// Kind classifies a matched literal.
type Kind uint8

const (
	Decimal Kind = iota
	Hex
	Infinity
	NaN
)

func (k Kind) String() string {
	switch k {
	case Decimal:
		return "decimal"
	case Hex:
		return "hex"
	case Infinity:
		return "infinity"
	case NaN:
		return "nan"
	}
	return "unknown"
}

// Token is the normalized form of one literal.
//
// For Decimal tokens the value is Mantissa × 10^Exp when ManyDigits is
// false. Mantissa holds the first 19 significant digits; later digits are
// counted in Digits, and Truncated records whether any of them was not
// zero. For Hex tokens Mantissa holds the first 16 significant hex digits
// and Exp is a binary exponent.
type Token struct {
	Kind       Kind
	Negative   bool
	Mantissa   uint64
	Exp        int64
	Digits     int
	ManyDigits bool
	Truncated  bool

	// Explicit is the exponent written after the exponent separator,
	// clamped to ±MaxExponent.
	Explicit    int64
	ExpOverflow bool

	// FracLen counts every digit after the decimal separator.
	FracLen int
	// Grouped is set when a grouping separator was skipped.
	Grouped bool

	// Unit offsets into the scanned buffer. First is the first significant
	// digit, or -1 when every digit is zero.
	First     int
	IntStart  int
	IntEnd    int
	FracStart int
	FracEnd   int
}

// DigitsExp returns the exponent that applies to the full significant digit
// run returned by Matcher.Digits.
func (t *Token) DigitsExp() int64 {
	return t.Explicit - int64(t.FracLen)
}

// Config holds the symbol sets of one locale.
type Config struct {
	Decimal    []rune
	Grouping   []rune
	Minus      []rune
	Plus       []rune
	Exponent   []string
	Infinity   []string
	NaN        []string
	Digits     []rune
	IgnoreCase bool
}

// charClass recognises one role. Symbols that fit a single unit of T go to
// the set; the rest are multi-unit encodings and go to the trie.
type charClass[T symbols.Unit] struct {
	set  symbols.Set[T]
	trie symbols.Trie[T]
}

func newCharClass[T symbols.Unit](rs []rune, ignoreCase bool) charClass[T] {
	if ignoreCase {
		rs = symbols.FoldRunes(rs)
	}
	var units []T
	var multi []string
	for _, r := range rs {
		enc := symbols.Encode[T](string(r))
		if len(enc) == 1 {
			units = append(units, enc[0])
		} else {
			multi = append(multi, string(r))
		}
	}
	return charClass[T]{set: symbols.NewSet(units), trie: symbols.NewTrie[T](multi, false)}
}

func (c *charClass[T]) match(buf []T, i, end int) int {
	if i >= end {
		return 0
	}
	if c.set.Contains(buf[i]) {
		return 1
	}
	return c.trie.Match(buf, i, end)
}

type digitClass[T symbols.Unit] struct {
	single bool
	set    symbols.DigitSet[T]
	wide   symbols.DigitSet[rune]
}

// at returns the value of the digit at buf[i] and its width in units, or a
// zero width when there is none.
func (d *digitClass[T]) at(buf []T, i, end int) (uint32, int) {
	if i >= end {
		return 0, 0
	}
	if d.single {
		if v := d.set.ToDigit(buf[i]); v < 10 {
			return v, 1
		}
		return 0, 0
	}
	r, n := symbols.DecodeRune(buf, i, end)
	if v := d.wide.ToDigit(r); v < 10 {
		return v, n
	}
	return 0, 0
}

// Matcher recognises literals encoded in units of T.
type Matcher[T symbols.Unit] struct {
	minus, plus, decimal, group charClass[T]
	exp, inf, nan               symbols.Trie[T]
	digits                      digitClass[T]

	// ascii is set when the digits are '0'..'9'; it enables hex literals.
	ascii bool
	swar  bool
}

// New builds a Matcher for cfg.
func New[T symbols.Unit](cfg Config) (*Matcher[T], error) {
	m := &Matcher[T]{
		minus:   newCharClass[T](cfg.Minus, cfg.IgnoreCase),
		plus:    newCharClass[T](cfg.Plus, cfg.IgnoreCase),
		decimal: newCharClass[T](cfg.Decimal, cfg.IgnoreCase),
		group:   newCharClass[T](cfg.Grouping, cfg.IgnoreCase),
		exp:     symbols.NewTrie[T](cfg.Exponent, cfg.IgnoreCase),
		inf:     symbols.NewTrie[T](cfg.Infinity, cfg.IgnoreCase),
		nan:     symbols.NewTrie[T](cfg.NaN, cfg.IgnoreCase),
	}
	if set, ok := symbols.NewDigitSet[T](cfg.Digits); ok {
		m.digits = digitClass[T]{single: true, set: set}
		m.ascii = set.ASCII()
	} else if wide, ok := symbols.NewDigitSet[rune](cfg.Digits); ok {
		m.digits = digitClass[T]{wide: wide}
	} else {
		return nil, ErrAlphabet
	}
	w := symbols.Width[T]()
	m.swar = m.ascii && swar.Enabled && (w == 1 || w == 2)
	return m, nil
}

// view exposes the buffer to the SWAR routines.
type view struct {
	b8  []byte
	b16 []uint16
}

func (m *Matcher[T]) view(buf []T) view {
	if !m.swar || len(buf) == 0 {
		return view{}
	}
	p := unsafe.Pointer(unsafe.SliceData(buf))
	switch symbols.Width[T]() {
	case 1:
		return view{b8: unsafe.Slice((*byte)(p), len(buf))}
	case 2:
		return view{b16: unsafe.Slice((*uint16)(p), len(buf))}
	}
	return view{}
}

func (v *view) on() bool { return v.b8 != nil || v.b16 != nil }

func (v *view) skipZeros(i, end int) int {
	if v.b8 != nil {
		return swar.SkipZeros(v.b8, i, end)
	}
	return swar.SkipZerosUTF16(v.b16, i, end)
}

// chunk converts the eight (UTF-8) or four (UTF-16) digits at i.
func (v *view) chunk(i, end int) (uint32, int) {
	if v.b8 != nil {
		if i+8 <= end {
			if d, ok := swar.EightDigits(swar.Load8(v.b8, i)); ok {
				return d, 8
			}
		}
		return 0, 0
	}
	if i+4 <= end {
		if d, ok := swar.FourDigitsUTF16(swar.Load4x16(v.b16, i)); ok {
			return d, 4
		}
	}
	return 0, 0
}

// Scan matches buf[start:end] as a floating-point literal. It reports false
// when the span does not match the grammar in full.
func (m *Matcher[T]) Scan(buf []T, start, end int, tok *Token) bool {
	*tok = Token{First: -1}
	i := m.sign(buf, start, end, tok)
	if i >= end {
		return false
	}
	if n := m.inf.Match(buf, i, end); n > 0 {
		tok.Kind = Infinity
		return i+n == end
	}
	if n := m.nan.Match(buf, i, end); n > 0 {
		tok.Kind = NaN
		return i+n == end
	}
	if m.hexPrefix(buf, i, end) {
		return m.scanHex(buf, i+2, end, tok, false)
	}
	return m.scanDecimal(buf, i, end, tok, false)
}

// ScanInteger matches buf[start:end] as an integer literal: an optional
// sign followed by decimal digits, or by 0x and hex digits.
func (m *Matcher[T]) ScanInteger(buf []T, start, end int, tok *Token) bool {
	*tok = Token{First: -1}
	i := m.sign(buf, start, end, tok)
	if i >= end {
		return false
	}
	if m.hexPrefix(buf, i, end) {
		return m.scanHex(buf, i+2, end, tok, true)
	}
	return m.scanDecimal(buf, i, end, tok, true)
}

func (m *Matcher[T]) sign(buf []T, i, end int, tok *Token) int {
	if n := m.minus.match(buf, i, end); n > 0 {
		tok.Negative = true
		return i + n
	}
	return i + m.plus.match(buf, i, end)
}

func (m *Matcher[T]) hexPrefix(buf []T, i, end int) bool {
	return m.ascii && end-i >= 2 && buf[i] == '0' && buf[i+1]|0x20 == 'x'
}

func (m *Matcher[T]) scanDecimal(buf []T, i, end int, tok *Token, intOnly bool) bool {
	v := m.view(buf)
	var (
		mant              uint64
		nd, ndMant, dp    int
		seen, intDigits   int
		sawDot, sawDigits bool
		trunc             bool
	)
	tok.Kind = Decimal
	tok.IntStart = i

loop:
	for i < end {
		if !sawDot {
			if n := m.decimal.match(buf, i, end); n > 0 && !intOnly {
				sawDot = true
				dp = nd
				intDigits = seen
				tok.IntEnd = i
				i += n
				tok.FracStart = i
				continue
			}
			if sawDigits {
				if n := m.group.match(buf, i, end); n > 0 {
					if _, k := m.digits.at(buf, i+n, end); k == 0 {
						break loop
					}
					tok.Grouped = true
					i += n
					continue
				}
			}
		}

		if v.on() {
			if nd == 0 {
				if j := v.skipZeros(i, end); j > i {
					sawDigits = true
					dp -= j - i
					seen += j - i
					i = j
					continue
				}
			} else if c, k := v.chunk(i, end); k > 0 && (ndMant+k <= maxMantDigits || ndMant == maxMantDigits) {
				if ndMant < maxMantDigits {
					mant = mant*pow10u[k] + uint64(c)
					ndMant += k
				} else if c != 0 {
					trunc = true
				}
				nd += k
				seen += k
				i += k
				continue
			}
		}

		d, n := m.digits.at(buf, i, end)
		if n == 0 {
			break
		}
		sawDigits = true
		seen++
		switch {
		case d == 0 && nd == 0:
			dp--
		case ndMant < maxMantDigits:
			if nd == 0 {
				tok.First = i
			}
			mant = mant*10 + uint64(d)
			ndMant++
			nd++
		default:
			if d != 0 {
				trunc = true
			}
			nd++
		}
		i += n
	}

	if !sawDigits {
		return false
	}
	if !sawDot {
		dp = nd
		intDigits = seen
		tok.IntEnd = i
		tok.FracStart = i
	}
	tok.FracEnd = i
	tok.FracLen = seen - intDigits

	if i < end {
		if intOnly {
			return false
		}
		n := m.exp.Match(buf, i, end)
		if n == 0 {
			return false
		}
		var ok bool
		if i, ok = m.exponent(buf, i+n, end, tok); !ok {
			return false
		}
	}

	tok.Mantissa = mant
	tok.Digits = nd
	tok.ManyDigits = nd > maxMantDigits
	tok.Truncated = trunc
	tok.Exp = int64(dp) - int64(ndMant) + tok.Explicit
	return i == end
}

// exponent reads "[Sign] Digits" into tok.Explicit.
func (m *Matcher[T]) exponent(buf []T, i, end int, tok *Token) (int, bool) {
	neg := false
	if n := m.minus.match(buf, i, end); n > 0 {
		neg = true
		i += n
	} else {
		i += m.plus.match(buf, i, end)
	}
	if i >= end {
		return i, false
	}
	var e int64
	for i < end {
		d, n := m.digits.at(buf, i, end)
		if n == 0 {
			return i, false
		}
		if e <= MaxExponent {
			e = e*10 + int64(d)
		}
		i += n
	}
	if e > MaxExponent {
		e = MaxExponent
		tok.ExpOverflow = true
	}
	if neg {
		e = -e
	}
	tok.Explicit = e
	return i, true
}

func (m *Matcher[T]) scanHex(buf []T, i, end int, tok *Token, intOnly bool) bool {
	var (
		mant              uint64
		nd                int
		exp               int64
		sawDot, sawDigits bool
		trunc             bool
	)
	tok.Kind = Hex
	tok.IntStart = i
	for i < end {
		if !sawDot && !intOnly {
			if n := m.decimal.match(buf, i, end); n > 0 {
				sawDot = true
				tok.IntEnd = i
				i += n
				tok.FracStart = i
				continue
			}
		}
		h := hexValue(buf[i])
		if h >= 16 {
			break
		}
		sawDigits = true
		switch {
		case h == 0 && nd == 0:
			if sawDot {
				exp -= 4
			}
		case nd < maxHexDigits:
			if nd == 0 {
				tok.First = i
			}
			mant = mant<<4 | uint64(h)
			nd++
			if sawDot {
				exp -= 4
			}
		default:
			if h != 0 {
				trunc = true
			}
			nd++
			if !sawDot {
				exp += 4
			}
		}
		i++
	}
	if !sawDigits {
		return false
	}
	if !sawDot {
		tok.IntEnd = i
		tok.FracStart = i
	}
	tok.FracEnd = i
	tok.Mantissa = mant
	tok.Digits = nd
	tok.ManyDigits = nd > maxHexDigits
	tok.Truncated = trunc
	if intOnly {
		return i == end
	}

	// The binary exponent is mandatory.
	if i >= end || buf[i]|0x20 != 'p' {
		return false
	}
	i, ok := m.exponent(buf, i+1, end, tok)
	if !ok {
		return false
	}
	tok.Exp = exp + tok.Explicit
	return i == end
}

func hexValue[T symbols.Unit](c T) uint32 {
	switch {
	case c >= '0' && c <= '9':
		return uint32(c - '0')
	case c >= 'a' && c <= 'f':
		return uint32(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return uint32(c-'A') + 10
	}
	return 16
}

const digitChars = "0123456789abcdef"

// Digits returns the significant digits of tok as ASCII (hex digits in
// lower case for Hex tokens), leading zeros removed. The result aliases buf
// when the digits form one contiguous ASCII byte run; otherwise it is built
// in s and stays valid until s is released.
func (m *Matcher[T]) Digits(buf []T, tok *Token, s *Scratch) []byte {
	if tok.First < 0 {
		return nil
	}
	if m.ascii && symbols.Width[T]() == 1 && !tok.Grouped {
		b := unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(buf))), len(buf))
		if tok.First >= tok.FracStart {
			return b[tok.First:tok.FracEnd:tok.FracEnd]
		}
		if tok.FracStart == tok.FracEnd {
			return b[tok.First:tok.IntEnd:tok.IntEnd]
		}
	}

	out := s.grow(tok.Digits)
	end := tok.FracEnd
	for i := tok.First; i < end; {
		var d uint32
		var n int
		if tok.Kind == Hex {
			if d = hexValue(buf[i]); d < 16 {
				n = 1
			}
		} else {
			d, n = m.digits.at(buf, i, end)
		}
		if n > 0 {
			out = append(out, digitChars[d])
			i += n
			continue
		}
		i += max(m.decimal.match(buf, i, end), m.group.match(buf, i, end), 1)
	}
	s.buf = out
	return out
}
