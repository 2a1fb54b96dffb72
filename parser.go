package fastnum

import (
	"context"
	"log/slog"
	"math"
	"math/big"

	"github.com/biggeezerdevelopment/fastnum/internal/bignum"
	"github.com/biggeezerdevelopment/fastnum/internal/parser"
	"github.com/biggeezerdevelopment/fastnum/internal/scanner"
	"github.com/biggeezerdevelopment/fastnum/internal/symbols"
)

// Parser converts literals written with one set of symbols. It is
// immutable and safe for concurrent use.
type Parser struct {
	symbols    NumberFormatSymbols
	ignoreCase bool
	logger     *slog.Logger
	assembly   bignum.Config

	m8  *scanner.Matcher[byte]
	m16 *scanner.Matcher[uint16]
	m32 *scanner.Matcher[rune]
}

// Option configures a Parser.
type Option func(*Parser)

// WithIgnoreCase makes exponent separators, infinity and NaN spellings
// and letter symbols match regardless of case.
func WithIgnoreCase(ignore bool) Option {
	return func(p *Parser) {
		p.ignoreCase = ignore
	}
}

// WithLogger sets the logger for debug records about slow conversions.
func WithLogger(l *slog.Logger) Option {
	return func(p *Parser) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithParallelThreshold sets the digit count below which the parallel
// functions stay on the calling goroutine.
func WithParallelThreshold(digits int) Option {
	return func(p *Parser) {
		p.assembly.ParallelThreshold = digits
	}
}

// WithMaxWorkers bounds the goroutines one parallel conversion may use.
func WithMaxWorkers(n int) Option {
	return func(p *Parser) {
		p.assembly.Workers = int64(n)
	}
}

// WithRecursionThreshold sets the digit count above which big values are
// assembled by divide and conquer.
func WithRecursionThreshold(digits int) Option {
	return func(p *Parser) {
		p.assembly.RecursionThreshold = digits
	}
}

// Default parses the ASCII syntax of DefaultSymbols.
var Default = func() *Parser {
	p, err := NewParser(DefaultSymbols())
	if err != nil {
		panic(err)
	}
	return p
}()

// NewParser returns a Parser for sym.
func NewParser(sym NumberFormatSymbols, opts ...Option) (*Parser, error) {
	if err := sym.Validate(); err != nil {
		return nil, err
	}
	p := &Parser{
		symbols: sym.normalize(),
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}

	cfg := p.symbols.config(p.ignoreCase)
	var err error
	if p.m8, err = scanner.New[byte](cfg); err != nil {
		return nil, ErrSymbols
	}
	if p.m16, err = scanner.New[uint16](cfg); err != nil {
		return nil, ErrSymbols
	}
	if p.m32, err = scanner.New[rune](cfg); err != nil {
		return nil, ErrSymbols
	}
	return p, nil
}

// Symbols returns the symbols p was built with.
func (p *Parser) Symbols() NumberFormatSymbols { return p.symbols.clone() }

func (p *Parser) debug(msg string, args ...any) {
	ctx := context.Background()
	if p.logger.Enabled(ctx, slog.LevelDebug) {
		p.logger.DebugContext(ctx, msg, args...)
	}
}

// span validates offset and length against n.
func span(n, offset, length int) error {
	if offset < 0 || length < 0 || offset > n || length > n-offset {
		return ErrBounds
	}
	if length > MaxInputLength {
		return ErrLimit
	}
	return nil
}

func (p *Parser) ParseFloat64(t Text) (float64, error) {
	return p.ParseFloat64Range(t, 0, t.Len())
}

func (p *Parser) ParseFloat64Range(t Text, offset, length int) (float64, error) {
	var f float64
	var err error
	switch t.w {
	case 2:
		f, err = float64Of(p, p.m16, t.u16, offset, length)
	case 4:
		f, err = float64Of(p, p.m32, t.u32, offset, length)
	default:
		f, err = float64Of(p, p.m8, t.u8, offset, length)
	}
	if err != nil {
		return 0, numError("ParseFloat64", t, offset, length, err)
	}
	return f, nil
}

func (p *Parser) ParseFloat32(t Text) (float32, error) {
	return p.ParseFloat32Range(t, 0, t.Len())
}

func (p *Parser) ParseFloat32Range(t Text, offset, length int) (float32, error) {
	var f float32
	var err error
	switch t.w {
	case 2:
		f, err = float32Of(p, p.m16, t.u16, offset, length)
	case 4:
		f, err = float32Of(p, p.m32, t.u32, offset, length)
	default:
		f, err = float32Of(p, p.m8, t.u8, offset, length)
	}
	if err != nil {
		return 0, numError("ParseFloat32", t, offset, length, err)
	}
	return f, nil
}

func (p *Parser) ParseBigInt(t Text) (*big.Int, error) {
	return p.ParseBigIntRange(t, 0, t.Len())
}

func (p *Parser) ParseBigIntRange(t Text, offset, length int) (*big.Int, error) {
	return p.bigInt("ParseBigInt", t, offset, length, false)
}

func (p *Parser) ParseBigIntParallel(t Text) (*big.Int, error) {
	return p.ParseBigIntParallelRange(t, 0, t.Len())
}

func (p *Parser) ParseBigIntParallelRange(t Text, offset, length int) (*big.Int, error) {
	return p.bigInt("ParseBigIntParallel", t, offset, length, true)
}

func (p *Parser) ParseBigDecimal(t Text) (Decimal, error) {
	return p.ParseBigDecimalRange(t, 0, t.Len())
}

func (p *Parser) ParseBigDecimalRange(t Text, offset, length int) (Decimal, error) {
	return p.bigDecimal("ParseBigDecimal", t, offset, length, false)
}

func (p *Parser) ParseBigDecimalParallel(t Text) (Decimal, error) {
	return p.ParseBigDecimalParallelRange(t, 0, t.Len())
}

func (p *Parser) ParseBigDecimalParallelRange(t Text, offset, length int) (Decimal, error) {
	return p.bigDecimal("ParseBigDecimalParallel", t, offset, length, true)
}

func (p *Parser) bigInt(fn string, t Text, offset, length int, parallel bool) (*big.Int, error) {
	var x *big.Int
	var err error
	switch t.w {
	case 2:
		x, err = bigIntOf(p, p.m16, t.u16, offset, length, parallel)
	case 4:
		x, err = bigIntOf(p, p.m32, t.u32, offset, length, parallel)
	default:
		x, err = bigIntOf(p, p.m8, t.u8, offset, length, parallel)
	}
	if err != nil {
		return nil, numError(fn, t, offset, length, err)
	}
	return x, nil
}

func (p *Parser) bigDecimal(fn string, t Text, offset, length int, parallel bool) (Decimal, error) {
	var d Decimal
	var err error
	switch t.w {
	case 2:
		d, err = decimalOf(p, p.m16, t.u16, offset, length, parallel)
	case 4:
		d, err = decimalOf(p, p.m32, t.u32, offset, length, parallel)
	default:
		d, err = decimalOf(p, p.m8, t.u8, offset, length, parallel)
	}
	if err != nil {
		return Decimal{}, numError(fn, t, offset, length, err)
	}
	return d, nil
}

func scan[T symbols.Unit](m *scanner.Matcher[T], buf []T, offset, length int, tok *scanner.Token, integer bool) error {
	if err := span(len(buf), offset, length); err != nil {
		return err
	}
	var ok bool
	if integer {
		ok = m.ScanInteger(buf, offset, offset+length, tok)
	} else {
		ok = m.Scan(buf, offset, offset+length, tok)
	}
	if !ok {
		return ErrSyntax
	}
	return nil
}

func float64Of[T symbols.Unit](p *Parser, m *scanner.Matcher[T], buf []T, offset, length int) (float64, error) {
	var tok scanner.Token
	if err := scan(m, buf, offset, length, &tok, false); err != nil {
		return 0, err
	}
	if f, ok := parser.Float64(&tok); ok {
		return f, nil
	}
	p.debug("exact float conversion", "target", "float64", "digits", tok.Digits)
	s := scanner.GetScratch()
	defer s.Release()
	return parser.Exact64(m.Digits(buf, &tok, s), tok.DigitsExp(), tok.Negative), nil
}

func float32Of[T symbols.Unit](p *Parser, m *scanner.Matcher[T], buf []T, offset, length int) (float32, error) {
	var tok scanner.Token
	if err := scan(m, buf, offset, length, &tok, false); err != nil {
		return 0, err
	}
	if f, ok := parser.Float32(&tok); ok {
		return f, nil
	}
	p.debug("exact float conversion", "target", "float32", "digits", tok.Digits)
	s := scanner.GetScratch()
	defer s.Release()
	return parser.Exact32(m.Digits(buf, &tok, s), tok.DigitsExp(), tok.Negative), nil
}

func bigIntOf[T symbols.Unit](p *Parser, m *scanner.Matcher[T], buf []T, offset, length int, parallel bool) (*big.Int, error) {
	var tok scanner.Token
	if err := scan(m, buf, offset, length, &tok, true); err != nil {
		return nil, err
	}
	if tok.Digits > MaxBigDigits {
		return nil, ErrLimit
	}

	var x *big.Int
	if !tok.ManyDigits {
		x = new(big.Int).SetUint64(tok.Mantissa)
	} else {
		s := scanner.GetScratch()
		defer s.Release()
		digits := m.Digits(buf, &tok, s)
		if tok.Kind == scanner.Hex {
			x = bignum.Hex(digits)
		} else {
			x = p.assemble(digits, parallel)
		}
	}
	if tok.Negative {
		x.Neg(x)
	}
	return x, nil
}

func decimalOf[T symbols.Unit](p *Parser, m *scanner.Matcher[T], buf []T, offset, length int, parallel bool) (Decimal, error) {
	var tok scanner.Token
	if err := scan(m, buf, offset, length, &tok, false); err != nil {
		return Decimal{}, err
	}
	if tok.Kind != scanner.Decimal {
		return Decimal{}, ErrSyntax
	}
	scale := int64(tok.FracLen) - tok.Explicit
	if tok.ExpOverflow || tok.Digits > MaxBigDigits || scale < math.MinInt32 || scale > math.MaxInt32 {
		return Decimal{}, ErrLimit
	}

	var x *big.Int
	if !tok.ManyDigits {
		x = new(big.Int).SetUint64(tok.Mantissa)
	} else {
		s := scanner.GetScratch()
		defer s.Release()
		x = p.assemble(m.Digits(buf, &tok, s), parallel)
	}
	if tok.Negative {
		x.Neg(x)
	}
	return Decimal{unscaled: x, scale: int32(scale)}, nil
}

func (p *Parser) assemble(digits []byte, parallel bool) *big.Int {
	if parallel && len(digits) > p.parallelThreshold() {
		p.debug("parallel big integer assembly",
			"digits", len(digits),
			"threshold", p.parallelThreshold(),
			"workers", p.assembly.Workers)
		return bignum.DecimalParallel(digits, p.assembly)
	}
	return bignum.Decimal(digits, p.assembly)
}

func (p *Parser) parallelThreshold() int {
	if p.assembly.ParallelThreshold > 0 {
		return p.assembly.ParallelThreshold
	}
	return bignum.DefaultParallelThreshold
}
