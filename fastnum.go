// Package fastnum converts numeric literals to float32, float64, big.Int and
// Decimal values. Results are correctly rounded, identical to strconv for
// the ASCII syntax, and most literals never touch arbitrary-precision
// arithmetic.
//
// Inputs may be UTF-8 (string or []byte), UTF-16 ([]uint16) or code points
// ([]rune). The package-level functions use the ASCII symbols of Default;
// NewParser builds a parser for other symbol sets, see SymbolsForTag.
package fastnum

import (
	"errors"
	"math"
	"math/big"
	"reflect"
	"strconv"
	"unicode/utf16"
	"unsafe"

	"github.com/biggeezerdevelopment/fastnum/internal/scanner"
)

const (
	// MaxInputLength is the longest span any function accepts.
	MaxInputLength = math.MaxInt32 - 4

	// MaxBigDigits is the most significant digits a big.Int or Decimal
	// result may have.
	MaxBigDigits = 646_456_993

	// MaxExponentNumber bounds the magnitude of a written exponent. Floats
	// saturate beyond it; Decimal results fail with ErrLimit.
	MaxExponentNumber = scanner.MaxExponent
)

var (
	ErrBounds  = errors.New("offset or length out of range")
	ErrSyntax  = errors.New("invalid syntax")
	ErrLimit   = errors.New("value exceeds limits")
	ErrSymbols = errors.New("invalid number format symbols")
)

// A NumError records a failed conversion.
type NumError struct {
	Func string // the failing function (ParseFloat64, ParseBigInt, ...)
	Num  string // the input, cut to 64 bytes
	Err  error  // ErrBounds, ErrSyntax or ErrLimit
}

func (e *NumError) Error() string {
	return "fastnum." + e.Func + ": parsing " + strconv.Quote(e.Num) + ": " + e.Err.Error()
}

func (e *NumError) Unwrap() error { return e.Err }

const maxErrorNum = 64

func numError(fn string, t Text, offset, length int, err error) *NumError {
	if err == ErrBounds {
		offset, length = 0, t.Len()
	}
	return &NumError{Func: fn, Num: t.excerpt(offset, length), Err: err}
}

// Input is the set of accepted text representations.
type Input interface {
	~string | ~[]byte | ~[]uint16 | ~[]rune
}

// Text is an input of any accepted representation.
type Text struct {
	u8  []byte
	u16 []uint16
	u32 []rune
	w   uint8
}

// TextOf wraps s without copying it. Text built from a string must not be
// used to modify the string's bytes; nothing in this package does.
func TextOf[S Input](s S) Text {
	switch v := any(s).(type) {
	case string:
		return Text{u8: unsafe.Slice(unsafe.StringData(v), len(v)), w: 1}
	case []byte:
		return Text{u8: v, w: 1}
	case []uint16:
		return Text{u16: v, w: 2}
	case []rune:
		return Text{u32: v, w: 4}
	}
	// Named types.
	rv := reflect.ValueOf(s)
	switch {
	case rv.Kind() == reflect.String:
		v := rv.String()
		return Text{u8: unsafe.Slice(unsafe.StringData(v), len(v)), w: 1}
	case rv.Type().Elem().Kind() == reflect.Uint8:
		return Text{u8: rv.Bytes(), w: 1}
	case rv.Type().Elem().Kind() == reflect.Uint16:
		return Text{u16: rv.Convert(reflect.TypeFor[[]uint16]()).Interface().([]uint16), w: 2}
	default:
		return Text{u32: rv.Convert(reflect.TypeFor[[]rune]()).Interface().([]rune), w: 4}
	}
}

// Len returns the length of t in units of its representation.
func (t Text) Len() int {
	switch t.w {
	case 2:
		return len(t.u16)
	case 4:
		return len(t.u32)
	}
	return len(t.u8)
}

func (t Text) excerpt(offset, length int) string {
	var s string
	switch t.w {
	case 2:
		s = string(utf16.Decode(t.u16[offset : offset+min(length, maxErrorNum)]))
	case 4:
		s = string(t.u32[offset : offset+min(length, maxErrorNum)])
	default:
		s = string(t.u8[offset : offset+min(length, maxErrorNum)])
	}
	if len(s) > maxErrorNum {
		s = s[:maxErrorNum]
	}
	return s
}

// ParseFloat64 converts s to the nearest float64.
func ParseFloat64[S Input](s S) (float64, error) {
	return Default.ParseFloat64(TextOf(s))
}

// ParseFloat64Range converts s[offset:offset+length] to the nearest float64.
func ParseFloat64Range[S Input](s S, offset, length int) (float64, error) {
	return Default.ParseFloat64Range(TextOf(s), offset, length)
}

// ParseFloat32 converts s to the nearest float32.
func ParseFloat32[S Input](s S) (float32, error) {
	return Default.ParseFloat32(TextOf(s))
}

// ParseFloat32Range converts s[offset:offset+length] to the nearest float32.
func ParseFloat32Range[S Input](s S, offset, length int) (float32, error) {
	return Default.ParseFloat32Range(TextOf(s), offset, length)
}

// ParseBigInt converts a decimal or 0x-prefixed hex integer literal.
func ParseBigInt[S Input](s S) (*big.Int, error) {
	return Default.ParseBigInt(TextOf(s))
}

func ParseBigIntRange[S Input](s S, offset, length int) (*big.Int, error) {
	return Default.ParseBigIntRange(TextOf(s), offset, length)
}

// ParseBigIntParallel is ParseBigInt assembling very long literals on
// several goroutines.
func ParseBigIntParallel[S Input](s S) (*big.Int, error) {
	return Default.ParseBigIntParallel(TextOf(s))
}

func ParseBigIntParallelRange[S Input](s S, offset, length int) (*big.Int, error) {
	return Default.ParseBigIntParallelRange(TextOf(s), offset, length)
}

// ParseBigDecimal converts a decimal literal exactly.
func ParseBigDecimal[S Input](s S) (Decimal, error) {
	return Default.ParseBigDecimal(TextOf(s))
}

func ParseBigDecimalRange[S Input](s S, offset, length int) (Decimal, error) {
	return Default.ParseBigDecimalRange(TextOf(s), offset, length)
}

func ParseBigDecimalParallel[S Input](s S) (Decimal, error) {
	return Default.ParseBigDecimalParallel(TextOf(s))
}

func ParseBigDecimalParallelRange[S Input](s S, offset, length int) (Decimal, error) {
	return Default.ParseBigDecimalParallelRange(TextOf(s), offset, length)
}
