// Package parser turns scanned literals into float32 and float64 values.
//
// Conversion runs in tiers. Clinger's fast path handles short significands
// with small exponents exactly; the Eisel-Lemire algorithm handles almost
// everything else with a 128-bit product; the rare literal whose rounding
// neither can decide goes through exact big-integer arithmetic.
package parser

import (
	"math"

	"github.com/biggeezerdevelopment/fastnum/internal/scanner"
)

const maxMantDigits = 19

// Float64 converts tok using the fast tiers. It reports false when the
// exact tier must decide; call Exact64 with the token's digits then.
func Float64(tok *scanner.Token) (float64, bool) {
	if b, ok := float64info.direct(tok); ok {
		return math.Float64frombits(b), true
	}
	if !tok.ManyDigits {
		if f, ok := fast64(tok.Mantissa, tok.Exp, tok.Negative); ok {
			return f, true
		}
	}
	if b, ok := float64info.extended(tok); ok {
		return math.Float64frombits(b), true
	}
	return 0, false
}

// Float32 is Float64 for float32 results.
func Float32(tok *scanner.Token) (float32, bool) {
	if b, ok := float32info.direct(tok); ok {
		return math.Float32frombits(uint32(b)), true
	}
	if !tok.ManyDigits {
		if f, ok := fast32(tok.Mantissa, tok.Exp, tok.Negative); ok {
			return f, true
		}
	}
	if b, ok := float32info.extended(tok); ok {
		return math.Float32frombits(uint32(b)), true
	}
	return 0, false
}

// Exact64 returns the float64 nearest to digits × 10^exp10, where digits
// is an ASCII decimal run without leading zeros.
func Exact64(digits []byte, exp10 int64, neg bool) float64 {
	return math.Float64frombits(float64info.exact(digits, exp10, neg))
}

// Exact32 is Exact64 for float32 results.
func Exact32(digits []byte, exp10 int64, neg bool) float32 {
	return math.Float32frombits(uint32(float32info.exact(digits, exp10, neg)))
}

// direct decides tokens that need no decimal arithmetic: specials, hex
// literals, zeros and values far outside the finite range.
func (f *format) direct(tok *scanner.Token) (uint64, bool) {
	switch tok.Kind {
	case scanner.Infinity:
		return f.inf(tok.Negative), true
	case scanner.NaN:
		return f.nan(), true
	case scanner.Hex:
		return f.round(tok.Mantissa, tok.Exp, tok.Truncated, tok.Negative), true
	}
	if tok.Mantissa == 0 {
		return f.zero(tok.Negative), true
	}
	lead := tok.Exp + int64(min(tok.Digits, maxMantDigits)) - 1
	switch {
	case lead > f.maxLead:
		return f.inf(tok.Negative), true
	case lead < f.minLead:
		return f.zero(tok.Negative), true
	}
	return 0, false
}

// extended runs Eisel-Lemire on the leading digits. When non-zero digits
// were dropped the value lies strictly between Mantissa and Mantissa+1
// units, and the result stands only if both ends round the same way.
func (f *format) extended(tok *scanner.Token) (uint64, bool) {
	b, ok := f.lemire(tok.Mantissa, tok.Exp, tok.Negative)
	if !ok || !tok.Truncated {
		return b, ok
	}
	up, ok := f.lemire(tok.Mantissa+1, tok.Exp, tok.Negative)
	return b, ok && up == b
}
