package fastnum

import (
	"slices"

	"golang.org/x/text/unicode/norm"

	"github.com/biggeezerdevelopment/fastnum/internal/scanner"
)

// NumberFormatSymbols lists the symbols a Parser recognises. Every role may
// have several spellings; the roles are assumed not to overlap.
type NumberFormatSymbols struct {
	DecimalSeparator  []rune
	GroupingSeparator []rune
	MinusSign         []rune
	PlusSign          []rune
	ExponentSeparator []string
	Infinity          []string
	NaN               []string
	// Digits holds the digits zero to nine, in order.
	Digits []rune
}

// DefaultSymbols returns the ASCII symbols strconv accepts: digits 0-9,
// '.', 'e' or 'E', '+', '-', "Infinity" and "NaN", without grouping.
func DefaultSymbols() NumberFormatSymbols {
	return NumberFormatSymbols{
		DecimalSeparator:  []rune{'.'},
		MinusSign:         []rune{'-'},
		PlusSign:          []rune{'+'},
		ExponentSeparator: []string{"e", "E"},
		Infinity:          []string{"Infinity"},
		NaN:               []string{"NaN"},
		Digits:            []rune("0123456789"),
	}
}

// Validate reports ErrSymbols unless there are exactly ten distinct digits
// and no empty spelling.
func (s NumberFormatSymbols) Validate() error {
	if len(s.Digits) != 10 {
		return ErrSymbols
	}
	seen := make(map[rune]struct{}, 10)
	for _, d := range s.Digits {
		if _, ok := seen[d]; ok {
			return ErrSymbols
		}
		seen[d] = struct{}{}
	}
	for _, set := range [][]string{s.ExponentSeparator, s.Infinity, s.NaN} {
		if slices.Contains(set, "") {
			return ErrSymbols
		}
	}
	return nil
}

func (s NumberFormatSymbols) clone() NumberFormatSymbols {
	return NumberFormatSymbols{
		DecimalSeparator:  slices.Clone(s.DecimalSeparator),
		GroupingSeparator: slices.Clone(s.GroupingSeparator),
		MinusSign:         slices.Clone(s.MinusSign),
		PlusSign:          slices.Clone(s.PlusSign),
		ExponentSeparator: slices.Clone(s.ExponentSeparator),
		Infinity:          slices.Clone(s.Infinity),
		NaN:               slices.Clone(s.NaN),
		Digits:            slices.Clone(s.Digits),
	}
}

// normalize returns a copy with every spelling in NFC.
func (s NumberFormatSymbols) normalize() NumberFormatSymbols {
	c := s.clone()
	for _, set := range [][]string{c.ExponentSeparator, c.Infinity, c.NaN} {
		for i, v := range set {
			set[i] = norm.NFC.String(v)
		}
	}
	return c
}

func (s NumberFormatSymbols) config(ignoreCase bool) scanner.Config {
	return scanner.Config{
		Decimal:    s.DecimalSeparator,
		Grouping:   s.GroupingSeparator,
		Minus:      s.MinusSign,
		Plus:       s.PlusSign,
		Exponent:   s.ExponentSeparator,
		Infinity:   s.Infinity,
		NaN:        s.NaN,
		Digits:     s.Digits,
		IgnoreCase: ignoreCase,
	}
}
