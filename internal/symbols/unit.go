// Package symbols provides the small membership and longest-prefix
// structures the literal scanner uses to recognise locale symbols. Each
// structure is a closed set of representations chosen at construction by
// cardinality, and is generic over the code unit of the scanned text.
package symbols

import (
	"unicode/utf16"
	"unicode/utf8"
	"unsafe"
)

// Unit is a code unit of scanned text: a UTF-8 byte, a UTF-16 code unit or a
// whole code point.
type Unit interface {
	~uint8 | ~uint16 | ~int32
}

// Width returns the size in bytes of T.
func Width[T Unit]() uintptr {
	var zero T
	return unsafe.Sizeof(zero)
}

// Encode returns s in the encoding implied by T.
func Encode[T Unit](s string) []T {
	switch Width[T]() {
	case 1:
		out := make([]T, len(s))
		for i := 0; i < len(s); i++ {
			out[i] = T(s[i])
		}
		return out
	case 2:
		u := utf16.Encode([]rune(s))
		out := make([]T, len(u))
		for i, c := range u {
			out[i] = T(c)
		}
		return out
	default:
		out := make([]T, 0, len(s))
		for _, r := range s {
			out = append(out, T(r))
		}
		return out
	}
}

// DecodeRune decodes the code point starting at buf[i], returning it and the
// number of units it occupies. Invalid sequences yield utf8.RuneError with
// width 1.
func DecodeRune[T Unit](buf []T, i, end int) (rune, int) {
	switch Width[T]() {
	case 1:
		var tmp [utf8.UTFMax]byte
		n := 0
		for ; n < utf8.UTFMax && i+n < end; n++ {
			tmp[n] = byte(buf[i+n])
		}
		return utf8.DecodeRune(tmp[:n])
	case 2:
		r := rune(buf[i])
		if utf16.IsSurrogate(r) && i+1 < end {
			if d := utf16.DecodeRune(r, rune(buf[i+1])); d != utf8.RuneError {
				return d, 2
			}
		}
		if utf16.IsSurrogate(r) {
			return utf8.RuneError, 1
		}
		return r, 1
	default:
		return rune(buf[i]), 1
	}
}
