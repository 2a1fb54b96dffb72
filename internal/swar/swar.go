// Package swar batch-tests and batch-converts runs of ASCII digits packed
// into a single 64-bit word: eight byte lanes for UTF-8 input, four 16-bit
// lanes for UTF-16 input. Lane 0 (the low bits) always holds the first
// character, so the first character is the most significant digit.
package swar

import (
	"encoding/binary"
	"unsafe"
)

const (
	zeros8    = 0x3030303030303030
	zeros4x16 = 0x0030003000300030
	high8     = 0x8080808080808080
)

// Load8 returns b[i:i+8] as a word with b[i] in the low byte.
func Load8(b []byte, i int) uint64 {
	return binary.LittleEndian.Uint64(b[i : i+8])
}

// Load4x16 returns u[i:i+4] as a word with u[i] in the low lane.
func Load4x16(u []uint16, i int) uint64 {
	_ = u[i+3]
	if nativeLittleEndian {
		return binary.LittleEndian.Uint64(unsafe.Slice((*byte)(unsafe.Pointer(&u[i])), 8))
	}
	return uint64(u[i]) | uint64(u[i+1])<<16 | uint64(u[i+2])<<32 | uint64(u[i+3])<<48
}

// EightDigits reports whether every byte lane of v is an ASCII digit and
// returns the eight digits as a number.
func EightDigits(v uint64) (uint32, bool) {
	d := v - zeros8
	if ((v+0x4646464646464646)|d)&high8 != 0 {
		return 0, false
	}
	d = d*10 + d>>8
	d = ((d&0x000000FF000000FF)*(100+1000000<<32) + (d>>16&0x000000FF000000FF)*(1+10000<<32)) >> 32
	return uint32(d), true
}

// FourDigitsUTF16 is EightDigits for four 16-bit lanes.
func FourDigitsUTF16(v uint64) (uint32, bool) {
	d := v - zeros4x16
	if ((v+0x0046004600460046)|d)&0xFF80FF80FF80FF80 != 0 {
		return 0, false
	}
	d = d*10 + d>>16
	return uint32(d&0xFFFF)*100 + uint32(d>>32&0xFFFF), true
}

// EightHexDigits reports whether every byte lane of v is a hex digit, in
// either case, and returns the 32-bit value they spell.
func EightHexDigits(v uint64) (uint32, bool) {
	if v&high8 != 0 {
		return 0, false
	}
	f := v | 0x2020202020202020
	digit := (v + 0x5050505050505050) &^ (v + 0x4646464646464646) & high8
	alpha := (f + 0x1F1F1F1F1F1F1F1F) &^ (f + 0x1919191919191919) & high8
	if digit|alpha != high8 {
		return 0, false
	}
	n := v&0x0F0F0F0F0F0F0F0F + (alpha>>7)*9
	t := (n&0x000F000F000F000F)<<4 | (n&0x0F000F000F000F00)>>8
	u := (t&0x000000FF000000FF)<<8 | t>>16&0x000000FF000000FF
	return uint32(u&0xFFFF)<<16 | uint32(u>>32&0xFFFF), true
}

// EightZeros reports whether all byte lanes of v are '0'.
func EightZeros(v uint64) bool { return v == zeros8 }

// FourZerosUTF16 reports whether all 16-bit lanes of v are '0'.
func FourZerosUTF16(v uint64) bool { return v == zeros4x16 }

// SkipZeros returns the index of the first byte in b[i:end] that is not '0',
// or end.
func SkipZeros(b []byte, i, end int) int {
	if Enabled {
		for i+8 <= end && EightZeros(Load8(b, i)) {
			i += 8
		}
	}
	for i < end && b[i] == '0' {
		i++
	}
	return i
}

// SkipZerosUTF16 is SkipZeros for UTF-16 code units.
func SkipZerosUTF16(u []uint16, i, end int) int {
	if Enabled {
		for i+4 <= end && FourZerosUTF16(Load4x16(u, i)) {
			i += 4
		}
	}
	for i < end && u[i] == '0' {
		i++
	}
	return i
}

// AllZeros reports whether b consists only of '0' bytes.
func AllZeros(b []byte) bool {
	return SkipZeros(b, 0, len(b)) == len(b)
}

// ParseDigits returns the value of the ASCII digit run b, which must hold at
// most 19 digits.
func ParseDigits(b []byte) uint64 {
	var v uint64
	i := 0
	if Enabled {
		for ; i+8 <= len(b); i += 8 {
			d, _ := EightDigits(Load8(b, i))
			v = v*100000000 + uint64(d)
		}
	}
	for ; i < len(b); i++ {
		v = v*10 + uint64(b[i]-'0')
	}
	return v
}
