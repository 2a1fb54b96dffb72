package swar

import (
	"math/bits"

	"golang.org/x/sys/cpu"
)

// Enabled reports whether batched lanes pay off. On 32-bit targets the
// 64-bit multiplies are emulated and the scalar loops win.
var Enabled = bits.UintSize == 64

var nativeLittleEndian = !cpu.IsBigEndian
