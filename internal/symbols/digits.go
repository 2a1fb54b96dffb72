package symbols

// NotDigit is returned by DigitSet.ToDigit for units outside the alphabet.
// Any value >= 10 means "not a digit"; NotDigit is the canonical one.
const NotDigit = 10

// DigitSet maps the ten digit units of an alphabet to their values.
type DigitSet[T Unit] struct {
	consecutive bool
	zero        T
	table       table[T]
}

// NewDigitSet builds a DigitSet from ten digits ordered by value. It reports
// false when there are not exactly ten digits or a digit does not fit in a
// single unit of T.
func NewDigitSet[T Unit](digits []rune) (DigitSet[T], bool) {
	if len(digits) != 10 {
		return DigitSet[T]{}, false
	}
	units := make([]T, 10)
	for i, r := range digits {
		enc := Encode[T](string(r))
		if len(enc) != 1 {
			return DigitSet[T]{}, false
		}
		units[i] = enc[0]
	}
	consecutive := true
	for i := 1; i < 10; i++ {
		if uint32(units[i]) != uint32(units[0])+uint32(i) {
			consecutive = false
			break
		}
	}
	if consecutive {
		return DigitSet[T]{consecutive: true, zero: units[0]}, true
	}
	d := DigitSet[T]{table: newTable[T](10)}
	for i, u := range units {
		d.table.put(u, uint8(i))
	}
	return d, true
}

// ToDigit returns the value of v, or a value >= 10 when v is not a digit.
func (d *DigitSet[T]) ToDigit(v T) uint32 {
	if d.consecutive {
		return uint32(v) - uint32(d.zero)
	}
	if val, ok := d.table.get(v); ok {
		return uint32(val)
	}
	return NotDigit
}

// ASCII reports whether the alphabet is '0'..'9'.
func (d *DigitSet[T]) ASCII() bool {
	return d.consecutive && uint32(d.zero) == '0'
}
