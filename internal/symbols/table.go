package symbols

type entry[T Unit] struct {
	key T
	val uint8
}

// table is a chained hash table keyed by the raw unit value. The bucket
// count is a power of two.
type table[T Unit] struct {
	buckets [][]entry[T]
	mask    uint32
}

func newTable[T Unit](n int) table[T] {
	size := 1
	for size < n {
		size <<= 1
	}
	return table[T]{buckets: make([][]entry[T], size), mask: uint32(size - 1)}
}

func hashUnit[T Unit](v T) uint32 {
	h := uint32(v) * 0x9E3779B1
	return h ^ h>>16
}

func (t *table[T]) put(k T, v uint8) {
	b := &t.buckets[hashUnit(k)&t.mask]
	for i := range *b {
		if (*b)[i].key == k {
			(*b)[i].val = v
			return
		}
	}
	*b = append(*b, entry[T]{key: k, val: v})
}

func (t *table[T]) get(k T) (uint8, bool) {
	for _, e := range t.buckets[hashUnit(k)&t.mask] {
		if e.key == k {
			return e.val, true
		}
	}
	return 0, false
}
