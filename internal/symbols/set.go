package symbols

type setKind uint8

const (
	setNone setKind = iota
	setOne
	setFew
	setMap
)

// Set is a membership test over code units.
type Set[T Unit] struct {
	kind  setKind
	few   [4]T
	table table[T]
}

// NewSet returns the cheapest representation for items: nothing, a single
// comparison, an unrolled scan over up to four values, or a hash table.
func NewSet[T Unit](items []T) Set[T] {
	items = dedup(items)
	n := len(items)
	switch {
	case n == 0:
		return Set[T]{}
	case n == 1:
		return Set[T]{kind: setOne, few: [4]T{items[0], items[0], items[0], items[0]}}
	case n <= 4:
		s := Set[T]{kind: setFew}
		for i := range s.few {
			s.few[i] = items[min(i, n-1)]
		}
		return s
	}
	s := Set[T]{kind: setMap, table: newTable[T](n)}
	for _, v := range items {
		s.table.put(v, 0)
	}
	return s
}

// Contains reports whether v is in the set.
func (s *Set[T]) Contains(v T) bool {
	switch s.kind {
	case setOne:
		return v == s.few[0]
	case setFew:
		// All four lanes are compared so the cost does not depend on v.
		return b2u(v == s.few[0])|b2u(v == s.few[1])|b2u(v == s.few[2])|b2u(v == s.few[3]) != 0
	case setMap:
		_, ok := s.table.get(v)
		return ok
	}
	return false
}

// Empty reports whether the set has no members.
func (s *Set[T]) Empty() bool { return s.kind == setNone }

func b2u(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

func dedup[T comparable](items []T) []T {
	out := make([]T, 0, len(items))
	seen := make(map[T]struct{}, len(items))
	for _, v := range items {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
