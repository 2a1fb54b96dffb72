package symbols

import "slices"

type trieKind uint8

const (
	trieNone trieKind = iota
	trieOneChar
	trieOneString
	trieMany
)

type node[T Unit] struct {
	keys     []T
	children []*node[T]
	end      bool
}

func (n *node[T]) child(k T) *node[T] {
	for i, c := range n.keys {
		if c == k {
			return n.children[i]
		}
	}
	return nil
}

func (n *node[T]) insert(word []T) {
	n.walk(word).end = true
}

// Trie finds the longest known string at a position.
type Trie[T Unit] struct {
	kind trieKind
	one  []T
	root *node[T]
}

// NewTrie builds a trie over words. With ignoreCase, every character of a
// word may be written in any of its case variants: the variants are extra
// edges from the same parent that converge on the same child, so mixed
// spellings such as "iNfInItY" match. Whole-word spellings whose case
// mapping changes the length, such as "STRASSE" for "straße", are inserted
// as separate paths.
func NewTrie[T Unit](words []string, ignoreCase bool) Trie[T] {
	words = dedup(slices.DeleteFunc(slices.Clone(words), func(w string) bool { return w == "" }))
	if ignoreCase && len(words) > 0 {
		root := &node[T]{}
		for _, w := range words {
			root.insertFolded(w)
		}
		for _, w := range FoldStrings(words) {
			root.insert(Encode[T](w))
		}
		return Trie[T]{kind: trieMany, root: root}
	}

	encoded := make([][]T, 0, len(words))
	for _, w := range words {
		encoded = append(encoded, Encode[T](w))
	}
	switch len(encoded) {
	case 0:
		return Trie[T]{}
	case 1:
		if len(encoded[0]) == 1 {
			return Trie[T]{kind: trieOneChar, one: encoded[0]}
		}
		return Trie[T]{kind: trieOneString, one: encoded[0]}
	}
	root := &node[T]{}
	for _, w := range encoded {
		root.insert(w)
	}
	return Trie[T]{kind: trieMany, root: root}
}

// insertFolded adds word one character at a time. All case variants of a
// character lead from the current node to one shared node. A variant whose
// last unit already leads elsewhere keeps its existing edge.
func (n *node[T]) insertFolded(word string) {
	cur := n
	for _, r := range word {
		variants := make([][]T, 0, 4)
		for _, v := range FoldRunes([]rune{r}) {
			variants = append(variants, Encode[T](string(v)))
		}

		var next *node[T]
		for _, enc := range variants {
			if c := cur.walk(enc[:len(enc)-1]).child(enc[len(enc)-1]); c != nil && next == nil {
				next = c
			}
		}
		if next == nil {
			next = &node[T]{}
		}
		for _, enc := range variants {
			parent := cur.walk(enc[:len(enc)-1])
			if k := enc[len(enc)-1]; parent.child(k) == nil {
				parent.keys = append(parent.keys, k)
				parent.children = append(parent.children, next)
			}
		}
		cur = next
	}
	cur.end = true
}

// walk follows prefix from n, creating missing nodes.
func (n *node[T]) walk(prefix []T) *node[T] {
	cur := n
	for _, k := range prefix {
		next := cur.child(k)
		if next == nil {
			next = &node[T]{}
			cur.keys = append(cur.keys, k)
			cur.children = append(cur.children, next)
		}
		cur = next
	}
	return cur
}

// Match returns the length of the longest known string that starts at
// buf[start] and ends at or before end, or 0.
func (t *Trie[T]) Match(buf []T, start, end int) int {
	switch t.kind {
	case trieOneChar:
		if start < end && buf[start] == t.one[0] {
			return 1
		}
	case trieOneString:
		n := len(t.one)
		if end-start < n {
			return 0
		}
		for i, c := range t.one {
			if buf[start+i] != c {
				return 0
			}
		}
		return n
	case trieMany:
		longest := 0
		n := t.root
		for i := start; i < end; i++ {
			if n = n.child(buf[i]); n == nil {
				break
			}
			if n.end {
				longest = i + 1 - start
			}
		}
		return longest
	}
	return 0
}

// Empty reports whether the trie holds no strings.
func (t *Trie[T]) Empty() bool { return t.kind == trieNone }
