package scanner

import "sync"

// Scratch holds digits copied out of non-ASCII or grouped input.
type Scratch struct {
	buf []byte
}

var scratchPool = sync.Pool{
	New: func() interface{} {
		return &Scratch{buf: make([]byte, 0, 64)}
	},
}

func GetScratch() *Scratch {
	return scratchPool.Get().(*Scratch)
}

func (s *Scratch) Release() {
	if cap(s.buf) > 1<<16 { // Don't pool very large buffers
		return
	}
	s.buf = s.buf[:0]
	scratchPool.Put(s)
}

func (s *Scratch) grow(n int) []byte {
	if cap(s.buf) < n {
		s.buf = make([]byte, 0, n)
	}
	return s.buf[:0]
}
