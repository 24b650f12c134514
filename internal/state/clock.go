package state

import "sync/atomic"

// Sequence hands out increasing numbers for outgoing draw commands so a
// remote surface can apply them in order.
type Sequence struct {
	n uint64
}

// Next returns the next sequence number, starting at 1.
func (s *Sequence) Next() uint64 {
	return atomic.AddUint64(&s.n, 1)
}

// Current returns the last number handed out.
func (s *Sequence) Current() uint64 {
	return atomic.LoadUint64(&s.n)
}
