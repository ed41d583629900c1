// Package ring implements a small fixed-capacity ring buffer used to track
// a bounded amount of recent history, such as Brotli's four most-recent
// distances.
package ring

// Buffer is a fixed-capacity ring buffer of ints. The zero value is not
// usable; construct one with New.
type Buffer struct {
	data []int
	pos  int // Index of the most recently pushed element
}

// New returns a Buffer seeded with the given values, oldest first. seed[0]
// ends up at PeekBack(len(seed)-1) and seed[len(seed)-1] at PeekBack(0).
func New(seed ...int) *Buffer {
	b := &Buffer{data: make([]int, len(seed))}
	copy(b.data, seed)
	b.pos = len(seed) - 1
	return b
}

// PushOverwriting inserts v as the most recent element, overwriting the
// oldest element in the buffer.
func (b *Buffer) PushOverwriting(v int) {
	b.pos = (b.pos + 1) % len(b.data)
	b.data[b.pos] = v
}

// PeekBack returns the i-th most recent element; i=0 is the most recent.
func (b *Buffer) PeekBack(i int) int {
	n := len(b.data)
	idx := ((b.pos-i)%n + n) % n
	return b.data[idx]
}
