// Package scratch provides reusable grow-only byte buffers for per-frame
// staging (single-threaded usage). Reset() every frame; capacity is kept
// across frames so steady-state produces no allocations.
package scratch

// Buffer is a reusable byte arena.
type Buffer struct {
	buf []byte
}

// New creates a buffer with the given initial capacity.
func New(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = 1024
	}
	return &Buffer{buf: make([]byte, 0, capacity)}
}

// Reset clears the length without freeing memory.
func (b *Buffer) Reset() { b.buf = b.buf[:0] }

// Len returns the current length.
func (b *Buffer) Len() int { return len(b.buf) }

// Cap returns the current capacity. Useful for tuning.
func (b *Buffer) Cap() int { return cap(b.buf) }

// Bytes returns the accumulated bytes. Valid until the next Reset/Append.
func (b *Buffer) Bytes() []byte { return b.buf }

// Append adds raw bytes, growing if needed.
func (b *Buffer) Append(p []byte) {
	b.Ensure(len(p))
	b.buf = append(b.buf, p...)
}

// AlignTo pads with zero bytes until the length is a multiple of n.
func (b *Buffer) AlignTo(n int) {
	rem := len(b.buf) % n
	if rem == 0 {
		return
	}
	pad := n - rem
	b.Ensure(pad)
	for i := 0; i < pad; i++ {
		b.buf = append(b.buf, 0)
	}
}

// GrowTo increases capacity (and copies current contents) if needed.
func (b *Buffer) GrowTo(minCapacity int) {
	if minCapacity <= cap(b.buf) {
		return
	}
	nb := make([]byte, len(b.buf), minCapacity)
	copy(nb, b.buf)
	b.buf = nb
}

// Ensure makes room for at least n more bytes (amortized doubling).
func (b *Buffer) Ensure(n int) {
	if len(b.buf)+n > cap(b.buf) {
		newCap := cap(b.buf) * 2
		if newCap < len(b.buf)+n {
			newCap = len(b.buf) + n
		}
		b.GrowTo(newCap)
	}
}
