// Package arena provides the growable byte region that backs an allocator
// heap. It plays the role of the sbrk-like primitive the allocator consumes:
// a contiguous region that only ever grows, starting at offset zero.
package arena

import "errors"

// ErrLimitExceeded is returned by Extend when growing the arena would push
// it past a configured maximum size.
var ErrLimitExceeded = errors.New("arena: limit exceeded")

// Arena is the heap primitive an allocator grows against. Offsets are byte
// offsets from the start of the arena; Lo is always 0.
type Arena interface {
	// Extend grows the arena by n bytes and returns the offset at which the
	// new region begins (the arena's Hi before the call). The region
	// [offset, offset+n) is guaranteed addressable via Bytes after Extend
	// returns without error.
	Extend(n int) (offset int, err error)

	// Lo returns the first valid offset, always 0 for a non-empty arena.
	Lo() int

	// Hi returns one past the last valid offset.
	Hi() int

	// Bytes returns a view over the entire committed region [Lo, Hi). The
	// slice is only valid until the next call to Extend, which may grow the
	// backing storage and invalidate previously returned slices.
	Bytes() []byte
}

// SliceArena is a portable Arena backed by a plain Go byte slice. It has no
// size limit; Extend fails only for a negative n.
type SliceArena struct {
	buf []byte
}

// NewSlice returns an empty SliceArena.
func NewSlice() *SliceArena {
	return &SliceArena{}
}

func (a *SliceArena) Extend(n int) (int, error) {
	if n < 0 {
		return 0, errors.New("arena: negative extend")
	}
	offset := len(a.buf)
	a.buf = append(a.buf, make([]byte, n)...)
	return offset, nil
}

func (a *SliceArena) Lo() int { return 0 }

func (a *SliceArena) Hi() int { return len(a.buf) }

func (a *SliceArena) Bytes() []byte { return a.buf }
