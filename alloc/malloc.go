package alloc

import (
	"fmt"

	"github.com/joshuapare/gomalloc/arena"
)

// Heap is a single allocator instance: the arena it grows against plus the
// two cursors (heapListp, freeListp) that describe all allocator state.
type Heap struct {
	arena     arena.Arena
	buf       []byte
	heapListp Ref // payload address of the prologue
	freeListp Ref // head of the free list; prologue when empty
}

// New initializes a fresh Heap over arena a. a must be empty (Hi() == Lo()
// == 0); New lays down the prologue and epilogue and performs the initial
// chunkSize extension.
func New(a arena.Arena) (*Heap, error) {
	h := &Heap{arena: a}

	base, err := a.Extend(initRequest)
	if err != nil {
		return nil, fmt.Errorf("alloc: init: %w", err)
	}
	h.buf = a.Bytes()

	prologueHdr := base + wordSize
	prologuePayload := prologueHdr + wordSize
	putWord(h.buf, prologueHdr, pack(prologueSize, true))
	setPrevLink(h.buf, prologuePayload, 0)
	setNextLink(h.buf, prologuePayload, 0)
	prologueFtr := ftrp(prologuePayload, prologueSize)
	putWord(h.buf, prologueFtr, pack(prologueSize, true))
	epilogueHdr := prologueFtr + wordSize
	putWord(h.buf, epilogueHdr, pack(0, true))

	h.heapListp = prologuePayload
	h.freeListp = prologuePayload

	if _, err := h.extendHeap(chunkSize); err != nil {
		return nil, fmt.Errorf("alloc: init: %w", err)
	}
	return h, nil
}

// adjustedSize computes the block size needed to satisfy a payload request
// of s bytes: the minimum block size for small requests, otherwise rounded
// up to a multiple of dwordSize after reserving header+footer space.
func adjustedSize(s int) uint64 {
	if s <= dwordSize {
		return 2 * dwordSize
	}
	n := uint64(s + dwordSize)
	return dwordSize * ((n + dwordSize - 1) / dwordSize)
}

// alignEven rounds n up to a multiple of dwordSize, preserving the
// double-word alignment every heap extension must maintain.
func alignEven(n int) int {
	if n%dwordSize == 0 {
		return n
	}
	return n + (dwordSize - n%dwordSize)
}

// extendHeap asks the arena for n more bytes, turns them into one new free
// block, stamps a fresh epilogue after it, and coalesces the new block
// with whatever free block preceded it. It returns the coalesced block's
// payload address.
func (h *Heap) extendHeap(n int) (Ref, error) {
	n = alignEven(n)

	base, err := h.arena.Extend(n)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrOutOfMemory, err)
	}
	h.buf = h.arena.Bytes()

	p := base
	writeTags(h.buf, p, uint64(n), false)
	newEpilogue := nextBlkp(h.buf, p)
	putWord(h.buf, hdrp(newEpilogue), pack(0, true))

	return h.coalesce(p), nil
}

// Alloc reserves at least size bytes and returns a Ref identifying the
// block plus a slice over its usable payload. A non-positive size returns
// the zero Ref and a nil slice without error, mirroring the "zero-size
// alloc returns null" rule; this is an observable outcome, not a failure.
func (h *Heap) Alloc(size int) (Ref, []byte, error) {
	if size <= 0 {
		return 0, nil, nil
	}

	asize := adjustedSize(size)

	if b := h.findFit(asize); b != 0 {
		h.place(b, asize)
		return b, h.Payload(b), nil
	}

	grow := int(asize)
	if grow < chunkSize {
		grow = chunkSize
	}
	b, err := h.extendHeap(grow)
	if err != nil {
		return 0, nil, fmt.Errorf("alloc: %w", err)
	}
	h.place(b, asize)
	return b, h.Payload(b), nil
}

// Free releases the block at ref. ref == 0 is a silent no-op. Freeing a ref
// that was not returned by a prior Alloc/Realloc on this Heap is undefined
// behavior, consistent with a malloc-compatible allocator's contract.
func (h *Heap) Free(ref Ref) {
	if ref == 0 {
		return
	}
	size := blockSize(h.buf, ref)
	writeTags(h.buf, ref, size, false)
	h.coalesce(ref)
}

// Realloc resizes the block at ref to hold size bytes, preferring an
// in-place grow into a free forward neighbor over a relocating copy.
//
//   - size < 0 is rejected with ErrInvalidSize.
//   - size == 0 frees ref and returns the zero Ref.
//   - ref == 0 behaves exactly like Alloc(size).
//   - shrinking (new size fits the existing block) returns ref unchanged;
//     no split is performed, trading internal fragmentation for avoiding
//     free-list churn.
func (h *Heap) Realloc(ref Ref, size int) (Ref, []byte, error) {
	if size < 0 {
		return 0, nil, ErrInvalidSize
	}
	if size == 0 {
		h.Free(ref)
		return 0, nil, nil
	}
	if ref == 0 {
		return h.Alloc(size)
	}

	asize := adjustedSize(size)
	old := blockSize(h.buf, ref)
	if asize <= old {
		return ref, h.Payload(ref), nil
	}

	next := nextBlkp(h.buf, ref)
	if !blockAlloc(h.buf, next) {
		combined := old + blockSize(h.buf, next)
		if combined >= asize {
			h.remove(next)
			writeTags(h.buf, ref, combined, true)
			return ref, h.Payload(ref), nil
		}
	}

	oldPayload := h.Payload(ref)
	newRef, newPayload, err := h.Alloc(size)
	if err != nil {
		return 0, nil, fmt.Errorf("alloc: realloc: %w", err)
	}

	// Copy only payload bytes, bounded by whichever side is smaller (see
	// DESIGN.md's resolution of the realloc copy-length question).
	n := len(oldPayload)
	if len(newPayload) < n {
		n = len(newPayload)
	}
	copy(newPayload, oldPayload[:n])

	h.Free(ref)
	return newRef, newPayload, nil
}

// Payload returns the usable byte slice for the block at ref: size-2W
// bytes starting at ref. The slice is only valid until the next call that
// may grow the arena (any Alloc or Realloc that triggers extendHeap),
// since the backing array can move.
func (h *Heap) Payload(ref Ref) []byte {
	size := blockSize(h.buf, ref)
	return h.buf[ref : ref+int(size)-dwordSize]
}
