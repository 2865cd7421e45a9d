package alloc

// insert splices a free block onto the head of the free list, LIFO. The
// prologue is always present as the list's tail sentinel, so next.prev is
// unconditionally valid to write even when the list was previously empty
// (in which case next is the prologue itself).
func (h *Heap) insert(p Ref) {
	buf := h.buf
	setNextLink(buf, p, h.freeListp)
	setPrevLink(buf, h.freeListp, p)
	setPrevLink(buf, p, 0)
	h.freeListp = p
}

// remove splices a free block out of the free list. It never branches on
// whether p is the list's only non-sentinel member: the prologue carries
// real link words, so writing next.prev is always well-defined.
func (h *Heap) remove(p Ref) {
	buf := h.buf
	prev := getPrevLink(buf, p)
	next := getNextLink(buf, p)
	if prev == 0 {
		h.freeListp = next
	} else {
		setNextLink(buf, prev, next)
	}
	setPrevLink(buf, next, prev)
}

// findFit walks the free list head-to-tail and returns the first block
// whose size is at least asize, or 0 if none fits. The walk terminates at
// the prologue, whose allocation bit is always set.
func (h *Heap) findFit(asize uint64) Ref {
	buf := h.buf
	for b := h.freeListp; !blockAlloc(buf, b); b = getNextLink(buf, b) {
		if blockSize(buf, b) >= asize {
			return b
		}
	}
	return 0
}
