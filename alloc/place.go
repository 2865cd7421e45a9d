package alloc

// place carves an allocated block of size asize out of the free block at p,
// which must have size >= asize. If enough is left over to form a minimum
// block, the remainder is turned into its own free block and coalesced
// with whatever follows it; otherwise the whole block is consumed.
//
// The allocated tags are written before p is removed from the free list.
// Once p becomes allocated, the caller is free to overwrite its old
// prev_link/next_link slots with payload data, so remove must read them
// first.
func (h *Heap) place(p Ref, asize uint64) {
	buf := h.buf
	csize := blockSize(buf, p)

	if csize-asize >= minBlockSize {
		writeTags(buf, p, asize, true)
		h.remove(p)

		rem := nextBlkp(buf, p)
		writeTags(buf, rem, csize-asize, false)
		h.coalesce(rem)
		return
	}

	writeTags(buf, p, csize, true)
	h.remove(p)
}
