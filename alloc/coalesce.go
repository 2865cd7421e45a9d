package alloc

// coalesce merges the block at p with any free physical neighbors and
// inserts the (possibly widened, possibly relocated) result into the free
// list. It returns the payload address of the merged block.
//
// Free neighbors are always removed from the list before their size is
// widened: once a neighbor's header changes, its old header/footer
// positions no longer describe real boundaries, and removing it afterward
// would read and corrupt link words belonging to whatever block now
// occupies that span. Widening itself writes the header before the footer,
// since the footer's address depends on the new size already being in the
// header.
func (h *Heap) coalesce(p Ref) Ref {
	buf := h.buf

	prev := prevBlkp(buf, p)
	next := nextBlkp(buf, p)
	prevAlloc := blockAlloc(buf, prev)
	nextAlloc := blockAlloc(buf, next)
	size := blockSize(buf, p)

	switch {
	case prevAlloc && nextAlloc:
		// no neighbor is free

	case prevAlloc && !nextAlloc:
		h.remove(next)
		size += blockSize(buf, next)
		writeTags(buf, p, size, false)

	case !prevAlloc && nextAlloc:
		h.remove(prev)
		size += blockSize(buf, prev)
		writeTags(buf, prev, size, false)
		p = prev

	default:
		h.remove(prev)
		h.remove(next)
		size += blockSize(buf, prev) + blockSize(buf, next)
		writeTags(buf, prev, size, false)
		p = prev
	}

	h.insert(p)
	return p
}
