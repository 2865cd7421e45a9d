package alloc

import (
	"fmt"
	"io"
)

// Check walks the heap and the free list, cross-verifying every invariant
// from the data model against the other. It never panics and never aborts
// the heap; it is a debugging aid, reporting textual diagnostics to w and
// returning false if it found anything wrong. When verbose is true it also
// emits one line per block visited, in both passes.
func (h *Heap) Check(w io.Writer, verbose bool) bool {
	ok := true
	report := func(format string, args ...any) {
		ok = false
		fmt.Fprintf(w, format+"\n", args...)
	}

	inFreeList := make(map[Ref]bool)

	// Pass 1: walk the free list from head to the prologue sentinel.
	visited := make(map[Ref]bool)
	for b := h.freeListp; b != h.heapListp; b = getNextLink(h.buf, b) {
		if visited[b] {
			report("free list: cycle detected revisiting block %d", b)
			break
		}
		visited[b] = true

		if verbose {
			fmt.Fprintf(w, "free list: block %d size %d\n", b, blockSize(h.buf, b))
		}

		if blockAlloc(h.buf, b) {
			report("free list: block %d is marked allocated", b)
			continue
		}
		inFreeList[b] = true

		prev := prevBlkp(h.buf, b)
		next := nextBlkp(h.buf, b)
		if !blockAlloc(h.buf, prev) {
			report("block %d: backward neighbor %d is also free", b, prev)
		}
		if !blockAlloc(h.buf, next) {
			report("block %d: forward neighbor %d is also free", b, next)
		}

		prevLink := getPrevLink(h.buf, b)
		if prevLink != 0 && !h.withinBounds(prevLink) {
			report("block %d: prev_link %d out of heap bounds", b, prevLink)
		}
		nextLink := getNextLink(h.buf, b)
		if !h.withinBounds(nextLink) {
			report("block %d: next_link %d out of heap bounds", b, nextLink)
		} else if nextLink != h.heapListp && blockAlloc(h.buf, nextLink) {
			report("block %d: next_link %d does not point to a free block", b, nextLink)
		}
	}

	// Pass 2: walk the heap in physical order from the first real block to
	// the epilogue, checking per-block invariants and free-list membership.
	for p := nextBlkp(h.buf, h.heapListp); blockSize(h.buf, p) != 0; p = nextBlkp(h.buf, p) {
		size := blockSize(h.buf, p)
		allocated := blockAlloc(h.buf, p)

		if verbose {
			if allocated {
				fmt.Fprintf(w, "heap: block %d size %d alloc=%t\n", p, size, allocated)
			} else {
				fmt.Fprintf(w, "heap: block %d size %d alloc=%t prev=%d next=%d\n",
					p, size, allocated, getPrevLink(h.buf, p), getNextLink(h.buf, p))
			}
		}

		if p%dwordSize != 0 {
			report("block %d: payload address not %d-aligned", p, dwordSize)
		}

		hdr := getWord(h.buf, hdrp(p))
		ftr := getWord(h.buf, ftrp(p, size))
		if hdr != ftr {
			report("block %d: header (%x) != footer (%x)", p, hdr, ftr)
		}

		if !allocated && !inFreeList[p] {
			report("block %d: free but absent from the free list", p)
		}
	}

	return ok
}

func (h *Heap) withinBounds(ref Ref) bool {
	return ref >= h.heapListp && ref < h.arena.Hi()
}
