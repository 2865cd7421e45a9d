package alloc

// BlockInfo is a snapshot of one block's boundary tags and, for free
// blocks, its free-list links. It exists purely for diagnostics: the
// heapview TUI walks a Heap's blocks through it instead of reaching into
// Heap's unexported fields.
type BlockInfo struct {
	Ref       Ref
	Size      uint64
	Allocated bool
	PrevLink  Ref // meaningful only when !Allocated
	NextLink  Ref // meaningful only when !Allocated
}

// Blocks returns every block in the heap in physical order, from the first
// block after the prologue up to but excluding the epilogue.
func (h *Heap) Blocks() []BlockInfo {
	var blocks []BlockInfo
	for p := nextBlkp(h.buf, h.heapListp); blockSize(h.buf, p) != 0; p = nextBlkp(h.buf, p) {
		info := BlockInfo{
			Ref:       p,
			Size:      blockSize(h.buf, p),
			Allocated: blockAlloc(h.buf, p),
		}
		if !info.Allocated {
			info.PrevLink = getPrevLink(h.buf, p)
			info.NextLink = getNextLink(h.buf, p)
		}
		blocks = append(blocks, info)
	}
	return blocks
}

// HeapBytes returns bytes [ref, ref+n) of the backing arena, clamped to the
// block's payload, for hex-dumping or copying a block's contents.
func (h *Heap) HeapBytes(ref Ref, n int) []byte {
	payload := h.Payload(ref)
	if n > len(payload) {
		n = len(payload)
	}
	return payload[:n]
}
