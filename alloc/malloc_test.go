package alloc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/gomalloc/arena"
)

func newTestHeap(t *testing.T) *Heap {
	t.Helper()
	h, err := New(arena.NewSlice())
	require.NoError(t, err)
	return h
}

func assertConsistent(t *testing.T, h *Heap) {
	t.Helper()
	var sb strings.Builder
	ok := h.Check(&sb, false)
	require.True(t, ok, "heap inconsistent:\n%s", sb.String())
}

// S1: init produces a single free block, and a small alloc lands right
// after the prologue with the minimum block size.
func TestInitAndFirstAlloc(t *testing.T) {
	h := newTestHeap(t)
	assertConsistent(t, h)

	ref, payload, err := h.Alloc(1)
	require.NoError(t, err)
	require.NotZero(t, ref)
	require.Len(t, payload, dwordSize) // minimum block's usable payload = 2D - 2W = D

	assertConsistent(t, h)
}

// P4: every allocated payload address is a multiple of D.
func TestAllocReturnsAlignedPayload(t *testing.T) {
	h := newTestHeap(t)
	for _, n := range []int{1, 7, 8, 15, 16, 17, 100, 4000} {
		ref, _, err := h.Alloc(n)
		require.NoError(t, err)
		require.Zero(t, ref%dwordSize, "size %d: ref %d not %d-aligned", n, ref, dwordSize)
	}
	assertConsistent(t, h)
}

// P5: bytes written into a payload survive until free/realloc.
func TestPayloadSurvivesUntilFreed(t *testing.T) {
	h := newTestHeap(t)
	_, p1, err := h.Alloc(64)
	require.NoError(t, err)
	copy(p1, "hello, allocator")

	ref2, p2, err := h.Alloc(64)
	require.NoError(t, err)
	copy(p2, "second block data")

	require.True(t, strings.HasPrefix(string(p1), "hello, allocator"))
	h.Free(ref2)
	require.True(t, strings.HasPrefix(string(p1), "hello, allocator"))
}

// S2 / R1: alloc two blocks, free both, and the freed space coalesces back
// into a single free-list entry.
func TestFreeCoalescesBothNeighbors(t *testing.T) {
	h := newTestHeap(t)
	p1, _, err := h.Alloc(24)
	require.NoError(t, err)
	p2, _, err := h.Alloc(24)
	require.NoError(t, err)

	h.Free(p1)
	h.Free(p2)
	assertConsistent(t, h)

	free := countFreeListEntries(h)
	require.Equal(t, 1, free)
}

// S6: two 16-byte allocations, freed in order, coalesce into one block of
// size 2*32 = 64 bytes.
func TestCoalesceMergedSize(t *testing.T) {
	h := newTestHeap(t)
	p, _, err := h.Alloc(16)
	require.NoError(t, err)
	q, _, err := h.Alloc(16)
	require.NoError(t, err)

	h.Free(p)
	h.Free(q)

	blocks := h.Blocks()
	var found bool
	for _, b := range blocks {
		if !b.Allocated && b.Size == 64 {
			found = true
		}
	}
	require.True(t, found, "expected a single coalesced 64-byte free block, got %+v", blocks)
}

// R3: freeing null is a no-op.
func TestFreeNullIsNoop(t *testing.T) {
	h := newTestHeap(t)
	require.NotPanics(t, func() { h.Free(0) })
	assertConsistent(t, h)
}

// R4: realloc(null, s) behaves like alloc(s).
func TestReallocNullIsAlloc(t *testing.T) {
	h := newTestHeap(t)
	ref, payload, err := h.Realloc(0, 32)
	require.NoError(t, err)
	require.NotZero(t, ref)
	require.NotNil(t, payload)
	assertConsistent(t, h)
}

// R5: realloc(p, 0) frees p and returns null.
func TestReallocZeroFrees(t *testing.T) {
	h := newTestHeap(t)
	ref, _, err := h.Alloc(32)
	require.NoError(t, err)

	newRef, newPayload, err := h.Realloc(ref, 0)
	require.NoError(t, err)
	require.Zero(t, newRef)
	require.Nil(t, newPayload)
	assertConsistent(t, h)
}

// R2 / S3: shrinking realloc returns the same block unchanged.
func TestReallocShrinkKeepsPointer(t *testing.T) {
	h := newTestHeap(t)
	p, payload, err := h.Alloc(100)
	require.NoError(t, err)
	copy(payload, strings.Repeat("x", 50))

	q, qPayload, err := h.Realloc(p, 50)
	require.NoError(t, err)
	require.Equal(t, p, q)
	require.True(t, strings.HasPrefix(string(qPayload), strings.Repeat("x", 50)))
}

// S3: growing back to the original size after a shrink either reuses the
// same block (forward neighbor still free and big enough) or relocates
// while preserving the prefix bytes.
func TestReallocGrowPreservesPrefix(t *testing.T) {
	h := newTestHeap(t)
	p, payload, err := h.Alloc(100)
	require.NoError(t, err)
	for i := range payload[:50] {
		payload[i] = byte('a' + i%26)
	}
	prefix := append([]byte(nil), payload[:50]...)

	q, _, err := h.Realloc(p, 50)
	require.NoError(t, err)
	require.Equal(t, p, q)

	_, rPayload, err := h.Realloc(q, 100)
	require.NoError(t, err)
	require.Equal(t, prefix, rPayload[:50])
	assertConsistent(t, h)
}

// S4: two large sequential allocations on a fresh heap force extension and
// land in distinct blocks.
func TestSequentialGrowthDistinctBlocks(t *testing.T) {
	h := newTestHeap(t)
	p1, _, err := h.Alloc(4000)
	require.NoError(t, err)
	p2, _, err := h.Alloc(4000)
	require.NoError(t, err)
	require.NotEqual(t, p1, p2)
	assertConsistent(t, h)
}

// S5: alternating alloc/free of small requests reuses the same freed
// space rather than growing the heap repeatedly.
func TestAlternatingAllocFreeReusesSpace(t *testing.T) {
	h := newTestHeap(t)
	hiBefore := h.arena.Hi()

	for i := 0; i < 1000; i++ {
		ref, _, err := h.Alloc(17)
		require.NoError(t, err)
		h.Free(ref)
	}

	require.Equal(t, hiBefore, h.arena.Hi())
	assertConsistent(t, h)
}

func TestZeroSizeAllocReturnsNull(t *testing.T) {
	h := newTestHeap(t)
	ref, payload, err := h.Alloc(0)
	require.NoError(t, err)
	require.Zero(t, ref)
	require.Nil(t, payload)
}

func countFreeListEntries(h *Heap) int {
	n := 0
	for b := h.freeListp; b != h.heapListp; b = getNextLink(h.buf, b) {
		n++
	}
	return n
}
