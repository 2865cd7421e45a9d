package alloc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckPassesOnFreshHeap(t *testing.T) {
	h := newTestHeap(t)
	var sb strings.Builder
	require.True(t, h.Check(&sb, false))
	require.Empty(t, sb.String())
}

func TestCheckVerboseEmitsPerBlockLines(t *testing.T) {
	h := newTestHeap(t)
	_, _, err := h.Alloc(32)
	require.NoError(t, err)

	var sb strings.Builder
	ok := h.Check(&sb, true)
	require.True(t, ok)
	require.NotEmpty(t, sb.String())
}

func TestCheckDetectsHeaderFooterMismatch(t *testing.T) {
	h := newTestHeap(t)
	ref, _, err := h.Alloc(32)
	require.NoError(t, err)

	// Corrupt the footer directly to simulate a stray write past a
	// payload's declared bounds.
	size := blockSize(h.buf, ref)
	putWord(h.buf, ftrp(ref, size), pack(size+dwordSize, true))

	var sb strings.Builder
	ok := h.Check(&sb, false)
	require.False(t, ok)
	require.Contains(t, sb.String(), "header")
}

func TestCheckDetectsBlockMissingFromFreeList(t *testing.T) {
	h := newTestHeap(t)
	ref, _, err := h.Alloc(32)
	require.NoError(t, err)

	// Mark the block free in its boundary tags without going through
	// Free/coalesce, so it never reaches the free list.
	writeTags(h.buf, ref, blockSize(h.buf, ref), false)

	var sb strings.Builder
	ok := h.Check(&sb, false)
	require.False(t, ok)
	require.Contains(t, sb.String(), "absent from the free list")
}

func TestCheckAfterManyOperations(t *testing.T) {
	h := newTestHeap(t)
	var refs []Ref
	for i := 0; i < 50; i++ {
		ref, _, err := h.Alloc(16 + i%64)
		require.NoError(t, err)
		refs = append(refs, ref)
	}
	for i, ref := range refs {
		if i%2 == 0 {
			h.Free(ref)
		}
	}
	assertConsistent(t, h)
}
