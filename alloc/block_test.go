package alloc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPackUnpackRoundTrip(t *testing.T) {
	cases := []struct {
		size      uint64
		allocated bool
	}{
		{32, true},
		{32, false},
		{4096, true},
		{0, true}, // epilogue
	}
	for _, c := range cases {
		w := pack(c.size, c.allocated)
		size, allocated := unpack(w)
		require.Equal(t, c.size, size)
		require.Equal(t, c.allocated, allocated)
	}
}

func TestWriteTagsHeaderEqualsFooter(t *testing.T) {
	buf := make([]byte, 256)
	p := 64
	writeTags(buf, p, 48, true)

	require.Equal(t, getWord(buf, hdrp(p)), getWord(buf, ftrp(p, 48)))
	require.Equal(t, uint64(48), blockSize(buf, p))
	require.True(t, blockAlloc(buf, p))
}

func TestNextPrevBlkpRoundTrip(t *testing.T) {
	buf := make([]byte, 256)
	p1 := 64
	writeTags(buf, p1, 32, false)
	p2 := nextBlkp(buf, p1)
	writeTags(buf, p2, 48, true)

	require.Equal(t, p2, nextBlkp(buf, p1))
	require.Equal(t, p1, prevBlkp(buf, p2))
}

func TestFreeLinkAccessors(t *testing.T) {
	buf := make([]byte, 256)
	p := 64
	setPrevLink(buf, p, 8)
	setNextLink(buf, p, 128)

	require.Equal(t, 8, getPrevLink(buf, p))
	require.Equal(t, 128, getNextLink(buf, p))
}

func TestAdjustedSizeRounding(t *testing.T) {
	cases := []struct {
		in   int
		want uint64
	}{
		{0, 2 * dwordSize},
		{1, 2 * dwordSize},
		{dwordSize, 2 * dwordSize},
		{dwordSize + 1, 3 * dwordSize},
		{24, 48},
		{100, 128},
	}
	for _, c := range cases {
		require.Equal(t, c.want, adjustedSize(c.in), "size %d", c.in)
	}
}
