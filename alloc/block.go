package alloc

import "encoding/binary"

// Every block boundary tag and free-list link is stored as a single
// 8-byte little-endian word. Reads and writes below are untyped word
// stores into the heap's backing byte slice; callers are responsible for
// ensuring the offset lies within bounds before calling these.

func getWord(buf []byte, off int) uint64 {
	return binary.LittleEndian.Uint64(buf[off : off+wordSize])
}

func putWord(buf []byte, off int, v uint64) {
	binary.LittleEndian.PutUint64(buf[off:off+wordSize], v)
}

// pack encodes a block size and allocation bit into a single boundary-tag
// word. size is always a multiple of dwordSize, so its low bits are free
// for the allocation flag.
func pack(size uint64, allocated bool) uint64 {
	if allocated {
		return size | 1
	}
	return size
}

func unpack(w uint64) (size uint64, allocated bool) {
	return w &^ 1, w&1 != 0
}

// hdrp returns the header address for the block whose payload starts at p.
func hdrp(p int) int {
	return p - wordSize
}

// ftrp returns the footer address for the block whose payload starts at p
// and whose encoded size is size.
func ftrp(p int, size uint64) int {
	return p + int(size) - dwordSize
}

func blockSize(buf []byte, p int) uint64 {
	size, _ := unpack(getWord(buf, hdrp(p)))
	return size
}

func blockAlloc(buf []byte, p int) bool {
	_, allocated := unpack(getWord(buf, hdrp(p)))
	return allocated
}

// writeTags stamps both header and footer of the block at p with size and
// the allocation bit. The header is written first: the footer's address is
// derived from size, so it must already be known-correct before the footer
// store, and writing header-then-footer matches the ordering the widening
// paths in coalesce.go depend on.
func writeTags(buf []byte, p int, size uint64, allocated bool) {
	w := pack(size, allocated)
	putWord(buf, hdrp(p), w)
	putWord(buf, ftrp(p, size), w)
}

// nextBlkp returns the payload address of the block physically following
// the block at p.
func nextBlkp(buf []byte, p int) int {
	return p + int(blockSize(buf, p))
}

// prevBlkp returns the payload address of the block physically preceding
// the block at p, found by reading the preceding block's footer at p-D.
func prevBlkp(buf []byte, p int) int {
	size, _ := unpack(getWord(buf, p-dwordSize))
	return p - int(size)
}

// Free-block link accessors: for alloc=0 blocks, the payload's first word
// holds prev_link and the second holds next_link.

func getPrevLink(buf []byte, p int) int {
	return int(getWord(buf, p))
}

func setPrevLink(buf []byte, p int, v int) {
	putWord(buf, p, uint64(v))
}

func getNextLink(buf []byte, p int) int {
	return int(getWord(buf, p+wordSize))
}

func setNextLink(buf []byte, p int, v int) {
	putWord(buf, p+wordSize, uint64(v))
}
