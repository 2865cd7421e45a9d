// Package alloc is the allocator core: block layout, the explicit free
// list, placement, coalescing, reallocation, and the consistency checker.
//
// # Layout
//
// Every block is header | payload | footer, where header and footer are a
// single word each encoding size and an allocation bit:
//
//	[ size|alloc ][        payload        ][ size|alloc ]
//	 ^ header                               ^ footer
//
// Free blocks store their free-list prev/next pointers in the first two
// words of the payload, so the minimum block size is four words: header,
// prev, next, footer. A prologue block (always allocated, carrying link
// words) sits at the start of the heap and serves as both the backward
// coalescing stop and the free list's tail sentinel; a zero-size allocated
// epilogue header sits at the current heap top and stops forward
// coalescing.
//
// # Usage
//
//	a := arena.NewSlice()
//	h, err := alloc.New(a)
//	if err != nil {
//		// arena refused the initial extension
//	}
//	ref, payload, err := h.Alloc(100)
//	copy(payload, data)
//	h.Free(ref)
//
// # Thread safety
//
// A Heap is not safe for concurrent use from multiple goroutines. Callers
// needing concurrent access must serialize calls externally.
package alloc
