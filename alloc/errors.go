package alloc

import "errors"

// ErrOutOfMemory is returned when the arena refuses to grow far enough to
// satisfy an allocation or reallocation request.
var ErrOutOfMemory = errors.New("alloc: out of memory")

// ErrInvalidSize is returned for a negative size passed to Realloc. A
// negative size has no meaning for Alloc either, but Alloc's signed int
// input is simply clamped to the zero-size case there; Realloc reserves the
// distinct error because callers can transmit a computed, possibly
// corrupted size across a realloc boundary.
var ErrInvalidSize = errors.New("alloc: invalid size")
