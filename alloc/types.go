package alloc

// Ref is a byte offset of a block's payload within the arena backing a
// Heap. It plays the role CellRef plays for a hive allocator: a stable,
// serializable handle instead of a language pointer.
//
// Ref(0) is reserved as the null reference: it can never be a real payload
// offset, since the smallest valid payload starts after the prologue's own
// header word.
type Ref = int

const (
	wordSize     = 8                // W: machine-word width this layout targets
	dwordSize    = 2 * wordSize     // D: alignment unit for every block size
	minBlockSize = 2 * dwordSize    // 4W: header + prev + next + footer
	chunkSize    = 4096             // default heap-growth increment
	initRequest  = 6 * wordSize     // padding + prologue(4W) + epilogue header
	prologueSize = 2 * dwordSize    // prologue occupies exactly one minimum block
)
