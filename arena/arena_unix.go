//go:build unix

package arena

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// pageSize is assumed rather than queried; mmap reservations are rounded up
// to it regardless of the host's actual page size, which is always a
// divisor of 4096 on every platform this builds for.
const pageSize = 4096

// MmapArena is an Arena backed by a single anonymous mmap reservation.
// The reservation is made PROT_NONE up front and grown by mprotecting
// additional pages PROT_READ|PROT_WRITE, so the backing slice returned by
// Bytes never moves the way a reallocated Go slice would.
type MmapArena struct {
	region   []byte // PROT_NONE reservation, length == capacity
	hi       int    // committed length, <= len(region)
	capacity int
}

// NewMmap reserves capacity bytes of address space for the arena. The
// reservation is virtual only; no physical pages are backed until Extend
// commits them.
func NewMmap(capacity int) (*MmapArena, error) {
	capacity = alignUp(capacity, pageSize)
	region, err := unix.Mmap(-1, 0, capacity, unix.PROT_NONE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("arena: mmap reserve: %w", err)
	}
	return &MmapArena{region: region, capacity: capacity}, nil
}

func (a *MmapArena) Extend(n int) (int, error) {
	if n < 0 {
		return 0, fmt.Errorf("arena: negative extend")
	}
	offset := a.hi
	newHi := a.hi + n
	if newHi > a.capacity {
		return 0, ErrLimitExceeded
	}
	oldCommitted := alignUp(a.hi, pageSize)
	newCommitted := alignUp(newHi, pageSize)
	if newCommitted > oldCommitted {
		grown := a.region[oldCommitted:newCommitted]
		if err := unix.Mprotect(grown, unix.PROT_READ|unix.PROT_WRITE); err != nil {
			return 0, fmt.Errorf("arena: mprotect grow: %w", err)
		}
	}
	a.hi = newHi
	return offset, nil
}

func (a *MmapArena) Lo() int { return 0 }

func (a *MmapArena) Hi() int { return a.hi }

func (a *MmapArena) Bytes() []byte { return a.region[:a.hi] }

// Close releases the reservation. The arena must not be used afterward.
func (a *MmapArena) Close() error {
	if a.region == nil {
		return nil
	}
	err := unix.Munmap(a.region)
	a.region = nil
	return err
}

func alignUp(n, align int) int {
	return (n + align - 1) &^ (align - 1)
}
