package scratch

import (
	"errors"
	"fmt"
)

// DefaultMax is the largest buffer HeapAllocator hands out when Max is zero.
// 1<<26 counts is 256MiB of int32s.
const DefaultMax = 1 << 26

// ErrAllocation is returned when a buffer cannot be allocated at the requested capacity.
var ErrAllocation = errors.New("scratch: allocation failed")

// An Allocator provides count storage for Buffers.
type Allocator interface {
	Alloc(n int32) ([]int32, error)
	Free(counts []int32)
}

// HeapAllocator allocates from the Go heap. Free is a no-op; the garbage
// collector reclaims released buffers.
type HeapAllocator struct {
	// Max caps a single allocation. Zero means DefaultMax.
	Max int32
}

func (a HeapAllocator) Alloc(n int32) (counts []int32, err error) {
	limit := a.Max
	if limit <= 0 {
		limit = DefaultMax
	}
	if n <= 0 || n > limit {
		return nil, fmt.Errorf("%w: %d counts (limit %d)", ErrAllocation, n, limit)
	}

	// make panics rather than returning an error when the runtime refuses the size.
	defer func() {
		if r := recover(); r != nil {
			counts = nil
			err = fmt.Errorf("%w: %d counts: %v", ErrAllocation, n, r)
		}
	}()

	return make([]int32, n), nil
}

func (HeapAllocator) Free([]int32) {}

var _ Allocator = HeapAllocator{}
