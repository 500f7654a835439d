package scratch

import (
	"errors"
	"fmt"
)

// ErrInvalidHandle is returned for handles the Registry did not issue or has
// already released.
var ErrInvalidHandle = errors.New("scratch: invalid handle")

// A Handle is an opaque reference to a Buffer held by a Registry.
//
// The low 32 bits hold the slot index plus one and the high bits hold the
// slot's generation, so a handle is never zero and goes stale as soon as its
// buffer is released.
type Handle int64

// NoHandle means no buffer is held.
const NoHandle Handle = 0

func makeHandle(index int, gen uint32) Handle {
	return Handle(int64(gen)<<32 | int64(uint32(index+1)))
}

func (h Handle) index() int {
	return int(uint32(h)) - 1
}

func (h Handle) generation() uint32 {
	return uint32(uint64(h) >> 32)
}

func (h Handle) String() string {
	if h == NoHandle {
		return "none"
	}
	return fmt.Sprintf("%d/%d", h.index(), h.generation())
}

type slot struct {
	buf *Buffer
	gen uint32
}

// A Registry is an arena of Buffers addressed by Handle.
//
// A Registry is not safe for concurrent use. Whoever holds a Handle owns the
// Buffer behind it until it is passed back in.
type Registry struct {
	alloc Allocator
	slots []slot
	free  []int

	allocs int
	live   int
}

// NewRegistry returns an empty Registry drawing storage from a.
// A nil Allocator means HeapAllocator{}.
func NewRegistry(a Allocator) *Registry {
	if a == nil {
		a = HeapAllocator{}
	}
	return &Registry{alloc: a}
}

// Lookup returns the Buffer behind h. NoHandle yields a nil Buffer and no error.
func (r *Registry) Lookup(h Handle) (*Buffer, error) {
	if h == NoHandle {
		return nil, nil
	}

	i := h.index()
	if i < 0 || i >= len(r.slots) {
		return nil, fmt.Errorf("%w: %v: no such slot", ErrInvalidHandle, h)
	}

	s := r.slots[i]
	if s.buf == nil || s.gen != h.generation() {
		return nil, fmt.Errorf("%w: %v: stale", ErrInvalidHandle, h)
	}
	if int32(len(s.buf.Counts)) != s.buf.Capacity {
		return nil, fmt.Errorf("%w: %v: capacity tag %d does not match %d counts",
			ErrInvalidHandle, h, s.buf.Capacity, len(s.buf.Counts))
	}

	return s.buf, nil
}

// Acquire returns a Buffer holding exactly n counts.
//
// If h refers to a Buffer of capacity n, that Buffer and h are returned
// unchanged. Otherwise the Buffer behind h, if any, is released and a new one
// is allocated under a new Handle. On allocation failure the old Buffer is
// still released and NoHandle is returned.
func (r *Registry) Acquire(h Handle, n int32) (Handle, *Buffer, error) {
	buf, err := r.Lookup(h)
	if err != nil {
		return NoHandle, nil, err
	}
	if buf.Fits(n) {
		return h, buf, nil
	}

	if buf != nil {
		r.release(h.index())
	}

	buf, err = NewBuffer(r.alloc, n)
	if err != nil {
		return NoHandle, nil, err
	}
	r.allocs++
	r.live++

	if k := len(r.free); k > 0 {
		i := r.free[k-1]
		r.free = r.free[:k-1]
		r.slots[i].buf = buf
		return makeHandle(i, r.slots[i].gen), buf, nil
	}

	r.slots = append(r.slots, slot{buf: buf, gen: 1})
	i := len(r.slots) - 1
	return makeHandle(i, r.slots[i].gen), buf, nil
}

// Release frees the Buffer behind h. Releasing NoHandle does nothing.
func (r *Registry) Release(h Handle) error {
	buf, err := r.Lookup(h)
	if err != nil || buf == nil {
		return err
	}

	r.release(h.index())
	return nil
}

func (r *Registry) release(i int) {
	s := &r.slots[i]
	r.alloc.Free(s.buf.Counts)
	s.buf = nil
	s.gen++
	r.free = append(r.free, i)
	r.live--
}

// Live is the number of Buffers currently held.
func (r *Registry) Live() int {
	return r.live
}

// Allocs is the number of Buffers allocated over the Registry's lifetime.
func (r *Registry) Allocs() int {
	return r.allocs
}
