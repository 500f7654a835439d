package escape

import (
	"fmt"
	"github.com/willbeason/escape-time/pkg/scratch"
)

// A Scratch is a scratch buffer held directly by its owner instead of behind
// a Handle. It follows the same reuse policy as Evaluator.Compute.
//
// The zero value is ready to use and allocates from the Go heap.
type Scratch struct {
	Allocator scratch.Allocator

	buf    *scratch.Buffer
	allocs int
}

// Compute writes the iteration counts of the first n samples of g into out.
// An n of zero or less releases the buffer and leaves out untouched.
func (s *Scratch) Compute(g Geometry, maxIter, n int32, out []int32) error {
	if n <= 0 {
		s.Release()
		return nil
	}

	if maxIter <= 0 {
		return fmt.Errorf("%w: got %d", ErrMaxIter, maxIter)
	}
	if err := g.check(n); err != nil {
		return err
	}
	if len(out) < int(n) {
		return fmt.Errorf("%w: %d < %d", ErrShortOutput, len(out), n)
	}

	if !s.buf.Fits(n) {
		s.Release()

		buf, err := scratch.NewBuffer(s.allocator(), n)
		if err != nil {
			return fmt.Errorf("computing %d samples: %w", n, err)
		}
		s.buf = buf
		s.allocs++
	}

	g.fill(s.buf.Counts, maxIter)
	copy(out[:n], s.buf.Counts)

	return nil
}

// Release frees the held buffer, if any.
func (s *Scratch) Release() {
	if s.buf == nil {
		return
	}
	s.allocator().Free(s.buf.Counts)
	s.buf = nil
}

// Capacity is the sample count of the held buffer, or zero.
func (s *Scratch) Capacity() int32 {
	if s.buf == nil {
		return 0
	}
	return s.buf.Capacity
}

// Allocs is the number of buffers allocated so far.
func (s *Scratch) Allocs() int {
	return s.allocs
}

func (s *Scratch) allocator() scratch.Allocator {
	if s.Allocator == nil {
		return scratch.HeapAllocator{}
	}
	return s.Allocator
}
