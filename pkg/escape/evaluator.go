package escape

import (
	"fmt"
	"github.com/willbeason/escape-time/pkg/scratch"
)

// A Handle refers to a scratch buffer held for the caller between calls.
// It must be passed back unmodified.
type Handle = scratch.Handle

// NoHandle means no scratch buffer is held.
const NoHandle = scratch.NoHandle

// An Evaluator computes escape-time counts into caller-supplied arrays,
// keeping scratch buffers alive between calls behind Handles.
//
// An Evaluator is not safe for concurrent use. Calls presenting the same
// Handle must be serialized by the caller.
type Evaluator struct {
	reg *scratch.Registry
}

// NewEvaluator returns an Evaluator drawing scratch storage from a.
// A nil Allocator means scratch.HeapAllocator{}.
func NewEvaluator(a scratch.Allocator) *Evaluator {
	return &Evaluator{reg: scratch.NewRegistry(a)}
}

// Compute writes the iteration counts of the first sampleCount samples of g
// into out and returns the Handle to present on the next call.
//
// The buffer behind h is reused when it holds exactly sampleCount counts and
// replaced otherwise. A sampleCount of zero or less releases the buffer,
// leaves out untouched and returns NoHandle.
//
// On error out is untouched. Validation errors return h unchanged, so the
// buffer stays held; allocation errors return NoHandle.
func (e *Evaluator) Compute(g Geometry, maxIter, sampleCount int32, out []int32, h Handle) (Handle, error) {
	if sampleCount <= 0 {
		return NoHandle, e.Release(h)
	}

	if maxIter <= 0 {
		return h, fmt.Errorf("%w: got %d", ErrMaxIter, maxIter)
	}
	if err := g.check(sampleCount); err != nil {
		return h, err
	}
	if len(out) < int(sampleCount) {
		return h, fmt.Errorf("%w: %d < %d", ErrShortOutput, len(out), sampleCount)
	}

	log := Logger()

	next, buf, err := e.reg.Acquire(h, sampleCount)
	if err != nil {
		log.Warn("scratch unavailable", "handle", h, "samples", sampleCount, "err", err)
		return next, fmt.Errorf("computing %d samples: %w", sampleCount, err)
	}
	if next == h {
		log.Debug("reusing scratch", "handle", next, "samples", sampleCount)
	} else {
		log.Debug("allocated scratch", "handle", next, "replaced", h, "samples", sampleCount)
	}

	g.fill(buf.Counts, maxIter)
	copy(out[:sampleCount], buf.Counts)

	return next, nil
}

// ComputeLine computes sampleCount samples starting at (xStart, y), stepping
// xStep along the real axis.
func (e *Evaluator) ComputeLine(xStart, xStep, y float32, maxIter, sampleCount int32, out []int32, h Handle) (Handle, error) {
	return e.Compute(Line{XStart: xStart, XStep: xStep, Y: y}, maxIter, sampleCount, out, h)
}

// ComputeGrid computes a width x height grid of samples in row-major order.
// sampleCount must equal width*height unless it requests teardown.
func (e *Evaluator) ComputeGrid(xStart, xStep, yStart, yStep float32, width, height, maxIter, sampleCount int32, out []int32, h Handle) (Handle, error) {
	g := Grid{
		XStart: xStart,
		XStep:  xStep,
		YStart: yStart,
		YStep:  yStep,
		Width:  width,
		Height: height,
	}
	return e.Compute(g, maxIter, sampleCount, out, h)
}

// Release frees the buffer behind h. Releasing NoHandle does nothing.
func (e *Evaluator) Release(h Handle) error {
	if err := e.reg.Release(h); err != nil {
		Logger().Warn("rejected handle", "handle", h, "err", err)
		return fmt.Errorf("releasing scratch: %w", err)
	}
	if h != NoHandle {
		Logger().Debug("released scratch", "handle", h)
	}
	return nil
}

// Live is the number of scratch buffers currently held.
func (e *Evaluator) Live() int {
	return e.reg.Live()
}

// Allocs is the number of scratch buffers allocated so far.
func (e *Evaluator) Allocs() int {
	return e.reg.Allocs()
}
