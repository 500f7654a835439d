package escape

import (
	"errors"
	"github.com/willbeason/escape-time/pkg/scratch"
)

var (
	// ErrAllocation means the scratch buffer could not be allocated. No
	// results were written and no buffer is held afterwards.
	ErrAllocation = scratch.ErrAllocation

	// ErrInvalidHandle means the handle was not issued by this Evaluator or
	// was already released.
	ErrInvalidHandle = scratch.ErrInvalidHandle

	ErrMaxIter     = errors.New("escape: max iterations must be positive")
	ErrGeometry    = errors.New("escape: geometry does not match sample count")
	ErrShortOutput = errors.New("escape: output shorter than sample count")
)
