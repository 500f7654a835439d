package tiles

import (
	"context"
	"errors"
	"fmt"
	"github.com/willbeason/escape-time/pkg/escape"
	"math"
)

// A View is a block of the plane's sample lattice. Lattice sample (c, r) lies
// at the center of its cell, ((c+0.5)*Step, (r+0.5)*Step), so row r and row
// -r-1 are mirror images across the real axis.
type View struct {
	// Step is the distance between neighboring samples on both axes.
	Step float32

	// Col and Row are the lattice indices of the view's first sample.
	Col, Row int32

	Width, Height int32
	MaxIter       int32
}

// Samples is the number of samples in the view.
func (v View) Samples() int32 {
	return v.Width * v.Height
}

// X is the real part of lattice column c.
func (v View) X(c int32) float32 {
	return (float32(c) + 0.5) * v.Step
}

// Y is the imaginary part of lattice row r.
func (v View) Y(r int32) float32 {
	return (float32(r) + 0.5) * v.Step
}

// Grid is the sub-grid of v covered by t. Tile origins are computed from the
// lattice, not accumulated across tiles.
func (v View) Grid(t Tile) escape.Grid {
	return escape.Grid{
		XStart: v.X(v.Col + t.X0),
		XStep:  v.Step,
		YStart: v.Y(v.Row + t.Y0),
		YStep:  v.Step,
		Width:  t.W,
		Height: t.H,
	}
}

// Tiles splits v into plane-anchored tiles of edge size.
func (v View) Tiles(size int32) []Tile {
	return Split(v.Col, v.Row, v.Width, v.Height, size)
}

// Stats counts how the tiles of a Render were produced.
type Stats struct {
	Computed int
	Mirrored int
}

// Render computes v tile by tile into out, row-major over the whole view with
// row 0 at v.Row.
//
// A tile whose mirror across the real axis has already been rendered, and
// covers every mirrored row, is copied from it row-reversed instead of being
// computed. Mirrored rows are bit-identical to a direct computation whenever
// the lattice coordinates are exact in single precision, as with a
// power-of-two Step. Computed tiles share one scratch handle, which is released before
// returning. ctx is checked between tiles.
func Render(ctx context.Context, e *escape.Evaluator, v View, size int32, out []int32) (Stats, error) {
	var stats Stats

	if v.Width <= 0 || v.Height <= 0 || int64(v.Width)*int64(v.Height) > math.MaxInt32 {
		return stats, fmt.Errorf("%w: %dx%d view", escape.ErrGeometry, v.Width, v.Height)
	}
	if len(out) < int(v.Samples()) {
		return stats, fmt.Errorf("%w: %d < %d", escape.ErrShortOutput, len(out), v.Samples())
	}
	if size <= 0 {
		size = Size
	}

	log := escape.Logger()
	tile := make([]int32, min(size, v.Width)*min(size, v.Height))
	done := make(map[uint32]Tile)

	h := escape.NoHandle
	for _, t := range v.Tiles(size) {
		if err := ctx.Err(); err != nil {
			return stats, errors.Join(err, e.Release(h))
		}

		if m, ok := done[MirrorKey(t.Key())]; ok && v.covers(m, t) {
			v.mirror(t, out)
			done[t.Key()] = t
			stats.Mirrored++
			log.Debug("mirrored tile", "tile", t, "from", m)
			continue
		}

		g := v.Grid(t)

		var err error
		h, err = e.Compute(g, v.MaxIter, g.Samples(), tile, h)
		if err != nil {
			return stats, errors.Join(fmt.Errorf("tile %v: %w", t, err), e.Release(h))
		}
		done[t.Key()] = t
		stats.Computed++
		log.Debug("computed tile", "tile", t, "x0", t.X0, "y0", t.Y0, "w", t.W, "h", t.H)

		for r := int32(0); r < t.H; r++ {
			dst := (t.Y0+r)*v.Width + t.X0
			copy(out[dst:dst+t.W], tile[r*t.W:(r+1)*t.W])
		}
	}

	// A zero-sample call is the teardown signal.
	_, err := e.Compute(escape.Line{}, v.MaxIter, 0, nil, h)
	return stats, err
}

// covers reports whether rendered tile m holds the mirror of every row of t.
// Both come from the same view, so their columns already agree.
func (v View) covers(m, t Tile) bool {
	first, last := v.Row+t.Y0, v.Row+t.Y0+t.H-1
	mFirst, mLast := v.Row+m.Y0, v.Row+m.Y0+m.H-1
	return mFirst <= -last-1 && -first-1 <= mLast
}

// mirror fills t in out from the rows mirrored across the real axis.
func (v View) mirror(t Tile, out []int32) {
	for r := t.Y0; r < t.Y0+t.H; r++ {
		src := (-(v.Row+r)-1-v.Row)*v.Width + t.X0
		dst := r*v.Width + t.X0
		copy(out[dst:dst+t.W], out[src:src+t.W])
	}
}
