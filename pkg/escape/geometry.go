package escape

import "fmt"

// A Geometry lays out sample coordinates on the complex plane.
//
// Coordinates advance by repeated single-precision addition of the step,
// not by start + index*step, so long runs accumulate rounding the same way
// on every call.
type Geometry interface {
	// check validates the geometry against the requested sample count.
	check(n int32) error
	// fill writes one iteration count per sample, in sample order.
	fill(counts []int32, maxIter int32)
}

// A Line samples along the real axis at a constant imaginary part.
// The sample count is supplied by the caller.
type Line struct {
	XStart, XStep float32
	Y             float32
}

func (Line) check(int32) error { return nil }

func (l Line) fill(counts []int32, maxIter int32) {
	x := l.XStart
	for i := range counts {
		counts[i] = Iterate(x, l.Y, maxIter)
		x += l.XStep
	}
}

// A Grid samples a Width x Height rectangle in row-major order. Each row
// restarts at XStart; the imaginary part advances by YStep per row.
type Grid struct {
	XStart, XStep float32
	YStart, YStep float32

	Width, Height int32
}

// Samples is the number of samples in the grid.
func (g Grid) Samples() int32 {
	return g.Width * g.Height
}

func (g Grid) check(n int32) error {
	if g.Width < 0 || g.Height < 0 || int64(g.Width)*int64(g.Height) != int64(n) {
		return fmt.Errorf("%w: %dx%d grid for %d samples", ErrGeometry, g.Width, g.Height, n)
	}
	return nil
}

func (g Grid) fill(counts []int32, maxIter int32) {
	k := 0
	y := g.YStart
	for j := int32(0); j < g.Height; j++ {
		x := g.XStart
		for i := int32(0); i < g.Width; i++ {
			counts[k] = Iterate(x, y, maxIter)
			k++
			x += g.XStep
		}
		y += g.YStep
	}
}

var (
	_ Geometry = Line{}
	_ Geometry = Grid{}
)
