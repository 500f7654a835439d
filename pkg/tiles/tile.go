package tiles

import "fmt"

// Size is the default tile edge, in samples.
const Size = 128

// A Tile is a size x size block of the plane's sample lattice, clipped to a
// view.
type Tile struct {
	// I and J index the tile on the plane: tile (I, J) holds lattice columns
	// [I*size, (I+1)*size) and rows [J*size, (J+1)*size). J is negative below
	// the real axis.
	I, J int32

	// X0 and Y0 are the tile's first sample within the view.
	X0, Y0 int32

	W, H int32
}

func (t Tile) String() string {
	return fmt.Sprintf("%08x", t.Key())
}

// Key is the tile's hash key. See Key.
func (t Tile) Key() uint32 {
	return Key(t.I, t.J)
}

// Split covers the width x height block of lattice samples starting at
// column col and row row with plane-anchored tiles, in row-major order.
// Tiles are clipped to the block. A size of zero or less means Size.
func Split(col, row, width, height, size int32) []Tile {
	if size <= 0 {
		size = Size
	}
	if width <= 0 || height <= 0 {
		return nil
	}

	i0, i1 := floorDiv(col, size), floorDiv(col+width-1, size)
	j0, j1 := floorDiv(row, size), floorDiv(row+height-1, size)

	result := make([]Tile, 0, (i1-i0+1)*(j1-j0+1))
	for j := j0; j <= j1; j++ {
		top := max(j*size, row)
		bottom := min((j+1)*size, row+height)

		for i := i0; i <= i1; i++ {
			left := max(i*size, col)
			right := min((i+1)*size, col+width)

			result = append(result, Tile{
				I:  i,
				J:  j,
				X0: left - col,
				Y0: top - row,
				W:  right - left,
				H:  bottom - top,
			})
		}
	}

	return result
}

func floorDiv(a, b int32) int32 {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}

// Key packs tile indices into 32 bits: i in bits 0-14 with its sign in bit
// 15, j in bits 16-30 with its sign in bit 31. Negative indices count down
// from -0, so tile j and its mirror -j-1 across the real axis differ only in
// bit 31.
func Key(i, j int32) uint32 {
	var h uint32
	if j < 0 {
		h |= 0x80000000
		j = -j - 1
	}
	if i < 0 {
		h |= 0x00008000
		i = -i - 1
	}
	return h | uint32(i)&0x7fff | (uint32(j)&0x7fff)<<16
}

// MirrorKey is the key of the tile mirrored across the real axis.
func MirrorKey(key uint32) uint32 {
	return key ^ 0x80000000
}
