package escape

// Bailout is the squared escape radius. Orbits reaching it are divergent.
const Bailout = 4.0

// Iterate returns the number of steps of z = z*z + c, starting at z = c,
// before |z|^2 reaches Bailout, capped at maxIter.
//
// Arithmetic is single precision, every product rounded before it is
// added, so counts do not depend on whether the platform fuses
// multiply-adds.
func Iterate(cx, cy float32, maxIter int32) int32 {
	x, y := cx, cy
	x2, y2 := float32(x*x), float32(y*y)

	var iter int32
	for x2+y2 < Bailout && iter < maxIter {
		xNext := float32(x2-y2) + cx
		y = float32(2*x*y) + cy
		x = xNext
		x2, y2 = float32(x*x), float32(y*y)
		iter++
	}

	return iter
}
